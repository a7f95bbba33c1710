package mediareport

import (
	"math"
	"time"
)

// capturerConfig holds internal configuration for a Capturer.
type capturerConfig struct {
	chromePath    string
	timeout       time.Duration
	noSandbox     bool
	headless      string
	autoDownload  bool
	scale         float64
	viewportWidth int64
}

func defaultConfig() capturerConfig {
	return capturerConfig{
		timeout:       30 * time.Second,
		headless:      "new",
		scale:         2,
		viewportWidth: int64(math.Round(mmToPx(A4.Width))),
	}
}

// Option configures a [Capturer].
type Option func(*capturerConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *capturerConfig) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration for a single capture.
// Defaults to 30 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *capturerConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *capturerConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload fetches a compatible Chromium build when no executable
// path is given. The download is cached between runs.
func WithAutoDownload() Option {
	return func(c *capturerConfig) {
		c.autoDownload = true
	}
}

// WithScale sets the device scale factor used when rasterizing.
// Defaults to 2 for print fidelity; values <= 0 are ignored.
func WithScale(scale float64) Option {
	return func(c *capturerConfig) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// WithViewportWidth sets the CSS pixel width the region is laid out in.
// Defaults to the width of an A4 page at 96 DPI.
func WithViewportWidth(px int64) Option {
	return func(c *capturerConfig) {
		if px > 0 {
			c.viewportWidth = px
		}
	}
}
