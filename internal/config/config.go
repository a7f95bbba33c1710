// Package config loads mediareport settings from an optional YAML file and
// MEDIAREPORT_* environment variables. Environment values win over the
// file; the file wins over the defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Capture CaptureConfig `yaml:"capture"`
	Output  OutputConfig  `yaml:"output"`
}

// BackendConfig holds the upload endpoint settings.
type BackendConfig struct {
	URL      string        `yaml:"url"`
	Username string        `yaml:"username"` // sent with uploads; empty means the library default
	Timeout  time.Duration `yaml:"timeout"`
}

// CaptureConfig holds headless browser settings for rendered reports.
type CaptureConfig struct {
	ChromePath   string        `yaml:"chrome_path"`
	NoSandbox    bool          `yaml:"no_sandbox"`
	AutoDownload bool          `yaml:"auto_download"`
	Timeout      time.Duration `yaml:"timeout"`
	Scale        float64       `yaml:"scale"`
	Selector     string        `yaml:"selector"`
}

// OutputConfig holds where generated files go.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:     "http://localhost:5000",
			Timeout: 2 * time.Minute,
		},
		Capture: CaptureConfig{
			Timeout:  30 * time.Second,
			Scale:    2,
			Selector: "#report-content",
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// environment. An empty path skips the file; a missing file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Backend.URL = getEnv("MEDIAREPORT_BACKEND_URL", c.Backend.URL)
	c.Backend.Username = getEnv("MEDIAREPORT_USERNAME", c.Backend.Username)
	c.Capture.ChromePath = getEnv("MEDIAREPORT_CHROME_PATH", c.Capture.ChromePath)
	c.Capture.Selector = getEnv("MEDIAREPORT_SELECTOR", c.Capture.Selector)
	c.Output.Dir = getEnv("MEDIAREPORT_OUTPUT_DIR", c.Output.Dir)

	var err error
	if c.Backend.Timeout, err = getEnvDuration("MEDIAREPORT_UPLOAD_TIMEOUT", c.Backend.Timeout); err != nil {
		return err
	}
	if c.Capture.Timeout, err = getEnvDuration("MEDIAREPORT_CAPTURE_TIMEOUT", c.Capture.Timeout); err != nil {
		return err
	}
	if c.Capture.NoSandbox, err = getEnvBool("MEDIAREPORT_NO_SANDBOX", c.Capture.NoSandbox); err != nil {
		return err
	}
	if c.Capture.AutoDownload, err = getEnvBool("MEDIAREPORT_AUTO_DOWNLOAD", c.Capture.AutoDownload); err != nil {
		return err
	}
	return nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	var errs []error
	if u, err := url.ParseRequestURI(c.Backend.URL); err != nil || u.Host == "" {
		errs = append(errs, fmt.Errorf("backend.url %q is not an absolute URL", c.Backend.URL))
	}
	if c.Backend.Timeout < 0 {
		errs = append(errs, fmt.Errorf("backend.timeout must not be negative"))
	}
	if c.Capture.Timeout < 0 {
		errs = append(errs, fmt.Errorf("capture.timeout must not be negative"))
	}
	if c.Capture.Scale <= 0 {
		errs = append(errs, fmt.Errorf("capture.scale must be positive, got %v", c.Capture.Scale))
	}
	if c.Capture.Selector == "" {
		errs = append(errs, fmt.Errorf("capture.selector must not be empty"))
	}
	if c.Output.Dir == "" {
		errs = append(errs, fmt.Errorf("output.dir must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// getEnv reads an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
