package mediareport

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png" // screenshot decoding
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// DefaultSelector is the element captured when a [Region] names none.
const DefaultSelector = "#report-content"

// Region identifies the document region to rasterize: an HTML document,
// given inline or by URL, and the CSS selector of the element inside it.
type Region struct {
	HTML     string
	URL      string
	Selector string
}

// RegionCapturer rasterizes a rendered document region.
type RegionCapturer interface {
	CaptureRegion(ctx context.Context, region *Region) (*Raster, error)
}

// Capturer rasterizes HTML regions with a headless browser.
//
// A Capturer manages a headless browser instance that is reused across
// multiple captures. It is safe for concurrent use.
//
// Call [Capturer.Close] when the Capturer is no longer needed to release
// browser resources.
type Capturer struct {
	cfg           capturerConfig
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewCapturer creates a Capturer with the given options.
//
// It starts a headless browser in the background. The caller must call
// [Capturer.Close] when finished.
func NewCapturer(opts ...Option) (*Capturer, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.chromePath == "" && cfg.autoDownload {
		path, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		cfg.chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("mediareport: starting browser: %w", err)
	}

	return &Capturer{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases all resources held by the Capturer, including the
// browser process. Close is idempotent.
func (c *Capturer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.browserCancel()
	c.allocCancel()
	return nil
}

// CaptureRegion loads the region's document in a fresh tab and returns a
// PNG snapshot of the selected element, rendered over an opaque white
// background at the configured scale.
//
// A nil region, a selector that matches nothing and any browser failure are
// reported as an [*Error] of [KindCapture].
func (c *Capturer) CaptureRegion(ctx context.Context, region *Region) (*Raster, error) {
	if region == nil {
		return nil, captureError("no capture region given", nil)
	}
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	sel := region.Selector
	if sel == "" {
		sel = DefaultSelector
	}

	targetURL, cleanup, err := region.target()
	if err != nil {
		return nil, captureError("preparing region", err)
	}
	defer cleanup()

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	defer tabCancel()
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	white := &cdp.RGBA{R: 255, G: 255, B: 255, A: 1}
	var nodes []*cdp.Node
	if err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(c.cfg.viewportWidth, 1024),
		emulation.SetDefaultBackgroundColorOverride().WithColor(white),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Nodes(sel, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)),
	); err != nil {
		return nil, captureError("loading region", contextErr(ctx, err))
	}
	if len(nodes) == 0 {
		return nil, captureError(fmt.Sprintf("region %q not found", sel), nil)
	}

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.ScreenshotScale(sel, c.cfg.scale, &buf, chromedp.ByQuery),
	); err != nil {
		return nil, captureError("rasterizing region", contextErr(ctx, err))
	}
	return decodeRaster(buf)
}

// target returns the URL to navigate to. Inline HTML is written to a
// temporary file that cleanup removes.
func (r *Region) target() (string, func(), error) {
	noop := func() {}
	if r.URL != "" {
		if _, err := url.ParseRequestURI(r.URL); err != nil {
			return "", noop, fmt.Errorf("invalid URL %q: %w", r.URL, err)
		}
		return r.URL, noop, nil
	}
	if r.HTML == "" {
		return "", noop, fmt.Errorf("region has neither HTML nor URL")
	}

	f, err := os.CreateTemp("", "mediareport-*.html")
	if err != nil {
		return "", noop, fmt.Errorf("creating temp file: %w", err)
	}
	name := f.Name()
	cleanup := func() { os.Remove(name) }

	if _, err := f.WriteString(r.HTML); err != nil {
		f.Close()
		cleanup()
		return "", noop, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", noop, fmt.Errorf("closing temp file: %w", err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		cleanup()
		return "", noop, fmt.Errorf("resolving path: %w", err)
	}
	return "file://" + abs, cleanup, nil
}

// decodeRaster reads the pixel dimensions of a PNG snapshot.
func decodeRaster(data []byte) (*Raster, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, captureError("decoding snapshot", err)
	}
	if format != "png" {
		return nil, captureError("snapshot is "+format+", not png", nil)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, captureError(fmt.Sprintf("empty snapshot %dx%d", cfg.Width, cfg.Height), nil)
	}
	return &Raster{PNG: data, Width: cfg.Width, Height: cfg.Height}, nil
}

// contextErr prefers the caller's context error, which explains a canceled
// tab better than the browser's own message.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

func (c *Capturer) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

// CaptureRegion rasterizes a region using a temporary [Capturer].
// For repeated use, create a [Capturer] with [NewCapturer] to reuse the
// browser instance.
func CaptureRegion(ctx context.Context, region *Region, opts ...Option) (*Raster, error) {
	c, err := NewCapturer(opts...)
	if err != nil {
		return nil, captureError("starting browser", err)
	}
	defer c.Close()
	return c.CaptureRegion(ctx, region)
}
