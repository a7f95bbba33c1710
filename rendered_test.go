package mediareport

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeCapturer returns a fixed raster or error and records the region.
type fakeCapturer struct {
	raster *Raster
	err    error
	got    *Region
	calls  int
}

func (f *fakeCapturer) CaptureRegion(_ context.Context, r *Region) (*Raster, error) {
	f.calls++
	f.got = r
	return f.raster, f.err
}

func tallRaster(t *testing.T, w, h int) *Raster {
	t.Helper()
	return &Raster{PNG: pngBytes(t, w, h), Width: w, Height: h}
}

func TestBuildRenderedReport_Paginates(t *testing.T) {
	// 100x300 px at 190mm wide is 570mm tall: two pages.
	capt := &fakeCapturer{raster: tallRaster(t, 100, 300)}
	region := &Region{HTML: "<div id=report-content></div>", Selector: DefaultSelector}

	doc, err := BuildRenderedReport(context.Background(), capt, region, DefaultLayout())
	if err != nil {
		t.Fatalf("BuildRenderedReport: %v", err)
	}
	if capt.got != region {
		t.Error("capturer did not receive the region")
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(doc.Pages))
	}

	wantY := []float64{10, -287}
	for i, p := range doc.Pages {
		if len(p.Images) != 1 || len(p.Lines) != 0 {
			t.Fatalf("page %d has %d images and %d lines, want one image", i+1, len(p.Images), len(p.Lines))
		}
		im := p.Images[0]
		if im.X != 10 || im.W != 190 {
			t.Errorf("page %d image at x=%v w=%v, want x=10 w=190", i+1, im.X, im.W)
		}
		if !almostEqual(im.H, 570, 1e-9) {
			t.Errorf("page %d image height = %v, want 570", i+1, im.H)
		}
		if !almostEqual(im.Y, wantY[i], 1e-9) {
			t.Errorf("page %d image y = %v, want %v", i+1, im.Y, wantY[i])
		}
		if _, ok := doc.Image(im.Image); !ok {
			t.Errorf("page %d references unregistered image %q", i+1, im.Image)
		}
	}

	if !strings.HasPrefix(doc.Filename, "relatorio-midia-") || !strings.HasSuffix(doc.Filename, ".pdf") {
		t.Errorf("filename = %q", doc.Filename)
	}
	if strings.ContainsAny(doc.Filename, "/:") {
		t.Errorf("filename %q contains path-unsafe separators", doc.Filename)
	}
}

func TestBuildRenderedReport_Render(t *testing.T) {
	capt := &fakeCapturer{raster: tallRaster(t, 50, 400)}
	doc, err := BuildRenderedReport(context.Background(), capt, &Region{HTML: "<p>x</p>"}, DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	res, err := doc.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	n, err := res.PageCount()
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != len(doc.Pages) {
		t.Errorf("PDF has %d pages, document has %d", n, len(doc.Pages))
	}
}

func TestBuildRenderedReport_CaptureErrors(t *testing.T) {
	ctx := context.Background()
	region := &Region{HTML: "<p>x</p>"}
	cause := errors.New("tainted canvas")

	tests := []struct {
		name   string
		capt   RegionCapturer
		region *Region
	}{
		{"missing region", &fakeCapturer{raster: tallRaster(t, 10, 10)}, nil},
		{"missing capturer", nil, region},
		{"capturer failure", &fakeCapturer{err: cause}, region},
		{"capture error passthrough", &fakeCapturer{err: captureError("region not found", nil)}, region},
		{"empty raster", &fakeCapturer{raster: &Raster{}}, region},
		{"nil raster", &fakeCapturer{}, region},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildRenderedReport(ctx, tt.capt, tt.region, DefaultLayout())
			if !errors.Is(err, ErrCapture) {
				t.Fatalf("err = %v, want ErrCapture", err)
			}
		})
	}

	_, err := BuildRenderedReport(ctx, &fakeCapturer{err: cause}, region, DefaultLayout())
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want it to wrap the capturer's error", err)
	}
}

func TestBuildRenderedReport_InvalidLayout(t *testing.T) {
	capt := &fakeCapturer{raster: tallRaster(t, 10, 10)}
	_, err := BuildRenderedReport(context.Background(), capt, &Region{HTML: "x"}, PageLayout{})
	if !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("err = %v, want ErrInvalidLayout", err)
	}
	if capt.calls != 0 {
		t.Error("capturer called despite invalid layout")
	}
}

func TestGenerateRenderedReport(t *testing.T) {
	capt := &fakeCapturer{raster: tallRaster(t, 200, 100)}
	results := []AnalysisResult{
		{FileName: "a.png", FileType: "image/png", FileSize: "1 MB", Analysis: Analysis{Confidence: 95}},
		{FileName: "b.mp4", FileType: "video/mp4", FileSize: "2 MB", Analysis: Analysis{Confidence: 80}},
	}

	doc, err := GenerateRenderedReport(context.Background(), capt, results, DefaultLayout())
	if err != nil {
		t.Fatalf("GenerateRenderedReport: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Errorf("got %d pages, want 1", len(doc.Pages))
	}
	if capt.got == nil || capt.got.Selector != DefaultSelector {
		t.Fatalf("captured region %+v, want selector %s", capt.got, DefaultSelector)
	}
	html := capt.got.HTML
	for _, want := range []string{"a.png", "b.mp4", "Arquivos Analisados", "87.5%", doc.ID.String()} {
		if !strings.Contains(html, want) {
			t.Errorf("region HTML lacks %q", want)
		}
	}
	if doc.Subject != "Resumo de 2 arquivos" {
		t.Errorf("subject = %q", doc.Subject)
	}
}

func TestImageHeightMm(t *testing.T) {
	if got := ImageHeightMm(1000, 2000, 190); got != 380 {
		t.Errorf("ImageHeightMm = %v, want 380", got)
	}
	if got := ImageHeightMm(0, 100, 190); got != 0 {
		t.Errorf("zero width gave %v, want 0", got)
	}
}

func TestRenderedFilename(t *testing.T) {
	ts := time.Date(2026, 10, 18, 14, 5, 9, 0, time.UTC)
	if got := RenderedFilename(ts); got != "relatorio-midia-18-10-2026, 14-05-09.pdf" {
		t.Errorf("RenderedFilename = %q", got)
	}
	if got := FormatLocaleTimestamp(ts); got != "18/10/2026, 14:05:09" {
		t.Errorf("FormatLocaleTimestamp = %q", got)
	}
}
