package mediareport

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RenderedTitle is the title of a rendered report.
const RenderedTitle = "Relatório de Análise de Mídia"

const snapshotImage = "snapshot"

// BuildRenderedReport rasterizes region through capturer and spreads the
// single tall snapshot over as many pages as [ComputePageOffsets] asks for.
// Every page draws the whole snapshot at the left margin, scaled to the
// layout's content width and shifted up by that page's offset, so each page
// shows the next slice of it.
//
// Capture failures, including a nil region, are returned as an [*Error] of
// [KindCapture].
func BuildRenderedReport(ctx context.Context, capturer RegionCapturer, region *Region, layout PageLayout) (*Document, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if region == nil {
		return nil, captureError("no capture region given", nil)
	}
	if capturer == nil {
		return nil, captureError("no capturer available", nil)
	}

	raster, err := capturer.CaptureRegion(ctx, region)
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Kind == KindCapture {
			return nil, err
		}
		return nil, captureError("capturing region", err)
	}
	if raster == nil || raster.Width <= 0 || raster.Height <= 0 {
		return nil, captureError("capturer returned an empty snapshot", nil)
	}

	imageHeightMm := ImageHeightMm(raster.Width, raster.Height, layout.ContentWidthMm)
	offsets, err := ComputePageOffsets(imageHeightMm, layout.PageHeightMm, layout.MarginMm)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := newDocument(RenderedTitle, layout, now)
	doc.Filename = RenderedFilename(now)
	doc.addImage(snapshotImage, raster)
	for _, off := range offsets {
		p := doc.AddPage()
		p.Images = append(p.Images, ImagePlacement{
			Image: snapshotImage,
			X:     layout.MarginMm,
			Y:     off,
			W:     layout.ContentWidthMm,
			H:     imageHeightMm,
		})
	}
	return doc, nil
}

// GenerateRenderedReport renders results into a report region, captures it
// and paginates the snapshot. The report ID printed in the region footer is
// also the document ID.
func GenerateRenderedReport(ctx context.Context, capturer RegionCapturer, results []AnalysisResult, layout PageLayout) (*Document, error) {
	id := uuid.New()
	now := time.Now()
	region, err := RenderRegion(results, now, id.String())
	if err != nil {
		return nil, err
	}
	doc, err := BuildRenderedReport(ctx, capturer, region, layout)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	doc.Subject = "Resumo de " + pluralFiles(len(results))
	return doc, nil
}

// ImageHeightMm maps a raster onto a fixed content width and returns the
// height that preserves its aspect ratio.
func ImageHeightMm(widthPx, heightPx int, contentWidthMm float64) float64 {
	if widthPx <= 0 {
		return 0
	}
	return float64(heightPx) * contentWidthMm / float64(widthPx)
}

// FormatLocaleTimestamp renders t the way a pt-BR locale prints a date and
// time: "18/10/2026, 14:05:09".
func FormatLocaleTimestamp(t time.Time) string {
	return t.Format("02/01/2006, 15:04:05")
}

var unsafeFilenameChars = strings.NewReplacer("/", "-", ":", "-")

// RenderedFilename returns "relatorio-midia-<timestamp>.pdf", the pt-BR
// timestamp with its "/" and ":" separators replaced by "-".
func RenderedFilename(t time.Time) string {
	return "relatorio-midia-" + unsafeFilenameChars.Replace(FormatLocaleTimestamp(t)) + ".pdf"
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 arquivo"
	}
	return strconv.Itoa(n) + " arquivos"
}
