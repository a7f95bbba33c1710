package mediareport

import "fmt"

// ComputePageOffsets returns, for each page needed to show a content block
// of contentHeightMm, the vertical offset at which the whole block is drawn
// on that page. The first page draws it at marginMm; every following page
// shifts it up by one full page height, so the pages act as consecutive
// viewports over one continuous block.
//
// A page is added while the height left after the previous page is >= 0,
// so content that is an exact multiple of pageHeightMm gets a trailing page
// with nothing left to show.
func ComputePageOffsets(contentHeightMm, pageHeightMm, marginMm float64) ([]float64, error) {
	switch {
	case contentHeightMm < 0:
		return nil, fmt.Errorf("%w: content height %.2fmm is negative", ErrInvalidLayout, contentHeightMm)
	case pageHeightMm <= 0:
		return nil, fmt.Errorf("%w: page height %.2fmm must be positive", ErrInvalidLayout, pageHeightMm)
	case marginMm < 0 || marginMm >= pageHeightMm:
		return nil, fmt.Errorf("%w: margin %.2fmm outside [0, %.2f)", ErrInvalidLayout, marginMm, pageHeightMm)
	}

	offsets := []float64{marginMm}
	remaining := contentHeightMm - pageHeightMm
	for remaining >= 0 {
		offsets = append(offsets, remaining-contentHeightMm+marginMm)
		remaining -= pageHeightMm
	}
	return offsets, nil
}

// Span is a half-open interval [Start, End) of content height in millimeters.
type Span struct {
	Start float64
	End   float64
}

// Len returns the span height, never negative.
func (s Span) Len() float64 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// VisibleSpans reports which part of a content block of contentHeightMm
// each page shows when the block is drawn at the given offsets on pages of
// pageHeightMm. A page showing nothing yields an empty span.
func VisibleSpans(offsets []float64, contentHeightMm, pageHeightMm float64) []Span {
	spans := make([]Span, len(offsets))
	for i, off := range offsets {
		// The page window [0, pageHeight) maps to content [-off, pageHeight-off).
		start := max(-off, 0)
		end := min(pageHeightMm-off, contentHeightMm)
		if end < start {
			end = start
		}
		spans[i] = Span{Start: start, End: end}
	}
	return spans
}
