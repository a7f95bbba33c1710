package mediareport

import "fmt"

// PageSize represents paper dimensions in millimeters.
type PageSize struct {
	Width  float64 // Width in millimeters.
	Height float64 // Height in millimeters.
}

// Standard paper sizes, portrait.
var (
	A3     = PageSize{Width: 297, Height: 420}
	A4     = PageSize{Width: 210, Height: 297}
	A5     = PageSize{Width: 148, Height: 210}
	Letter = PageSize{Width: 215.9, Height: 279.4}
)

// PageLayout describes the geometry shared by every page of one report run.
// All values are in millimeters.
type PageLayout struct {
	PageWidthMm    float64
	PageHeightMm   float64
	ContentWidthMm float64
	MarginMm       float64
}

// DefaultLayout returns A4 portrait with a 10 mm margin and a 190 mm
// content width.
func DefaultLayout() PageLayout {
	return LayoutFor(A4, 10)
}

// LayoutFor derives a layout from a paper size and a uniform margin.
func LayoutFor(size PageSize, marginMm float64) PageLayout {
	return PageLayout{
		PageWidthMm:    size.Width,
		PageHeightMm:   size.Height,
		ContentWidthMm: size.Width - 2*marginMm,
		MarginMm:       marginMm,
	}
}

// Validate reports whether the layout can be paginated.
func (l PageLayout) Validate() error {
	switch {
	case l.PageHeightMm <= 0:
		return fmt.Errorf("%w: page height %.2fmm must be positive", ErrInvalidLayout, l.PageHeightMm)
	case l.MarginMm < 0 || l.MarginMm >= l.PageHeightMm:
		return fmt.Errorf("%w: margin %.2fmm outside [0, %.2f)", ErrInvalidLayout, l.MarginMm, l.PageHeightMm)
	case l.ContentWidthMm <= 0:
		return fmt.Errorf("%w: content width %.2fmm must be positive", ErrInvalidLayout, l.ContentWidthMm)
	case l.PageWidthMm > 0 && l.ContentWidthMm > l.PageWidthMm:
		return fmt.Errorf("%w: content width %.2fmm exceeds page width %.2fmm", ErrInvalidLayout, l.ContentWidthMm, l.PageWidthMm)
	}
	return nil
}

// resolved fills a zero page width with A4's.
func (l PageLayout) resolved() PageLayout {
	if l.PageWidthMm <= 0 {
		l.PageWidthMm = A4.Width
	}
	return l
}

// mmToPx converts millimeters to CSS pixels (96 per inch).
func mmToPx(mm float64) float64 {
	return mm / 25.4 * 96
}
