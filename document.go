package mediareport

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// TextLine is a line of text drawn with its baseline at (X, Y) millimeters.
type TextLine struct {
	Text     string
	X, Y     float64
	FontSize float64 // points
	Bold     bool
}

// ImagePlacement draws a registered raster at (X, Y) scaled to W×H
// millimeters. Y may be negative: the page clips whatever falls outside.
type ImagePlacement struct {
	Image      string
	X, Y, W, H float64
}

// Page is one page of a [Document].
type Page struct {
	Lines  []TextLine
	Images []ImagePlacement
}

// Raster is a PNG snapshot together with its pixel dimensions.
type Raster struct {
	PNG    []byte
	Width  int
	Height int
}

// Document is the page model of a report before serialization. It is built
// once per generation and turned into bytes by [Document.Render].
type Document struct {
	ID        uuid.UUID
	Title     string
	Subject   string
	CreatedAt time.Time
	Filename  string
	Layout    PageLayout
	Pages     []*Page

	images map[string]*Raster
}

func newDocument(title string, layout PageLayout, createdAt time.Time) *Document {
	return &Document{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: createdAt,
		Layout:    layout.resolved(),
		images:    make(map[string]*Raster),
	}
}

// AddPage appends an empty page and returns it.
func (d *Document) AddPage() *Page {
	p := &Page{}
	d.Pages = append(d.Pages, p)
	return p
}

// Image returns the raster registered under name.
func (d *Document) Image(name string) (*Raster, bool) {
	r, ok := d.images[name]
	return r, ok
}

func (d *Document) addImage(name string, r *Raster) {
	d.images[name] = r
}

// Render serializes the document to PDF.
func (d *Document) Render() (*Result, error) {
	l := d.Layout.resolved()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: l.PageWidthMm, Ht: l.PageHeightMm},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(d.Title, true)
	if d.Subject != "" {
		pdf.SetSubject(d.Subject, true)
	}
	pdf.SetCreator("go-media-report", false)
	pdf.SetKeywords("report-id:"+d.ID.String(), false)
	if !d.CreatedAt.IsZero() {
		pdf.SetCreationDate(d.CreatedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	names := make([]string, 0, len(d.images))
	for name := range d.images {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(d.images[name].PNG))
	}

	for _, p := range d.Pages {
		pdf.AddPage()
		for _, ln := range p.Lines {
			style := ""
			if ln.Bold {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, ln.FontSize)
			pdf.Text(ln.X, ln.Y, tr(ln.Text))
		}
		for _, im := range p.Images {
			if _, ok := d.images[im.Image]; !ok {
				return nil, fmt.Errorf("mediareport: page references unknown image %q", im.Image)
			}
			pdf.ImageOptions(im.Image, im.X, im.Y, im.W, im.H, false,
				fpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("mediareport: writing PDF: %w", err)
	}
	return &Result{data: buf.Bytes(), filename: d.Filename}, nil
}
