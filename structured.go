package mediareport

import (
	"fmt"
	"time"
)

// Structured report geometry, in millimeters from the top-left corner.
const (
	structuredLeftMm      = 20
	structuredTitleY      = 30
	structuredDateY       = 45
	structuredCountY      = 55
	structuredFirstBlockY = 70
	structuredBlockStep   = 35
	structuredLineStep    = 10
	structuredBreakAfterY = 250
	structuredResumeY     = 30

	structuredTitleSize = 20
	structuredBodySize  = 12
)

// StructuredTitle is the heading of a structured report.
const StructuredTitle = "Relatório de Mídia"

// BuildStructuredReport lays out a text-only report listing files in input
// order. Page 1 carries the title, the generation date and the file count;
// each file then takes a three-line block. Before a block is drawn, a cursor
// past 250mm starts a new page with the cursor back at 30mm.
func BuildStructuredReport(files []UploadedFile, generatedAt time.Time) *Document {
	doc := newDocument(StructuredTitle, DefaultLayout(), generatedAt)
	doc.Subject = fmt.Sprintf("%d arquivo(s)", len(files))
	doc.Filename = StructuredFilename(generatedAt)

	page := doc.AddPage()
	page.Lines = append(page.Lines,
		TextLine{Text: StructuredTitle, X: structuredLeftMm, Y: structuredTitleY, FontSize: structuredTitleSize},
		TextLine{Text: "Gerado em: " + generatedAt.Format("02/01/2006"), X: structuredLeftMm, Y: structuredDateY, FontSize: structuredBodySize},
		TextLine{Text: fmt.Sprintf("Total de arquivos: %d", len(files)), X: structuredLeftMm, Y: structuredCountY, FontSize: structuredBodySize},
	)

	y := float64(structuredFirstBlockY)
	for i, f := range files {
		if y > structuredBreakAfterY {
			page = doc.AddPage()
			y = structuredResumeY
		}
		page.Lines = append(page.Lines,
			TextLine{Text: fmt.Sprintf("%d. %s", i+1, f.Name), X: structuredLeftMm, Y: y, FontSize: structuredBodySize},
			TextLine{Text: "   Tipo: " + f.MIMEType, X: structuredLeftMm, Y: y + structuredLineStep, FontSize: structuredBodySize},
			TextLine{Text: "   Tamanho: " + FormatMegabytes(f.Size) + " MB", X: structuredLeftMm, Y: y + 2*structuredLineStep, FontSize: structuredBodySize},
		)
		y += structuredBlockStep
	}
	return doc
}

// StructuredFilename returns "relatorio-midia-<YYYY-MM-DD>.pdf" with the UTC date.
func StructuredFilename(t time.Time) string {
	return "relatorio-midia-" + t.UTC().Format("2006-01-02") + ".pdf"
}
