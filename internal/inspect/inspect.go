// Package inspect reads back PDF files produced or downloaded by the
// report tools: page count and plain text per page.
package inspect

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Info summarizes a PDF document.
type Info struct {
	Pages int
	Text  []string // plain text, one element per page
}

// Open reads and inspects the PDF at path.
func Open(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Read(data)
}

// Read inspects a PDF held in memory. Pages whose text cannot be decoded
// (for example image-only pages) yield an empty string.
func Read(data []byte) (*Info, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("not a PDF file")
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	n := r.NumPage()
	info := &Info{Pages: n, Text: make([]string, n)}
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		info.Text[i-1] = strings.TrimSpace(text)
	}
	return info, nil
}

// Contains reports whether any page contains s.
func (i *Info) Contains(s string) bool {
	for _, t := range i.Text {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}
