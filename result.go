package mediareport

import (
	"bytes"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"

	"github.com/porticus-lab/go-media-report/internal/inspect"
)

// Result holds a generated PDF and provides helpers for common output
// formats such as raw bytes, base64 encoding, and streaming readers.
//
// It is safe to call its methods multiple times; the underlying data is
// never modified.
type Result struct {
	data     []byte
	filename string
}

// NewResult wraps PDF bytes obtained elsewhere, such as an upload response.
func NewResult(data []byte, filename string) *Result {
	return &Result{data: data, filename: filename}
}

// Bytes returns the raw PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// Filename returns the suggested download name.
func (r *Result) Filename() string {
	return r.filename
}

// Base64 returns the PDF encoded as a standard base64 string (RFC 4648).
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.data)
}

// Reader returns an [*bytes.Reader] over the PDF content.
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the PDF to the file at path, creating it if needed.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, r.data, perm)
}

// Save writes the PDF into dir under its suggested filename and returns the
// full path.
func (r *Result) Save(dir string) (string, error) {
	name := r.filename
	if name == "" {
		name = "relatorio.pdf"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	return path, r.WriteToFile(path, 0o644)
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}

// PageCount parses the PDF and returns its number of pages.
func (r *Result) PageCount() (int, error) {
	info, err := inspect.Read(r.data)
	if err != nil {
		return 0, err
	}
	return info.Pages, nil
}
