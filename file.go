package mediareport

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Opener gives read access to the raw bytes of an uploaded file.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// UploadedFile is one user-supplied file. The report builders only read its
// metadata; the content handle is opened by the upload client and by
// [DescribeFile].
type UploadedFile struct {
	Name     string
	Size     int64
	MIMEType string
	Content  Opener
}

type pathOpener string

func (p pathOpener) Open() (io.ReadCloser, error) { return os.Open(string(p)) }

type bytesOpener []byte

func (b bytesOpener) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// FileFromPath describes the file at path. The MIME type is sniffed from
// the file content rather than trusted from the extension.
func FileFromPath(path string) (UploadedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("mediareport: %w", err)
	}
	if info.IsDir() {
		return UploadedFile{}, fmt.Errorf("mediareport: %s is a directory", path)
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("mediareport: detecting type of %s: %w", path, err)
	}
	return UploadedFile{
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MIMEType: baseMIME(mt.String()),
		Content:  pathOpener(path),
	}, nil
}

// FileFromBytes wraps in-memory content. An empty mimeType is detected from
// the data.
func FileFromBytes(name, mimeType string, data []byte) UploadedFile {
	if mimeType == "" {
		mimeType = baseMIME(mimetype.Detect(data).String())
	}
	return UploadedFile{
		Name:     name,
		Size:     int64(len(data)),
		MIMEType: mimeType,
		Content:  bytesOpener(data),
	}
}

// baseMIME strips parameters such as "; charset=utf-8".
func baseMIME(mt string) string {
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}

func isImage(mt string) bool { return strings.HasPrefix(mt, "image/") }
func isVideo(mt string) bool { return strings.HasPrefix(mt, "video/") }

// AcceptSingle validates a file for the single-file upload flow, which takes
// PDFs and images.
func AcceptSingle(f UploadedFile) error {
	if f.MIMEType == "application/pdf" || isImage(f.MIMEType) {
		return nil
	}
	return &Error{
		Kind:    KindUnsupportedFileType,
		Op:      "select",
		Message: fmt.Sprintf("%s (%s)", f.Name, f.MIMEType),
	}
}

// FilterMedia keeps the images and videos of files, in input order.
// Anything else is dropped without error.
func FilterMedia(files []UploadedFile) []UploadedFile {
	out := make([]UploadedFile, 0, len(files))
	for _, f := range files {
		if isImage(f.MIMEType) || isVideo(f.MIMEType) {
			out = append(out, f)
		}
	}
	return out
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with base-1024 units rounded to two
// decimals, trailing zeros trimmed: 1572864 becomes "1.5 MB". Sizes beyond
// the GB range stay in GB.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := 0
	for i < len(sizeUnits)-1 && bytes >= int64(1)<<(10*(i+1)) {
		i++
	}
	v := float64(bytes) / math.Pow(1024, float64(i))
	return strconv.FormatFloat(round2(v), 'f', -1, 64) + " " + sizeUnits[i]
}

// FormatMegabytes renders a byte count in MB with exactly two decimals.
func FormatMegabytes(bytes int64) string {
	return strconv.FormatFloat(round2(float64(bytes)/1024/1024), 'f', 2, 64)
}

// round2 rounds half away from zero at two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
