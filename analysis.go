package mediareport

import (
	"fmt"
	"image"
	_ "image/gif" // image dimensions
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"
)

// Analysis is the outcome recorded for one analyzed file.
type Analysis struct {
	Description string   `yaml:"description"`
	Details     []string `yaml:"details"`
	Confidence  float64  `yaml:"confidence"` // percent, 0-100
}

// AnalysisResult is one entry of the rendered report.
type AnalysisResult struct {
	FileName   string   `yaml:"file_name"`
	FileType   string   `yaml:"file_type"`
	FileSize   string   `yaml:"file_size"`
	Dimensions string   `yaml:"dimensions,omitempty"`
	Duration   string   `yaml:"duration,omitempty"`
	Analysis   Analysis `yaml:"analysis"`
	Timestamp  string   `yaml:"timestamp"`
}

// highConfidence is the threshold above which a result counts as highly
// confident in the summary.
const highConfidence = 90

// Summary holds the executive summary figures of a rendered report.
type Summary struct {
	TotalFiles     int
	AvgConfidence  float64
	HighConfidence int
}

// Summarize computes the executive summary. An empty result set averages
// to zero.
func Summarize(results []AnalysisResult) Summary {
	s := Summary{TotalFiles: len(results)}
	if len(results) == 0 {
		return s
	}
	var total float64
	for _, r := range results {
		total += r.Analysis.Confidence
		if r.Analysis.Confidence > highConfidence {
			s.HighConfidence++
		}
	}
	s.AvgConfidence = total / float64(len(results))
	return s
}

// DescribeFile derives a baseline result from file metadata. Image
// dimensions are read from the content header when it can be decoded.
func DescribeFile(f UploadedFile, now time.Time) AnalysisResult {
	res := AnalysisResult{
		FileName:  f.Name,
		FileType:  f.MIMEType,
		FileSize:  FormatFileSize(f.Size),
		Timestamp: FormatLocaleTimestamp(now),
	}

	kind := "Arquivo"
	switch {
	case isImage(f.MIMEType):
		kind = "Imagem"
		if w, h, ok := imageDimensions(f); ok {
			res.Dimensions = fmt.Sprintf("%dx%d", w, h)
		}
	case isVideo(f.MIMEType):
		kind = "Vídeo"
	case f.MIMEType == "application/pdf":
		kind = "Documento PDF"
	}

	format := strings.ToUpper(f.MIMEType[strings.IndexByte(f.MIMEType, '/')+1:])
	res.Analysis.Description = fmt.Sprintf("%s %s de %s", kind, format, res.FileSize)
	if res.Dimensions != "" {
		res.Analysis.Description += " com " + res.Dimensions + " pixels"
	}
	res.Analysis.Details = []string{
		"Tipo MIME: " + f.MIMEType,
		fmt.Sprintf("Tamanho em bytes: %d", f.Size),
	}
	if res.Dimensions != "" {
		res.Analysis.Details = append(res.Analysis.Details, "Resolução: "+res.Dimensions)
	}
	return res
}

func imageDimensions(f UploadedFile) (int, int, bool) {
	if f.Content == nil {
		return 0, 0, false
	}
	rc, err := f.Content.Open()
	if err != nil {
		return 0, 0, false
	}
	defer rc.Close()
	cfg, _, err := image.DecodeConfig(rc)
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}

// MergeResults overlays recorded results onto baseline ones by file name.
// Baselines without a recorded entry are kept as they are.
func MergeResults(base, recorded []AnalysisResult) []AnalysisResult {
	byName := make(map[string]AnalysisResult, len(recorded))
	for _, r := range recorded {
		byName[r.FileName] = r
	}
	out := make([]AnalysisResult, len(base))
	for i, b := range base {
		r, ok := byName[b.FileName]
		if !ok {
			out[i] = b
			continue
		}
		if r.FileType == "" {
			r.FileType = b.FileType
		}
		if r.FileSize == "" {
			r.FileSize = b.FileSize
		}
		if r.Dimensions == "" {
			r.Dimensions = b.Dimensions
		}
		if r.Timestamp == "" {
			r.Timestamp = b.Timestamp
		}
		if r.Analysis.Description == "" {
			r.Analysis.Description = b.Analysis.Description
		}
		if len(r.Analysis.Details) == 0 {
			r.Analysis.Details = b.Analysis.Details
		}
		out[i] = r
	}
	return out
}
