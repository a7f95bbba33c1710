package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	mediareport "github.com/porticus-lab/go-media-report"
)

func TestParsePageRange(t *testing.T) {
	tests := []struct {
		spec    string
		total   int
		want    []int
		wantErr bool
	}{
		{"", 3, []int{0, 1, 2}, false},
		{"2", 3, []int{1}, false},
		{"1-3", 5, []int{0, 1, 2}, false},
		{"1,3", 3, []int{0, 2}, false},
		{"1-2,2-3", 3, []int{0, 1, 2}, false},
		{" 2 , 3 ", 3, []int{1, 2}, false},
		{"0", 3, nil, true},
		{"4", 3, nil, true},
		{"3-1", 3, nil, true},
		{"a", 3, nil, true},
		{"1-b", 3, nil, true},
	}
	for _, tt := range tests {
		got, err := parsePageRange(tt.spec, tt.total)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePageRange(%q, %d) error = %v, wantErr %v", tt.spec, tt.total, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parsePageRange(%q, %d) = %v, want %v", tt.spec, tt.total, got, tt.want)
		}
	}
}

func TestParseOptions(t *testing.T) {
	o, err := parseOptions([]string{"a.png", "-o", "out", "-s", "main", "b.mp4"}, "-o -r -s ")
	if err != nil {
		t.Fatalf("parseOptions: %v", err)
	}
	if o.outDir != "out" || o.selector != "main" {
		t.Errorf("options = %+v", o)
	}
	if !reflect.DeepEqual(o.inputs, []string{"a.png", "b.mp4"}) {
		t.Errorf("inputs = %v", o.inputs)
	}

	if _, err := parseOptions([]string{"-u", "x"}, "-o "); err == nil {
		t.Error("expected error for option not allowed by the command")
	}
	if _, err := parseOptions([]string{"-o"}, "-o "); err == nil {
		t.Error("expected error for missing argument")
	}
	if _, err := parseOptions([]string{"-url", "http://h"}, "-u "); err == nil {
		t.Error("-url must not match the -u prefix")
	}
}

func TestLoadResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	body := `results:
  - file_name: obra.jpg
    analysis:
      description: Dois trabalhadores com capacete.
      confidence: 94
      details: [Capacete, Botas]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := loadResults(path)
	if err != nil {
		t.Fatalf("loadResults: %v", err)
	}
	if len(got) != 1 || got[0].FileName != "obra.jpg" {
		t.Fatalf("results = %+v", got)
	}
	if got[0].Analysis.Confidence != 94 || len(got[0].Analysis.Details) != 2 {
		t.Errorf("analysis = %+v", got[0].Analysis)
	}
}

type recordingCapturer struct{ got *mediareport.Region }

func (r *recordingCapturer) CaptureRegion(_ context.Context, region *mediareport.Region) (*mediareport.Raster, error) {
	r.got = region
	return nil, mediareport.ErrCapture
}

func TestSelectorOverride(t *testing.T) {
	rec := &recordingCapturer{}
	region := &mediareport.Region{HTML: "<main></main>", Selector: mediareport.DefaultSelector}

	_, _ = selectorOverride{RegionCapturer: rec, selector: "main"}.CaptureRegion(context.Background(), region)
	if rec.got.Selector != "main" {
		t.Errorf("captured selector %q, want main", rec.got.Selector)
	}
	if region.Selector != mediareport.DefaultSelector {
		t.Error("override modified the caller's region")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Errorf("firstNonEmpty = %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Errorf("firstNonEmpty() = %q", got)
	}
}
