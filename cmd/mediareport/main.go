// mediareport builds PDF reports about image and video files and submits
// single files to a detection endpoint.
//
// Usage:
//
//	mediareport [-c config.yaml] structured [-o dir] <files...>
//	mediareport [-c config.yaml] rendered [-o dir] [-r results.yaml] [-s selector] <files...>
//	mediareport [-c config.yaml] upload [-u user] [-url base] [-o dir] <file>
//	mediareport info [-p range] <file.pdf>
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	mediareport "github.com/porticus-lab/go-media-report"
	"github.com/porticus-lab/go-media-report/internal/config"
	"github.com/porticus-lab/go-media-report/internal/inspect"
)

func main() {
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("mediareport: ")

	args := os.Args[1:]
	var configPath string
	if len(args) >= 2 && args[0] == "-c" {
		configPath = args[1]
		args = args[2:]
	}
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch args[0] {
	case "structured":
		err = withConfig(configPath, func(cfg *config.Config) error { return runStructured(cfg, args[1:]) })
	case "rendered":
		err = withConfig(configPath, func(cfg *config.Config) error { return runRendered(ctx, cfg, args[1:]) })
	case "upload":
		err = withConfig(configPath, func(cfg *config.Config) error { return runUpload(ctx, cfg, args[1:]) })
	case "info":
		err = runInfo(args[1:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		report(err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`mediareport - media file reports

Usage:
  mediareport [-c config.yaml] <command> [options] <files...>

Commands:
  structured   Text report listing the image and video files given
  rendered     Visual report captured from a headless browser
  upload       Send one PDF or image to the detection endpoint
  info         Show page count and text of a PDF

Options:
  -o <dir>        Output directory (default: config output.dir)
  -r <file>       YAML file with recorded analysis results (rendered)
  -s <selector>   CSS selector of the captured region (rendered)
  -u <name>       Username sent with the upload
  -url <base>     Detection endpoint base URL
  -p <range>      Page range for info, e.g. "1", "1-3", "1,3"

Environment:
  MEDIAREPORT_BACKEND_URL, MEDIAREPORT_USERNAME, MEDIAREPORT_OUTPUT_DIR,
  MEDIAREPORT_CHROME_PATH, MEDIAREPORT_NO_SANDBOX, MEDIAREPORT_AUTO_DOWNLOAD,
  MEDIAREPORT_SELECTOR, MEDIAREPORT_UPLOAD_TIMEOUT, MEDIAREPORT_CAPTURE_TIMEOUT
`)
}

func withConfig(path string, fn func(*config.Config) error) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	return fn(cfg)
}

// report prints err as the notice a user would see, plus the raw error.
func report(err error) {
	if mediareport.KindOf(err) == mediareport.KindUnknown {
		log.Printf("error: %v", err)
		return
	}
	n := mediareport.NoticeFor(err)
	fmt.Fprintf(os.Stderr, "%s\n", n)
	log.Printf("detail: %v", err)
}

// options holds the flags shared by the subcommands.
type options struct {
	outDir    string
	results   string
	selector  string
	username  string
	baseURL   string
	pageRange string
	inputs    []string
}

func parseOptions(args []string, allowed string) (options, error) {
	var o options
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			o.inputs = append(o.inputs, a)
			continue
		}
		if !strings.Contains(allowed, a+" ") {
			return o, fmt.Errorf("unknown option: %s", a)
		}
		i++
		if i >= len(args) {
			return o, fmt.Errorf("%s requires an argument", a)
		}
		switch a {
		case "-o":
			o.outDir = args[i]
		case "-r":
			o.results = args[i]
		case "-s":
			o.selector = args[i]
		case "-u":
			o.username = args[i]
		case "-url":
			o.baseURL = args[i]
		case "-p":
			o.pageRange = args[i]
		}
	}
	return o, nil
}

func loadFiles(paths []string) ([]mediareport.UploadedFile, error) {
	files := make([]mediareport.UploadedFile, 0, len(paths))
	for _, p := range paths {
		f, err := mediareport.FileFromPath(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// runStructured implements the "structured" command.
func runStructured(cfg *config.Config, args []string) error {
	o, err := parseOptions(args, "-o ")
	if err != nil {
		return err
	}
	files, err := loadFiles(o.inputs)
	if err != nil {
		return err
	}

	var s mediareport.Session
	if n := s.Add(files...); n < len(files) {
		log.Printf("skipped %d file(s) that are neither image nor video", len(files)-n)
	}
	pending, err := s.Begin()
	if err != nil {
		return err
	}
	defer s.End()

	doc := mediareport.BuildStructuredReport(pending, time.Now())
	res, err := doc.Render()
	if err != nil {
		return err
	}
	return save(res, firstNonEmpty(o.outDir, cfg.Output.Dir), len(doc.Pages))
}

// runRendered implements the "rendered" command.
func runRendered(ctx context.Context, cfg *config.Config, args []string) error {
	o, err := parseOptions(args, "-o -r -s ")
	if err != nil {
		return err
	}
	files, err := loadFiles(o.inputs)
	if err != nil {
		return err
	}
	files = mediareport.FilterMedia(files)
	if len(files) == 0 {
		return fmt.Errorf("no image or video files given")
	}

	now := time.Now()
	results := make([]mediareport.AnalysisResult, len(files))
	for i, f := range files {
		results[i] = mediareport.DescribeFile(f, now)
	}
	if o.results != "" {
		recorded, err := loadResults(o.results)
		if err != nil {
			return err
		}
		results = mediareport.MergeResults(results, recorded)
	}

	opts := []mediareport.Option{
		mediareport.WithTimeout(cfg.Capture.Timeout),
		mediareport.WithScale(cfg.Capture.Scale),
	}
	if cfg.Capture.ChromePath != "" {
		opts = append(opts, mediareport.WithChromePath(cfg.Capture.ChromePath))
	}
	if cfg.Capture.NoSandbox {
		opts = append(opts, mediareport.WithNoSandbox())
	}
	if cfg.Capture.AutoDownload {
		opts = append(opts, mediareport.WithAutoDownload())
	}
	capturer, err := mediareport.NewCapturer(opts...)
	if err != nil {
		return &mediareport.Error{Kind: mediareport.KindCapture, Op: "capture", Message: "starting browser", Err: err}
	}
	defer capturer.Close()

	selector := firstNonEmpty(o.selector, cfg.Capture.Selector)
	capture := selectorOverride{RegionCapturer: capturer, selector: selector}

	log.Printf("capturing %s for %d file(s)", selector, len(files))
	doc, err := mediareport.GenerateRenderedReport(ctx, capture, results, mediareport.DefaultLayout())
	if err != nil {
		return err
	}
	res, err := doc.Render()
	if err != nil {
		return err
	}
	return save(res, firstNonEmpty(o.outDir, cfg.Output.Dir), len(doc.Pages))
}

// selectorOverride captures a configured selector instead of the region's
// own.
type selectorOverride struct {
	mediareport.RegionCapturer
	selector string
}

func (s selectorOverride) CaptureRegion(ctx context.Context, r *mediareport.Region) (*mediareport.Raster, error) {
	if r != nil && s.selector != "" {
		cp := *r
		cp.Selector = s.selector
		r = &cp
	}
	return s.RegionCapturer.CaptureRegion(ctx, r)
}

func loadResults(path string) ([]mediareport.AnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	var doc struct {
		Results []mediareport.AnalysisResult `yaml:"results"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing results %s: %w", path, err)
	}
	return doc.Results, nil
}

// runUpload implements the "upload" command.
func runUpload(ctx context.Context, cfg *config.Config, args []string) error {
	o, err := parseOptions(args, "-o -u -url ")
	if err != nil {
		return err
	}

	var file *mediareport.UploadedFile
	if len(o.inputs) > 0 {
		f, err := mediareport.FileFromPath(o.inputs[0])
		if err != nil {
			return err
		}
		if err := mediareport.AcceptSingle(f); err != nil {
			return err
		}
		fmt.Println(mediareport.NoticeForSelection(f))
		file = &f
	}

	client := mediareport.NewClient(
		firstNonEmpty(o.baseURL, cfg.Backend.URL),
		mediareport.WithUploadTimeout(cfg.Backend.Timeout),
	)
	outcome, err := client.Upload(ctx, file, firstNonEmpty(o.username, cfg.Backend.Username))
	if err != nil {
		return err
	}
	if outcome.IsReport() {
		path, err := outcome.Report.Save(firstNonEmpty(o.outDir, cfg.Output.Dir))
		if err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		log.Printf("saved %s (%d bytes)", path, outcome.Report.Len())
	}
	fmt.Println(mediareport.NoticeForOutcome(outcome))
	return nil
}

func save(res *mediareport.Result, dir string, pages int) error {
	path, err := res.Save(dir)
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	log.Printf("saved %s (%d page(s), %d bytes)", path, pages, res.Len())
	return nil
}

// runInfo implements the "info" command.
func runInfo(args []string) error {
	o, err := parseOptions(args, "-p ")
	if err != nil {
		return err
	}
	if len(o.inputs) == 0 {
		return fmt.Errorf("no input file specified")
	}
	inputFile := o.inputs[0]

	info, err := inspect.Open(inputFile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputFile, err)
	}
	pageIndices, err := parsePageRange(o.pageRange, info.Pages)
	if err != nil {
		return fmt.Errorf("invalid page range %q: %w", o.pageRange, err)
	}

	fmt.Printf("File:  %s\n", inputFile)
	fmt.Printf("Pages: %d\n", info.Pages)
	for _, idx := range pageIndices {
		fmt.Printf("\n## Page %d\n\n%s\n", idx+1, info.Text[idx])
	}
	return nil
}

// parsePageRange converts a page range string to a slice of 0-based page indices.
// Supported formats: "" (all), "3" (single page), "1-5" (range), "1,3,5" (list).
func parsePageRange(spec string, total int) ([]int, error) {
	if spec == "" {
		indices := make([]int, total)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	var indices []int
	seen := make(map[int]bool)
	add := func(p int) {
		if !seen[p] {
			indices = append(indices, p-1)
			seen[p] = true
		}
	}

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid page number: %s", lo)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid page number: %s", hi)
			}
		}
		if start < 1 || end > total || start > end {
			return nil, fmt.Errorf("page range %d-%d out of bounds (1-%d)", start, end, total)
		}
		for p := start; p <= end; p++ {
			add(p)
		}
	}
	return indices, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
