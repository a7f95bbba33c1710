// Package mediareport builds PDF reports about user-supplied media files
// and submits single files to a remote detection endpoint.
//
// # Structured reports
//
// A structured report is drawn from file metadata alone:
//
//	files := mediareport.FilterMedia(candidates) // images and videos only
//	doc := mediareport.BuildStructuredReport(files, time.Now())
//	res, err := doc.Render()
//	path, err := res.Save(".") // relatorio-midia-2026-10-18.pdf
//
// # Rendered reports
//
// A rendered report rasterizes an HTML summary with headless Chrome and
// spreads the snapshot across A4 pages:
//
//	c, err := mediareport.NewCapturer(mediareport.WithNoSandbox())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	results := []mediareport.AnalysisResult{mediareport.DescribeFile(f, time.Now())}
//	doc, err := mediareport.GenerateRenderedReport(ctx, c, results, mediareport.DefaultLayout())
//
// Any [RegionCapturer] can stand in for the browser. Pagination itself is
// exposed as [ComputePageOffsets].
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload]:
//
//	c, err := mediareport.NewCapturer(mediareport.WithAutoDownload())
//
// # Uploads
//
//	client := mediareport.NewClient("http://localhost:5000")
//	outcome, err := client.Upload(ctx, &file, "Maria")
//	if err != nil {
//	    fmt.Println(mediareport.NoticeFor(err))
//	}
//
// Failures are [*Error] values; compare them with [errors.Is] against
// [ErrServer], [ErrCapture] and the other sentinels.
package mediareport
