package mediareport

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Relatório de Análise de Mídia</title>
<style>
  * { box-sizing: border-box; }
  body { margin: 0; font-family: system-ui, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; color: #111827; background: #ffffff; }
  #report-content { background: #ffffff; padding: 32px; }
  .header { text-align: center; border-bottom: 1px solid #e5e7eb; padding-bottom: 24px; margin-bottom: 32px; }
  .header h1 { font-size: 30px; margin: 0 0 8px; }
  .muted { color: #4b5563; }
  h2 { font-size: 20px; margin: 0 0 16px; }
  .stats { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; margin-bottom: 32px; }
  .stat { padding: 16px; border-radius: 8px; }
  .stat .value { font-size: 24px; font-weight: 700; }
  .stat .label { font-size: 14px; color: #4b5563; }
  .blue { background: #eff6ff; } .blue .value { color: #2563eb; }
  .green { background: #f0fdf4; } .green .value { color: #16a34a; }
  .purple { background: #faf5ff; } .purple .value { color: #9333ea; }
  .result { border: 1px solid #e5e7eb; border-left: 4px solid #3b82f6; border-radius: 8px; padding: 24px; margin-bottom: 24px; }
  .result-head { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 16px; }
  .result h3 { font-size: 18px; margin: 0; }
  .badge { display: inline-block; border: 1px solid #d1d5db; border-radius: 9999px; padding: 2px 10px; font-size: 12px; margin: 4px 4px 0 0; }
  .confidence { color: #16a34a; font-size: 14px; font-weight: 500; }
  h4 { margin: 0 0 8px; font-size: 15px; }
  ul { margin: 0 0 16px; padding-left: 18px; font-size: 14px; color: #4b5563; }
  .processed { font-size: 12px; color: #6b7280; border-top: 1px solid #e5e7eb; padding-top: 12px; }
  .footer { margin-top: 32px; padding-top: 24px; border-top: 1px solid #e5e7eb; text-align: center; font-size: 14px; color: #6b7280; }
</style>
</head>
<body>
<div id="report-content">
  <div class="header">
    <h1>Relatório de Análise de Mídia</h1>
    <p class="muted">Relatório gerado em {{.GeneratedAt}}</p>
  </div>

  <h2>Resumo Executivo</h2>
  <div class="stats">
    <div class="stat blue"><div class="value">{{.Summary.TotalFiles}}</div><div class="label">Arquivos Analisados</div></div>
    <div class="stat green"><div class="value">{{pct .Summary.AvgConfidence}}%</div><div class="label">Confiança Média</div></div>
    <div class="stat purple"><div class="value">{{.Summary.HighConfidence}}</div><div class="label">Alta Confiança</div></div>
  </div>

  <h2>Análise Detalhada</h2>
  {{range $i, $r := .Results}}
  <div class="result" data-index="{{inc $i}}">
    <div class="result-head">
      <div>
        <h3>{{$r.FileName}}</h3>
        <span class="badge">{{$r.FileType}}</span><span class="badge">{{$r.FileSize}}</span>
        {{- if $r.Dimensions}}<span class="badge">{{$r.Dimensions}}</span>{{end}}
        {{- if $r.Duration}}<span class="badge">{{$r.Duration}}</span>{{end}}
      </div>
      <span class="confidence">&#10003; {{pct $r.Analysis.Confidence}}% confiança</span>
    </div>
    <h4>Descrição da Análise</h4>
    <p>{{$r.Analysis.Description}}</p>
    <h4>Detalhes Técnicos</h4>
    <ul>{{range $r.Analysis.Details}}<li>{{.}}</li>{{end}}</ul>
    <div class="processed">Processado em: {{$r.Timestamp}}</div>
  </div>
  {{end}}

  <div class="footer">
    <p>Relatório gerado automaticamente pelo Sistema de Análise de Mídia</p>
    <p>&copy; {{.Year}} - Todos os direitos reservados</p>
    <p>ID {{.ReportID}}</p>
  </div>
</div>
</body>
</html>
`))

type reportView struct {
	GeneratedAt string
	Year        int
	ReportID    string
	Summary     Summary
	Results     []AnalysisResult
}

// RenderRegion renders the analysis results into an HTML page whose
// [DefaultSelector] element holds the report header, the executive summary,
// one section per result and the footer. reportID is printed in the footer
// and may be empty.
func RenderRegion(results []AnalysisResult, now time.Time, reportID string) (*Region, error) {
	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, reportView{
		GeneratedAt: FormatLocaleTimestamp(now),
		Year:        now.Year(),
		ReportID:    reportID,
		Summary:     Summarize(results),
		Results:     results,
	})
	if err != nil {
		return nil, fmt.Errorf("mediareport: rendering report region: %w", err)
	}
	return &Region{HTML: buf.String(), Selector: DefaultSelector}, nil
}
