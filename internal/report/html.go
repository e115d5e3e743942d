package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/scour-dev/scour/internal/scan"
)

// HTMLWriter renders a standalone HTML report page.
type HTMLWriter struct{}

type htmlFinding struct {
	Severity    string
	Class       string
	Description string
	Location    string
}

type htmlFile struct {
	Path     string
	Findings []htmlFinding
}

type htmlData struct {
	Root        string
	GeneratedAt string
	Version     string
	RunID       string
	Total       int
	FileCount   int
	Counts      scan.SeverityCounts
	Files       []htmlFile
}

const htmlTemplateStr = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Scour Security Report</title>
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f0f2f5; color: #333; margin: 0; padding: 20px; }
        .container { max-width: 1100px; margin: 0 auto; }

        .report-header { background: white; padding: 20px 30px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.05); margin-bottom: 20px; border-left: 5px solid #d32f2f; }
        .report-header h1 { margin: 0; color: #2c3e50; font-size: 24px; }
        .meta { color: #7f8c8d; font-size: 14px; margin-top: 5px; }

        .summary { display: flex; gap: 12px; margin-bottom: 30px; flex-wrap: wrap; }
        .count-card { background: white; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.05); padding: 12px 20px; min-width: 90px; text-align: center; }
        .count-card .num { font-size: 26px; font-weight: bold; }
        .count-card .label { font-size: 12px; color: #7f8c8d; text-transform: uppercase; }
        .count-critical .num { color: #b71c1c; }
        .count-high .num { color: #d32f2f; }
        .count-medium .num { color: #f9a825; }
        .count-low .num { color: #607d8b; }
        .count-info .num { color: #1976d2; }

        .file-card { background: white; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.05); margin-bottom: 25px; overflow: hidden; }
        .file-title { background: #2c3e50; color: white; padding: 12px 20px; font-weight: bold; font-family: 'JetBrains Mono', Consolas, monospace; display: flex; justify-content: space-between; }
        .file-body { padding: 15px 20px; }

        .finding { border-left: 4px solid #e0e0e0; padding: 8px 14px; margin-bottom: 12px; background: #fafafa; border-radius: 0 4px 4px 0; }
        .finding-critical { border-left-color: #b71c1c; }
        .finding-high { border-left-color: #d32f2f; }
        .finding-medium { border-left-color: #f9a825; }
        .finding-low { border-left-color: #607d8b; }
        .finding-info { border-left-color: #1976d2; }

        .tag { padding: 2px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; margin-right: 10px; color: white; }
        .tag-critical { background: #b71c1c; }
        .tag-high { background: #d32f2f; }
        .tag-medium { background: #f9a825; }
        .tag-low { background: #607d8b; }
        .tag-info { background: #1976d2; }

        .loc { font-size: 13px; color: #7f8c8d; font-family: monospace; margin-left: 6px; }
        .desc { margin-top: 6px; font-size: 14px; color: #444; }

        .clean { background: white; border-radius: 8px; padding: 30px; text-align: center; color: #2e7d32; font-size: 18px; box-shadow: 0 2px 4px rgba(0,0,0,0.05); }
        .footer { color: #7f8c8d; font-size: 12px; text-align: center; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="report-header">
            <h1>Scour Security Report</h1>
            <div class="meta">Scanned: <strong>{{.Root}}</strong> | Generated at: {{.GeneratedAt}} | Files analyzed: <strong>{{.FileCount}}</strong></div>
        </div>

        <div class="summary">
            <div class="count-card count-critical"><div class="num">{{.Counts.Critical}}</div><div class="label">Critical</div></div>
            <div class="count-card count-high"><div class="num">{{.Counts.High}}</div><div class="label">High</div></div>
            <div class="count-card count-medium"><div class="num">{{.Counts.Medium}}</div><div class="label">Medium</div></div>
            <div class="count-card count-low"><div class="num">{{.Counts.Low}}</div><div class="label">Low</div></div>
            <div class="count-card count-info"><div class="num">{{.Counts.Info}}</div><div class="label">Info</div></div>
        </div>

        {{if eq .Total 0}}
        <div class="clean">No issues found. Looks good!</div>
        {{end}}

        {{range .Files}}
        <div class="file-card">
            <div class="file-title">
                <span>{{.Path}}</span>
                <span style="font-size: 0.85em; opacity: 0.8;">{{len .Findings}} finding(s)</span>
            </div>
            <div class="file-body">
                {{range .Findings}}
                <div class="finding finding-{{.Class}}">
                    <span class="tag tag-{{.Class}}">{{.Severity}}</span><span class="loc">{{.Location}}</span>
                    <div class="desc">{{.Description}}</div>
                </div>
                {{end}}
            </div>
        </div>
        {{end}}

        <div class="footer">scour {{.Version}} | run {{.RunID}}</div>
    </div>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateStr))

func (h *HTMLWriter) Write(w io.Writer, report *Report) error {
	data := htmlData{
		Root:        report.Root,
		GeneratedAt: report.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		Version:     report.Version,
		RunID:       report.RunID,
		Total:       report.TotalFindings(),
		FileCount:   len(report.Files),
		Counts:      report.Summary.Counts,
	}

	for _, fr := range report.Files {
		if len(fr.Findings) == 0 {
			continue
		}
		hf := htmlFile{Path: fr.Path}
		for _, f := range fr.Findings {
			loc := ""
			if f.Line != nil {
				loc = fmt.Sprintf("line %d", *f.Line)
			}
			hf.Findings = append(hf.Findings, htmlFinding{
				Severity:    string(f.Severity),
				Class:       severityClass(f.Severity),
				Description: f.Description,
				Location:    loc,
			})
		}
		data.Files = append(data.Files, hf)
	}

	if err := htmlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}
	return nil
}

func severityClass(s scan.Severity) string {
	switch s {
	case scan.SeverityCritical, scan.SeverityHigh, scan.SeverityMedium, scan.SeverityLow, scan.SeverityInfo:
		return strings.ToLower(string(s))
	default:
		return "info"
	}
}
