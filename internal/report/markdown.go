package report

import (
	"fmt"
	"io"

	"github.com/scour-dev/scour/internal/scan"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *Report) error {
	total := report.TotalFindings()

	fmt.Fprintf(w, "## Scour Security Scan\n\n")
	fmt.Fprintf(w, "Scanned `%s` — %d files analyzed.\n\n", report.Root, len(report.Files))

	fmt.Fprintf(w, "| Severity | Count |\n")
	fmt.Fprintf(w, "|----------|-------|\n")
	fmt.Fprintf(w, "| Critical | %d    |\n", report.Summary.Counts.Critical)
	fmt.Fprintf(w, "| High     | %d    |\n", report.Summary.Counts.High)
	fmt.Fprintf(w, "| Medium   | %d    |\n", report.Summary.Counts.Medium)
	fmt.Fprintf(w, "| Low      | %d    |\n", report.Summary.Counts.Low)
	fmt.Fprintf(w, "| Info     | %d    |\n", report.Summary.Counts.Info)
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", total)

	if total == 0 {
		fmt.Fprintln(w, "No issues found. :white_check_mark:")
		return nil
	}

	for _, fr := range report.Files {
		if len(fr.Findings) == 0 {
			continue
		}

		fmt.Fprintf(w, "<details>\n<summary><code>%s</code> (%d)</summary>\n\n", fr.Path, len(fr.Findings))
		for _, f := range fr.Findings {
			loc := ""
			if f.Line != nil {
				loc = fmt.Sprintf(" (line %d)", *f.Line)
			}
			fmt.Fprintf(w, "- %s **%s**%s: %s\n", mdSeverityIcon(f.Severity), f.Severity, loc, f.Description)
		}
		fmt.Fprintf(w, "\n</details>\n\n")
	}

	fmt.Fprintf(w, "---\n*Generated by scour %s (run %s)*\n", report.Version, report.RunID)
	return nil
}

func mdSeverityIcon(s scan.Severity) string {
	switch s {
	case scan.SeverityCritical:
		return ":rotating_light:"
	case scan.SeverityHigh:
		return ":red_circle:"
	case scan.SeverityMedium:
		return ":yellow_circle:"
	case scan.SeverityLow:
		return ":white_circle:"
	case scan.SeverityInfo:
		return ":information_source:"
	default:
		return ":grey_question:"
	}
}
