package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/scour-dev/scour/internal/scan"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	total := report.TotalFindings()
	ew.printf("Scour Security Scan — %s\n", report.Root)
	ew.printf("Files analyzed: %d\n", len(report.Files))
	ew.println(strings.Repeat("─", 60))
	ew.printf("Findings: %d total", total)
	if total > 0 {
		ew.printf(" (%d critical, %d high, %d medium, %d low, %d info)",
			report.Summary.Counts.Critical,
			report.Summary.Counts.High,
			report.Summary.Counts.Medium,
			report.Summary.Counts.Low,
			report.Summary.Counts.Info,
		)
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))

	if total == 0 {
		ew.println("\nNo issues found. Looks good!")
		return ew.err
	}

	for _, fr := range report.Files {
		if len(fr.Findings) == 0 {
			continue
		}
		ew.printf("\n%s\n", fr.Path)
		ew.println(strings.Repeat("─", 40))
		for _, f := range fr.Findings {
			loc := ""
			if f.Line != nil {
				loc = fmt.Sprintf(" (line %d)", *f.Line)
			}
			ew.printf("  %s %s%s\n", severityIcon(f.Severity), f.Severity, loc)
			for _, line := range wrapText(f.Description, 70) {
				ew.printf("    %s\n", line)
			}
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Completed in %dms\n", report.Timing.TotalMs)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func severityIcon(s scan.Severity) string {
	switch s {
	case scan.SeverityCritical:
		return "[!!!]"
	case scan.SeverityHigh:
		return "[!!]"
	case scan.SeverityMedium:
		return "[!]"
	case scan.SeverityLow:
		return "[-]"
	case scan.SeverityInfo:
		return "[i]"
	default:
		return "[?]"
	}
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
