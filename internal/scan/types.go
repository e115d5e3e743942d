package scan

import "strings"

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
// Unknown severities rank below INFO: the parser passes model output
// through unvalidated, so arbitrary strings can reach here.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// MeetsThreshold returns true if severity is at or above the threshold.
// The threshold is matched case-insensitively; "none" or "" never match.
func MeetsThreshold(s Severity, threshold string) bool {
	if threshold == "" || strings.EqualFold(threshold, "none") {
		return false
	}
	rank := SeverityRank(Severity(strings.ToUpper(threshold)))
	if rank == 0 {
		return false
	}
	return SeverityRank(s) >= rank
}

// Finding is one issue reported by the model for a chunk. Line is relative
// to the chunk the finding came from, not the whole file; nil when the
// model gave no line. Severity and Line are unvalidated passthrough.
type Finding struct {
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Line        *int     `json:"line,omitempty"`
}

// FileReport holds all findings for one analyzed file, in chunk order.
// Every eligible readable file produces exactly one FileReport, even when
// the findings list is empty.
type FileReport struct {
	Path     string    `json:"path"`
	Findings []Finding `json:"findings"`
}

// SeverityCounts holds counts by severity level.
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
}

// Summary provides an overview of findings across all files.
type Summary struct {
	Counts          SeverityCounts `json:"counts"`
	HighestSeverity Severity       `json:"highestSeverity,omitempty"`
}

// ComputeSummary calculates the summary from file reports.
func ComputeSummary(files []FileReport) Summary {
	var s Summary
	for _, fr := range files {
		for _, f := range fr.Findings {
			switch f.Severity {
			case SeverityCritical:
				s.Counts.Critical++
			case SeverityHigh:
				s.Counts.High++
			case SeverityMedium:
				s.Counts.Medium++
			case SeverityLow:
				s.Counts.Low++
			case SeverityInfo:
				s.Counts.Info++
			}
			if SeverityRank(f.Severity) > SeverityRank(s.HighestSeverity) {
				s.HighestSeverity = f.Severity
			}
		}
	}
	return s
}
