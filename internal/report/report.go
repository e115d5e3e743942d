package report

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/scour-dev/scour/internal/scan"
)

// Timing contains performance metrics.
type Timing struct {
	ScanMs  int64 `json:"scanMs"`
	TotalMs int64 `json:"totalMs"`
}

// Report is the top-level output structure.
type Report struct {
	Tool        string            `json:"tool"`
	Version     string            `json:"version"`
	RunID       string            `json:"runId"`
	Root        string            `json:"root"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Summary     scan.Summary      `json:"summary"`
	Files       []scan.FileReport `json:"files"`
	Timing      Timing            `json:"timing"`
}

// TotalFindings returns the finding count across all files.
func (r *Report) TotalFindings() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Findings)
	}
	return n
}

// Collector accumulates per-file summaries during a scan. It is safe for
// concurrent use, so it can be handed directly to a multi-worker engine.
type Collector struct {
	mu    sync.Mutex
	files []scan.FileReport
	start time.Time
}

// NewCollector returns a collector whose timing clock starts now.
func NewCollector() *Collector {
	return &Collector{start: time.Now()}
}

// AddFileSummary records the findings for one analyzed file.
func (c *Collector) AddFileSummary(path string, findings []scan.Finding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if findings == nil {
		findings = []scan.Finding{}
	}
	c.files = append(c.files, scan.FileReport{Path: path, Findings: findings})
}

// Build assembles the final report. Files are sorted by path so the
// output is stable regardless of worker interleaving.
func (c *Collector) Build(root, version string) *Report {
	c.mu.Lock()
	files := make([]scan.FileReport, len(c.files))
	copy(files, c.files)
	c.mu.Unlock()

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	elapsed := time.Since(c.start).Milliseconds()
	return &Report{
		Tool:        "scour",
		Version:     version,
		RunID:       generateRunID(),
		Root:        root,
		GeneratedAt: time.Now().UTC(),
		Summary:     scan.ComputeSummary(files),
		Files:       files,
		Timing:      Timing{ScanMs: elapsed, TotalMs: elapsed},
	}
}

func generateRunID() string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%d", time.Now().UnixNano())))
	return fmt.Sprintf("%x", h[:16])
}
