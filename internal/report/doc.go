// Package report collects per-file scan results and renders them in
// text, JSON, markdown, and HTML formats.
package report
