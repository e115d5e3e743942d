// Scour is a CLI that scans source trees for security issues with an
// LLM backend.
//
// It walks a directory, submits every supported source file to the
// configured chat-completions endpoint in fixed-size chunks, and emits a
// structured findings report with deterministic exit codes suitable for
// CI gating.
//
// Usage:
//
//	scour scan                    # scan the current directory
//	scour scan ./src --format json --out report.json
//	scour scan --fail-on high     # nonzero exit on high findings
//	scour config init             # write a default config file
//	scour cache clear             # drop cached responses
//
// See https://github.com/scour-dev/scour for full documentation.
package main
