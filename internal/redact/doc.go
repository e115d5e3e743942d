// Package redact scrubs credential-looking strings from source content
// before it is uploaded for analysis. Heuristic, not exhaustive: the goal
// is to keep obvious live secrets out of third-party request logs, not to
// be a secret scanner.
package redact
