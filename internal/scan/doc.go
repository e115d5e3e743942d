// Package scan contains the core analysis pipeline.
//
// It defines the Finding and FileReport types, rotates a fixed credential
// pool round-robin across files, splits file content into fixed-width
// character windows, submits each window through a rate-limited,
// retry-wrapped completion call, and tolerantly parses the structured
// JSON findings out of the response.
//
// The pipeline never aborts mid-traversal because of one file or chunk:
// read failures skip the file, malformed responses parse to zero
// findings, and exhausted retries degrade into an INFO finding carrying
// the error text.
package scan
