// Package cache provides a file-based TTL cache for completion responses,
// keyed on model and chunk content. Scanning the same tree twice should
// not pay for the same chunks twice.
package cache
