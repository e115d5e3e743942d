// Package cli wires together the Cobra command tree for the scour binary.
//
// It defines the root command and all subcommands (scan, config, cache,
// version), binds flags, reads configuration, runs the scan engine, and
// returns deterministic exit codes for CI gating.
package cli
