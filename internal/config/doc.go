// Package config loads and merges scour configuration.
//
// The effective config is built in four layers: compiled defaults, the JSON
// config file under the platform config directory, SCOUR_* environment
// variables, and CLI flag overrides. Later layers win. The token pool is
// the one mandatory setting; an empty pool fails Validate because nothing
// can be dispatched without a credential.
package config
