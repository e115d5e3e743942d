package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Config represents the scour configuration.
type Config struct {
	Backend     string        `json:"backend"`
	Tokens      []string      `json:"tokens,omitempty"`
	Extensions  []string      `json:"extensions"`
	ChunkSize   int           `json:"chunkSize"`
	MaxTokens   int           `json:"maxTokens"`
	Temperature float64       `json:"temperature"`
	Workers     int           `json:"workers"`
	Format      string        `json:"format"`
	FailOn      string        `json:"failOn"`
	LogFile     string        `json:"logFile"`
	ProfileFile string        `json:"profileFile,omitempty"`
	Rate        RateConfig    `json:"rate"`
	Retry       RetryConfig   `json:"retry"`
	Cache       CacheConfig   `json:"cache"`
	Privacy     PrivacyConfig `json:"privacy"`
}

// RateConfig bounds outbound request rate.
type RateConfig struct {
	Calls    int `json:"calls"`
	PeriodMs int `json:"periodMs"`
}

// RetryConfig controls retry-with-backoff on transient failures.
type RetryConfig struct {
	Tries   int     `json:"tries"`
	DelayMs int     `json:"delayMs"`
	Backoff float64 `json:"backoff"`
}

// CacheConfig controls response caching. Enabled is a pointer so a config
// file setting it to false is distinguishable from not setting it at all.
type CacheConfig struct {
	Enabled    *bool  `json:"enabled,omitempty"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// IsEnabled reports the effective cache switch; unset means enabled.
func (c CacheConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// PrivacyConfig controls secret redaction before upload.
type PrivacyConfig struct {
	RedactSecrets *bool `json:"redactSecrets,omitempty"`
}

// RedactEnabled reports the effective redaction switch; unset means on.
func (p PrivacyConfig) RedactEnabled() bool {
	return p.RedactSecrets == nil || *p.RedactSecrets
}

func boolPtr(b bool) *bool { return &b }

// ErrNoTokens is returned when no API token is configured. Nothing can be
// dispatched without at least one credential, so this is fatal at startup.
var ErrNoTokens = errors.New("no API tokens configured (set tokens in config or SCOUR_TOKENS)")

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Backend:     "groq",
		Extensions:  []string{".py", ".js", ".java", ".cpp", ".c", ".cs", ".ts", ".php"},
		ChunkSize:   5000,
		MaxTokens:   512,
		Temperature: 0.1,
		Workers:     1,
		Format:      "html",
		FailOn:      "none",
		LogFile:     "scour.log",
		Rate:        RateConfig{Calls: 5, PeriodMs: 1000},
		Retry:       RetryConfig{Tries: 3, DelayMs: 1000, Backoff: 2},
		Cache: CacheConfig{
			Enabled:    boolPtr(true),
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{RedactSecrets: boolPtr(true)},
	}
}

// Validate checks the effective config for fatal problems.
func (c Config) Validate() error {
	if len(c.Tokens) == 0 {
		return ErrNoTokens
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunkSize must be positive, got %d", c.ChunkSize)
	}
	if c.Rate.Calls <= 0 || c.Rate.PeriodMs <= 0 {
		return fmt.Errorf("rate bound must be positive, got %d per %dms", c.Rate.Calls, c.Rate.PeriodMs)
	}
	return nil
}

// ConfigDir returns the platform-appropriate config directory for scour.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scour"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "scour"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "scour"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "scour"), nil
	default:
		return filepath.Join(home, ".config", "scour"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Backend != "" {
		dst.Backend = src.Backend
	}
	if len(src.Tokens) > 0 {
		dst.Tokens = src.Tokens
	}
	if len(src.Extensions) > 0 {
		dst.Extensions = src.Extensions
	}
	if src.ChunkSize > 0 {
		dst.ChunkSize = src.ChunkSize
	}
	if src.MaxTokens > 0 {
		dst.MaxTokens = src.MaxTokens
	}
	if src.Temperature > 0 {
		dst.Temperature = src.Temperature
	}
	if src.Workers > 0 {
		dst.Workers = src.Workers
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.FailOn != "" {
		dst.FailOn = src.FailOn
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
	if src.ProfileFile != "" {
		dst.ProfileFile = src.ProfileFile
	}
	if src.Rate.Calls > 0 {
		dst.Rate.Calls = src.Rate.Calls
	}
	if src.Rate.PeriodMs > 0 {
		dst.Rate.PeriodMs = src.Rate.PeriodMs
	}
	if src.Retry.Tries > 0 {
		dst.Retry.Tries = src.Retry.Tries
	}
	if src.Retry.DelayMs > 0 {
		dst.Retry.DelayMs = src.Retry.DelayMs
	}
	if src.Retry.Backoff > 0 {
		dst.Retry.Backoff = src.Retry.Backoff
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Privacy.RedactSecrets != nil {
		dst.Privacy.RedactSecrets = src.Privacy.RedactSecrets
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("SCOUR_TOKENS"); v != "" {
		cfg.Tokens = splitTokens(v)
	}
	if v := os.Getenv("SCOUR_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("SCOUR_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("SCOUR_FAIL_ON"); v != "" {
		cfg.FailOn = v
	}
	if v := os.Getenv("SCOUR_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("SCOUR_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ChunkSize = n
		}
	}
	if v := os.Getenv("SCOUR_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	for key, v := range overrides {
		if v == "" {
			continue
		}
		// Best effort: unknown keys from flags are a programming error and
		// surface immediately in tests.
		if err := SetField(cfg, key, v); err != nil {
			continue
		}
	}
}

// SetField sets a single config field by key name. Returns an error if the
// key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "backend":
		cfg.Backend = value
	case "tokens":
		cfg.Tokens = splitTokens(value)
	case "format":
		cfg.Format = value
	case "failOn":
		cfg.FailOn = value
	case "logFile":
		cfg.LogFile = value
	case "profileFile":
		cfg.ProfileFile = value
	case "chunkSize":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("chunkSize must be an integer: %w", err)
		}
		cfg.ChunkSize = n
	case "maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTokens must be an integer: %w", err)
		}
		cfg.MaxTokens = n
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("workers must be an integer: %w", err)
		}
		cfg.Workers = n
	case "retryTries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("retryTries must be an integer: %w", err)
		}
		cfg.Retry.Tries = n
	case "rateCalls":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("rateCalls must be an integer: %w", err)
		}
		cfg.Rate.Calls = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func splitTokens(s string) []string {
	parts := strings.Split(s, ",")
	var tokens []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
