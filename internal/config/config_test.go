package config

import (
	"errors"
	"os"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Backend != "groq" {
		t.Errorf("Default backend = %q, want %q", cfg.Backend, "groq")
	}
	if cfg.ChunkSize != 5000 {
		t.Errorf("Default chunkSize = %d, want 5000", cfg.ChunkSize)
	}
	if cfg.MaxTokens != 512 {
		t.Errorf("Default maxTokens = %d, want 512", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.1 {
		t.Errorf("Default temperature = %v, want 0.1", cfg.Temperature)
	}
	if cfg.Rate.Calls != 5 || cfg.Rate.PeriodMs != 1000 {
		t.Errorf("Default rate = %d/%dms, want 5/1000ms", cfg.Rate.Calls, cfg.Rate.PeriodMs)
	}
	if cfg.Retry.Tries != 3 || cfg.Retry.DelayMs != 1000 || cfg.Retry.Backoff != 2 {
		t.Errorf("Default retry = %+v, want 3 tries, 1000ms, x2", cfg.Retry)
	}
	if cfg.Workers != 1 {
		t.Errorf("Default workers = %d, want 1", cfg.Workers)
	}
	if !cfg.Privacy.RedactEnabled() {
		t.Error("Default redactSecrets should be true")
	}
	if !cfg.Cache.IsEnabled() {
		t.Error("Default cache should be enabled")
	}
	want := []string{".py", ".js", ".java", ".cpp", ".c", ".cs", ".ts", ".php"}
	if len(cfg.Extensions) != len(want) {
		t.Fatalf("Default extensions = %v, want %v", cfg.Extensions, want)
	}
	for i, ext := range want {
		if cfg.Extensions[i] != ext {
			t.Errorf("Extensions[%d] = %q, want %q", i, cfg.Extensions[i], ext)
		}
	}
}

func TestValidate_NoTokens(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); !errors.Is(err, ErrNoTokens) {
		t.Errorf("Validate = %v, want ErrNoTokens", err)
	}

	cfg.Tokens = []string{"llama-3.1-8b-instant"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with tokens = %v, want nil", err)
	}
}

func TestMergeEnv(t *testing.T) {
	orig := map[string]string{}
	envKeys := []string{"SCOUR_TOKENS", "SCOUR_BACKEND", "SCOUR_FORMAT", "SCOUR_FAIL_ON", "SCOUR_CHUNK_SIZE", "SCOUR_WORKERS"}
	for _, k := range envKeys {
		orig[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range orig {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	os.Setenv("SCOUR_TOKENS", "model-a, model-b")
	os.Setenv("SCOUR_BACKEND", "groq")
	os.Setenv("SCOUR_FORMAT", "json")
	os.Setenv("SCOUR_FAIL_ON", "HIGH")
	os.Setenv("SCOUR_CHUNK_SIZE", "2500")
	os.Setenv("SCOUR_WORKERS", "4")

	cfg := Default()
	mergeEnv(&cfg)

	if len(cfg.Tokens) != 2 || cfg.Tokens[0] != "model-a" || cfg.Tokens[1] != "model-b" {
		t.Errorf("Tokens = %v, want [model-a model-b]", cfg.Tokens)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}
	if cfg.FailOn != "HIGH" {
		t.Errorf("FailOn = %q, want %q", cfg.FailOn, "HIGH")
	}
	if cfg.ChunkSize != 2500 {
		t.Errorf("ChunkSize = %d, want 2500", cfg.ChunkSize)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
}

func TestMergeOverrides(t *testing.T) {
	cfg := Default()
	mergeOverrides(&cfg, map[string]string{
		"format":     "text",
		"failOn":     "CRITICAL",
		"chunkSize":  "100",
		"workers":    "2",
		"retryTries": "5",
	})

	if cfg.Format != "text" {
		t.Errorf("Format = %q, want %q", cfg.Format, "text")
	}
	if cfg.FailOn != "CRITICAL" {
		t.Errorf("FailOn = %q, want %q", cfg.FailOn, "CRITICAL")
	}
	if cfg.ChunkSize != 100 {
		t.Errorf("ChunkSize = %d, want 100", cfg.ChunkSize)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.Retry.Tries != 5 {
		t.Errorf("Retry.Tries = %d, want 5", cfg.Retry.Tries)
	}
}

func TestMergeFile_DisablesCache(t *testing.T) {
	dst := Default()
	off := false
	src := Config{Cache: CacheConfig{Enabled: &off}}

	mergeFile(&dst, src)

	if dst.Cache.IsEnabled() {
		t.Error("file setting cache.enabled=false must disable the cache")
	}
	if dst.Cache.TTLSeconds != 86400 {
		t.Errorf("TTLSeconds = %d, unset fields must keep defaults", dst.Cache.TTLSeconds)
	}
}

func TestMergeFile_UnsetCacheKeepsDefault(t *testing.T) {
	dst := Default()
	mergeFile(&dst, Config{})

	if !dst.Cache.IsEnabled() {
		t.Error("file without a cache block must keep the cache enabled")
	}
	if !dst.Privacy.RedactEnabled() {
		t.Error("file without a privacy block must keep redaction on")
	}
}

func TestMergeFile_DisablesRedaction(t *testing.T) {
	dst := Default()
	off := false
	src := Config{Privacy: PrivacyConfig{RedactSecrets: &off}}

	mergeFile(&dst, src)

	if dst.Privacy.RedactEnabled() {
		t.Error("file setting privacy.redactSecrets=false must disable redaction")
	}
}

func TestSetField_Unknown(t *testing.T) {
	cfg := Default()
	if err := SetField(&cfg, "nope", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestSetField_Tokens(t *testing.T) {
	cfg := Default()
	if err := SetField(&cfg, "tokens", "a,b , c,"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if len(cfg.Tokens) != 3 {
		t.Errorf("Tokens = %v, want 3 entries", cfg.Tokens)
	}
}
