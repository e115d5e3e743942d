package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// entry is the on-disk record for one analyzed chunk. The model is stored
// alongside the response so entries stay self-describing when inspecting
// the cache directory by hand.
type entry struct {
	Model     string    `json:"model"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"createdAt"`
}

// Cache stores completion responses per (model, chunk) pair so a re-scan
// does not re-bill identical chunks. A disabled cache always misses and
// swallows writes.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

// New creates a new Cache. If dir is empty, uses the default cache
// directory. A ttlSeconds of zero disables expiry.
func New(enabled bool, dir string, ttlSeconds int) (*Cache, error) {
	if !enabled {
		return &Cache{}, nil
	}
	if dir == "" {
		d, err := defaultCacheDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlSeconds) * time.Second,
		enabled: true,
	}, nil
}

// Get retrieves the cached response for a chunk under a given model.
// Returns ("", false) on miss; an expired entry is removed and misses.
func (c *Cache) Get(model, chunk string) (string, bool) {
	if !c.enabled {
		return "", false
	}
	path := c.entryPath(model, chunk)
	e, err := readEntry(path)
	if err != nil {
		return "", false
	}
	if c.expired(e) {
		os.Remove(path)
		return "", false
	}
	return e.Response, true
}

// Put stores the response for a chunk under a given model.
func (c *Cache) Put(model, chunk, response string) error {
	if !c.enabled {
		return nil
	}
	data, err := json.Marshal(entry{
		Model:     model,
		Response:  response,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	return os.WriteFile(c.entryPath(model, chunk), data, 0o644)
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	for _, path := range c.entryFiles() {
		os.Remove(path)
	}
	return nil
}

// Stats summarizes the cache directory.
type Stats struct {
	Dir        string `json:"dir"`
	Entries    int    `json:"entries"`
	Expired    int    `json:"expired"`
	TotalBytes int64  `json:"totalBytes"`
}

// Stats walks the cache directory and counts live and expired entries.
func (c *Cache) Stats() (Stats, error) {
	stats := Stats{Dir: c.dir}
	for _, path := range c.entryFiles() {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()
		if e, err := readEntry(path); err == nil && c.expired(e) {
			stats.Expired++
		}
	}
	return stats, nil
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string { return c.dir }

// Enabled returns whether caching is enabled.
func (c *Cache) Enabled() bool { return c.enabled }

func (c *Cache) expired(e entry) bool {
	return c.ttl > 0 && time.Since(e.CreatedAt) > c.ttl
}

// entryFiles lists the entry paths currently on disk. Errors (including a
// missing directory) read as an empty cache.
func (c *Cache) entryFiles() []string {
	if !c.enabled || c.dir == "" {
		return nil
	}
	paths, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return nil
	}
	return paths
}

func readEntry(path string) (entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entry{}, err
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return entry{}, err
	}
	return e, nil
}

// entryPath derives the entry filename from the (model, chunk) pair. The
// model is part of the identity: the same chunk analyzed under a
// different model is a different result.
func (c *Cache) entryPath(model, chunk string) string {
	h := sha256.Sum256([]byte(model + "\x00" + chunk))
	return filepath.Join(c.dir, fmt.Sprintf("%x.json", h))
}

func defaultCacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "scour"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "scour"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "scour", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "scour", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "scour"), nil
	}
}
