package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"scripture-tui/internal/api"

	"github.com/zeebo/blake3"
)

type Cache struct {
	cacheDir string
	ttl      time.Duration
	now      func() time.Time
}

type entry struct {
	Kind   string          `json:"kind"`
	Query  string          `json:"query"`
	Stored time.Time       `json:"stored"`
	Body   json.RawMessage `json:"body"`
}

// NewCache opens the response cache in the user's cache directory.
func NewCache(ttl time.Duration) (*Cache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return NewCacheAt(filepath.Join(base, "scripture-tui", "passages"), ttl)
}

// NewCacheAt opens a cache rooted at dir. A zero ttl never expires entries.
func NewCacheAt(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Cache{cacheDir: dir, ttl: ttl, now: time.Now}, nil
}

// Key is the blake3 digest naming a request's cache file.
func Key(kind, query string, opts api.PassageOptions) string {
	h := blake3.New()
	fmt.Fprintf(h, "%s\x00%s\x00%t%t%t", kind, query, opts.Headings, opts.Extras, opts.Numbers)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.cacheDir, key+".json")
}

// Get returns the cached body for the request, if present and fresh.
func (c *Cache) Get(kind, query string, opts api.PassageOptions) ([]byte, bool) {
	data, err := os.ReadFile(c.path(Key(kind, query, opts)))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(e.Stored) > c.ttl {
		return nil, false
	}
	return e.Body, true
}

// Put stores a response body.
func (c *Cache) Put(kind, query string, opts api.PassageOptions, body []byte) error {
	if !json.Valid(body) {
		return fmt.Errorf("cache %s %q: body is not JSON", kind, query)
	}
	data, err := json.Marshal(entry{Kind: kind, Query: query, Stored: c.now(), Body: body})
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(Key(kind, query, opts)), data, 0o644)
}

// ClearCache removes every cached response.
func (c *Cache) ClearCache() error {
	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(c.cacheDir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// GetCacheSize returns the total size of cached data in bytes
func (c *Cache) GetCacheSize() (int64, error) {
	var size int64
	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return 0, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			info, err := entry.Info()
			if err != nil {
				continue
			}
			size += info.Size()
		}
	}

	return size, nil
}
