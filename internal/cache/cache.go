// Package cache stores extracted analysis payloads on disk so repeated runs
// against the same repository skip the external tool.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
)

// Cache is a file-backed payload cache with a TTL. A disabled cache is a
// no-op on every method.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

type entry struct {
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
	Payload   []byte    `json:"payload"`
}

// New creates a cache rooted at dir. ttlHours bounds entry age.
func New(dir string, ttlHours int, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlHours) * time.Hour,
		enabled: true,
	}, nil
}

// Key derives a cache key from an analysis target and ref.
func Key(target, ref string) string {
	if ref == "" {
		return target
	}
	return target + "@" + ref
}

// Get returns the cached payload for key if present and fresh.
func (c *Cache) Get(key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	data, err := os.ReadFile(c.keyPath(key))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}

	if time.Since(e.Timestamp) > c.ttl {
		os.Remove(c.keyPath(key))
		return nil, false
	}

	return e.Payload, true
}

// Set stores payload under key.
func (c *Cache) Set(key string, payload []byte) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(entry{
		Target:    key,
		Timestamp: time.Now(),
		Payload:   payload,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(c.keyPath(key), data, 0600)
}

// Invalidate removes the entry for key.
func (c *Cache) Invalidate(key string) error {
	if !c.enabled {
		return nil
	}
	return os.Remove(c.keyPath(key))
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}
	return os.RemoveAll(c.dir)
}

// Keys can contain URLs and refs, so filenames are the BLAKE3 hash of the key.
func (c *Cache) keyPath(key string) string {
	sum := blake3.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}

// Stats describes the cache contents.
type Stats struct {
	Entries   int           `json:"entries"`
	TotalSize int64         `json:"total_size"`
	OldestAge time.Duration `json:"oldest_age"`
}

// GetStats walks the cache directory and summarizes it.
func (c *Cache) GetStats() (*Stats, error) {
	if !c.enabled {
		return &Stats{}, nil
	}

	stats := &Stats{}
	var oldest time.Time

	err := filepath.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		stats.Entries++
		stats.TotalSize += info.Size()

		if oldest.IsZero() || info.ModTime().Before(oldest) {
			oldest = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !oldest.IsZero() {
		stats.OldestAge = time.Since(oldest)
	}
	return stats, nil
}
