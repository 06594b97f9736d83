package extract

import (
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes a Source for the lifetime of one run.
//
// Entries are written once per canonical path and read many times. Errors
// are not cached, so a failed extraction is retried on the next call.
type Cache struct {
	source Source
	group  singleflight.Group

	mu      sync.RWMutex
	entries map[string]string
}

// NewCache wraps source with a run-scoped memo.
func NewCache(source Source) *Cache {
	return &Cache{
		source:  source,
		entries: make(map[string]string),
	}
}

// Extract implements Source. Equal paths, after canonicalization, return
// the cached text without calling the underlying Source again. The first
// caller's path, not the canonical one, is handed to the Source.
func (c *Cache) Extract(path string) (string, error) {
	key := CanonicalPath(path)

	c.mu.RLock()
	text, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return text, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have finished between the read above and Do.
		c.mu.RLock()
		cached, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		// The caller's path decides the format; a link keeps its own extension.
		extracted, err := c.source.Extract(path)
		if err != nil {
			return "", err
		}

		c.mu.Lock()
		c.entries[key] = extracted
		c.mu.Unlock()
		return extracted, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CanonicalPath returns an absolute, cleaned path with symlinks resolved
// when the target exists.
func CanonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
