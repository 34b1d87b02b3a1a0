package source

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"

	"artque-pipeline/internal/imgio"
)

// Resolver resolves a job source to a decoded image.
type Resolver interface {
	Resolve(name string) (*image.NRGBA, error)
}

// Cache is a concurrency-safe decoded-artwork cache over an Index.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates an artwork cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches artwork. A bare stem is looked up in the
// index; a name with a path separator or extension is loaded as-is.
// Decode failures are cached too, so a broken file fails fast for every
// job that names it.
func (c *Cache) Resolve(name string) (*image.NRGBA, error) {
	path := name
	if !isDirect(name) {
		p, ok := c.index.ResolvePath(name)
		if !ok {
			return nil, fmt.Errorf("source: no artwork for %q", name)
		}
		path = p
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := imgio.DecodeFile(path)

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img, entry.err
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	c.mu.Unlock()

	return img, err
}

func isDirect(name string) bool {
	return strings.ContainsAny(name, `/\`) || filepath.Ext(name) != ""
}
