package fs

import (
	"sync"
	"time"
)

// cacheEntry holds the content of a key file as of a given modification time.
type cacheEntry struct {
	Data         []byte
	Size         int64
	LastModified time.Time
}

// cache avoids re-reading key files that did not change on disk.
type cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry // Key is the storage key (e.g. "NOTES")
}

func newCache() *cache {
	return &cache{entries: make(map[string]*cacheEntry)}
}

// Get retrieves an entry if it exists and is fresh.
// Returns nil and false if miss or stale.
func (c *cache) Get(key string, mtime time.Time, size int64) (*cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !entry.LastModified.Equal(mtime) || entry.Size != size {
		return nil, false
	}
	return entry, true
}

// Set updates an entry in the cache.
func (c *cache) Set(key string, entry *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

// Delete removes a single entry from the cache.
func (c *cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of entries in the cache.
func (c *cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
