package geocode

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Cache remembers lookup results between runs so re-geocoding the whole
// sheet stays free of duplicate requests. Misses are cached too (as null
// entries): an address Nominatim could not resolve yesterday will not
// resolve today either, and asking again just burns quota.
type Cache struct {
	mu      sync.RWMutex
	path    string
	entries map[string]*Point
	dirty   bool
}

// LoadCache reads the cache file at path, starting empty when the file is
// missing or unreadable.
func LoadCache(path string) *Cache {
	c := &Cache{path: path, entries: make(map[string]*Point)}

	b, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(b, &c.entries); err != nil {
		// A corrupt cache is not worth failing over; rebuild it.
		c.entries = make(map[string]*Point)
	}
	return c
}

// Get looks up a key. The second return distinguishes "never asked" from a
// cached miss (nil Point, true).
func (c *Cache) Get(key string) (*Point, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.entries[key]
	return p, ok
}

// Put records a result; pass nil to record a miss.
func (c *Cache) Put(key string, p *Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = p
	c.dirty = true
}

// Len returns the number of cached entries, misses included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Save writes the cache back to its file when anything changed.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty || c.path == "" {
		return nil
	}

	b, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("cache: create dir: %w", err)
	}
	if err := os.WriteFile(c.path, b, 0644); err != nil {
		return fmt.Errorf("cache: write %q: %w", c.path, err)
	}
	c.dirty = false
	return nil
}
