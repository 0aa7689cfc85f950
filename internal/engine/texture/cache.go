package texture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Cache keeps decoded images by path. An entry is reused only while the
// file's size and modification time are unchanged, so editing a texture on
// disk and reopening it picks up the new pixels.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry

	hits   int
	misses int
}

type cacheEntry struct {
	img     *image.RGBA
	size    int64
	modTime time.Time
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Load returns the decoded image at path, fitted to maxSize.
func (c *Cache) Load(path string, maxSize int) (*image.RGBA, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}

	c.mu.Lock()
	e, ok := c.entries[abs]
	if ok && e.size == info.Size() && e.modTime.Equal(info.ModTime()) && fits(e.img, maxSize) {
		c.hits++
		c.mu.Unlock()
		return e.img, nil
	}
	c.misses++
	c.mu.Unlock()

	img, err := LoadFile(abs, maxSize)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[abs] = cacheEntry{img: img, size: info.Size(), modTime: info.ModTime()}
	c.mu.Unlock()
	return img, nil
}

func fits(img *image.RGBA, maxSize int) bool {
	b := img.Bounds()
	return maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize)
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry and resets the statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
