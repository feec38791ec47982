package texture

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Cache shares loaded textures between the materials of a scene, keyed by
// path. Materials may still hold textures the LRU drops, so evicted ones
// are parked and closed together with the rest by Purge.
type Cache struct {
	mu      sync.Mutex
	items   *lru.Cache
	evicted []Texture
	load    func(string) (Texture, error)
}

func NewCache(size int) (*Cache, error) {
	c := &Cache{load: Load}
	items, err := lru.NewWithEvict(size, func(_, value interface{}) {
		c.evicted = append(c.evicted, value.(Texture))
	})
	if err != nil {
		return nil, fmt.Errorf("texture cache: %w", err)
	}
	c.items = items
	return c, nil
}

// Get returns the cached texture for path, loading it on a miss.
func (c *Cache) Get(path string) (Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.items.Get(path); ok {
		return v.(Texture), nil
	}
	tex, err := c.load(path)
	if err != nil {
		return Texture{}, fmt.Errorf("load texture %s: %w", path, err)
	}
	c.items.Add(path, tex)
	return tex, nil
}

// Len returns the number of cached textures.
func (c *Cache) Len() int {
	return c.items.Len()
}

// Purge drops every cached texture and closes it, along with everything
// evicted earlier.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items.Purge()
	for _, tex := range c.evicted {
		if err := tex.Close(); err != nil {
			logger.Warningf("closing texture: %v", err)
		}
	}
	c.evicted = nil
}
