// Package sqlcache provides a bounded cache of generated SQL text keyed
// by statement shape. Generated SQL depends only on shape, never on row
// values, so entries stay valid for the lifetime of the builder that
// owns them; the cache is size-bounded to keep wide tables and ad-hoc
// shapes from growing it without limit.
package sqlcache

import (
	"github.com/maypok86/otter"
)

// DefaultCapacity bounds a builder's SQL cache unless configured
// otherwise.
const DefaultCapacity = 1000

// Cache wraps Otter for shape-keyed SQL text caching. It is safe for
// concurrent use; redundant concurrent builds of the same shape produce
// identical text, so a lost insertion race is wasted work, not a
// correctness hazard.
type Cache struct {
	store otter.Cache[string, string]
}

// New creates a cache bounded to the given number of entries.
func New(capacity int) (*Cache, error) {
	store, err := otter.MustBuilder[string, string](capacity).Build()
	if err != nil {
		return nil, err
	}
	return &Cache{store: store}, nil
}

// Get retrieves cached SQL text by shape key.
func (c *Cache) Get(key string) (string, bool) {
	return c.store.Get(key)
}

// Set stores generated SQL text under its shape key.
func (c *Cache) Set(key, sql string) {
	c.store.Set(key, sql)
}

// Size returns the number of cached statements.
func (c *Cache) Size() int {
	return c.store.Size()
}

// Close releases the cache's resources.
func (c *Cache) Close() {
	c.store.Close()
}
