package sheetsource

import (
	"context"
	"sync"
	"time"

	"tablediff/core/ods"

	"golang.org/x/sync/singleflight"
)

// cachedDocument is a parsed workbook with its build time.
type cachedDocument struct {
	doc   *ods.Document
	built time.Time
}

// Cache holds parsed workbooks keyed by location. A zero TTL disables caching.
type Cache struct {
	ttl  time.Duration
	now  func() time.Time
	mu   sync.RWMutex
	docs map[string]cachedDocument
	sf   singleflight.Group
}

// NewCache creates a cache whose entries live for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, now: time.Now, docs: make(map[string]cachedDocument)}
}

func (c *Cache) fresh(location string) (*ods.Document, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.docs[location]
	c.mu.RUnlock()
	if !ok || c.now().Sub(entry.built) > c.ttl {
		return nil, false
	}
	return entry.doc, true
}

// GetOrLoad returns the cached document for location or parses it with load.
// Concurrent callers for one location share a single load.
func (c *Cache) GetOrLoad(ctx context.Context, location string, load func(context.Context) (*ods.Document, error)) (*ods.Document, error) {
	if doc, ok := c.fresh(location); ok {
		return doc, nil
	}

	result, err, _ := c.sf.Do(location, func() (interface{}, error) {
		if doc, ok := c.fresh(location); ok {
			return doc, nil
		}

		doc, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.docs[location] = cachedDocument{doc: doc, built: c.now()}
			c.mu.Unlock()
		}
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*ods.Document), nil
}

// Invalidate drops the document cached for location.
func (c *Cache) Invalidate(location string) {
	c.mu.Lock()
	delete(c.docs, location)
	c.mu.Unlock()
}
