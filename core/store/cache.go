package store

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/relabs-tech/ghcrawler/core/document"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// Cached wraps a Store with a process-local, best-effort TTL read cache
// keyed by URL (spec.md §6: "Reads are memoized in a process-local TTL
// cache keyed by URL"). Writes always go through to the underlying store;
// the cache only shortcuts GetByURL.
type Cached struct {
	next Store
	ttl  time.Duration
	c    *ristretto.Cache
}

// NewCached wraps next with a ristretto-backed read cache. ttl is the time
// a cached lookup stays valid before falling back to next.
func NewCached(next Store, ttl time.Duration) (*Cached, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     1 << 27,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cached{next: next, ttl: ttl, c: c}, nil
}

func (c *Cached) Get(ctx context.Context, urnKey urn.URN) (*document.Document, error) {
	return c.next.Get(ctx, urnKey)
}

// GetByURL is the one operation this wrapper actually memoizes, per
// spec.md §6.
func (c *Cached) GetByURL(ctx context.Context, url string) (*document.Document, error) {
	if v, ok := c.c.Get(url); ok {
		if doc, ok := v.(*document.Document); ok {
			return doc, nil
		}
	}
	doc, err := c.next.GetByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		c.c.SetWithTTL(url, doc, 1, c.ttl)
	}
	return doc, nil
}

func (c *Cached) Etag(ctx context.Context, urnKey urn.URN) (string, error) {
	return c.next.Etag(ctx, urnKey)
}

func (c *Cached) Upsert(ctx context.Context, doc *document.Document) error {
	if err := c.next.Upsert(ctx, doc); err != nil {
		return err
	}
	if doc.Metadata.URL != "" {
		c.c.Del(doc.Metadata.URL)
	}
	return nil
}

func (c *Cached) List(ctx context.Context, entityType string) ([]Summary, error) {
	return c.next.List(ctx, entityType)
}

func (c *Cached) Delete(ctx context.Context, urnKey urn.URN) error {
	doc, err := c.next.Get(ctx, urnKey)
	if err == nil && doc != nil {
		c.c.Del(doc.Metadata.URL)
	}
	return c.next.Delete(ctx, urnKey)
}

func (c *Cached) Count(ctx context.Context, entityType string) (int, error) {
	return c.next.Count(ctx, entityType)
}

var _ Store = (*Cached)(nil)
