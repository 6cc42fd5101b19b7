// Package store defines the document store contract the crawler core reads
// from and writes to (spec.md §6). The store itself — persistent key/value
// by URN with a read cache — is an external collaborator; this package
// only fixes its contract plus a couple of concrete implementations
// ("store/postgres", the cache wrapper here) so the core is testable
// end-to-end without a real deployment.
package store

import (
	"context"
	"time"

	"github.com/relabs-tech/ghcrawler/core/document"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// Summary is the lightweight listing shape returned by List, avoiding a
// full document body round-trip for enumeration.
type Summary struct {
	URN       urn.URN
	Type      string
	URL       string
	Version   int
	UpdatedAt time.Time
}

// Store is the contract every document store implementation satisfies.
// Implementations MUST support concurrent reads and last-writer-wins
// upserts keyed by _metadata.links.self.href (spec.md §5).
//
// Per the resolved Open Question in spec.md §9, the URN
// (_metadata.links.self.href) is the sole upsert key; URL is indexed
// separately and is never conflated with it.
type Store interface {
	// Get returns the document stored at urnKey, or (nil, nil) if absent.
	Get(ctx context.Context, urnKey urn.URN) (*document.Document, error)
	// GetByURL returns the document whose _metadata.url equals url, via
	// the secondary URL index, or (nil, nil) if absent.
	GetByURL(ctx context.Context, url string) (*document.Document, error)
	// Etag returns the stored etag for urnKey, or "" if absent.
	Etag(ctx context.Context, urnKey urn.URN) (string, error)
	// Upsert writes doc, keyed by its self href. It is an error to upsert
	// a document with no self link.
	Upsert(ctx context.Context, doc *document.Document) error
	// List returns a summary of every stored document of entityType.
	List(ctx context.Context, entityType string) ([]Summary, error)
	// Delete removes the document stored at urnKey.
	Delete(ctx context.Context, urnKey urn.URN) error
	// Count returns the number of stored documents of entityType.
	Count(ctx context.Context, entityType string) (int, error)
}
