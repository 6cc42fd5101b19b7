package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/document"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// Memory is an in-process Store, suitable for tests and the scenario suite
// in spec.md §8. It is not the production store (see store/postgres) but
// satisfies the same contract, including the URN-is-the-only-key /
// URL-is-a-secondary-index split from spec.md §9.
type Memory struct {
	mu      sync.RWMutex
	byURN   map[urn.URN]*document.Document
	byURL   map[string]urn.URN
	unavail bool
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		byURN: map[urn.URN]*document.Document{},
		byURL: map[string]urn.URN{},
	}
}

// SetUnavailable toggles whether subsequent calls return
// crawlererr.ErrStoreUnavailable, for exercising the propagation path in
// tests.
func (m *Memory) SetUnavailable(unavailable bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavail = unavailable
}

func (m *Memory) checkAvailable() error {
	if m.unavail {
		return fmt.Errorf("memory store: %w", crawlererr.ErrStoreUnavailable)
	}
	return nil
}

func (m *Memory) Get(ctx context.Context, urnKey urn.URN) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkAvailable(); err != nil {
		return nil, err
	}
	doc, ok := m.byURN[urnKey]
	if !ok {
		return nil, nil
	}
	return clone(doc), nil
}

func (m *Memory) GetByURL(ctx context.Context, url string) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkAvailable(); err != nil {
		return nil, err
	}
	u, ok := m.byURL[url]
	if !ok {
		return nil, nil
	}
	return clone(m.byURN[u]), nil
}

func (m *Memory) Etag(ctx context.Context, urnKey urn.URN) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkAvailable(); err != nil {
		return "", err
	}
	doc, ok := m.byURN[urnKey]
	if !ok {
		return "", nil
	}
	return doc.Metadata.Etag, nil
}

func (m *Memory) Upsert(ctx context.Context, doc *document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkAvailable(); err != nil {
		return err
	}
	self := doc.SelfHref()
	if self == "" {
		return fmt.Errorf("memory store: cannot upsert a document with no self link")
	}
	stored := clone(doc)
	m.byURN[self] = stored
	if stored.Metadata.URL != "" {
		m.byURL[stored.Metadata.URL] = self
	}
	return nil
}

func (m *Memory) List(ctx context.Context, entityType string) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkAvailable(); err != nil {
		return nil, err
	}
	var out []Summary
	for u, doc := range m.byURN {
		if doc.Metadata.Type != entityType {
			continue
		}
		out = append(out, Summary{
			URN:       u,
			Type:      doc.Metadata.Type,
			URL:       doc.Metadata.URL,
			Version:   doc.Metadata.Version,
			UpdatedAt: doc.Metadata.ProcessedAt,
		})
	}
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, urnKey urn.URN) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkAvailable(); err != nil {
		return err
	}
	doc, ok := m.byURN[urnKey]
	if ok && doc.Metadata.URL != "" {
		delete(m.byURL, doc.Metadata.URL)
	}
	delete(m.byURN, urnKey)
	return nil
}

func (m *Memory) Count(ctx context.Context, entityType string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkAvailable(); err != nil {
		return 0, err
	}
	n := 0
	for _, doc := range m.byURN {
		if doc.Metadata.Type == entityType {
			n++
		}
	}
	return n, nil
}

func clone(doc *document.Document) *document.Document {
	if doc == nil {
		return nil
	}
	cp := *doc
	cp.Body = map[string]any{}
	for k, v := range doc.Body {
		cp.Body[k] = v
	}
	cp.Metadata.Links = map[string]document.Link{}
	for k, v := range doc.Metadata.Links {
		cp.Metadata.Links[k] = v
	}
	return &cp
}
