// Package processor implements dispatch (spec.md §4.6, component C6): the
// freshness gate, handler lookup, version stamping, and pagination fan-out
// that wraps every entity handler in core/handlers.
package processor

import (
	"context"
	"time"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/document"
	"github.com/relabs-tech/ghcrawler/core/logger"
)

// Processor dispatches requests to registered handlers, gated by freshness.
// It performs no I/O of its own: the freshness check reads only fields
// already populated on req.Document.Metadata by the (external) fetch layer,
// never the store directly (spec.md §5's "the only suspension point is
// _findNew").
type Processor struct {
	// Version is this processor code revision's version constant.
	// Documents stamped with a version at or above this are skipped
	// under freshness "version"/"mutables".
	Version int
	registry *Registry
	now      func() time.Time
}

// New creates a Processor of the given version dispatching through reg.
func New(version int, reg *Registry) *Processor {
	return &Processor{Version: version, registry: reg, now: time.Now}
}

// Registry returns the processor's handler registry, for registration at
// startup.
func (p *Processor) Registry() *Registry {
	return p.registry
}

// CanHandle reports whether req should be dispatched at all, per spec.md
// §4.6: false if there is no handler for req.Type, or if the freshness
// gate (spec.md §4.3) says to skip.
func (p *Processor) CanHandle(ctx context.Context, req *crawler.Request) bool {
	if _, ok := p.registry.Lookup(req.Type); !ok {
		logger.FromContext(ctx).Warnf("%s: %q", crawlererr.ErrUnknownType, req.Type)
		return false
	}
	return p.freshnessAllows(ctx, req)
}

func (p *Processor) freshnessAllows(ctx context.Context, req *crawler.Request) bool {
	if req.Document == nil {
		return true
	}
	storedVersion := req.Document.Metadata.Version
	storedEtag := req.Document.Metadata.Etag
	fetchedEtag := ""
	if req.Response != nil {
		fetchedEtag = req.Response.Header.Get("ETag")
	}
	if storedVersion > p.Version {
		logger.FromContext(ctx).Warnf(
			"document %s has version %d, newer than this processor's version %d",
			req.Document.SelfHref(), storedVersion, p.Version)
	}
	return req.Policy.CanHandle(storedVersion, p.Version, storedEtag, fetchedEtag)
}

// Process dispatches req to its handler and returns the resulting document.
// If canHandle is false, req.Document is returned unchanged and nothing is
// enqueued (spec.md §4.6 step 1). Only store I/O failures propagate as
// errors; malformed payloads are a handler no-op, not an error returned to
// the caller (spec.md §7).
func (p *Processor) Process(ctx context.Context, req *crawler.Request) (*document.Document, error) {
	if !p.CanHandle(ctx, req) {
		return req.Document, nil
	}

	handler, _ := p.registry.Lookup(req.Type)

	before := req.Document
	if err := handler(ctx, req); err != nil {
		logger.FromContext(ctx).Warnf("handler for %q left document unmodified: %s", req.Type, err.Error())
		return before, nil
	}

	req.Document.Metadata.Version = p.Version
	req.Document.Metadata.ProcessedAt = p.now()

	p.paginate(req)

	return req.Document, nil
}
