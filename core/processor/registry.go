package processor

import (
	"context"

	"github.com/relabs-tech/ghcrawler/core/crawler"
)

// Handler transforms a fetched request's document in place: it links the
// document (core/links) and enqueues follow-up requests (req.Queue /
// req.Crawler.Queues().Push). It must not perform I/O itself (spec.md §5)
// and must return crawlererr.ErrMalformedPayload, doing nothing else, when
// it cannot find its essential payload field (spec.md §4.7 "Terminal
// states").
type Handler func(ctx context.Context, req *crawler.Request) error

// Registry maps a request type name to the Handler that processes it, per
// spec.md §9's guidance to use an explicit registry rather than
// string-to-method dynamic dispatch.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

// Register adds or replaces the handler for reqType.
func (r *Registry) Register(reqType string, h Handler) {
	r.handlers[reqType] = h
}

// Lookup returns the handler for reqType, if any.
func (r *Registry) Lookup(reqType string) (Handler, bool) {
	h, ok := r.handlers[reqType]
	return h, ok
}

// Types returns every registered request type, for introspection.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		out = append(out, t)
	}
	return out
}
