// Package crawler defines the Request carrier (spec.md §3/§4.4) and the
// narrow Queue/Queues contract the host's work queues satisfy (spec.md §6).
// The queues themselves — priority FIFOs with at-least-once delivery — are
// deliberately out of this module's scope; only the interface lives here.
package crawler

import (
	"net/http"

	"github.com/relabs-tech/ghcrawler/core/document"
	"github.com/relabs-tech/ghcrawler/core/policy"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RelationDescriptor is attached to a child request's Context.Relation when
// the child is the far side of a many-to-many edge, so that the relation
// page handler can emit back-links into Origin once it processes that page.
type RelationDescriptor struct {
	Origin    string
	Qualifier urn.URN
	Type      string
	GUID      string
}

// Context carries the request-scoped bookkeeping that travels alongside a
// Request but outside its fetched payload.
type Context struct {
	// Qualifier is the URN prefix subordinate entities are built under.
	Qualifier urn.URN
	// Relation is non-nil when this request is the far side of a
	// many-to-many edge.
	Relation *RelationDescriptor
}

// Request is the carrier handed to the processor: a type name, the URL it
// was (or will be) fetched from, request-scoped context, a traversal
// policy, and the mutable fields the fetch layer attaches before handing it
// to process().
type Request struct {
	Type    string
	URL     string
	Context Context
	Policy  policy.Policy

	// Document is the fetched, not-yet-linked payload. The fetch layer
	// sets Body; the processor adds _metadata in place.
	Document *document.Document
	// Response is the raw HTTP response, consulted only for its Link
	// header (spec.md §6).
	Response *http.Response

	// Crawler is the host's enqueue surface. Handlers call
	// Crawler.Queue/Crawler.Queues().Push to emit follow-up requests;
	// it is never nil once a Request reaches a handler.
	Crawler Crawler
}

// Crawler is the narrow contract a host work-queue system satisfies.
type Crawler interface {
	// Queue enqueues a single follow-up request at default priority.
	Queue(req *Request) error
	// Queues returns the bulk-enqueue surface, used by pagination
	// fan-out and any handler that discovers many children at once.
	Queues() Queues
}

// Queues is the bulk-enqueue surface.
type Queues interface {
	Push(reqs []*Request, priority Priority) error
}

// New constructs a root Request, e.g. for a freshly seeded crawl.
func New(reqType, url string, ctx Context, p policy.Policy) *Request {
	return &Request{
		Type:    reqType,
		URL:     StripURITemplate(url),
		Context: ctx,
		Policy:  p,
	}
}

// Child builds a follow-up Request reached through edge role r. The child's
// policy is this request's policy transitioned through r (spec.md §4.3);
// its qualifier is the parent's qualifier (ChildWithQualifier overrides
// it); relation is attached verbatim (nil for plain
// resource/collection edges).
func (r *Request) Child(role policy.EdgeRole, reqType, url string, relation *RelationDescriptor) *Request {
	qualifier := r.Context.Qualifier
	return &Request{
		Type:   reqType,
		URL:    StripURITemplate(url),
		Policy: r.Policy.ChildFor(role),
		Context: Context{
			Qualifier: qualifier,
			Relation:  relation,
		},
		Crawler: r.Crawler,
	}
}

// ChildWithQualifier is Child with an explicit qualifier override, for the
// handlers that scope children under a URN other than their own request's
// qualifier (e.g. a collection page's elements are qualified by the
// collection's origin, not by the page request itself).
func (r *Request) ChildWithQualifier(role policy.EdgeRole, reqType, url string, qualifier urn.URN, relation *RelationDescriptor) *Request {
	child := r.Child(role, reqType, url, relation)
	child.Context.Qualifier = qualifier
	return child
}

// Queue enqueues child via this request's Crawler at default priority. It
// is a no-op returning nil if child's URL is empty, matching handlers'
// "nothing to enqueue" terminal case without forcing every call site to
// branch.
func (r *Request) Queue(child *Request) error {
	if child == nil || child.URL == "" {
		return nil
	}
	return r.Crawler.Queue(child)
}
