// Package crawlererr holds the sentinel error values for the crawler core,
// per spec.md §7. The processor never panics on payload shape; only store
// I/O propagates failures upward.
package crawlererr

import "errors"

var (
	// ErrUnknownType marks a request type with no registered handler. Not
	// a processing failure: the processor's CanHandle logs it at warn and
	// reports false; it is not returned as an error.
	ErrUnknownType = errors.New("crawlererr: no handler registered for this request type")

	// ErrMalformedPayload marks a payload missing a field a handler
	// considers essential (e.g. an event with neither repo nor org). The
	// handler returns it to the processor without touching the document;
	// the processor logs it and returns the document unstamped, so it
	// never reaches Process's caller.
	ErrMalformedPayload = errors.New("crawlererr: payload missing essential field")

	// ErrStoreUnavailable is returned by store operations, and by the
	// event finder, when the store cannot be reached. It is the
	// only error kind the core lets propagate to its caller.
	ErrStoreUnavailable = errors.New("crawlererr: store unavailable")

	// ErrBadLinkHeader marks an unparseable pagination Link header. It is
	// treated as "no next page" by the caller; it is exposed so callers
	// can choose to log it.
	ErrBadLinkHeader = errors.New("crawlererr: malformed pagination link header")
)
