// Package events implements the dedup-against-store filter over a page of
// GitHub events (spec.md §4.5, component C5).
package events

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/store"
)

// Event is the minimal shape FindNew needs from a page element: a stable id
// and the URL of the repo it belongs to.
type Event struct {
	ID      string
	RepoURL string
	// Raw carries the full decoded event payload through unchanged, so
	// callers can hand surviving events straight to the processor.
	Raw any
}

// maxConcurrentLookups bounds the fan-out of store lookups per FindNew
// call, in the style of mccutchen/ghavm's bounded-concurrency use of
// golang.org/x/sync.
const maxConcurrentLookups = 16

// FindNew returns the subset of events not yet present in s, preserving
// input order. Store lookups are fanned out concurrently; a store failure
// anywhere aborts the whole call and bubbles up as
// crawlererr.ErrStoreUnavailable (spec.md §9's resolved Open Question: no
// silent skipping on store failure).
func FindNew(ctx context.Context, s store.Store, page []Event) ([]Event, error) {
	seen := make([]bool, len(page))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for i, ev := range page {
		i, ev := i, ev
		g.Go(func() error {
			key := storeKey(ev)
			doc, err := s.GetByURL(gctx, key)
			if err != nil {
				return fmt.Errorf("events: looking up %s: %w", key, err)
			}
			seen[i] = doc != nil
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %s", crawlererr.ErrStoreUnavailable, err.Error())
	}

	out := make([]Event, 0, len(page))
	for i, ev := range page {
		if !seen[i] {
			out = append(out, ev)
		}
	}
	return out, nil
}

func storeKey(ev Event) string {
	return ev.RepoURL + "/events/" + ev.ID
}
