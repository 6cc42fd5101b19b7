package handlers

import (
	"context"
	"testing"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/document"
	"github.com/relabs-tech/ghcrawler/core/policy"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// fakeCrawler records every Queue/Push call in order, for assertions on
// exactly what a handler enqueued and in what sequence.
type fakeCrawler struct {
	queued []*crawler.Request
	pushed []struct {
		reqs     []*crawler.Request
		priority crawler.Priority
	}
}

func (f *fakeCrawler) Queue(req *crawler.Request) error {
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeCrawler) Queues() crawler.Queues { return f }

func (f *fakeCrawler) Push(reqs []*crawler.Request, priority crawler.Priority) error {
	f.pushed = append(f.pushed, struct {
		reqs     []*crawler.Request
		priority crawler.Priority
	}{reqs, priority})
	return nil
}

func (f *fakeCrawler) types() []string {
	out := make([]string, 0, len(f.queued))
	for _, r := range f.queued {
		out = append(out, r.Type)
	}
	return out
}

// newRequest builds a Request wired to a fresh fakeCrawler, ready for a
// handler under test. body becomes the document's Body; qualifier seeds
// req.Context.Qualifier as a parent handler would have set it.
func newRequest(reqType string, body map[string]any, qualifier string) (*crawler.Request, *fakeCrawler) {
	fc := &fakeCrawler{}
	req := crawler.New(reqType, "http://example.test/"+reqType, crawler.Context{
		Qualifier: urn.URN(qualifier),
	}, policy.Policy{Transitivity: policy.DeepShallow, Freshness: policy.Version, Fetch: policy.FetchStorage})
	req.Crawler = fc
	req.Document = document.New(reqType, req.URL, body)
	return req, fc
}

func process(t *testing.T, reg *processor.Registry, req *crawler.Request) {
	t.Helper()
	h, ok := reg.Lookup(req.Type)
	if !ok {
		t.Fatalf("no handler registered for type %q", req.Type)
	}
	if err := h(context.Background(), req); err != nil {
		t.Fatalf("handler for %q returned error: %s", req.Type, err)
	}
}
