package processor

import (
	"context"
	"testing"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/document"
	"github.com/relabs-tech/ghcrawler/core/policy"
)

type noopCrawler struct{}

func (noopCrawler) Queue(*crawler.Request) error { return nil }
func (noopCrawler) Queues() crawler.Queues       { return noopQueues{} }

type noopQueues struct{}

func (noopQueues) Push([]*crawler.Request, crawler.Priority) error { return nil }

// TestProcessSkipsWhenStoredVersionReachesCurrent exercises spec.md §8
// scenario S5: a document already stamped with a version equal to the
// processor's own is not reprocessed under Freshness=version.
func TestProcessSkipsWhenStoredVersionReachesCurrent(t *testing.T) {
	called := false
	reg := NewRegistry()
	reg.Register("repo", func(ctx context.Context, req *crawler.Request) error {
		called = true
		return nil
	})

	doc := document.New("repo", "http://repo/1", map[string]any{"id": float64(1)})
	doc.Metadata.Version = 3

	req := &crawler.Request{
		Type:     "repo",
		URL:      "http://repo/1",
		Policy:   policy.Policy{Freshness: policy.Version},
		Document: doc,
		Crawler:  noopCrawler{},
	}

	p := New(3, reg)
	out, err := p.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("Process returned error: %s", err)
	}
	if called {
		t.Fatalf("handler ran despite stored version reaching current")
	}
	if out != doc {
		t.Fatalf("Process returned a different document on skip")
	}
}

// TestProcessUnknownTypeIsANoOp exercises the unknown-type terminal state:
// no handler registered means CanHandle is false and Process leaves the
// document untouched.
func TestProcessUnknownTypeIsANoOp(t *testing.T) {
	reg := NewRegistry()
	doc := document.New("mystery", "http://x/1", map[string]any{})
	req := &crawler.Request{
		Type:     "mystery",
		URL:      "http://x/1",
		Policy:   policy.Policy{Freshness: policy.Always},
		Document: doc,
		Crawler:  noopCrawler{},
	}

	p := New(1, reg)
	out, err := p.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("Process returned error: %s", err)
	}
	if out != doc {
		t.Fatalf("Process returned a different document for an unknown type")
	}
}
