package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/policy"
	"github.com/relabs-tech/ghcrawler/core/processor"
)

// TestCollectionRootElementDecaysToShallow exercises spec.md §8 scenario
// S4: a root collection ("orgs") page at deepShallow transitivity queues
// each element at shallow (the root-collection-element transition), and
// its own next page keeps deepShallow (the collection-page transition).
func TestCollectionRootElementDecaysToShallow(t *testing.T) {
	body := map[string]any{
		"elements": []any{
			map[string]any{"type": "org", "id": float64(1), "url": "http://child1"},
		},
	}

	reg := processor.NewRegistry()
	RegisterCollection(reg)

	req, fc := newRequest("orgs", body, "")
	req.URL = "http://test.com/orgs?page=1&per_page=100"
	req.Response = &http.Response{Header: http.Header{
		"Link": {`<http://test.com/orgs?page=2&per_page=100>; rel="next", <http://test.com/orgs?page=2&per_page=100>; rel="last"`},
	}}

	p := processor.New(1, reg)
	if _, err := p.Process(context.Background(), req); err != nil {
		t.Fatalf("Process returned error: %s", err)
	}

	if len(fc.queued) != 1 {
		t.Fatalf("queued = %d requests, want 1", len(fc.queued))
	}
	element := fc.queued[0]
	if element.Type != "org" || element.URL != "http://child1" {
		t.Fatalf("element request = %+v, want type=org url=http://child1", element)
	}
	if element.Policy.Transitivity != policy.Shallow {
		t.Fatalf("element transitivity = %q, want shallow", element.Policy.Transitivity)
	}

	if len(fc.pushed) != 1 {
		t.Fatalf("pushed batches = %d, want 1", len(fc.pushed))
	}
	batch := fc.pushed[0]
	if batch.priority != crawler.PrioritySoon {
		t.Fatalf("push priority = %q, want soon", batch.priority)
	}
	if len(batch.reqs) != 1 || batch.reqs[0].URL != "http://test.com/orgs?page=2&per_page=100" {
		t.Fatalf("pushed page = %+v, want one request to page=2", batch.reqs)
	}
	if batch.reqs[0].Policy.Transitivity != policy.DeepShallow {
		t.Fatalf("next page transitivity = %q, want deepShallow", batch.reqs[0].Policy.Transitivity)
	}
}
