package handlers

import (
	"testing"

	"github.com/relabs-tech/ghcrawler/core/processor"
)

// TestPullRequestEventLinksPullRequest exercises spec.md §8 scenario S2: a
// PullRequestEvent's self link and the pull request named in its payload
// are both qualified under the event's repo, and the pull request is
// queued.
func TestPullRequestEventLinksPullRequest(t *testing.T) {
	body := map[string]any{
		"id": "987",
		"actor": map[string]any{
			"id":  float64(1),
			"url": "http://user/1",
		},
		"repo": map[string]any{
			"id":  float64(4),
			"url": "http://repo/4",
		},
		"payload": map[string]any{
			"pull_request": map[string]any{
				"id":  float64(1),
				"url": "http://pull/1",
			},
		},
	}

	reg := processor.NewRegistry()
	RegisterEvents(reg)

	req, fc := newRequest("PullRequestEvent", body, "")
	process(t, reg, req)

	if got := req.Document.Metadata.Links["self"].Href; got != "urn:repo:4:pullrequestevent:987" {
		t.Fatalf("self link = %q, want urn:repo:4:pullrequestevent:987", got)
	}
	if got := req.Document.Metadata.Links["pull_request"].Href; got != "urn:repo:4:pull_request:1" {
		t.Fatalf("pull_request link = %q, want urn:repo:4:pull_request:1", got)
	}
	if got := req.Document.Metadata.Links["actor"].Href; got != "urn:user:1" {
		t.Fatalf("actor link = %q, want urn:user:1", got)
	}

	var sawPullRequest bool
	for _, r := range fc.queued {
		if r.Type == "pull_request" && r.URL == "http://pull/1" && string(r.Context.Qualifier) == "urn:repo:4" {
			sawPullRequest = true
		}
	}
	if !sawPullRequest {
		t.Fatalf("expected a queued pull_request request qualified under urn:repo:4, got %v", fc.types())
	}
}

// TestStatusEventLinksCommit exercises spec.md §8 scenario S3: a StatusEvent
// names a commit by sha; the handler links the commit under the event's
// repo rather than queuing a follow-up, since no URL for the commit is
// known.
func TestStatusEventLinksCommit(t *testing.T) {
	body := map[string]any{
		"id": "321",
		"repo": map[string]any{
			"id":  float64(4),
			"url": "http://repo/4",
		},
		"payload": map[string]any{
			"sha": "a1b2",
		},
	}

	reg := processor.NewRegistry()
	RegisterEvents(reg)

	req, fc := newRequest("StatusEvent", body, "")
	process(t, reg, req)

	if got := req.Document.Metadata.Links["commit"].Href; got != "urn:repo:4:commit:a1b2" {
		t.Fatalf("commit link = %q, want urn:repo:4:commit:a1b2", got)
	}

	for _, r := range fc.queued {
		if r.Type == "commit" {
			t.Fatalf("expected no queued commit request, got one for %s", r.URL)
		}
	}
}
