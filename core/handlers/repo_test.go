package handlers

import (
	"reflect"
	"testing"

	"github.com/relabs-tech/ghcrawler/core/processor"
)

// TestRepoScenarioS1 exercises spec.md §8 scenario S1: a repo payload
// produces self/siblings/owner/organization, relation links for
// teams/collaborators/contributors/subscribers, and queues, in order,
// user, org, teams, collaborators, contributors, subscribers, issues,
// commits, events — with no pull_request queued (pull requests are reached
// through the issues collection, not queued a second time here).
func TestRepoScenarioS1(t *testing.T) {
	body := map[string]any{
		"id": float64(12),
		"owner": map[string]any{
			"id":  float64(45),
			"url": "http://user/45",
		},
		"organization": map[string]any{
			"id":  float64(24),
			"url": "http://org/24",
		},
		"teams_url":         "http://teams",
		"collaborators_url": "http://collaborators{/collaborator}",
		"contributors_url":  "http://contributors",
		"subscribers_url":   "http://subscribers",
		"commits_url":       "http://commits{/sha}",
		"issues_url":        "http://issues{/number}",
		"pulls_url":         "http://pulls{/number}",
		"events_url":        "http://events",
	}

	reg := processor.NewRegistry()
	RegisterRepo(reg)

	req, fc := newRequest("repo", body, "")
	process(t, reg, req)

	doc := req.Document
	if doc.SelfHref() != "urn:repo:12" {
		t.Fatalf("self = %q, want urn:repo:12", doc.SelfHref())
	}
	if got := doc.Metadata.Links["siblings"].Href; got != "urn:user:45:repos" {
		t.Fatalf("siblings = %q, want urn:user:45:repos", got)
	}
	if got := doc.Metadata.Links["owner"].Href; got != "urn:user:45" {
		t.Fatalf("owner = %q, want urn:user:45", got)
	}
	if got := doc.Metadata.Links["organization"].Href; got != "urn:org:24" {
		t.Fatalf("organization = %q, want urn:org:24", got)
	}
	for _, role := range []string{"teams", "collaborators", "contributors", "subscribers"} {
		link := doc.Metadata.Links[role]
		want := "urn:repo:12:" + role + ":pages:*"
		if string(link.Href) != want {
			t.Fatalf("%s href = %q, want %q", role, link.Href, want)
		}
	}

	wantOrder := []string{"user", "org", "teams", "collaborators", "contributors", "subscribers", "issues", "commits", "events"}
	if got := fc.types(); !reflect.DeepEqual(got, wantOrder) {
		t.Fatalf("queued types = %v, want %v", got, wantOrder)
	}

	for _, r := range fc.queued {
		if r.URL == "" {
			continue
		}
		for _, c := range r.URL {
			if c == '{' || c == '}' {
				t.Fatalf("queued url %q still has a URI template expression", r.URL)
			}
		}
	}
}
