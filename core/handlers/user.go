package handlers

import (
	"context"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RegisterUser adds the user handler to reg.
func RegisterUser(reg *processor.Registry) {
	reg.Register("user", User)
}

// User transforms a fetched user payload: self under the root "users"
// collection, the repos this user owns, and the orgs they belong to
// (a relation: orgs are shared entities, also reachable from other users).
func User(ctx context.Context, req *crawler.Request) error {
	body := req.Document.Body
	id := fieldID(body, "id")
	if id == "" {
		return crawlererr.ErrMalformedPayload
	}

	self := urn.Entity("user", id)
	links.AddSelfAndSiblings(req.Document, self, rootCollection("users"))

	queueCollection(req, self, "repos", fieldString(body, "repos_url"))
	queueCollection(req, self, "events", fieldString(body, "events_url"))
	queueRelation(req, self, "user", "organizations", fieldString(body, "organizations_url"))

	return nil
}
