package handlers

import (
	"context"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RegisterOrg adds the org handler to reg.
func RegisterOrg(reg *processor.Registry) {
	reg.Register("org", Org)
}

// Org transforms a fetched organization payload: self under the root "orgs"
// collection, a members relation (users are shared global entities), and
// repos/teams/events collections owned exclusively by this org.
func Org(ctx context.Context, req *crawler.Request) error {
	body := req.Document.Body
	id := fieldID(body, "id")
	if id == "" {
		return crawlererr.ErrMalformedPayload
	}

	self := urn.Entity("org", id)
	links.AddSelfAndSiblings(req.Document, self, rootCollection("orgs"))

	queueRelation(req, self, "org", "members", fieldString(body, "members_url"))
	queueCollection(req, self, "repos", fieldString(body, "repos_url"))
	queueCollection(req, self, "teams", fieldString(body, "teams_url"))
	queueCollection(req, self, "events", fieldString(body, "events_url"))

	return nil
}
