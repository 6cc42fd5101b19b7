package handlers

import (
	"context"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RegisterTeam adds the team handler to reg.
func RegisterTeam(reg *processor.Registry) {
	reg.Register("team", Team)
}

// Team transforms a fetched team payload: self (teams are globally
// identified, reached from any org or repo that references them), siblings
// under its owning org's team collection, and relations for its members and
// the repos it has access to (both many-to-many: a user can belong to
// several teams, a repo can be shared with several teams).
func Team(ctx context.Context, req *crawler.Request) error {
	body := req.Document.Body
	id := fieldID(body, "id")
	if id == "" {
		return crawlererr.ErrMalformedPayload
	}

	self := urn.Entity("team", id)

	org := fieldObject(body, "organization")
	orgID := fieldID(org, "id")
	orgURN := urn.Entity("org", orgID)
	links.AddSelfAndSiblings(req.Document, self, urn.Collection(orgURN, "teams"))
	linkAndQueueResource(req, "organization", "org", orgID, fieldString(org, "url"))

	queueRelation(req, self, "team", "members", fieldString(body, "members_url"))
	queueRelation(req, self, "team", "repos", fieldString(body, "repositories_url"))

	return nil
}
