package handlers

import (
	"context"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RegisterRepo adds the repo handler to reg.
func RegisterRepo(reg *processor.Registry) {
	reg.Register("repo", Repo)
}

// Repo transforms a fetched repository payload (spec.md §8 scenario S1):
// self, siblings under its owner's repo collection, resource links for
// owner and organization, relation links for teams/collaborators/
// contributors/subscribers, and collection links for issues/commits/
// events. Pull requests are reached through the issues collection (GitHub
// represents every pull request as an issue) and are not queued again here.
func Repo(ctx context.Context, req *crawler.Request) error {
	body := req.Document.Body
	id := fieldID(body, "id")
	if id == "" {
		return crawlererr.ErrMalformedPayload
	}

	self := urn.Entity("repo", id)

	owner := fieldObject(body, "owner")
	ownerID := fieldID(owner, "id")
	ownerType := normalizeOwnerType(fieldString(owner, "type"))
	ownerURN := urn.Entity(ownerType, ownerID)

	links.AddSelfAndSiblings(req.Document, self, urn.Collection(ownerURN, "repos"))
	linkAndQueueResource(req, "owner", ownerType, ownerID, fieldString(owner, "url"))

	if org := fieldObject(body, "organization"); org != nil {
		linkAndQueueResource(req, "organization", "org", fieldID(org, "id"), fieldString(org, "url"))
	}

	queueRelation(req, self, "repo", "teams", fieldString(body, "teams_url"))
	queueRelation(req, self, "repo", "collaborators", fieldString(body, "collaborators_url"))
	queueRelation(req, self, "repo", "contributors", fieldString(body, "contributors_url"))
	queueRelation(req, self, "repo", "subscribers", fieldString(body, "subscribers_url"))

	queueCollection(req, self, "issues", fieldString(body, "issues_url"))
	queueCollection(req, self, "commits", fieldString(body, "commits_url"))
	queueCollection(req, self, "events", fieldString(body, "events_url"))

	return nil
}
