package handlers

import (
	"context"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RegisterIssue adds the issue handler to reg.
func RegisterIssue(reg *processor.Registry) {
	reg.Register("issue", Issue)
}

// Issue transforms a fetched issue payload, qualified under its repo. When
// the payload carries a "pull_request" sub-object, this issue is also a
// pull request; GitHub represents every pull request as an issue, so the
// pull request itself is reached as a resource from here rather than
// re-queued from the repo's issues collection.
func Issue(ctx context.Context, req *crawler.Request) error {
	body := req.Document.Body
	id := fieldID(body, "id")
	if id == "" {
		return crawlererr.ErrMalformedPayload
	}

	repoURN := req.Context.Qualifier
	self := urn.Child(repoURN, "issue", id)
	links.AddSelfAndSiblings(req.Document, self, urn.Collection(repoURN, "issues"))

	if user := fieldObject(body, "user"); user != nil {
		linkAndQueueResource(req, "user", "user", fieldID(user, "id"), fieldString(user, "url"))
	}
	if assignee := fieldObject(body, "assignee"); assignee != nil {
		linkAndQueueResource(req, "assignee", "user", fieldID(assignee, "id"), fieldString(assignee, "url"))
	}

	if pr := fieldObject(body, "pull_request"); pr != nil {
		linkAndQueueResource(req, "pull_request", "pull_request", id, fieldString(pr, "url"))
	}

	queueCollection(req, self, "issue_comments", fieldString(body, "comments_url"))

	return nil
}
