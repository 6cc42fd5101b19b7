package handlers

import (
	"context"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RegisterPullRequest adds the pull request handler to reg.
func RegisterPullRequest(reg *processor.Registry) {
	reg.Register("pull_request", PullRequest)
}

// PullRequest transforms a fetched pull request payload, qualified under
// its repo. Its own review comments and commits are owned collections,
// distinct from the repo-wide issues/commits collections.
func PullRequest(ctx context.Context, req *crawler.Request) error {
	body := req.Document.Body
	id := fieldID(body, "id")
	if id == "" {
		return crawlererr.ErrMalformedPayload
	}

	repoURN := req.Context.Qualifier
	self := urn.Child(repoURN, "pull_request", id)
	links.AddSelfAndSiblings(req.Document, self, urn.Collection(repoURN, "pulls"))

	if user := fieldObject(body, "user"); user != nil {
		linkAndQueueResource(req, "user", "user", fieldID(user, "id"), fieldString(user, "url"))
	}

	queueCollection(req, self, "review_comments", fieldString(body, "review_comments_url"))
	queueCollection(req, self, "commits", fieldString(body, "commits_url"))

	return nil
}
