package handlers

import (
	"context"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RegisterComments adds the three comment handlers (issue, pull request
// review, commit) to reg. They share one shape: an id, a user, and a
// qualifier inherited from whatever owned collection enqueued them.
func RegisterComments(reg *processor.Registry) {
	reg.Register("issue_comment", commentHandler("issue_comment", "issue_comments"))
	reg.Register("review_comment", commentHandler("review_comment", "review_comments"))
	reg.Register("commit_comment", commentHandler("commit_comment", "commit_comments"))
}

func commentHandler(entityType, siblingRole string) processor.Handler {
	return func(ctx context.Context, req *crawler.Request) error {
		body := req.Document.Body
		id := fieldID(body, "id")
		if id == "" {
			return crawlererr.ErrMalformedPayload
		}

		qualifier := req.Context.Qualifier
		self := urn.Child(qualifier, entityType, id)
		links.AddSelfAndSiblings(req.Document, self, urn.Collection(qualifier, siblingRole))

		if user := fieldObject(body, "user"); user != nil {
			linkAndQueueResource(req, "user", "user", fieldID(user, "id"), fieldString(user, "url"))
		}
		return nil
	}
}
