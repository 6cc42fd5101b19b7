package handlers

import (
	"context"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RegisterCommit adds the commit handler to reg.
func RegisterCommit(reg *processor.Registry) {
	reg.Register("commit", Commit)
}

// Commit transforms a fetched commit payload, qualified under the repo it
// was reached from (req.Context.Qualifier). Commits are identified by sha,
// not a numeric id. Author/committer are linked as resources; a commit's
// own comments are an owned collection.
func Commit(ctx context.Context, req *crawler.Request) error {
	body := req.Document.Body
	sha := fieldString(body, "sha")
	if sha == "" {
		return crawlererr.ErrMalformedPayload
	}

	repoURN := req.Context.Qualifier
	self := urn.Child(repoURN, "commit", sha)
	links.AddSelfAndSiblings(req.Document, self, urn.Collection(repoURN, "commits"))

	if author := fieldObject(body, "author"); author != nil {
		linkAndQueueResource(req, "author", "user", fieldID(author, "id"), fieldString(author, "url"))
	}
	if committer := fieldObject(body, "committer"); committer != nil {
		linkAndQueueResource(req, "committer", "user", fieldID(committer, "id"), fieldString(committer, "url"))
	}

	queueCollection(req, self, "commit_comments", fieldString(body, "comments_url"))
	queueCollection(req, self, "statuses", fieldString(body, "statuses_url"))

	return nil
}
