package handlers

import (
	"context"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RegisterDeployment adds the deployment handler to reg.
func RegisterDeployment(reg *processor.Registry) {
	reg.Register("deployment", Deployment)
}

// Deployment transforms a fetched deployment payload, qualified under its
// repo. Its statuses are an owned collection.
func Deployment(ctx context.Context, req *crawler.Request) error {
	body := req.Document.Body
	id := fieldID(body, "id")
	if id == "" {
		return crawlererr.ErrMalformedPayload
	}

	repoURN := req.Context.Qualifier
	self := urn.Child(repoURN, "deployment", id)
	links.AddSelfAndSiblings(req.Document, self, urn.Collection(repoURN, "deployments"))

	if creator := fieldObject(body, "creator"); creator != nil {
		linkAndQueueResource(req, "creator", "user", fieldID(creator, "id"), fieldString(creator, "url"))
	}

	queueCollection(req, self, "deployment_statuses", fieldString(body, "statuses_url"))

	return nil
}
