package handlers

import (
	"context"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RegisterStatus adds the status handler to reg.
func RegisterStatus(reg *processor.Registry) {
	reg.Register("status", Status)
}

// Status transforms a fetched commit status payload, qualified under the
// commit it targets: a status is reached through its commit's statuses
// collection (a StatusEvent links its commit but queues no request for it).
func Status(ctx context.Context, req *crawler.Request) error {
	body := req.Document.Body
	id := fieldID(body, "id")
	if id == "" {
		return crawlererr.ErrMalformedPayload
	}

	commitURN := req.Context.Qualifier
	self := urn.Child(commitURN, "status", id)
	links.AddSelfAndSiblings(req.Document, self, urn.Collection(commitURN, "statuses"))

	if creator := fieldObject(body, "creator"); creator != nil {
		linkAndQueueResource(req, "creator", "user", fieldID(creator, "id"), fieldString(creator, "url"))
	}

	return nil
}
