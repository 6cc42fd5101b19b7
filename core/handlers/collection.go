package handlers

import (
	"context"
	"strings"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/policy"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RegisterCollection adds the shared collection/page handler under every
// request type that names a listing, per spec.md §4.7's "Collection/page
// handler". One Go function serves every such type. A non-empty reqTypes is
// registered instead of the default list, not in addition to it (e.g.
// cmd/crawler can register a new listing type without touching this file).
func RegisterCollection(reg *processor.Registry, reqTypes ...string) {
	if len(reqTypes) == 0 {
		reqTypes = defaultCollectionTypes
	}
	for _, t := range reqTypes {
		reg.Register(t, Collection)
	}
}

var defaultCollectionTypes = []string{
	"orgs", "users", "repos", "teams", "team_members", "team_repos",
	"collaborators", "contributors", "subscribers",
	"commits", "issues", "issue_comments", "review_comments",
	"commit_comments", "pull_requests", "deployments", "statuses", "events",
}

// Collection transforms one page of a listing (spec.md §4.7): it links the
// page's own elements as a resource list, emits an origin back-link when
// this page is the far side of a relation, and enqueues each element as its
// own typed request. Pagination to further pages of the same listing is
// handled by the processor after this handler returns (spec.md §4.6); this
// handler only deals with the elements of the page it was given.
func Collection(ctx context.Context, req *crawler.Request) error {
	raw, ok := req.Document.Body["elements"]
	if !ok {
		return crawlererr.ErrMalformedPayload
	}
	elements, ok := raw.([]any)
	if !ok {
		return crawlererr.ErrMalformedPayload
	}

	isRelation := req.Context.Relation != nil
	elementEdge := policy.EdgeCollectionElement
	if isRootCollection(req.Type) {
		elementEdge = policy.EdgeRootCollectionElement
	}

	hrefs := make([]urn.URN, 0, len(elements))
	for _, raw := range elements {
		element, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		elementType := strings.ToLower(fieldString(element, "type"))
		if elementType == "" {
			elementType = elementTypeFor(req.Type)
		}
		if elementType == "" {
			continue
		}

		id := fieldID(element, "id")
		if id == "" {
			continue
		}

		var elementURN urn.URN
		var qualifier urn.URN
		if isRelation {
			// Relation elements are shared, globally identified entities:
			// a team or user reached through one repo's relation is the
			// same entity reached through another's.
			elementURN = urn.Entity(elementType, id)
		} else {
			elementURN = urn.Child(req.Context.Qualifier, elementType, id)
			qualifier = req.Context.Qualifier
		}
		hrefs = append(hrefs, elementURN)

		elementURL := fieldString(element, "url")
		if elementURL == "" {
			elementURL = fieldString(element, "html_url")
		}
		child := req.ChildWithQualifier(elementEdge, elementType, elementURL, qualifier, nil)
		_ = req.Queue(child)
	}

	links.AddResourceList(req.Document, "resources", hrefs)
	if isRelation {
		links.AddResource(req.Document, "origin", req.Context.Relation.Qualifier)
	}

	return nil
}
