// Package handlers implements the per-entity-type transforms of spec.md
// §4.7 (component C7): given a fetched payload plus its Request, link the
// canonical document and enqueue the follow-up requests the traversal
// policy allows.
package handlers

import (
	"strings"

	"github.com/google/uuid"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/payload"
	"github.com/relabs-tech/ghcrawler/core/policy"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// normalizeOwnerType maps a GitHub "owner"/"actor" object's "type" field to
// the lowercase entity type name this crawler uses, defaulting to "user"
// when the field is absent (GitHub omits it on some embedded payloads, and
// a bare user id/url pair is by far the common case).
func normalizeOwnerType(rawType string) string {
	switch strings.ToLower(rawType) {
	case "organization", "org":
		return "org"
	case "user", "":
		return "user"
	default:
		return strings.ToLower(rawType)
	}
}

// linkAndQueueResource emits a resource link at role pointing at
// urn.Entity(entityType, id), and enqueues a child request to fetch it — the
// common case for every inbound reference a handler discovers (owner,
// actor, organization, assignee, milestone, base/head, ...). A blank id is
// a no-op: the field was simply absent on this payload.
func linkAndQueueResource(req *crawler.Request, role, entityType, id, rawURL string) {
	if id == "" {
		return
	}
	links.AddResource(req.Document, role, urn.Entity(entityType, id))
	if rawURL == "" {
		return
	}
	_ = req.Queue(req.Child(policy.EdgeResource, entityType, rawURL, nil))
}

// linkAndQueueResourceUnder is linkAndQueueResource for entities that are
// themselves qualified by an owning parent (a pull request, issue, or
// comment reached through an event belongs to that event's repo, the same
// way it belongs to that repo when reached through the repo's own
// collections). A blank id is a no-op.
func linkAndQueueResourceUnder(req *crawler.Request, qualifier urn.URN, role, entityType, id, rawURL string) {
	if id == "" {
		return
	}
	links.AddResource(req.Document, role, urn.Child(qualifier, entityType, id))
	if rawURL == "" {
		return
	}
	_ = req.Queue(req.ChildWithQualifier(policy.EdgeResource, entityType, rawURL, qualifier, nil))
}

// queueRelation emits a relation link at role (URN ending ":pages:*") and
// enqueues the relation's paginated listing, tagging the child with a fresh
// RelationDescriptor so the page handler can emit an origin back-link once
// it processes that page (spec.md §4.7 "Collections vs. relations").
// Relation elements are independent, globally-identified entities, so the
// child is qualified by self only for bookkeeping, not because its own
// elements will be built under that qualifier (Collection branches
// on Context.Relation to tell the two cases apart).
func queueRelation(req *crawler.Request, self urn.URN, originType, role, rawURL string) {
	if rawURL == "" {
		return
	}
	links.AddRelation(req.Document, role, urn.Relation(self, role))
	descriptor := &crawler.RelationDescriptor{
		Origin:    originType,
		Qualifier: self,
		Type:      role,
		GUID:      uuid.New().String(),
	}
	child := req.ChildWithQualifier(policy.EdgeCollectionElement, role, rawURL, self, descriptor)
	_ = req.Queue(child)
}

// queueCollection emits a collection link at role (a plain child URN, no
// page wildcard) and enqueues its listing, qualified under self so that
// collection's elements can in turn qualify their own subordinate
// collections (e.g. a repo's "issues" collection qualifies each issue,
// which then qualifies that issue's own comments).
func queueCollection(req *crawler.Request, self urn.URN, role, rawURL string) {
	if rawURL == "" {
		return
	}
	links.AddCollection(req.Document, role, urn.Collection(self, role))
	child := req.ChildWithQualifier(policy.EdgeCollectionElement, role, rawURL, self, nil)
	_ = req.Queue(child)
}

// rootCollection returns the URN of a top-level listing such as "urn:orgs"
// or "urn:users" — the siblings collection for entities that have no
// owning parent.
func rootCollection(name string) urn.URN {
	return urn.Qualified(urn.URN("urn"), name)
}

// isRootCollection reports whether reqType names a root-level listing
// (orgs, users), whose elements decay transitivity one level further than
// an interior collection's elements (spec.md §4.3, Glossary "Root
// collection").
func isRootCollection(reqType string) bool {
	return reqType == "orgs" || reqType == "users"
}

// elementTypeByCollection maps a collection/relation request type to the
// entity type of its elements, for the collection page handler, when an
// element does not itself carry an explicit "type" field (events do; plain
// listings like teams/collaborators/commits do not).
var elementTypeByCollection = map[string]string{
	"orgs":            "org",
	"users":           "user",
	"repos":           "repo",
	"teams":           "team",
	"team_members":    "user",
	"team_repos":      "repo",
	"collaborators":   "user",
	"contributors":    "user",
	"subscribers":     "user",
	"commits":         "commit",
	"issues":          "issue",
	"issue_comments":  "issue_comment",
	"review_comments": "review_comment",
	"commit_comments": "commit_comment",
	"pull_requests":   "pull_request",
	"deployments":     "deployment",
	"statuses":        "status",
	"events":          "",
}

func elementTypeFor(reqType string) string {
	return elementTypeByCollection[reqType]
}

// Payload field-reading shortcuts re-exported for brevity in handler files.
var (
	fieldString = payload.String
	fieldObject = payload.Object
	fieldID     = payload.ID
)
