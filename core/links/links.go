// Package links attaches typed link entries to a document's _metadata.links
// map, per spec.md §4.2. Every call is idempotent at the role level: a
// later write for the same role overwrites the earlier one.
package links

import (
	"github.com/relabs-tech/ghcrawler/core/document"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// AddResource sets a singleton outbound edge at role.
func AddResource(doc *document.Document, role string, href urn.URN) {
	set(doc, role, document.Link{Type: document.LinkResource, Href: href})
}

// AddCollection sets an exhaustively-crawled child collection at role.
func AddCollection(doc *document.Document, role string, href urn.URN) {
	set(doc, role, document.Link{Type: document.LinkCollection, Href: href})
}

// AddRelation sets a many-to-many edge at role. href is expected to end in
// ":pages:*".
func AddRelation(doc *document.Document, role string, href urn.URN) {
	set(doc, role, document.Link{Type: document.LinkRelation, Href: href})
}

// AddResourceList sets a resource link carrying multiple hrefs (e.g. labels,
// assignees) at role.
func AddResourceList(doc *document.Document, role string, hrefs []urn.URN) {
	set(doc, role, document.Link{Type: document.LinkResource, Hrefs: hrefs})
}

// AddSelfAndSiblings is the conventional shorthand setting both "self" and
// "siblings" at once.
func AddSelfAndSiblings(doc *document.Document, self, siblings urn.URN) {
	AddResource(doc, "self", self)
	AddCollection(doc, "siblings", siblings)
}

func set(doc *document.Document, role string, link document.Link) {
	if doc.Metadata.Links == nil {
		doc.Metadata.Links = map[string]document.Link{}
	}
	doc.Metadata.Links[role] = link
}
