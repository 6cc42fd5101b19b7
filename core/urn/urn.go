// Package urn builds the colon-delimited, value-typed identifiers that the
// crawler uses to name every entity, collection, and relation it discovers.
//
// A URN is never parsed back apart by this package; it is built once at the
// point an entity is linked or queued, and compared for equality everywhere
// else. Segment syntax is not validated — callers are trusted, exactly as
// spec.md §4.1 requires.
package urn

import "strings"

// URN is a value-typed, colon-delimited identifier, e.g. "urn:repo:12" or
// "urn:repo:12:issue:27:issue_comments".
type URN string

// String returns the URN's string form.
func (u URN) String() string {
	return string(u)
}

// qualified appends lowercased, colon-joined segments to prefix.
func qualified(prefix URN, parts ...string) URN {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, string(prefix))
	for _, p := range parts {
		segments = append(segments, strings.ToLower(p))
	}
	return URN(strings.Join(segments, ":"))
}

// Entity returns "urn:<type>:<id>".
func Entity(entityType, id string) URN {
	return qualified("urn", entityType, id)
}

// Child returns "<qualifier>:<type>:<id>".
func Child(qualifier URN, entityType, id string) URN {
	return qualified(qualifier, entityType, id)
}

// Collection returns "<qualifier>:<type>". Pluralization is the caller's
// choice; handlers pass whichever form (singular or plural) reads right for
// the role.
func Collection(qualifier URN, collectionType string) URN {
	return qualified(qualifier, collectionType)
}

// Relation returns "<qualifier>:<type>:pages:*", the wildcard form used for
// many-to-many edges.
func Relation(qualifier URN, relationType string) URN {
	return qualified(qualifier, relationType, "pages", "*")
}

// Qualified is the general form: append arbitrary segments to a prefix.
func Qualified(prefix URN, parts ...string) URN {
	return qualified(prefix, parts...)
}
