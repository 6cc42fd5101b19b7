// Package document defines the canonical document shape the processor
// produces: an arbitrary JSON object plus the _metadata envelope that
// carries its place in the URN graph.
package document

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/relabs-tech/ghcrawler/core/urn"
)

// LinkType is the tag on a Link entry.
type LinkType string

const (
	// LinkResource is a singleton outbound edge.
	LinkResource LinkType = "resource"
	// LinkCollection is a child collection fully enumerated under a qualifier.
	LinkCollection LinkType = "collection"
	// LinkRelation is a many-to-many edge living in its own collection.
	LinkRelation LinkType = "relation"
)

// Link is one entry in _metadata.links. Exactly one of Href/Hrefs is set,
// following the shape implied by its Type.
type Link struct {
	Type  LinkType  `json:"type"`
	Href  urn.URN   `json:"href,omitempty"`
	Hrefs []urn.URN `json:"hrefs,omitempty"`
}

// Metadata is the _metadata envelope stamped onto every document the
// processor touches.
type Metadata struct {
	Type        string          `json:"type"`
	URL         string          `json:"url"`
	Links       map[string]Link `json:"links"`
	Version     int             `json:"version"`
	Etag        string          `json:"etag,omitempty"`
	FetchedAt   time.Time       `json:"fetchedAt,omitempty"`
	ProcessedAt time.Time       `json:"processedAt,omitempty"`
	Extra       map[string]any  `json:"extra,omitempty"`
}

// Document is a fetched JSON payload enriched with _metadata. Body holds the
// raw decoded payload fields (as a map, mirroring what the fetch layer hands
// the processor); Metadata is maintained entirely by this core.
type Document struct {
	Body     map[string]any `json:"-"`
	Metadata Metadata       `json:"_metadata"`
}

// New creates an empty document of the given type, ready for a handler to
// populate. Links starts as an empty, non-nil map so link builder calls are
// idempotent from the first call (spec.md §4.2).
func New(entityType, url string, body map[string]any) *Document {
	if body == nil {
		body = map[string]any{}
	}
	return &Document{
		Body: body,
		Metadata: Metadata{
			Type:  entityType,
			URL:   url,
			Links: map[string]Link{},
		},
	}
}

// SelfHref returns the URN stored at _metadata.links.self.href, or "" if no
// self link has been set yet.
func (d *Document) SelfHref() urn.URN {
	if d == nil {
		return ""
	}
	return d.Metadata.Links["self"].Href
}

// MarshalJSON flattens Body's fields alongside "_metadata" at the top
// level, matching the wire shape spec.md §3 describes: "A JSON object with
// an added _metadata".
func (d Document) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(d.Body)+1)
	for k, v := range d.Body {
		flat[k] = v
	}
	flat["_metadata"] = d.Metadata
	return json.Marshal(flat)
}

// UnmarshalJSON is the inverse of MarshalJSON: every top-level field except
// "_metadata" becomes Body; "_metadata" is decoded into Metadata.
func (d *Document) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if raw, ok := flat["_metadata"]; ok {
		if err := json.Unmarshal(raw, &d.Metadata); err != nil {
			return err
		}
		delete(flat, "_metadata")
	}
	body := make(map[string]any, len(flat))
	for k, raw := range flat {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		body[k] = v
	}
	d.Body = body
	return nil
}
