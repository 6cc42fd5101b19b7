package document

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestMarshalRoundTrip(t *testing.T) {
	doc := New("repo", "http://x/repo/12", map[string]any{"id": float64(12), "name": "foo"})
	doc.Metadata.Links["self"] = Link{Type: LinkResource, Href: "urn:repo:12"}
	doc.Metadata.Version = 3

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	var flat map[string]any
	if err := json.Unmarshal(raw, &flat); err != nil {
		t.Fatal(err)
	}
	if _, ok := flat["_metadata"]; !ok {
		t.Fatal("expected _metadata at top level")
	}
	if flat["name"] != "foo" {
		t.Fatalf("expected body field hoisted to top level, got %v", flat)
	}

	var back Document
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if back.Body["name"] != "foo" {
		t.Fatalf("round trip lost body field: %+v", back.Body)
	}
	if back.Metadata.Version != 3 {
		t.Fatalf("round trip lost version: %+v", back.Metadata)
	}
	if back.SelfHref() != "urn:repo:12" {
		t.Fatalf("round trip lost self href: %s", back.SelfHref())
	}
}
