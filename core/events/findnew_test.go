package events

import (
	"context"
	"fmt"
	"testing"

	"github.com/relabs-tech/ghcrawler/core/document"
	"github.com/relabs-tech/ghcrawler/core/store"
)

// TestFindNewDedupesAgainstStore is scenario S6 from spec.md §8: store
// contains events 3 and 4; input is ids 0..19; expected output is 18
// events with 3 and 4 absent, original order otherwise preserved.
func TestFindNewDedupesAgainstStore(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	const repoURL = "http://x/repo/1"
	for _, id := range []string{"3", "4"} {
		doc := document.New("PushEvent", repoURL+"/events/"+id, nil)
		doc.Metadata.Links["self"] = document.Link{
			Type: document.LinkResource,
			Href: "urn:repo:1:PushEvent:" + id,
		}
		if err := s.Upsert(ctx, doc); err != nil {
			t.Fatal(err)
		}
	}

	var page []Event
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("%d", i)
		page = append(page, Event{ID: id, RepoURL: repoURL, Raw: id})
	}

	out, err := FindNew(ctx, s, page)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 18 {
		t.Fatalf("expected 18 events, got %d", len(out))
	}
	for _, ev := range out {
		if ev.ID == "3" || ev.ID == "4" {
			t.Fatalf("expected id %s to be filtered out", ev.ID)
		}
	}
	// original order preserved
	want := 0
	for _, ev := range out {
		for want == 3 || want == 4 {
			want++
		}
		if ev.ID != fmt.Sprintf("%d", want) {
			t.Fatalf("order not preserved: got %s want %d", ev.ID, want)
		}
		want++
	}
}

func TestFindNewPropagatesStoreFailure(t *testing.T) {
	s := store.NewMemory()
	s.SetUnavailable(true)
	_, err := FindNew(context.Background(), s, []Event{{ID: "1", RepoURL: "http://x/repo/1"}})
	if err == nil {
		t.Fatal("expected error")
	}
}
