package policy

import "testing"

// TestTransitivityTransitionTable checks every (T_p, R) pair from spec.md
// §4.3 against ChildFor.
func TestTransitivityTransitionTable(t *testing.T) {
	cases := []struct {
		parent Transitivity
		role   EdgeRole
		want   Transitivity
	}{
		{Shallow, EdgeCollectionPage, Shallow},
		{Shallow, EdgeRootCollectionElement, Shallow},
		{Shallow, EdgeCollectionElement, Shallow},
		{Shallow, EdgeResource, Shallow},

		{DeepShallow, EdgeCollectionPage, DeepShallow},
		{DeepShallow, EdgeRootCollectionElement, Shallow},
		{DeepShallow, EdgeCollectionElement, DeepShallow},
		{DeepShallow, EdgeResource, Shallow},

		{DeepDeep, EdgeCollectionPage, DeepDeep},
		{DeepDeep, EdgeRootCollectionElement, DeepShallow},
		{DeepDeep, EdgeCollectionElement, DeepShallow},
		{DeepDeep, EdgeResource, DeepShallow},
	}

	for _, c := range cases {
		p := Policy{Transitivity: c.parent, Freshness: Match, Fetch: FetchStorage}
		got := p.ChildFor(c.role)
		if got.Transitivity != c.want {
			t.Errorf("%s/%s: got %s want %s", c.parent, c.role, got.Transitivity, c.want)
		}
		if got.Freshness != p.Freshness || got.Fetch != p.Fetch {
			t.Errorf("%s/%s: freshness/fetch did not propagate unchanged", c.parent, c.role)
		}
	}
}

func TestCanHandleAlwaysNeverSkips(t *testing.T) {
	p := Policy{Freshness: Always}
	if !p.CanHandle(99, 1, "x", "x") {
		t.Fatal("always should never skip")
	}
}

func TestCanHandleMatchSkipsOnEtagEquality(t *testing.T) {
	p := Policy{Freshness: Match}
	if p.CanHandle(0, 1, "abc", "abc") {
		t.Fatal("match should skip when etags are equal")
	}
	if !p.CanHandle(0, 1, "abc", "def") {
		t.Fatal("match should not skip when etags differ")
	}
}

func TestCanHandleVersionSkipsWhenStoredVersionReachesCurrent(t *testing.T) {
	p := Policy{Freshness: Version}
	if p.CanHandle(3, 3, "", "") {
		t.Fatal("version should skip when stored version >= current")
	}
	if p.CanHandle(4, 3, "", "") {
		t.Fatal("version should skip when stored version > current")
	}
	if !p.CanHandle(2, 3, "", "") {
		t.Fatal("version should not skip when stored version < current")
	}
}

func TestUpdatePolicyDecaysTransitivity(t *testing.T) {
	p := Policy{Transitivity: DeepDeep, Freshness: Always, Update: true}
	child := p.ChildFor(EdgeCollectionPage)
	if child.Transitivity != DeepShallow {
		t.Fatalf("expected decay to deepShallow, got %s", child.Transitivity)
	}
	grandchild := child.ChildFor(EdgeCollectionPage)
	if grandchild.Transitivity != Shallow {
		t.Fatalf("expected decay to shallow, got %s", grandchild.Transitivity)
	}
	if grandchild.Update {
		t.Fatal("update flag should clear once decayed to shallow")
	}
}
