// Package policy implements the traversal policy algebra: the small set of
// transitions that decide, at every enqueue site, how far a child request
// should be followed and under what freshness rule it should be
// reprocessed. See spec.md §3 and §4.3.
package policy

// Transitivity controls how far the crawler follows edges outward from a
// processed entity.
type Transitivity string

const (
	Shallow     Transitivity = "shallow"
	DeepShallow Transitivity = "deepShallow"
	DeepDeep    Transitivity = "deepDeep" // a.k.a. forceForce
)

// Freshness controls when an already-seen document is reprocessed.
type Freshness string

const (
	Always   Freshness = "always"
	Match    Freshness = "match"
	Version  Freshness = "version"
	Mutables Freshness = "mutables"
)

// Fetch controls the fetch strategy. The processor itself never branches on
// it; it is read only by the (external) fetch layer, and is propagated
// unchanged by EdgeRole transitions except where noted.
type Fetch string

const (
	FetchNone          Fetch = "none"
	FetchStorage       Fetch = "storage"
	FetchOriginStorage Fetch = "originStorage"
	FetchMutables      Fetch = "mutables"
	FetchAlways        Fetch = "always"
)

// EdgeRole names the kind of edge a child request is reached through, for
// the purpose of the transitivity transition table.
type EdgeRole string

const (
	// EdgeCollectionPage is a follow-up page of the same collection.
	EdgeCollectionPage EdgeRole = "collection-page"
	// EdgeRootCollectionElement is an element of a root collection (orgs,
	// users).
	EdgeRootCollectionElement EdgeRole = "root-collection-element"
	// EdgeCollectionElement is an element of an interior collection.
	EdgeCollectionElement EdgeRole = "collection-element"
	// EdgeResource is a singleton outbound reference.
	EdgeResource EdgeRole = "resource"
)

// Policy is an immutable tuple of the three orthogonal traversal axes.
// Policies are value objects: every transition returns a new Policy rather
// than mutating the receiver.
type Policy struct {
	Transitivity Transitivity
	Freshness    Freshness
	Fetch        Fetch
	// Update marks a user-initiated force-refresh policy. A child of an
	// Update policy takes the parent's Transitivity decayed one level
	// (see ChildFor); Freshness and Fetch still propagate unchanged.
	Update bool
}

// transitivityTable is the table from spec.md §4.3.
var transitivityTable = map[Transitivity]map[EdgeRole]Transitivity{
	Shallow: {
		EdgeCollectionPage:        Shallow,
		EdgeRootCollectionElement: Shallow,
		EdgeCollectionElement:     Shallow,
		EdgeResource:              Shallow,
	},
	DeepShallow: {
		EdgeCollectionPage:        DeepShallow,
		EdgeRootCollectionElement: Shallow,
		EdgeCollectionElement:     DeepShallow,
		EdgeResource:              Shallow,
	},
	DeepDeep: {
		EdgeCollectionPage:        DeepDeep,
		EdgeRootCollectionElement: DeepShallow, // a.k.a. forceNormal
		EdgeCollectionElement:     DeepShallow,
		EdgeResource:              DeepShallow,
	},
}

// decayOnce returns the transitivity one column-step down from t, used for
// Update-policy decay along the same column regardless of which edge role
// triggered it.
func decayOnce(t Transitivity) Transitivity {
	switch t {
	case DeepDeep:
		return DeepShallow
	case DeepShallow:
		return Shallow
	default:
		return Shallow
	}
}

// ChildFor returns the policy a child request reached through edge role r
// should carry, per the transitivity transition table. Freshness and Fetch
// propagate unchanged. For an Update policy the table is not consulted: the
// child's Transitivity is the parent's decayed one level (deepDeep to
// deepShallow, deepShallow to shallow) whatever the edge role, and the
// Update flag clears on a child that has reached Shallow.
func (p Policy) ChildFor(r EdgeRole) Policy {
	row, ok := transitivityTable[p.Transitivity]
	if !ok {
		row = transitivityTable[Shallow]
	}
	childTransitivity, ok := row[r]
	if !ok {
		childTransitivity = Shallow
	}

	child := Policy{
		Transitivity: childTransitivity,
		Freshness:    p.Freshness,
		Fetch:        p.Fetch,
		Update:       p.Update,
	}
	if p.Update {
		child.Transitivity = decayOnce(p.Transitivity)
		if child.Transitivity == Shallow {
			child.Update = false
		}
	}
	return child
}

// CanHandle reports whether a document carrying storedVersion and
// storedEtag should be (re)processed by a processor of the given
// currentVersion, given this policy's Freshness axis and the freshly
// fetched etag. It implements the gate in spec.md §4.3; it does not decide
// UnknownType (that is the processor's job before consulting the policy at
// all).
func (p Policy) CanHandle(storedVersion, currentVersion int, storedEtag, fetchedEtag string) bool {
	switch p.Freshness {
	case Always:
		return true
	case Match:
		return storedEtag != fetchedEtag
	case Version, Mutables:
		return storedVersion < currentVersion
	default:
		return true
	}
}
