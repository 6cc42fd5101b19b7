package payload

// EventEnvelope is the common shape every GitHub activity event shares,
// independent of its type: an id, the actor who triggered it, the repo (or
// team, or org) it is scoped to, and a type-specific payload. The event
// handler in core/handlers decodes this first, then looks up a
// type-specific extra linker for the payload (spec.md §9's tagged-union
// approach).
type EventEnvelope struct {
	ID      string
	Actor   map[string]any
	Repo    map[string]any
	Org     map[string]any
	Team    map[string]any
	Payload map[string]any
}

// DecodeEventEnvelope pulls the common envelope fields out of a raw event
// body.
func DecodeEventEnvelope(body map[string]any) EventEnvelope {
	return EventEnvelope{
		ID:      ID(body, "id"),
		Actor:   Object(body, "actor"),
		Repo:    Object(body, "repo"),
		Org:     Object(body, "org"),
		Team:    Object(body, "team"),
		Payload: Object(body, "payload"),
	}
}

// EventTypes lists every event type this crawler registers a handler for,
// per spec.md §2's "~30 *Event types". Types not listed here still flow
// through the generic event handler if the host registers it under their
// name; handlers.RegisterEvents loops over this list at startup.
var EventTypes = []string{
	"CommitCommentEvent",
	"CreateEvent",
	"DeleteEvent",
	"DeploymentEvent",
	"DeploymentStatusEvent",
	"ForkEvent",
	"GollumEvent",
	"IssueCommentEvent",
	"IssuesEvent",
	"LabelEvent",
	"MemberEvent",
	"MembershipEvent",
	"MilestoneEvent",
	"OrganizationEvent",
	"OrgBlockEvent",
	"PageBuildEvent",
	"PingEvent",
	"ProjectCardEvent",
	"ProjectColumnEvent",
	"ProjectEvent",
	"PublicEvent",
	"PullRequestEvent",
	"PullRequestReviewEvent",
	"PullRequestReviewCommentEvent",
	"PushEvent",
	"ReleaseEvent",
	"RepositoryEvent",
	"RepositoryImportEvent",
	"SecurityAdvisoryEvent",
	"SponsorshipEvent",
	"StarEvent",
	"StatusEvent",
	"TeamEvent",
	"TeamAddEvent",
	"WatchEvent",
}
