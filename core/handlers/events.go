package handlers

import (
	"context"

	"github.com/relabs-tech/ghcrawler/core/crawler"
	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/links"
	"github.com/relabs-tech/ghcrawler/core/payload"
	"github.com/relabs-tech/ghcrawler/core/processor"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// RegisterEvents adds the shared event handler under every type name in
// payload.EventTypes, plus any additional type names the caller supplies.
func RegisterEvents(reg *processor.Registry, extraTypes ...string) {
	for _, t := range payload.EventTypes {
		reg.Register(t, Event)
	}
	for _, t := range extraTypes {
		reg.Register(t, Event)
	}
}

// Event transforms a fetched activity event of any type (spec.md §4.7's
// "common envelope + per-type extra" approach): it qualifies the event's own
// self link under its owning repo/org/team plus the event type name, links
// the common envelope fields (actor, repo, org, team), then dispatches to a
// per-type extra linker for the handful of event types whose payload
// carries entities worth reaching. Event types with no registered extra
// linker are still fully linked by the common envelope; that is not an
// error. An event that names none of repo, org, or team is malformed: it
// has nowhere to be qualified.
func Event(ctx context.Context, req *crawler.Request) error {
	body := req.Document.Body
	id := fieldID(body, "id")
	if id == "" {
		return crawlererr.ErrMalformedPayload
	}
	env := payload.DecodeEventEnvelope(body)

	owner, ok := eventOwner(env)
	if !ok {
		return crawlererr.ErrMalformedPayload
	}

	self := urn.Child(owner, req.Type, id)
	links.AddSelfAndSiblings(req.Document, self, urn.Collection(owner, "events"))

	linkAndQueueResource(req, "actor", "user", fieldID(env.Actor, "id"), fieldString(env.Actor, "url"))
	linkAndQueueResource(req, "repo", "repo", fieldID(env.Repo, "id"), fieldString(env.Repo, "url"))
	linkAndQueueResource(req, "org", "org", fieldID(env.Org, "id"), fieldString(env.Org, "url"))
	linkAndQueueResource(req, "team", "team", fieldID(env.Team, "id"), fieldString(env.Team, "url"))

	if extra, ok := eventExtras[req.Type]; ok {
		extra(req, owner, env)
	}

	return nil
}

// eventOwner picks the entity an event is scoped under: the repo it
// occurred in, else the organization, else the team — in that order,
// mirroring the envelope's own field priority. An event naming none of the
// three cannot be placed in any collection and is malformed.
func eventOwner(env payload.EventEnvelope) (urn.URN, bool) {
	if id := fieldID(env.Repo, "id"); id != "" {
		return urn.Entity("repo", id), true
	}
	if id := fieldID(env.Org, "id"); id != "" {
		return urn.Entity("org", id), true
	}
	if id := fieldID(env.Team, "id"); id != "" {
		return urn.Entity("team", id), true
	}
	return "", false
}

// eventExtras maps an event type name to the function that links/queues the
// entities specific to that type's payload. Types not listed here carry
// only the common envelope.
var eventExtras = map[string]func(req *crawler.Request, owner urn.URN, env payload.EventEnvelope){
	"PullRequestEvent":              extraPullRequestEvent,
	"IssuesEvent":                   extraIssuesEvent,
	"IssueCommentEvent":             extraIssueCommentEvent,
	"PullRequestReviewCommentEvent": extraReviewCommentEvent,
	"CommitCommentEvent":            extraCommitCommentEvent,
	"StatusEvent":                   extraStatusEvent,
	"TeamEvent":                     extraTeamEvent,
	"DeploymentEvent":               extraDeploymentEvent,
	"DeploymentStatusEvent":         extraDeploymentStatusEvent,
}

func extraPullRequestEvent(req *crawler.Request, owner urn.URN, env payload.EventEnvelope) {
	pr := fieldObject(env.Payload, "pull_request")
	linkAndQueueResourceUnder(req, owner, "pull_request", "pull_request", fieldID(pr, "id"), fieldString(pr, "url"))
}

func extraIssuesEvent(req *crawler.Request, owner urn.URN, env payload.EventEnvelope) {
	issue := fieldObject(env.Payload, "issue")
	linkAndQueueResourceUnder(req, owner, "issue", "issue", fieldID(issue, "id"), fieldString(issue, "url"))
}

func extraIssueCommentEvent(req *crawler.Request, owner urn.URN, env payload.EventEnvelope) {
	issue := fieldObject(env.Payload, "issue")
	linkAndQueueResourceUnder(req, owner, "issue", "issue", fieldID(issue, "id"), fieldString(issue, "url"))
	comment := fieldObject(env.Payload, "comment")
	linkAndQueueResourceUnder(req, owner, "comment", "issue_comment", fieldID(comment, "id"), fieldString(comment, "url"))
}

func extraReviewCommentEvent(req *crawler.Request, owner urn.URN, env payload.EventEnvelope) {
	comment := fieldObject(env.Payload, "comment")
	linkAndQueueResourceUnder(req, owner, "comment", "review_comment", fieldID(comment, "id"), fieldString(comment, "url"))
}

func extraCommitCommentEvent(req *crawler.Request, owner urn.URN, env payload.EventEnvelope) {
	comment := fieldObject(env.Payload, "comment")
	linkAndQueueResourceUnder(req, owner, "comment", "commit_comment", fieldID(comment, "id"), fieldString(comment, "url"))
}

// extraTeamEvent links the team named in the payload as a bare entity: teams
// are a shared, globally-identified entity type (see team.go), not owned by
// the event's repo/org scope.
func extraTeamEvent(req *crawler.Request, owner urn.URN, env payload.EventEnvelope) {
	team := fieldObject(env.Payload, "team")
	linkAndQueueResource(req, "team", "team", fieldID(team, "id"), fieldString(team, "url"))
}

func extraDeploymentEvent(req *crawler.Request, owner urn.URN, env payload.EventEnvelope) {
	deployment := fieldObject(env.Payload, "deployment")
	linkAndQueueResourceUnder(req, owner, "deployment", "deployment", fieldID(deployment, "id"), fieldString(deployment, "url"))
}

func extraDeploymentStatusEvent(req *crawler.Request, owner urn.URN, env payload.EventEnvelope) {
	status := fieldObject(env.Payload, "deployment_status")
	linkAndQueueResourceUnder(req, owner, "deployment_status", "status", fieldID(status, "id"), fieldString(status, "url"))
}

// extraStatusEvent links the commit named by the event's sha, rather than
// queuing it (spec.md §8 scenario S3): a StatusEvent names a commit by sha
// alone, and no URL for that commit is ever present on the event, so there
// is nothing to fetch from here — the commit is reached when something else
// crawls the repo's commit history.
func extraStatusEvent(req *crawler.Request, owner urn.URN, env payload.EventEnvelope) {
	sha := fieldString(env.Payload, "sha")
	repoID := fieldID(env.Repo, "id")
	if sha == "" || repoID == "" {
		return
	}
	links.AddResource(req.Document, "commit", urn.Child(urn.Entity("repo", repoID), "commit", sha))
}
