package handlers

import "github.com/relabs-tech/ghcrawler/core/processor"

// RegisterAll wires every entity handler in this package into reg. It is
// the one place cmd/crawler needs to call to get a fully populated
// registry; individual RegisterX functions remain exported for callers
// that want a smaller surface (e.g. tests exercising one handler type).
func RegisterAll(reg *processor.Registry) {
	RegisterOrg(reg)
	RegisterUser(reg)
	RegisterRepo(reg)
	RegisterTeam(reg)
	RegisterCommit(reg)
	RegisterIssue(reg)
	RegisterPullRequest(reg)
	RegisterComments(reg)
	RegisterDeployment(reg)
	RegisterStatus(reg)
	RegisterCollection(reg)
	RegisterEvents(reg)
}
