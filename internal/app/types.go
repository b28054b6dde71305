package app

import "elliott/internal/types"

type FindBugsRequest struct {
	TargetReleases []string
	Filter         types.BugFilter
	Verbose        bool
}

type FindBugsResult struct {
	QueryURL string
	Bugs     []types.BugID
}

type FlagBugsRequest struct {
	Flag    string
	Bugs    []types.BugID
	OnError types.FailurePolicy
}

type FlagBugsResult struct {
	// Flag is the value sent to the tracker, suffix included.
	Flag     string
	Flagged  []types.BugID
	Failures []types.ItemFailure
}

type RefreshBugsRequest struct {
	Bugs []types.BugID
}

type RefreshBugsResult struct {
	Count int
}

type AddBugsRequest struct {
	Advisory string
	Bugs     []types.BugID
	OnError  types.FailurePolicy
}

type AddBugsResult struct {
	Advisory string
	Added    []types.BugID
	Failures []types.ItemFailure
}

type SweepRequest struct {
	TargetReleases []string
	Advisory       string
	Flag           string
	// AutoFlag also applies aos-<release> for every target release.
	AutoFlag bool
	OnError  types.FailurePolicy
	Filter   types.BugFilter
	Verbose  bool
}

type SweepResult struct {
	QueryURL string
	Bugs     []types.BugID
	Flags    []FlagBugsResult
	Added    []types.BugID
	Failures []types.ItemFailure
}

type FetchBuildsRequest struct {
	Advisory string
}

type FetchBuildsResult struct {
	Advisory string
	Streams  []types.BuildStream
}
