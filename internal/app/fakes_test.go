package app

import (
	"context"
	"fmt"

	"elliott/internal/types"
)

// call is one recorded collaborator interaction, shared by both fakes so
// tests can assert cross-collaborator ordering.
type call struct {
	Kind string
	Arg  string
	Bug  types.BugID
}

type callLog struct {
	calls []call
}

func (l *callLog) kinds(kind string) []call {
	var out []call
	for _, c := range l.calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

type fakeBugTracker struct {
	log      *callLog
	bugs     []types.BugID
	queryErr error
	failOn   map[types.BugID]error
	onQuery  func()
	onModify func()
}

func (f *fakeBugTracker) Query(_ context.Context, queryURL string) ([]types.BugID, error) {
	f.log.calls = append(f.log.calls, call{Kind: "query", Arg: queryURL})
	if f.onQuery != nil {
		f.onQuery()
	}
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return append([]types.BugID(nil), f.bugs...), nil
}

func (f *fakeBugTracker) Modify(_ context.Context, flag string, bug types.BugID) error {
	f.log.calls = append(f.log.calls, call{Kind: "modify", Arg: flag, Bug: bug})
	if f.onModify != nil {
		f.onModify()
	}
	return f.failOn[bug]
}

type fakeAdvisory struct {
	log        *callLog
	refreshErr error
	failOn     map[types.BugID]error
	builds     []byte
	onAdd      func()
}

func (f *fakeAdvisory) RefreshBugs(_ context.Context, bugs []types.BugID) error {
	f.log.calls = append(f.log.calls, call{Kind: "refresh", Arg: fmt.Sprint(types.BugIDStrings(bugs))})
	return f.refreshErr
}

func (f *fakeAdvisory) AddBug(_ context.Context, advisory string, bug types.BugID) error {
	f.log.calls = append(f.log.calls, call{Kind: "add_bug", Arg: advisory, Bug: bug})
	if f.onAdd != nil {
		f.onAdd()
	}
	return f.failOn[bug]
}

func (f *fakeAdvisory) FetchBuilds(_ context.Context, advisory string) ([]byte, error) {
	f.log.calls = append(f.log.calls, call{Kind: "builds", Arg: advisory})
	return f.builds, nil
}

func newFakeService(bugs ...types.BugID) (Service, *fakeBugTracker, *fakeAdvisory, *callLog) {
	log := &callLog{}
	tracker := &fakeBugTracker{log: log, bugs: bugs}
	advisory := &fakeAdvisory{log: log}
	return Service{BugTracker: tracker, Advisory: advisory}, tracker, advisory, log
}
