package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"elliott/internal/core"
	"elliott/internal/types"
)

// Sweep runs find, flag, refresh and attach in that order. Nothing is
// skipped for an empty bug list and nothing is rolled back on failure.
func (s Service) Sweep(ctx context.Context, req SweepRequest) (SweepResult, error) {
	advisory, err := requireAdvisory(req.Advisory)
	if err != nil {
		return SweepResult{}, err
	}
	policy, err := normalizePolicy(req.OnError)
	if err != nil {
		return SweepResult{}, err
	}
	flags := sweepFlags(req)
	if strings.TrimSpace(req.Flag) == "" && req.AutoFlag && len(flags) == 0 {
		return SweepResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("auto-flag requires at least one target release")
	}

	found, err := s.FindBugs(ctx, FindBugsRequest{
		TargetReleases: req.TargetReleases,
		Filter:         req.Filter,
		Verbose:        req.Verbose,
	})
	if err != nil {
		return SweepResult{}, err
	}
	result := SweepResult{QueryURL: found.QueryURL, Bugs: found.Bugs}
	operations := 0

	for _, flag := range flags {
		flagged, err := s.FlagBugs(ctx, FlagBugsRequest{Flag: flag, Bugs: result.Bugs, OnError: policy})
		result.Flags = append(result.Flags, flagged)
		result.Failures = append(result.Failures, flagged.Failures...)
		operations += len(result.Bugs)
		if stopSweep(err, policy) {
			return result, err
		}
	}

	if _, err := s.RefreshBugs(ctx, RefreshBugsRequest{Bugs: result.Bugs}); err != nil {
		return result, err
	}

	added, err := s.AddBugs(ctx, AddBugsRequest{Advisory: advisory, Bugs: result.Bugs, OnError: policy})
	result.Added = added.Added
	result.Failures = append(result.Failures, added.Failures...)
	operations += len(result.Bugs)
	if stopSweep(err, policy) {
		return result, err
	}

	log.Info().
		Str("advisory", advisory).
		Int("bugs", len(result.Bugs)).
		Int("added", len(result.Added)).
		Int("failures", len(result.Failures)).
		Msg("sweep finished")
	return result, partialFailure("sweep", result.Failures, operations)
}

// stopSweep reports whether a flag or attach error ends the sweep. Under
// continue only the per-bug summary error lets the sweep go on; anything
// else (a cancelled context, say) means bugs were skipped.
func stopSweep(err error, policy types.FailurePolicy) bool {
	if err == nil {
		return false
	}
	return policy == types.FailurePolicyAbort || errbuilder.CodeOf(err) != errbuilder.CodeAborted
}

func sweepFlags(req SweepRequest) []string {
	candidates := []string{strings.TrimSpace(req.Flag)}
	if req.AutoFlag {
		candidates = append(candidates, core.ReleaseFlags(req.TargetReleases)...)
	}
	seen := make(map[string]struct{}, len(candidates))
	var flags []string
	for _, flag := range candidates {
		if flag == "" {
			continue
		}
		if _, ok := seen[flag]; ok {
			continue
		}
		seen[flag] = struct{}{}
		flags = append(flags, flag)
	}
	return flags
}
