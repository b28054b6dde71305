package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"elliott/internal/types"
)

func (s Service) AddBugs(ctx context.Context, req AddBugsRequest) (AddBugsResult, error) {
	advisory, err := requireAdvisory(req.Advisory)
	if err != nil {
		return AddBugsResult{}, err
	}
	policy, err := normalizePolicy(req.OnError)
	if err != nil {
		return AddBugsResult{}, err
	}
	result := AddBugsResult{Advisory: advisory}
	for _, bug := range req.Bugs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		log.Info().
			Str("bug", string(bug)).
			Str("advisory", advisory).
			Msg("adding bug to advisory")
		if err := s.Advisory.AddBug(ctx, advisory, bug); err != nil {
			if policy == types.FailurePolicyAbort {
				return result, err
			}
			log.Warn().Err(err).Str("bug", string(bug)).Msg("failed to add bug")
			result.Failures = append(result.Failures, types.ItemFailure{Bug: bug, Err: err})
			continue
		}
		result.Added = append(result.Added, bug)
	}
	return result, partialFailure("adding bugs to advisory "+advisory, result.Failures, len(req.Bugs))
}
