package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"elliott/internal/core"
	"elliott/internal/types"
)

// FlagBugs sets flag+ on each bug in order, one tracker call per bug.
func (s Service) FlagBugs(ctx context.Context, req FlagBugsRequest) (FlagBugsResult, error) {
	if strings.TrimSpace(req.Flag) == "" {
		return FlagBugsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("flag is required")
	}
	policy, err := normalizePolicy(req.OnError)
	if err != nil {
		return FlagBugsResult{}, err
	}
	result := FlagBugsResult{Flag: core.AffirmativeFlag(req.Flag)}
	for _, bug := range req.Bugs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		log.Info().
			Str("bug", string(bug)).
			Str("flag", result.Flag).
			Msg("flagging bug")
		if err := s.BugTracker.Modify(ctx, result.Flag, bug); err != nil {
			if policy == types.FailurePolicyAbort {
				return result, err
			}
			log.Warn().Err(err).Str("bug", string(bug)).Msg("failed to flag bug")
			result.Failures = append(result.Failures, types.ItemFailure{Bug: bug, Err: err})
			continue
		}
		result.Flagged = append(result.Flagged, bug)
	}
	return result, partialFailure("flagging "+result.Flag, result.Failures, len(req.Bugs))
}
