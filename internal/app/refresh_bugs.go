package app

import (
	"context"

	"github.com/rs/zerolog/log"
)

// RefreshBugs always issues exactly one request, even for an empty list.
func (s Service) RefreshBugs(ctx context.Context, req RefreshBugsRequest) (RefreshBugsResult, error) {
	log.Info().
		Int("count", len(req.Bugs)).
		Msg("refreshing bugs in errata tool")
	if err := s.Advisory.RefreshBugs(ctx, req.Bugs); err != nil {
		return RefreshBugsResult{}, err
	}
	return RefreshBugsResult{Count: len(req.Bugs)}, nil
}
