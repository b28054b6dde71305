package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"elliott/internal/core"
)

func (s Service) FindBugs(ctx context.Context, req FindBugsRequest) (FindBugsResult, error) {
	filter := core.MergeBugFilter(req.Filter)
	query := core.NewBugQuery(ctx, filter, req.TargetReleases)
	queryURL := query.URL()

	log.Info().
		Strs("target_releases", req.TargetReleases).
		Msg("searching bugzilla for MODIFIED bugs")
	if req.Verbose {
		log.Info().Str("url", queryURL).Msg("bug query")
	}

	bugs, err := s.BugTracker.Query(ctx, queryURL)
	if err != nil {
		return FindBugsResult{}, err
	}
	log.Info().
		Int("count", len(bugs)).
		Str("target_releases", strings.Join(req.TargetReleases, ",")).
		Msg("found bugs")
	return FindBugsResult{QueryURL: queryURL, Bugs: bugs}, nil
}
