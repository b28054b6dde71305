package app

import (
	"context"

	"elliott/internal/core"
)

func (s Service) FetchBuilds(ctx context.Context, req FetchBuildsRequest) (FetchBuildsResult, error) {
	advisory, err := requireAdvisory(req.Advisory)
	if err != nil {
		return FetchBuildsResult{}, err
	}
	body, err := s.Advisory.FetchBuilds(ctx, advisory)
	if err != nil {
		return FetchBuildsResult{}, err
	}
	streams, err := core.ParseBuilds(body)
	if err != nil {
		return FetchBuildsResult{}, err
	}
	return FetchBuildsResult{Advisory: advisory, Streams: streams}, nil
}
