package ports

import (
	"context"

	"elliott/internal/types"
)

// BugTrackerPort wraps the external bug tracker command-line tool.
type BugTrackerPort interface {
	// Query runs a saved-search URL and returns matching ids in the order
	// the tool printed them.
	Query(ctx context.Context, queryURL string) ([]types.BugID, error)

	// Modify sets a flag on a single bug. The flag value is passed through
	// verbatim, including any +/- suffix.
	Modify(ctx context.Context, flag string, bug types.BugID) error
}
