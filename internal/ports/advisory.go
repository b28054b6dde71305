package ports

import (
	"context"

	"elliott/internal/types"
)

// AdvisoryPort talks to the advisory tracking service.
type AdvisoryPort interface {
	RefreshBugs(ctx context.Context, bugs []types.BugID) error
	AddBug(ctx context.Context, advisory string, bug types.BugID) error
	// FetchBuilds returns the raw builds document for an advisory.
	FetchBuilds(ctx context.Context, advisory string) ([]byte, error)
}

// CredentialPort produces the Authorization header value for one request.
// An empty value means the request is sent unauthenticated.
type CredentialPort interface {
	Authorization(ctx context.Context, targetURL string) (string, error)
}
