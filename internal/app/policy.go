package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"elliott/internal/types"
)

func normalizePolicy(policy types.FailurePolicy) (types.FailurePolicy, error) {
	switch types.FailurePolicy(strings.ToLower(strings.TrimSpace(string(policy)))) {
	case "", types.FailurePolicyAbort:
		return types.FailurePolicyAbort, nil
	case types.FailurePolicyContinue:
		return types.FailurePolicyContinue, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported failure policy: %s", policy))
	}
}

func requireAdvisory(advisory string) (string, error) {
	trimmed := strings.TrimSpace(advisory)
	if trimmed == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("advisory is required")
	}
	return trimmed, nil
}

// partialFailure summarizes the per-bug failures collected while running
// under FailurePolicyContinue.
func partialFailure(action string, failures []types.ItemFailure, total int) error {
	if len(failures) == 0 {
		return nil
	}
	causes := make([]error, 0, len(failures))
	for _, failure := range failures {
		causes = append(causes, fmt.Errorf("bug %s: %w", failure.Bug, failure.Err))
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeAborted).
		WithMsg(fmt.Sprintf("%s failed for %d of %d bugs", action, len(failures), total)).
		WithCause(errors.Join(causes...))
}
