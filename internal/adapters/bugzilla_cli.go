package adapters

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"elliott/internal/ports"
	"elliott/internal/shared"
	"elliott/internal/types"
)

const defaultBugzillaBinary = "bugzilla"
const defaultCommandTimeout = 300 * time.Second

// BugzillaCLIAdapter shells out to python-bugzilla's "bugzilla" command.
type BugzillaCLIAdapter struct {
	Binary  string
	Timeout time.Duration
}

func NewBugzillaCLIAdapter(binary string, timeoutSec int) BugzillaCLIAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = defaultBugzillaBinary
	}
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	return BugzillaCLIAdapter{
		Binary:  binary,
		Timeout: timeout,
	}
}

func (a BugzillaCLIAdapter) Query(ctx context.Context, queryURL string) ([]types.BugID, error) {
	if strings.TrimSpace(queryURL) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("bug query url is empty")
	}
	output, err := a.run(ctx, "query", "--ids", "--from-url="+queryURL)
	if err != nil {
		return nil, err
	}
	return parseBugIDs(output), nil
}

func (a BugzillaCLIAdapter) Modify(ctx context.Context, flag string, bug types.BugID) error {
	if strings.TrimSpace(flag) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("flag is empty")
	}
	if strings.TrimSpace(string(bug)) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("bug id is empty")
	}
	_, err := a.run(ctx, "modify", "--flag", flag, string(bug))
	return err
}

func (a BugzillaCLIAdapter) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	log.Debug().
		Str("binary", a.Binary).
		Strs("args", args).
		Msg("running bugzilla command")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("bugzilla command not found").
				WithCause(err)
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeDeadlineExceeded).
				WithMsg("bugzilla command timed out").
				WithCause(err)
		}
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("bugzilla command failed").
			WithCause(shared.CommandError(stderr.Bytes(), err))
	}
	return stdout.String(), nil
}

// parseBugIDs keeps one id per non-blank line, in output order and with
// duplicates intact.
func parseBugIDs(output string) []types.BugID {
	ids := []types.BugID{}
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		ids = append(ids, types.BugID(trimmed))
	}
	return ids
}

var _ ports.BugTrackerPort = BugzillaCLIAdapter{}
