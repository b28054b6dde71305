// Package testutil provides shared test helpers used across integration
// and unit test packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// FailingBugID makes the fake bugzilla "modify" exit non-zero.
const FailingBugID = "999"

const fakeBugzillaScript = `#!/bin/sh
echo "$@" >> %q
case "$1" in
query)
	printf '%s'
	;;
modify)
	if [ "$4" = %q ]; then
		echo "bug $4 does not exist" >&2
		exit 1
	fi
	;;
esac
`

// FakeBugzilla is a shell script standing in for the bugzilla CLI. It
// appends every invocation's arguments to a log file.
type FakeBugzilla struct {
	Binary  string
	LogPath string
}

// NewFakeBugzilla writes a fake bugzilla binary whose "query" prints ids,
// one per line. It skips the test on platforms without a POSIX shell.
func NewFakeBugzilla(t *testing.T, ids ...string) FakeBugzilla {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake bugzilla requires a POSIX shell")
	}
	dir := t.TempDir()
	fake := FakeBugzilla{
		Binary:  filepath.Join(dir, "bugzilla"),
		LogPath: filepath.Join(dir, "calls.log"),
	}
	output := ""
	if len(ids) > 0 {
		output = strings.Join(ids, `\n`) + `\n`
	}
	script := fmt.Sprintf(fakeBugzillaScript, fake.LogPath, output, FailingBugID)
	require.NoError(t, os.WriteFile(fake.Binary, []byte(script), 0755))
	return fake
}

// Calls returns the argument lines recorded so far.
func (f FakeBugzilla) Calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.LogPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
