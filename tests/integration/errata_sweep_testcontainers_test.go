//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"elliott/internal/adapters"
	"elliott/internal/app"
	"elliott/internal/core"
	"elliott/internal/types"
	"elliott/tests/testutil"
)

type errataRequest struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Body   string `json:"body"`
	User   string `json:"user"`
	Pass   string `json:"pass"`
}

func TestE2ESweepWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers e2e in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startErrataMock(ctx, t)
	t.Cleanup(cleanup)
	bugzilla := testutil.NewFakeBugzilla(t, "12345", "67890", "12345")

	service, err := app.NewService(app.Config{
		BugzillaBinary: bugzilla.Binary,
		Errata: adapters.ErrataConfig{
			Endpoint:   endpoint,
			TimeoutSec: 10,
			Retries:    2,
		},
		Credentials: adapters.CredentialsConfig{
			Method:   types.AuthMethodBasic,
			Username: "releng",
			Password: "secret",
		},
	})
	require.NoError(t, err)

	result, err := service.Sweep(ctx, app.SweepRequest{
		TargetReleases: []string{"3.9.x"},
		Advisory:       "32916",
		Flag:           "aos-3.9.x",
		Filter:         core.DefaultBugFilter(),
	})
	require.NoError(t, err)
	assert.Equal(t, []types.BugID{"12345", "67890", "12345"}, result.Bugs)

	calls := bugzilla.Calls(t)
	require.Len(t, calls, 4)
	assert.Equal(t, []string{
		"modify --flag aos-3.9.x+ 12345",
		"modify --flag aos-3.9.x+ 67890",
		"modify --flag aos-3.9.x+ 12345",
	}, calls[1:])

	expected := []errataRequest{
		{Method: "POST", Path: "/api/v1/bug/refresh", Body: `["12345","67890","12345"]`, User: "releng", Pass: "secret"},
		{Method: "POST", Path: "/api/v1/erratum/32916/add_bug", Body: `{"bug":"12345"}`, User: "releng", Pass: "secret"},
		{Method: "POST", Path: "/api/v1/erratum/32916/add_bug", Body: `{"bug":"67890"}`, User: "releng", Pass: "secret"},
		{Method: "POST", Path: "/api/v1/erratum/32916/add_bug", Body: `{"bug":"12345"}`, User: "releng", Pass: "secret"},
	}
	if diff := cmp.Diff(expected, fetchErrataRequests(ctx, t, endpoint)); diff != "" {
		t.Fatalf("unexpected errata requests (-want +got):\n%s", diff)
	}
}

func TestE2EFetchBuildsWithTestcontainers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers e2e in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startErrataMock(ctx, t)
	t.Cleanup(cleanup)

	service, err := app.NewService(app.Config{
		Errata:      adapters.ErrataConfig{Endpoint: endpoint},
		Credentials: adapters.CredentialsConfig{Method: types.AuthMethodNone},
	})
	require.NoError(t, err)

	result, err := service.FetchBuilds(ctx, app.FetchBuildsRequest{Advisory: "32916"})
	require.NoError(t, err)
	rendered, err := core.RenderBuilds(result.Streams, types.OutputFormatText)
	require.NoError(t, err)
	assert.Equal(t, "3.9.0\n-----\npkgA-1.0\npkgB-2.0\n\nRHEL-7-OSE-3.9\n--------------\nopenshift-3.9.31\n", rendered)

	_, err = service.FetchBuilds(ctx, app.FetchBuildsRequest{Advisory: "404"})
	require.Error(t, err)
}

func fetchErrataRequests(ctx context.Context, t *testing.T, endpoint string) []errataRequest {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/requests", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var recorded []errataRequest
	require.NoError(t, json.Unmarshal(body, &recorded))
	return recorded
}

func startErrataMock(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"python", "-c", errataMockScript},
		WaitingFor:   wait.ForListeningPort("8080/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

const errataMockScript = `
import base64
import json
from http.server import BaseHTTPRequestHandler, ThreadingHTTPServer

requests = []

BUILDS = {
    "RHEL-7-OSE-3.9": {"builds": [{"openshift-3.9.31": {"nvr": "openshift-3.9.31"}}]},
    "3.9.0": {"builds": [{"pkgB-2.0": {}}, {"pkgA-1.0": {}}]},
}

def parse_basic_auth(header_value):
    if not header_value or not header_value.startswith("Basic "):
        return "", ""
    try:
        raw = header_value.split(" ", 1)[1]
        decoded = base64.b64decode(raw).decode("utf-8")
        user, _, password = decoded.partition(":")
        return user, password
    except Exception:
        return "", ""

class Handler(BaseHTTPRequestHandler):
    def do_POST(self):
        length = int(self.headers.get("Content-Length", "0"))
        body = self.rfile.read(length).decode("utf-8") if length > 0 else ""
        user, password = parse_basic_auth(self.headers.get("Authorization", ""))
        requests.append(
            {"method": "POST", "path": self.path, "body": body, "user": user, "pass": password}
        )
        self.send_response(201)
        self.send_header("Content-Type", "application/json")
        self.end_headers()
        self.wfile.write(b"{}")

    def do_GET(self):
        if self.path == "/requests":
            self.reply(200, requests)
            return
        if self.path == "/api/v1/erratum/32916/builds":
            self.reply(200, BUILDS)
            return
        self.reply(404, {"error": "not found"})

    def reply(self, status, payload):
        self.send_response(status)
        self.send_header("Content-Type", "application/json")
        self.end_headers()
        self.wfile.write(json.dumps(payload).encode("utf-8"))

    def log_message(self, format, *args):
        return

def main():
    server = ThreadingHTTPServer(("0.0.0.0", 8080), Handler)
    server.serve_forever()

if __name__ == "__main__":
    main()
`
