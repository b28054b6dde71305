package core

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elliott/internal/types"
)

func TestTargetReleaseFragment(t *testing.T) {
	tests := []struct {
		name     string
		releases []string
		expected string
	}{
		{name: "none", releases: nil, expected: ""},
		{name: "single", releases: []string{"3.9.x"}, expected: "target_release=3.9.x&"},
		{
			name:     "keeps input order",
			releases: []string{"3.6.z", "3.4.z", "3.5.z"},
			expected: "target_release=3.6.z&target_release=3.4.z&target_release=3.5.z&",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TargetReleaseFragment(tt.releases)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, len(tt.releases), strings.Count(got, "target_release="))
		})
	}
}

func TestNewBugQueryTargetReleases(t *testing.T) {
	releases := []string{"3.9.x", "3.8.z", "3.9.x"}
	query := NewBugQuery(context.Background(), DefaultBugFilter(), releases)

	if diff := cmp.Diff(releases, query.Values("target_release")); diff != "" {
		t.Fatalf("unexpected target releases (-want +got):\n%s", diff)
	}

	rendered := query.URL()
	assert.Equal(t, len(releases), strings.Count(rendered, "target_release="))
	first := strings.Index(rendered, "target_release=3.9.x")
	second := strings.Index(rendered, "target_release=3.8.z")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
}

func TestNewBugQueryWithoutReleases(t *testing.T) {
	query := NewBugQuery(context.Background(), DefaultBugFilter(), nil)
	rendered := query.URL()

	assert.NotContains(t, rendered, "target_release")
	assert.NotContains(t, rendered, "&&")
	assert.True(t, strings.HasPrefix(rendered, DefaultBugzillaURL+"?bug_status=MODIFIED&"))
}

func TestNewBugQueryStandingFilter(t *testing.T) {
	query := NewBugQuery(context.Background(), DefaultBugFilter(), []string{"3.9.x"})

	assert.Equal(t, []string{"MODIFIED"}, query.Values("bug_status"))
	assert.Equal(t, []string{"OpenShift Container Platform"}, query.Values("product"))
	assert.Equal(t, []string{"cf_verified"}, query.Values("f4"))
	assert.Equal(t, []string{"FailedQA"}, query.Values("v4"))
	assert.Equal(t, []string{"notregexp"}, query.Values("short_desc_type"))
	assert.Contains(t, query.Values("version"), "unspecified")

	encoded := query.Encode()
	assert.Contains(t, encoded, "classification=Red%20Hat")
	assert.Contains(t, encoded, "product=OpenShift%20Container%20Platform")
	assert.Contains(t, encoded, "short_desc=%5C%5Bfork%5C%5D")

	// target releases sit between the short_desc terms and v1..v4.
	assert.Less(t, strings.Index(encoded, "short_desc_type="), strings.Index(encoded, "target_release="))
	assert.Less(t, strings.Index(encoded, "target_release="), strings.Index(encoded, "v1=RFE"))
}

func TestMergeBugFilter(t *testing.T) {
	merged := MergeBugFilter(types.BugFilter{
		Product:  "OpenShift Online",
		Versions: []string{"4.0.0"},
	})
	assert.Equal(t, DefaultBugzillaURL, merged.BaseURL)
	assert.Equal(t, "OpenShift Online", merged.Product)
	assert.Equal(t, DefaultStatus, merged.Status)
	assert.Equal(t, []string{"4.0.0"}, merged.Versions)
}

func TestBugQueryURLWithExistingQuery(t *testing.T) {
	query := BugQuery{
		BaseURL: "https://bugs.example.com/buglist.cgi?ctype=csv",
		Params:  []QueryParam{{Key: "bug_status", Value: "ON_QA"}},
	}
	assert.Equal(t, "https://bugs.example.com/buglist.cgi?ctype=csv&bug_status=ON_QA", query.URL())
}

func TestNewBugQueryLogsThroughContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	NewBugQuery(ctx, DefaultBugFilter(), []string{"3.9.x", "3.8.z"})
	assert.Contains(t, buf.String(), `"message":"built bug query"`)
	assert.Contains(t, buf.String(), `"target_releases":2`)
}
