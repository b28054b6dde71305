package core

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"elliott/internal/types"
)

const (
	DefaultBugzillaURL    = "https://bugzilla.redhat.com/buglist.cgi"
	DefaultProduct        = "OpenShift Container Platform"
	DefaultStatus         = "MODIFIED"
	DefaultClassification = "Red Hat"

	targetReleaseKey = "target_release"
)

var defaultVersions = []string{
	"3.0.0", "3.1.0", "3.1.1", "3.2.0", "3.2.1", "3.3.0", "3.3.1",
	"3.4.0", "3.4.1", "3.5.0", "3.5.1", "3.6.0", "3.6.1", "3.7.0",
	"3.7.1", "3.8.0", "3.9.0", "unspecified",
}

// excludedComponents are matched against f1..f3 with "notequals".
var excludedComponents = []string{"RFE", "Documentation", "Security"}

type QueryParam struct {
	Key   string
	Value string
}

// BugQuery is an ordered buglist.cgi query. Keys may repeat.
type BugQuery struct {
	BaseURL string
	Params  []QueryParam
}

func DefaultBugFilter() types.BugFilter {
	return types.BugFilter{
		BaseURL:        DefaultBugzillaURL,
		Product:        DefaultProduct,
		Status:         DefaultStatus,
		Classification: DefaultClassification,
		Versions:       append([]string(nil), defaultVersions...),
	}
}

// MergeBugFilter fills blank fields of override from DefaultBugFilter.
func MergeBugFilter(override types.BugFilter) types.BugFilter {
	filter := DefaultBugFilter()
	if value := strings.TrimSpace(override.BaseURL); value != "" {
		filter.BaseURL = value
	}
	if value := strings.TrimSpace(override.Product); value != "" {
		filter.Product = value
	}
	if value := strings.TrimSpace(override.Status); value != "" {
		filter.Status = value
	}
	if value := strings.TrimSpace(override.Classification); value != "" {
		filter.Classification = value
	}
	if len(override.Versions) > 0 {
		filter.Versions = append([]string(nil), override.Versions...)
	}
	return filter
}

// NewBugQuery builds the standing MODIFIED-bug search with one
// target_release term per release, in input order.
func NewBugQuery(ctx context.Context, filter types.BugFilter, releases []string) BugQuery {
	assert.NotEmpty(ctx, filter.BaseURL, "bug query base url must be set")

	params := []QueryParam{
		{Key: "bug_status", Value: filter.Status},
		{Key: "classification", Value: filter.Classification},
	}
	for i := range excludedComponents {
		params = append(params, QueryParam{Key: fieldKey("f", i), Value: "component"})
	}
	params = append(params,
		QueryParam{Key: fieldKey("f", len(excludedComponents)), Value: "cf_verified"},
		QueryParam{Key: "keywords", Value: "UpcomingRelease"},
		QueryParam{Key: "keywords_type", Value: "nowords"},
	)
	for i := 0; i <= len(excludedComponents); i++ {
		params = append(params, QueryParam{Key: fieldKey("o", i), Value: "notequals"})
	}
	params = append(params,
		QueryParam{Key: "product", Value: filter.Product},
		QueryParam{Key: "query_format", Value: "advanced"},
		QueryParam{Key: "short_desc", Value: `\[fork\]`},
		QueryParam{Key: "short_desc_type", Value: "notregexp"},
	)
	params = append(params, TargetReleaseParams(releases)...)
	for i, component := range excludedComponents {
		params = append(params, QueryParam{Key: fieldKey("v", i), Value: component})
	}
	params = append(params, QueryParam{Key: fieldKey("v", len(excludedComponents)), Value: "FailedQA"})
	for _, version := range filter.Versions {
		params = append(params, QueryParam{Key: "version", Value: version})
	}

	query := BugQuery{BaseURL: filter.BaseURL, Params: params}
	log.Ctx(ctx).Debug().
		Int("target_releases", len(releases)).
		Int("params", len(params)).
		Msg("built bug query")
	return query
}

func TargetReleaseParams(releases []string) []QueryParam {
	params := make([]QueryParam, 0, len(releases))
	for _, release := range releases {
		params = append(params, QueryParam{Key: targetReleaseKey, Value: release})
	}
	return params
}

// TargetReleaseFragment renders "target_release=<r>&" for each release.
// No releases yields "".
func TargetReleaseFragment(releases []string) string {
	var b strings.Builder
	for _, param := range TargetReleaseParams(releases) {
		b.WriteString(encodeParam(param))
		b.WriteByte('&')
	}
	return b.String()
}

func (q BugQuery) Encode() string {
	parts := make([]string, 0, len(q.Params))
	for _, param := range q.Params {
		parts = append(parts, encodeParam(param))
	}
	return strings.Join(parts, "&")
}

func (q BugQuery) URL() string {
	base := strings.TrimSpace(q.BaseURL)
	encoded := q.Encode()
	if encoded == "" {
		return base
	}
	if strings.Contains(base, "?") {
		return base + "&" + encoded
	}
	return base + "?" + encoded
}

// Values returns all values recorded for key, in order.
func (q BugQuery) Values(key string) []string {
	var values []string
	for _, param := range q.Params {
		if param.Key == key {
			values = append(values, param.Value)
		}
	}
	return values
}

func encodeParam(param QueryParam) string {
	return escapeQuery(param.Key) + "=" + escapeQuery(param.Value)
}

// escapeQuery matches Bugzilla's own links, which use %20 rather than +.
func escapeQuery(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

func fieldKey(prefix string, index int) string {
	return prefix + strconv.Itoa(index+1)
}
