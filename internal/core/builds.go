package core

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"elliott/internal/types"
)

type buildsEntry struct {
	Builds []map[string]json.RawMessage `json:"builds"`
}

// ParseBuilds decodes an advisory builds document. Streams come back
// sorted by name and the build names within each stream are sorted.
func ParseBuilds(body []byte) ([]types.BuildStream, error) {
	var document map[string]buildsEntry
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse advisory builds").
			WithCause(err)
	}
	names := make([]string, 0, len(document))
	for name := range document {
		names = append(names, name)
	}
	sort.Strings(names)

	streams := make([]types.BuildStream, 0, len(names))
	for _, name := range names {
		builds := []string{}
		for _, mapping := range document[name].Builds {
			for build := range mapping {
				builds = append(builds, build)
			}
		}
		sort.Strings(builds)
		streams = append(streams, types.BuildStream{Name: name, Builds: builds})
	}
	return streams, nil
}

// RenderBuildsText prints each stream name, a dashed rule of the same
// width, then one build per line. Streams are separated by a blank line.
func RenderBuildsText(streams []types.BuildStream) string {
	blocks := make([]string, 0, len(streams))
	for _, stream := range streams {
		lines := []string{stream.Name, strings.Repeat("-", len(stream.Name))}
		lines = append(lines, stream.Builds...)
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func RenderBuilds(streams []types.BuildStream, format types.OutputFormat) (string, error) {
	switch format {
	case types.OutputFormatText, "":
		return RenderBuildsText(streams), nil
	case types.OutputFormatJSON:
		data, err := json.MarshalIndent(streams, "", "  ")
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode builds as json").
				WithCause(err)
		}
		return string(data) + "\n", nil
	case types.OutputFormatYAML:
		data, err := yaml.Marshal(streams)
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode builds as yaml").
				WithCause(err)
		}
		return string(data), nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported output format: " + string(format))
	}
}
