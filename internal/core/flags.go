package core

import "strings"

const (
	affirmativeSuffix = "+"
	releaseFlagPrefix = "aos-"
)

// AffirmativeFlag returns the value the bug tracker expects to set flag
// to "+". Existing text is kept as-is.
func AffirmativeFlag(flag string) string {
	return strings.TrimSpace(flag) + affirmativeSuffix
}

// ReleaseFlags derives the per-release flag names ("aos-3.9.x") used by
// sweep --auto-flag.
func ReleaseFlags(releases []string) []string {
	flags := make([]string, 0, len(releases))
	for _, release := range releases {
		trimmed := strings.TrimSpace(release)
		if trimmed == "" {
			continue
		}
		flags = append(flags, releaseFlagPrefix+trimmed)
	}
	return flags
}
