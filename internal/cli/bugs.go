package cli

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"elliott/internal/app"
	"elliott/internal/types"
)

// bugSourceOptions lets the standalone commands take explicit ids, or
// fall back to running the bug query for the given target releases.
type bugSourceOptions struct {
	IDs            []string
	TargetReleases []string
}

func addTargetReleaseFlag(cmd *cobra.Command, releases *[]string) {
	cmd.Flags().StringSliceVar(releases, "target-release", nil, "Target release versions (e.g. 3.9.x), repeatable")
	_ = viper.BindPFlag("target_releases", cmd.Flags().Lookup("target-release"))
}

func addBugSourceFlags(cmd *cobra.Command, opts *bugSourceOptions) {
	cmd.Flags().StringSliceVar(&opts.IDs, "id", nil, "Bug ids to operate on (default: run the bug query)")
	addTargetReleaseFlag(cmd, &opts.TargetReleases)
}

func (o *rootOptions) resolveBugs(ctx context.Context, cmd *cobra.Command, service app.Service, src bugSourceOptions, args []string) ([]types.BugID, error) {
	var ids []string
	for _, value := range append(append([]string{}, src.IDs...), args...) {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	if len(ids) > 0 {
		return types.BugIDsFromStrings(ids), nil
	}
	log.Debug().Msg("no bug ids given, running bug query")
	found, err := service.FindBugs(ctx, app.FindBugsRequest{
		TargetReleases: resolveStrings(cmd, src.TargetReleases, "target_releases", "target-release"),
		Filter:         o.filter(cmd),
		Verbose:        o.verbose(cmd),
	})
	if err != nil {
		return nil, err
	}
	return found.Bugs, nil
}
