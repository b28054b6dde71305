package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"elliott/internal/app"
)

type findBugsOptions struct {
	TargetReleases []string
}

func newFindBugsCommand(root *rootOptions) *cobra.Command {
	opts := findBugsOptions{}
	cmd := &cobra.Command{
		Use:   "find-bugs",
		Short: "Find MODIFIED bugs for the given target releases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFindBugs(cmd, root, opts)
		},
	}
	addTargetReleaseFlag(cmd, &opts.TargetReleases)
	return cmd
}

func runFindBugs(cmd *cobra.Command, root *rootOptions, opts findBugsOptions) error {
	service, err := root.service(cmd)
	if err != nil {
		return err
	}
	result, err := service.FindBugs(cmd.Context(), app.FindBugsRequest{
		TargetReleases: resolveStrings(cmd, opts.TargetReleases, "target_releases", "target-release"),
		Filter:         root.filter(cmd),
		Verbose:        root.verbose(cmd),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, bug := range result.Bugs {
		fmt.Fprintln(out, bug)
	}
	return nil
}
