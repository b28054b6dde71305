package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"elliott/internal/app"
)

type refreshBugsOptions struct {
	Source bugSourceOptions
}

func newRefreshBugsCommand(root *rootOptions) *cobra.Command {
	opts := refreshBugsOptions{}
	cmd := &cobra.Command{
		Use:   "refresh-bugs [bug-id...]",
		Short: "Refresh a list of bugs in Errata Tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefreshBugs(cmd, args, root, opts)
		},
	}
	addBugSourceFlags(cmd, &opts.Source)
	return cmd
}

func runRefreshBugs(cmd *cobra.Command, args []string, root *rootOptions, opts refreshBugsOptions) error {
	service, err := root.service(cmd)
	if err != nil {
		return err
	}
	bugs, err := root.resolveBugs(cmd.Context(), cmd, service, opts.Source, args)
	if err != nil {
		return err
	}
	result, err := service.RefreshBugs(cmd.Context(), app.RefreshBugsRequest{Bugs: bugs})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "refreshed %d bugs\n", result.Count)
	return nil
}
