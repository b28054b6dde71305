package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"elliott/internal/app"
)

type addBugsOptions struct {
	Source bugSourceOptions
}

func newAddBugsCommand(root *rootOptions) *cobra.Command {
	opts := addBugsOptions{}
	cmd := &cobra.Command{
		Use:   "add-bugs [bug-id...]",
		Short: "Add a list of bugs to the specified advisory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddBugs(cmd, args, root, opts)
		},
	}
	addBugSourceFlags(cmd, &opts.Source)
	return cmd
}

func runAddBugs(cmd *cobra.Command, args []string, root *rootOptions, opts addBugsOptions) error {
	service, err := root.service(cmd)
	if err != nil {
		return err
	}
	bugs, err := root.resolveBugs(cmd.Context(), cmd, service, opts.Source, args)
	if err != nil {
		return err
	}
	result, err := service.AddBugs(cmd.Context(), app.AddBugsRequest{
		Advisory: root.advisory(cmd),
		Bugs:     bugs,
		OnError:  root.policy(cmd),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %d bugs to advisory %s\n", len(result.Added), result.Advisory)
	return nil
}
