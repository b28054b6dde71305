package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"elliott/internal/app"
)

type flagBugsOptions struct {
	Flag   string
	Source bugSourceOptions
}

func newFlagBugsCommand(root *rootOptions) *cobra.Command {
	opts := flagBugsOptions{}
	cmd := &cobra.Command{
		Use:   "flag-bugs [bug-id...]",
		Short: "Add the release flag to a list of bugs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlagBugs(cmd, args, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Flag, "flag", "", "Flag to add to each bug (e.g. aos-3.9.x)")
	addBugSourceFlags(cmd, &opts.Source)
	return cmd
}

func runFlagBugs(cmd *cobra.Command, args []string, root *rootOptions, opts flagBugsOptions) error {
	service, err := root.service(cmd)
	if err != nil {
		return err
	}
	bugs, err := root.resolveBugs(cmd.Context(), cmd, service, opts.Source, args)
	if err != nil {
		return err
	}
	result, err := service.FlagBugs(cmd.Context(), app.FlagBugsRequest{
		Flag:    resolveString(cmd, opts.Flag, "flag", "flag"),
		Bugs:    bugs,
		OnError: root.policy(cmd),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "flagged %d bugs with %s\n", len(result.Flagged), result.Flag)
	return nil
}
