package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"elliott/internal/app"
)

type sweepOptions struct {
	TargetReleases []string
	Flag           string
	AutoFlag       bool
}

func newSweepCommand(root *rootOptions) *cobra.Command {
	opts := sweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Add new MODIFIED bugs to the advisory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd, root, opts)
		},
	}
	addTargetReleaseFlag(cmd, &opts.TargetReleases)
	cmd.Flags().StringVar(&opts.Flag, "flag", "", "Release flag to set on each bug (e.g. aos-3.9.x)")
	cmd.Flags().BoolVar(&opts.AutoFlag, "auto-flag", false, "Also set aos-<release> for every target release")
	_ = viper.BindPFlag("flag", cmd.Flags().Lookup("flag"))
	_ = viper.BindPFlag("auto_flag", cmd.Flags().Lookup("auto-flag"))
	return cmd
}

func runSweep(cmd *cobra.Command, root *rootOptions, opts sweepOptions) error {
	service, err := root.service(cmd)
	if err != nil {
		return err
	}
	result, err := service.Sweep(cmd.Context(), app.SweepRequest{
		TargetReleases: resolveStrings(cmd, opts.TargetReleases, "target_releases", "target-release"),
		Advisory:       root.advisory(cmd),
		Flag:           resolveString(cmd, opts.Flag, "flag", "flag"),
		AutoFlag:       resolveBool(cmd, opts.AutoFlag, "auto_flag", "auto-flag"),
		OnError:        root.policy(cmd),
		Filter:         root.filter(cmd),
		Verbose:        root.verbose(cmd),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "swept %d bugs into advisory %s\n", len(result.Added), root.advisory(cmd))
	return nil
}
