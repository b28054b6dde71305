package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"elliott/internal/app"
	"elliott/internal/core"
	"elliott/internal/types"
)

type fetchBuildsOptions struct {
	Format string
}

func newFetchBuildsCommand(root *rootOptions) *cobra.Command {
	opts := fetchBuildsOptions{}
	cmd := &cobra.Command{
		Use:   "fetch-builds",
		Short: "List the builds attached to the advisory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetchBuilds(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", string(types.OutputFormatText), "Output format (text, json, yaml)")
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runFetchBuilds(cmd *cobra.Command, root *rootOptions, opts fetchBuildsOptions) error {
	service, err := root.service(cmd)
	if err != nil {
		return err
	}
	result, err := service.FetchBuilds(cmd.Context(), app.FetchBuildsRequest{
		Advisory: root.advisory(cmd),
	})
	if err != nil {
		return err
	}
	format := types.OutputFormat(strings.ToLower(resolveString(cmd, opts.Format, "format", "format")))
	rendered, err := core.RenderBuilds(result.Streams, format)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
