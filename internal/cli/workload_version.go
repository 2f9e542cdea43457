package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newVersionCommand() *cobra.Command {
	opts := providerOptions{}
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the workload version of the SDK installation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorkloadVersion(cmd.Context(), cmd, opts)
		},
	}
	bindProviderFlags(cmd, &opts)
	return cmd
}

func runWorkloadVersion(ctx context.Context, cmd *cobra.Command, opts providerOptions) error {
	service := newAppService()
	result, err := service.WorkloadVersion(ctx, providerRequest(cmd, opts))
	if err != nil {
		return err
	}
	out, err := newRenderer(cmd.OutOrStdout(), viper.GetString("format"))
	if err != nil {
		return err
	}
	if ok, err := out.structured(result); ok {
		return err
	}

	out.header(result.Info.Version)
	out.field("feature band", result.FeatureBand)
	out.field("installed", strconv.FormatBool(result.Info.IsInstalled))
	if result.Info.GlobalJSONPath != "" {
		out.field("global.json", result.Info.GlobalJSONPath)
	}
	if result.Info.WorkloadSetsEnabledWithoutWorkloadSet {
		out.empty("workload sets are enabled but no workload set is installed")
	}
	return nil
}
