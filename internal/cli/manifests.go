package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newManifestsCommand() *cobra.Command {
	opts := providerOptions{}
	cmd := &cobra.Command{
		Use:   "manifests",
		Short: "List the workload manifests the SDK resolves",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runManifests(cmd.Context(), cmd, opts)
		},
	}
	bindProviderFlags(cmd, &opts)
	return cmd
}

func runManifests(ctx context.Context, cmd *cobra.Command, opts providerOptions) error {
	service := newAppService()
	result, err := service.ListManifests(ctx, providerRequest(cmd, opts))
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

	out.field("feature band", result.FeatureBand)
	if len(result.Manifests) == 0 {
		out.empty("no manifests found")
		return nil
	}
	rows := make([][]string, 0, len(result.Manifests))
	for _, manifest := range result.Manifests {
		localized := ""
		if manifest.Localized {
			localized = "yes"
		}
		rows = append(rows, []string{manifest.ID, manifest.Version, manifest.FeatureBand, localized, manifest.Directory})
	}
	out.table([]string{"ID", "VERSION", "BAND", "LOCALIZED", "DIRECTORY"}, rows, nil)
	fmt.Fprintf(out.out, "%d manifests\n", len(result.Manifests))
	return nil
}
