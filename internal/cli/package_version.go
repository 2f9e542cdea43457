package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"workload-manifests/internal/app"
)

func newPackageVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package-version <workload-set-version>",
		Short: "Print the package version that carries a workload set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackageVersion(cmd, args[0])
		},
	}
	return cmd
}

func runPackageVersion(cmd *cobra.Command, workloadSetVersion string) error {
	service := newAppService()
	result, err := service.PackageVersion(app.PackageVersionRequest{WorkloadSetVersion: workloadSetVersion})
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
	out.header(result.PackageVersion)
	out.field("feature band", result.FeatureBand)
	return nil
}
