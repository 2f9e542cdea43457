package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"workload-manifests/internal/app"
)

type featureBandOptions struct {
	SdkVersion string
}

func newFeatureBandCommand() *cobra.Command {
	opts := featureBandOptions{}
	cmd := &cobra.Command{
		Use:   "feature-band [sdk-version]",
		Short: "Print the feature band of an SDK version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.SdkVersion = args[0]
			}
			return runFeatureBand(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.SdkVersion, "sdk-version", "", "SDK version, e.g. 8.0.204")
	_ = viper.BindPFlag("sdk_version", cmd.Flags().Lookup("sdk-version"))
	return cmd
}

func runFeatureBand(cmd *cobra.Command, opts featureBandOptions) error {
	sdkVersion := opts.SdkVersion
	if sdkVersion == "" {
		sdkVersion = resolveString(cmd, opts.SdkVersion, "sdk_version", "sdk-version")
	}
	service := newAppService()
	result, err := service.FeatureBand(app.FeatureBandRequest{SdkVersion: sdkVersion})
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
	out.header(result.FeatureBand)
	if result.Release != result.FeatureBand {
		out.field("release band", result.Release)
	}
	return nil
}
