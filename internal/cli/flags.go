package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"workload-manifests/internal/app"
)

// providerOptions are the flags shared by every command that opens an
// SDK installation.
type providerOptions struct {
	SdkRoot            string
	SdkVersion         string
	UserProfile        string
	GlobalJSON         string
	SearchDir          string
	WorkloadSetVersion string
	ManifestsDir       string
}

func bindProviderFlags(cmd *cobra.Command, opts *providerOptions) {
	cmd.Flags().StringVar(&opts.SdkRoot, "sdk-root", "", "SDK installation root")
	cmd.Flags().StringVar(&opts.SdkVersion, "sdk-version", "", "SDK version, e.g. 8.0.204")
	cmd.Flags().StringVar(&opts.UserProfile, "user-profile", "", "User profile dir for user-local installs (default $DOTNET_CLI_HOME/.dotnet or ~/.dotnet)")
	cmd.Flags().StringVar(&opts.GlobalJSON, "global-json", "", "global.json path pinning a workload set")
	cmd.Flags().StringVar(&opts.SearchDir, "search-dir", ".", "Directory to search upward for global.json")
	cmd.Flags().StringVar(&opts.WorkloadSetVersion, "workload-set-version", "", "Workload set version to use")
	cmd.Flags().StringVar(&opts.ManifestsDir, "manifests-dir", "", "Serve the manifest folders directly under this directory instead of the SDK layout")
	_ = viper.BindPFlag("sdk_root", cmd.Flags().Lookup("sdk-root"))
	_ = viper.BindPFlag("sdk_version", cmd.Flags().Lookup("sdk-version"))
	_ = viper.BindPFlag("user_profile", cmd.Flags().Lookup("user-profile"))
	_ = viper.BindPFlag("global_json", cmd.Flags().Lookup("global-json"))
	_ = viper.BindPFlag("search_dir", cmd.Flags().Lookup("search-dir"))
	_ = viper.BindPFlag("workload_set_version", cmd.Flags().Lookup("workload-set-version"))
	_ = viper.BindPFlag("manifests_dir", cmd.Flags().Lookup("manifests-dir"))
}

func providerRequest(cmd *cobra.Command, opts providerOptions) app.ProviderRequest {
	return app.ProviderRequest{
		SdkRoot:            resolveString(cmd, opts.SdkRoot, "sdk_root", "sdk-root"),
		SdkVersion:         resolveString(cmd, opts.SdkVersion, "sdk_version", "sdk-version"),
		UserProfileDir:     resolveString(cmd, opts.UserProfile, "user_profile", "user-profile"),
		GlobalJSONPath:     resolveString(cmd, opts.GlobalJSON, "global_json", "global-json"),
		SearchDir:          resolveString(cmd, opts.SearchDir, "search_dir", "search-dir"),
		WorkloadSetVersion: resolveString(cmd, opts.WorkloadSetVersion, "workload_set_version", "workload-set-version"),
		ManifestsDir:       resolveString(cmd, opts.ManifestsDir, "manifests_dir", "manifests-dir"),
	}
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
