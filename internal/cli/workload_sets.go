package cli

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"workload-manifests/internal/app"
)

type workloadSetsOptions struct {
	Provider providerOptions
	AllBands bool
	Verbose  bool
}

func newWorkloadSetsCommand() *cobra.Command {
	opts := workloadSetsOptions{}
	cmd := &cobra.Command{
		Use:   "workload-sets",
		Short: "List installed workload sets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorkloadSets(cmd.Context(), cmd, opts)
		},
	}
	bindProviderFlags(cmd, &opts.Provider)
	cmd.Flags().BoolVar(&opts.AllBands, "all-bands", false, "Include workload sets of every feature band")
	cmd.Flags().BoolVar(&opts.Verbose, "verbose", false, "Show the manifest versions of each set")
	_ = viper.BindPFlag("all_bands", cmd.Flags().Lookup("all-bands"))
	return cmd
}

func runWorkloadSets(ctx context.Context, cmd *cobra.Command, opts workloadSetsOptions) error {
	service := newAppService()
	result, err := service.WorkloadSets(ctx, app.WorkloadSetsRequest{
		Provider: providerRequest(cmd, opts.Provider),
		AllBands: resolveBool(cmd, opts.AllBands, "all_bands", "all-bands"),
	})
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
	if result.ActiveSource != "" {
		out.field("selected by", result.ActiveSource)
	}
	if len(result.Sets) == 0 {
		out.empty("no workload sets installed")
		return nil
	}
	rows := make([][]string, 0, len(result.Sets))
	for _, set := range result.Sets {
		marker := ""
		if set.Active {
			marker = "*"
		}
		kind := ""
		if set.Baseline {
			kind = "baseline"
		}
		rows = append(rows, []string{marker, set.Version, set.FeatureBand, kind})
	}
	out.table([]string{"", "VERSION", "BAND", "KIND"}, rows, func(row int) bool {
		return result.Sets[row].Active
	})
	if !opts.Verbose {
		return nil
	}
	for _, set := range result.Sets {
		out.header(set.Version)
		ids := make([]string, 0, len(set.Manifests))
		for id := range set.Manifests {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			return strings.ToUpper(ids[i]) < strings.ToUpper(ids[j])
		})
		for _, id := range ids {
			out.field("  "+id, set.Manifests[id])
		}
	}
	return nil
}
