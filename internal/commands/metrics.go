// internal/commands/metrics.go
package agroserve

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agrisage/agroserve/internal/metrics"
)

var metricsInputPath string

// metricsCmd prints aggregated tool-call statistics from a metrics snapshot.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show aggregated tool-call statistics",
	Long: `Read the metrics snapshot the server persists at shutdown and print a
per-tool summary table: call counts, failure counts, and duration stats.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := metricsInputPath
		if path == "" {
			path = GetConfig().MetricsSnapshotPath()
		}
		if path == "" {
			return fmt.Errorf("no metrics snapshot configured (pass --input or set metricsPath in the config file)")
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("unable to read metrics snapshot %s: %w", path, err)
		}

		snapshot := metrics.NewAggregator(path).Snapshot()
		metrics.Report(cmd.OutOrStdout(), snapshot)
		return nil
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsInputPath, "input", "", "Path to a metrics snapshot JSON file (defaults to the configured metricsPath)")
	rootCmd.AddCommand(metricsCmd)
}
