package flags

import (
	"benchpark/internal/config"

	"github.com/spf13/cobra"
)

const (
	destFlag         = "dest"
	metricsFileFlag  = "metrics-file"
	batchTimeoutFlag = "batch-timeout"
)

// AddMetricsFlagsToCommand will add the metrics flags to the supplied command.
func AddMetricsFlagsToCommand(cmd *cobra.Command, cfg *config.Config) {
	cmd.PersistentFlags().StringVar(&cfg.MetricsFile,
		metricsFileFlag,
		"",
		"Write prometheus metrics to this file when the command finishes. An empty string disables it.")
}

// AddExperimentInitFlags will add the experiment init flags to the supplied command.
func AddExperimentInitFlags(cmd *cobra.Command, cfg *config.Config) error {
	cmd.Flags().StringVar(&cfg.Experiment.Dest,
		destFlag,
		"",
		"The directory to write the experiment description to.")

	return cmd.MarkFlagRequired(destFlag)
}

// AddSystemInitFlags will add the system init flags to the supplied command.
func AddSystemInitFlags(cmd *cobra.Command, cfg *config.Config) error {
	cmd.Flags().StringVar(&cfg.System.Dest,
		destFlag,
		"",
		"The directory to write the system description to.")

	return cmd.MarkFlagRequired(destFlag)
}

// AddSetupFlags will add the setup flags to the supplied command.
func AddSetupFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().IntVar(&cfg.BatchTimeout,
		batchTimeoutFlag,
		0,
		"Batch job time limit in minutes. Zero uses the system default.")
}
