package experiment

import (
	"fmt"

	"github.com/spf13/cobra"

	cmdflags "benchpark/internal/command/flags"
	"benchpark/internal/config"
	"benchpark/internal/inject"
	"benchpark/pkg/flags"
	"benchpark/pkg/log"
)

func NewCommand(cfg *config.Config) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Manage experiment descriptions",
		RunE: func(c *cobra.Command, _ []string) error {
			return c.Help()
		},
	}

	initCmd, err := newInitCommand(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating experiment init command: %w", err)
	}

	cmd.AddCommand(initCmd)

	return cmd, nil
}

func newInitCommand(cfg *config.Config) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "init --dest {path} {benchmark} [+/~variant] [key=value ...]",
		Short: "Write an experiment description for a benchmark",
		Example: `  benchpark experiment init --dest saxpy saxpy +openmp
  benchpark experiment init --dest amg amg2023 +rocm +strong caliper=time,mpi`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(c *cobra.Command, _ []string) error {
			flags.BindCommandToViper(c)

			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			ports, err := inject.InitializePorts(cfg)
			if err != nil {
				return fmt.Errorf("initialising ports: %w", err)
			}

			a := inject.InitializeApp(cfg, ports)
			ctx := log.WithLogger(c.Context(), log.GetLogger(c.Context()).WithField("command", "experiment init"))

			res, err := a.InitExperiment(ctx, cfg.Experiment.Dest, args)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "Wrote %s to %s\n", res.Spec, res.Dir)

			for _, name := range res.Experiments {
				fmt.Fprintf(c.OutOrStdout(), "  %s\n", name)
			}

			return cfg.WriteMetrics(ports.Metrics)
		},
	}

	if err := cmdflags.AddExperimentInitFlags(cmd, cfg); err != nil {
		return nil, fmt.Errorf("adding experiment init flags: %w", err)
	}

	return cmd, nil
}
