package system

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
		Use:   "system",
		Short: "Manage system descriptions",
		RunE: func(c *cobra.Command, _ []string) error {
			return c.Help()
		},
	}

	initCmd, err := newInitCommand(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating system init command: %w", err)
	}

	cmd.AddCommand(initCmd)

	return cmd, nil
}

func newInitCommand(cfg *config.Config) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "init --dest={path} {system_name} [+/~variant] [key=value ...]",
		Short: "Write a system description",
		Example: `  benchpark system init --dest=tioga-system tioga
  benchpark system init --dest=local host cores=8 mem=32GB`,
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
			ctx := log.WithLogger(c.Context(), log.GetLogger(c.Context()).WithField("command", "system init"))

			res, err := a.InitSystem(ctx, cfg.System.Dest, args)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "Wrote %s to %s\n", res.Spec, res.Dir)

			return cfg.WriteMetrics(ports.Metrics)
		},
	}

	if err := cmdflags.AddSystemInitFlags(cmd, cfg); err != nil {
		return nil, fmt.Errorf("adding system init flags: %w", err)
	}

	return cmd, nil
}
