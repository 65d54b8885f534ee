package setup

import (
	"fmt"

	"github.com/spf13/cobra"

	cmdflags "benchpark/internal/command/flags"
	"benchpark/internal/config"
	"benchpark/internal/inject"
	"benchpark/pkg/flags"
	"benchpark/pkg/log"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup {experiment_dir} {system_dir} {workspace_dir}",
		Short: "Generate a ramble workspace for an experiment on a system",
		Args:  cobra.ExactArgs(3),
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
			ctx := log.WithLogger(c.Context(), log.GetLogger(c.Context()).WithField("command", "setup"))

			res, err := a.Setup(ctx, args[0], args[1], args[2])
			if writeErr := cfg.WriteMetrics(ports.Metrics); writeErr != nil && err == nil {
				err = writeErr
			}

			if err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "Workspace %s ready in %s with %d experiments\n",
				res.WorkspaceID, res.Dir, len(res.Experiments))

			return nil
		},
	}

	cmdflags.AddSetupFlags(cmd, cfg)

	return cmd
}
