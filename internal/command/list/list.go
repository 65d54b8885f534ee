package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"benchpark/internal/config"
	"benchpark/internal/inject"
	"benchpark/pkg/ports"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "list {benchmarks|systems|modifiers}",
		Short:     "List the benchmarks, systems or modifiers benchpark knows about",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(ports.ListBenchmarks), string(ports.ListSystems), string(ports.ListModifiers)},
		RunE: func(c *cobra.Command, args []string) error {
			p, err := inject.InitializePorts(cfg)
			if err != nil {
				return fmt.Errorf("initialising ports: %w", err)
			}

			lines, err := inject.InitializeApp(cfg, p).List(c.Context(), ports.ListKind(args[0]))
			if err != nil {
				return err
			}

			for _, line := range lines {
				fmt.Fprintln(c.OutOrStdout(), line)
			}

			return nil
		},
	}

	return cmd
}
