package command

import (
	"fmt"
	"strings"

	"benchpark/internal/command/experiment"
	cmdflags "benchpark/internal/command/flags"
	"benchpark/internal/command/list"
	"benchpark/internal/command/setup"
	"benchpark/internal/command/system"
	"benchpark/internal/config"
	"benchpark/internal/version"
	"benchpark/pkg/defaults"
	"benchpark/pkg/flags"
	"benchpark/pkg/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewRootCommand() (*cobra.Command, error) {
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:          "benchpark",
		Short:        "Benchpark - reproducible benchmark experiments for HPC systems",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			flags.BindCommandToViper(cmd)

			if err := log.Configure(&cfg.Logging); err != nil {
				return fmt.Errorf("configuring logging: %w", err)
			}

			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error {
			return c.Help()
		},
	}

	log.AddFlagsToCommand(cmd, &cfg.Logging)
	cmdflags.AddMetricsFlagsToCommand(cmd, cfg)

	if err := addRootSubCommands(cmd, cfg); err != nil {
		return nil, fmt.Errorf("adding subcommands: %w", err)
	}

	cobra.OnInitialize(initCobra)

	return cmd, nil
}

func initCobra() {
	viper.SetEnvPrefix(defaults.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.AddConfigPath(defaults.ConfigDir)

	_ = viper.ReadInConfig()
}

func addRootSubCommands(cmd *cobra.Command, cfg *config.Config) error {
	experimentCmd, err := experiment.NewCommand(cfg)
	if err != nil {
		return fmt.Errorf("creating experiment command: %w", err)
	}

	systemCmd, err := system.NewCommand(cfg)
	if err != nil {
		return fmt.Errorf("creating system command: %w", err)
	}

	cmd.AddCommand(experimentCmd)
	cmd.AddCommand(systemCmd)
	cmd.AddCommand(setup.NewCommand(cfg))
	cmd.AddCommand(list.NewCommand(cfg))
	cmd.AddCommand(versionCommand())

	return nil
}

func versionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of benchpark",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				long, short bool
				err         error
			)

			if long, err = cmd.Flags().GetBool("long"); err != nil {
				return err
			}

			if short, err = cmd.Flags().GetBool("short"); err != nil {
				return err
			}

			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Version)

				return nil
			}

			if long {
				fmt.Fprintf(
					cmd.OutOrStdout(),
					"%s\n  Version:    %s\n  CommitHash: %s\n  BuildDate:  %s\n",
					version.PackageName,
					version.Version,
					version.CommitHash,
					version.BuildDate,
				)

				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.PackageName, version.Version)

			return nil
		},
	}

	_ = cmd.Flags().Bool("long", false, "Print long version information")
	_ = cmd.Flags().Bool("short", false, "Print short version information")

	return cmd
}
