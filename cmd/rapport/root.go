package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rapport",
		Short: "Rapport - CLI survey of collaboration and personality style",
		Long: `Rapport is a command-line survey instrument drawn from several
psychological frameworks.

It presents Likert-scale questionnaires, scores responses per construct, and
generates narrative insights for different working relationships (manager,
peer, mentor, and more).`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newModelsCommand())
	cmd.AddCommand(newRunCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
