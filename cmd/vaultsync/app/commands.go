package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/vaultsync/cmd/vaultsync/cmd/status"
	synccmd "github.com/agentstation/vaultsync/cmd/vaultsync/cmd/sync"
)

// registerCommands attaches every subcommand to the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(a.CreateSyncCommand())
	rootCmd.AddCommand(a.CreateStatusCommand())

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// CreateSyncCommand creates the sync command with app dependencies.
// Config-file and env values seed the flag defaults, so flags still win.
func (a *App) CreateSyncCommand() *cobra.Command {
	return synccmd.NewCommand(a, &synccmd.Flags{
		DryRun:  a.config.DryRun,
		Timeout: a.config.Timeout,
	})
}

// CreateStatusCommand creates the status command with app dependencies.
func (a *App) CreateStatusCommand() *cobra.Command {
	return status.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("vaultsync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
