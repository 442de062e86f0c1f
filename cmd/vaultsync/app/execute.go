package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/vaultsync/pkg/errors"
)

// Execute parses args, dispatches to the selected subcommand, and runs it
// under ctx. main.go calls this once with os.Args[1:].
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand assembles the root cobra command, its persistent flags,
// and every subcommand.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "vaultsync",
		Short:   "One-way LastPass to Bitwarden sync",
		Version: a.version,
		Long: `Vaultsync copies credentials from a LastPass vault into a Bitwarden vault
using the official lpass and bw command-line tools.

The sync is strictly one-way and additive: entries Bitwarden already holds
are never modified or deleted, and LastPass is never written to. Secrets
stay in memory except for a short-lived, owner-only import file that is
always removed before the program exits.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// Flag defaults are seeded from the loaded config, so a flag the user
	// did not pass keeps its env/config-file value instead of resetting it.
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", a.config.ConfigFile, "config file (default is $HOME/.vaultsync.yaml)")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	flags.StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Keep `vaultsync --version` output in step with the version subcommand.
	rootCmd.SetVersionTemplate("vaultsync {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand runs before any subcommand: it folds the parsed persistent
// flags into the config and rebuilds the logger from the result.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "log-level"),
	)

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError prints err to stderr and exits with the status mapped from
// the error's failure class (authentication, export, parse, write, import,
// or generic). Meant for top-level error handling in main.go.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // stderr write failures have nowhere to go
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(errors.ExitCode(err))
	}
}

// mustGetBool reads a persistent bool flag registered in this package.
// A missing flag is a programming error, hence the panic.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("flag not registered: " + name + ": " + err.Error())
	}
	return val
}

// mustGetString reads a persistent string flag registered in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("flag not registered: " + name + ": " + err.Error())
	}
	return val
}
