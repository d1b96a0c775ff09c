// Mxsetup is an interactive setup utility for Matrix clients.
//
// It validates homeserver and identity server URLs against client
// autodiscovery (well-known lookup plus API endpoint checks) and stores the
// confirmed configuration in the user's config directory, where Matrix
// clients and scripts can pick it up.
//
// Usage:
//
//	mxsetup [command] [flags]
//
// Running without arguments launches the interactive wizard.
// See 'mxsetup --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mxsetup/mxsetup/internal/logging"
	"github.com/mxsetup/mxsetup/internal/version"
)

func main() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mxsetup",
	Short: "Matrix Server Setup Utility",
	Long: `A standalone utility for configuring Matrix server connections.

Validates homeserver and identity server URLs via client autodiscovery
and stores the confirmed configuration for other tools to use.

If no command is specified, the interactive wizard will launch automatically.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeFromEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when no subcommand provided
		return runWizard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mxsetup %s (commit: %s)\n", version.Version, version.Commit)
	},
}
