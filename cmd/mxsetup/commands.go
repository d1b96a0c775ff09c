package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mxsetup/mxsetup/internal/config"
	"github.com/mxsetup/mxsetup/internal/wellknown"
	"github.com/mxsetup/mxsetup/internal/wizard/tui"
)

// Command flags
var (
	homeserverURL     string
	identityServerURL string
	requestTimeout    int
	outputFormat      string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")

	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(resetCmd)
}

// wizardCmd launches the interactive TUI wizard
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch interactive server setup wizard",
	Long: `Launch an interactive TUI wizard for server configuration.

The wizard provides a user-friendly interface for:
- Entering homeserver and identity server URLs
- Validating them as you go via client autodiscovery
- Confirming and saving the configuration

This is the recommended way to set up a server connection for most users.`,
	Example: `  # Launch the wizard
  mxsetup wizard
  # Or simply (wizard is default):
  mxsetup`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	confirmed, err := tui.RunWizard()
	if err != nil {
		return err
	}

	if confirmed == nil {
		fmt.Println("Setup cancelled, configuration unchanged.")
		return nil
	}

	fmt.Printf("✓ Configuration saved to %s\n", mustConfigPath())
	printServerConfig(*confirmed)
	return nil
}

// validateCmd validates a server pair without the wizard
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate server URLs without saving",
	Long: `Validate a homeserver/identity server pair via client autodiscovery.

The homeserver's well-known discovery document is consulted, the resulting
base URL is checked for a Matrix client API, and the identity server (when
given) is checked for an identity API. Nothing is saved; use the wizard to
confirm and store a configuration.`,
	Example: `  # Validate a homeserver
  mxsetup validate --homeserver https://matrix.example.com

  # Validate a full pair with a longer timeout
  mxsetup validate --homeserver matrix.example.com --identity-server id.example.com --timeout 30

  # JSON output for scripting
  mxsetup validate --homeserver matrix.example.com --format json`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&homeserverURL, "homeserver", "", "Homeserver URL to validate")
	validateCmd.Flags().StringVar(&identityServerURL, "identity-server", "", "Identity server URL to validate")
	validateCmd.Flags().IntVar(&requestTimeout, "timeout", 10, "Request timeout in seconds")
	_ = validateCmd.MarkFlagRequired("homeserver")
}

func runValidate(cmd *cobra.Command, args []string) error {
	client := wellknown.NewClient()
	client.SetTimeout(time.Duration(requestTimeout) * time.Second)

	fmt.Printf("Validating %s...\n\n", homeserverURL)

	cfg, err := client.Validate(context.Background(), homeserverURL, identityServerURL)
	if err != nil {
		return fmt.Errorf("%s: %w", wellknown.UserMessage(err), err)
	}

	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	default:
		fmt.Println("✓ Server configuration is valid")
		printServerConfig(*cfg)
	}

	return nil
}

// showCmd displays the stored configuration
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored server configuration",
	Long: `Display the confirmed server configuration from the config file.

When no configuration has been saved yet the built-in defaults are shown.`,
	Example: `  # Show the stored configuration
  mxsetup show

  # JSON output for scripting
  mxsetup show --format json`,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg := registry.CurrentServer()

	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	default:
		if registry.Server == nil {
			fmt.Println("No configuration saved yet, showing built-in defaults.")
			fmt.Println()
		}
		printServerConfig(cfg)
		fmt.Printf("\nConfig file: %s\n", mustConfigPath())
	}

	return nil
}

// resetCmd removes the stored configuration
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the stored server configuration",
	Long: `Delete the config file, reverting to the built-in defaults.

The next wizard run starts from the default matrix.org configuration.`,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return fmt.Errorf("failed to reset configuration: %w", err)
	}
	fmt.Println("✓ Configuration reset to defaults")
	return nil
}

// printServerConfig prints a configuration in the detailed human format
func printServerConfig(cfg config.ServerConfig) {
	fmt.Printf("  Homeserver:      %s\n", cfg.HomeserverURL)
	if cfg.HomeserverName != "" {
		fmt.Printf("  Server name:     %s\n", cfg.HomeserverName)
	}
	if cfg.IdentityServerURL != "" {
		fmt.Printf("  Identity server: %s\n", cfg.IdentityServerURL)
	}
	if len(cfg.Versions) > 0 {
		fmt.Printf("  API versions:    %v\n", cfg.Versions)
	}
	if !cfg.ValidatedAt.IsZero() {
		fmt.Printf("  Validated:       %s\n", cfg.ValidatedAt.Format(time.RFC3339))
	}
}

// mustConfigPath returns the config file path, or a placeholder when the
// platform directory cannot be resolved.
func mustConfigPath() string {
	path, err := config.GetConfigPath()
	if err != nil {
		return "(unknown)"
	}
	return path
}
