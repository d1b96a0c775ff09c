// Package config provides user configuration management for mxsetup.
//
// This package manages a YAML-based configuration file that stores the
// user's confirmed Matrix server configuration (homeserver and identity
// server URLs that have passed autodiscovery validation) together with
// application preferences. The configuration follows OS-specific
// conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/mxsetup/config.yaml or $HOME/.config/mxsetup/config.yaml
//   - macOS: $HOME/.config/mxsetup/config.yaml
//   - Windows: %LOCALAPPDATA%\mxsetup\config.yaml
//
// # Defaults
//
// DefaultConfig returns the built-in default server pair (matrix.org /
// vector.im). It is process-wide, read-only state: validation short-circuits
// network calls when the user's entries match it exactly.
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record a confirmed configuration
//	registry.SetServer(validated)
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex to ensure atomic
// writes.
package config
