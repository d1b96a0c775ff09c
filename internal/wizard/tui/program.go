package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mxsetup/mxsetup/internal/config"
	"github.com/mxsetup/mxsetup/internal/logging"
	"github.com/mxsetup/mxsetup/internal/wellknown"
)

// RunWizard runs the interactive server configuration form wired to the user
// configuration registry: the form starts from the last confirmed
// configuration (or the built-in default) and a confirmed submit is persisted
// before the program exits.
//
// Returns the confirmed configuration, or nil when the user quit without
// confirming.
func RunWizard() (*config.ServerConfig, error) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	model := NewFormModel(registry.CurrentServer())

	if prefs := registry.Preferences; prefs != nil {
		model.Debounce = time.Duration(prefs.DebounceMs) * time.Millisecond
		if prefs.RequestTimeout > 0 {
			client := wellknown.NewClient()
			client.SetTimeout(time.Duration(prefs.RequestTimeout) * time.Second)
			model.Validator = client
		}
	}

	model.OnConfigChange = func(cfg config.ServerConfig) {
		logging.Info("Server configuration validated",
			zap.String("homeserver_url", cfg.HomeserverURL),
			zap.String("identity_server_url", cfg.IdentityServerURL),
		)
	}

	var confirmed *config.ServerConfig
	model.OnAfterSubmit = func(cfg config.ServerConfig) {
		registry.SetServer(cfg)
		if saveErr := registry.Save(); saveErr != nil {
			logging.Error("Failed to save configuration", zap.Error(saveErr))
			return
		}
		confirmed = &cfg
		logging.Info("Server configuration confirmed",
			zap.String("homeserver_url", cfg.HomeserverURL),
			zap.String("identity_server_url", cfg.IdentityServerURL),
		)
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return confirmed, nil
}
