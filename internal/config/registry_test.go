package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	// Should not be empty
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	// Should contain "mxsetup"
	if !strings.Contains(configDir, "mxsetup") {
		t.Errorf("GetConfigDir() = %v, should contain 'mxsetup'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigDirHonorsXDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies to Linux and other Unix-like systems")
	}

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	want := filepath.Join(tmpDir, appName)
	if configDir != want {
		t.Errorf("GetConfigDir() = %v, want %v", configDir, want)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	// Should end with config.yaml
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}

	t.Logf("Config path: %s", configPath)
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}

	if reg.Server != nil {
		t.Error("NewRegistry().Server should be nil until a configuration is confirmed")
	}

	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}

	if reg.Preferences.DebounceMs != 0 {
		t.Errorf("NewRegistry().Preferences.DebounceMs = %v, want 0", reg.Preferences.DebounceMs)
	}

	if reg.Preferences.RequestTimeout != 10 {
		t.Errorf("NewRegistry().Preferences.RequestTimeout = %v, want 10", reg.Preferences.RequestTimeout)
	}
}

func TestRegistrySaveAndReload(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test redirects config location via XDG_CONFIG_HOME")
	}

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	reg := NewRegistry()
	reg.SetServer(ServerConfig{
		HomeserverURL:     "https://custom.example",
		HomeserverName:    "custom.example",
		IdentityServerURL: "https://id.example",
		Versions:          []string{"v1.1", "v1.2"},
	})

	if err := reg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// File exists and carries the header comment
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config file should exist after Save(): %v", err)
	}
	if !strings.HasPrefix(string(data), "# mxsetup Configuration File") {
		t.Error("saved config should start with the header comment")
	}

	// Reload and verify round trip
	loaded, err := ReloadRegistry()
	if err != nil {
		t.Fatalf("ReloadRegistry() error = %v", err)
	}

	if loaded.Server == nil {
		t.Fatal("loaded registry should have a server configuration")
	}

	if loaded.Server.HomeserverURL != "https://custom.example" {
		t.Errorf("HomeserverURL = %v, want https://custom.example", loaded.Server.HomeserverURL)
	}

	if loaded.Server.IdentityServerURL != "https://id.example" {
		t.Errorf("IdentityServerURL = %v, want https://id.example", loaded.Server.IdentityServerURL)
	}

	if len(loaded.Server.Versions) != 2 || loaded.Server.Versions[0] != "v1.1" {
		t.Errorf("Versions = %v, want [v1.1 v1.2]", loaded.Server.Versions)
	}
}

func TestRegistryReset(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test redirects config location via XDG_CONFIG_HOME")
	}

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	reg := NewRegistry()
	reg.SetServer(ServerConfig{HomeserverURL: "https://custom.example"})
	if err := reg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	configPath, _ := GetConfigPath()
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Error("config file should be gone after Reset()")
	}

	// Resetting again with no file present is not an error
	if err := Reset(); err != nil {
		t.Errorf("Reset() on missing file error = %v, want nil", err)
	}
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test redirects config location via XDG_CONFIG_HOME")
	}

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	dir := filepath.Join(tmpDir, appName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("version: 99\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := loadRegistryFromDisk(); err == nil {
		t.Error("loadRegistryFromDisk() should reject unknown config versions")
	}
}

func TestRegistryYAMLShape(t *testing.T) {
	reg := NewRegistry()
	reg.SetServer(ServerConfig{
		HomeserverURL:     "https://custom.example",
		IdentityServerURL: "https://id.example",
	})

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	text := string(data)
	for _, key := range []string{"version:", "server:", "homeserver_url:", "identity_server_url:", "preferences:"} {
		if !strings.Contains(text, key) {
			t.Errorf("marshaled registry missing key %q:\n%s", key, text)
		}
	}
}

// Benchmark tests

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}
