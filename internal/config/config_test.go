package config

import (
	"EnvStore/internal/paths"
	"os"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func setupTempHome(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	paths.StateHomeOverride = tempDir
	paths.ConfigHomeOverride = tempDir
	t.Cleanup(func() {
		paths.StateHomeOverride = ""
		paths.ConfigHomeOverride = ""
	})
}

func TestSaveAndLoad(t *testing.T) {
	setupTempHome(t)

	conf := defaults()
	conf.UI.Theme = "TestTheme"
	conf.UI.Colors = false
	conf.Paths.DefaultEnvFile = "custom.env"
	conf.Behavior.BackupOnWrite = true

	if err := SaveAppConfig(conf); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded := LoadAppConfig()
	if loaded.UI.Theme != "TestTheme" {
		t.Errorf("Expected Theme 'TestTheme', got '%s'", loaded.UI.Theme)
	}
	if loaded.UI.Colors != false {
		t.Errorf("Expected Colors false, got %v", loaded.UI.Colors)
	}
	if loaded.DefaultEnvFile != "custom.env" {
		t.Errorf("Expected DefaultEnvFile 'custom.env', got '%s'", loaded.DefaultEnvFile)
	}
	if !loaded.Behavior.BackupOnWrite {
		t.Error("Expected BackupOnWrite true")
	}
}

func TestLoadWritesDefaults(t *testing.T) {
	setupTempHome(t)

	loaded := LoadAppConfig()
	if loaded.UI.Theme != "EnvStore" {
		t.Errorf("Expected default Theme 'EnvStore', got '%s'", loaded.UI.Theme)
	}
	if loaded.Behavior.BackupRetentionDays != 30 {
		t.Errorf("Expected default retention 30, got %d", loaded.Behavior.BackupRetentionDays)
	}
	if loaded.BackupsDir != paths.GetBackupsDir() {
		t.Errorf("Expected BackupsDir %q, got %q", paths.GetBackupsDir(), loaded.BackupsDir)
	}

	// The defaults should now exist on disk
	if _, err := os.Stat(paths.GetConfigFilePath()); err != nil {
		t.Errorf("Expected config file to be written: %v", err)
	}
}

func TestExpandVariables(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"${XDG_STATE_HOME}/backups", xdg.StateHome + "/backups"},
		{"plain/path", "plain/path"},
		{"${UNKNOWN_VAR}/x", "/x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ExpandVariables(tt.input)
			if got != tt.expected {
				t.Errorf("ExpandVariables(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		got := ExpandVariables("${HOME}/file")
		if !strings.HasPrefix(got, home) {
			t.Errorf("ExpandVariables(${HOME}/file) = %q, want prefix %q", got, home)
		}
	}
}
