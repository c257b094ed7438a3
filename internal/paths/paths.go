package paths

import (
	"EnvStore/internal/constants"
	"EnvStore/internal/version"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

var (
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
)

// GetConfigFilePath returns the absolute path to the config.toml file.
// It places it in a subdirectory named after the application (e.g., ~/.config/envstore/config.toml).
func GetConfigFilePath() string {
	return filepath.Join(GetConfigDir(), constants.ConfigFileName)
}

// GetConfigDir returns the absolute path to the envstore configuration directory.
func GetConfigDir() string {
	if ConfigHomeOverride != "" {
		return ConfigHomeOverride
	}
	appName := strings.ToLower(version.ApplicationName)
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
	return filepath.Join(xdg.ConfigHome, appName)
}

// GetStateDir returns the absolute path to the envstore state directory.
func GetStateDir() string {
	if StateHomeOverride != "" {
		return StateHomeOverride
	}
	appName := strings.ToLower(version.ApplicationName)
	return filepath.Join(xdg.StateHome, appName)
}

// GetThemesDir returns the absolute path to the themes directory in the state folder.
func GetThemesDir() string {
	return filepath.Join(GetStateDir(), constants.ThemesDirName)
}

// GetBackupsDir returns the absolute path to the backups directory in the state folder.
func GetBackupsDir() string {
	return filepath.Join(GetStateDir(), constants.BackupsDirName)
}

// GetLogFilePath returns the absolute path to the log file in the state folder.
func GetLogFilePath() string {
	return filepath.Join(GetStateDir(), constants.LogFileName)
}
