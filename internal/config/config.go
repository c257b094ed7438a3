package config

import (
	"EnvStore/internal/constants"
	"EnvStore/internal/paths"
	"os"
	"os/user"
	"path/filepath"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	UI       UIConfig       `toml:"ui"`
	Paths    PathConfig     `toml:"paths"`
	Behavior BehaviorConfig `toml:"behavior"`

	// These are helper fields for runtime use, not saved to TOML
	DefaultEnvFile string `toml:"-"`
	BackupsDir     string `toml:"-"`
}

// UIConfig holds user interface related settings.
type UIConfig struct {
	Theme          string `toml:"theme"`
	Colors         bool   `toml:"colors"`
	LineCharacters bool   `toml:"line_characters"`
}

// PathConfig holds file and directory path settings.
type PathConfig struct {
	DefaultEnvFile string `toml:"default_env_file"`
	BackupsFolder  string `toml:"backups_folder"`
}

// BehaviorConfig holds settings that change how writes and updates behave.
type BehaviorConfig struct {
	BackupOnWrite       bool   `toml:"backup_on_write"`
	BackupRetentionDays int    `toml:"backup_retention_days"`
	UpdateChannel       string `toml:"update_channel"`
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_DATA_HOME}   -> xdg.DataHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${XDG_CACHE_HOME}  -> xdg.CacheHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_DATA_HOME":
			return xdg.DataHome
		case "XDG_STATE_HOME":
			return xdg.StateHome
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return ""
	}
	return os.Expand(val, mapper)
}

func defaults() AppConfig {
	return AppConfig{
		UI: UIConfig{
			Theme:          "EnvStore",
			Colors:         true,
			LineCharacters: true,
		},
		Paths: PathConfig{
			DefaultEnvFile: constants.EnvFileName,
			BackupsFolder:  "",
		},
		Behavior: BehaviorConfig{
			BackupOnWrite:       false,
			BackupRetentionDays: 30,
			UpdateChannel:       "stable",
		},
	}
}

// resolve fills the runtime-only fields from the saved values. An empty
// backups_folder falls back to the state directory default.
func resolve(conf AppConfig) AppConfig {
	conf.DefaultEnvFile = ExpandVariables(conf.Paths.DefaultEnvFile)
	conf.BackupsDir = ExpandVariables(conf.Paths.BackupsFolder)
	if conf.BackupsDir == "" {
		conf.BackupsDir = paths.GetBackupsDir()
	}
	return conf
}

// LoadAppConfig reads the configuration file and returns the configuration.
// A missing or unreadable file yields the defaults, saved back to disk so
// the user has something to edit.
func LoadAppConfig() AppConfig {
	conf := defaults()

	path := paths.GetConfigFilePath()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, &conf); err == nil {
			return resolve(conf)
		}
	}

	conf = resolve(conf)
	SaveAppConfig(conf)
	return conf
}

// SaveAppConfig writes the configuration to config.toml.
func SaveAppConfig(conf AppConfig) error {
	path := paths.GetConfigFilePath()

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
