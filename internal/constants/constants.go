package constants

// Folder Names
const (
	ThemesDirName  = "themes"
	BackupsDirName = "backups"
)

// File Names
const (
	ConfigFileName      = "config.toml"
	LogFileName         = "envstore.log"
	EnvFileName         = ".env"
	EnvTemplateFileName = "template.env"
	LockFileSuffix      = ".lock"
	BackupTimeLayout    = "20060102-150405"
)

// Export Formats
const (
	ExportFormatYAML = "yaml"
	ExportFormatTOML = "toml"
)
