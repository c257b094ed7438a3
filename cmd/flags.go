package cmd

import (
	"sync"

	"github.com/spf13/pflag"
)

var initFlagsOnce sync.Once

// InitFlags defines the pflags used for argument validation and help. Safe
// to call more than once; registration only happens the first time.
func InitFlags() {
	initFlagsOnce.Do(func() {
		// Modifiers
		pflag.BoolP("force", "f", false, "Force execution")
		pflag.BoolP("verbose", "v", false, "Verbose output")
		pflag.BoolP("debug", "x", false, "Debug output")
		pflag.BoolP("yes", "y", false, "Assume yes")
		pflag.BoolP("tui", "t", false, "Open the editor after the command")
		pflag.BoolP("help", "h", false, "Show help")

		// Queries
		pflag.StringP("get", "g", "", "Get variable value")
		pflag.BoolP("list", "l", false, "List all variables")
		pflag.BoolP("diff", "d", false, "Show drift from the canonical form")

		// Mutations
		pflag.StringP("set", "s", "", "Set variable value")
		pflag.StringP("unset", "u", "", "Remove variable")
		pflag.Bool("sort", false, "Rewrite the env file in canonical form")
		pflag.StringP("merge", "m", "", "Merge variables from another env file")
		pflag.Bool("init", false, "Create an env file from the starter template")

		// File management
		pflag.BoolP("backup", "b", false, "Back up the env file")
		pflag.String("export", "", "Export variables (yaml or toml)")
		pflag.BoolP("watch", "w", false, "Watch the env file for changes")
		pflag.BoolP("edit", "e", false, "Open the interactive editor")

		// Maintenance
		pflag.StringP("update", "U", "", "Update EnvStore (can specify version or channel)")
		pflag.BoolP("version", "V", false, "Show version")

		// Theme
		pflag.StringP("theme", "T", "", "Show or set the color theme")
		pflag.Bool("theme-list", false, "List available themes")
	})
}
