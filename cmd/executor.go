package cmd

import (
	"EnvStore/internal/config"
	"EnvStore/internal/console"
	"EnvStore/internal/envops"
	"EnvStore/internal/logger"
	"EnvStore/internal/paths"
	"EnvStore/internal/theme"
	"EnvStore/internal/tui"
	"EnvStore/internal/update"
	"EnvStore/internal/version"
	"EnvStore/internal/watch"
	"context"
	"fmt"
	"os"
	"strings"
)

// CmdState carries the modifier flags that apply to the command being run.
type CmdState struct {
	Force bool
	Yes   bool
	TUI   bool
}

// commandTitles names the commands for the pre-dispatch notice.
var commandTitles = map[string]string{
	"-g":           "Get",
	"--get":        "Get",
	"-s":           "Set",
	"--set":        "Set",
	"-u":           "Unset",
	"--unset":      "Unset",
	"-l":           "List",
	"--list":       "List",
	"--sort":       "Sort",
	"-m":           "Merge",
	"--merge":      "Merge",
	"-d":           "Diff",
	"--diff":       "Diff",
	"-b":           "Backup",
	"--backup":     "Backup",
	"--export":     "Export",
	"--init":       "Init",
	"-w":           "Watch",
	"--watch":      "Watch",
	"-e":           "Edit",
	"--edit":       "Edit",
	"-U":           "Update",
	"--update":     "Update",
	"-V":           "Version",
	"--version":    "Version",
	"-h":           "Help",
	"--help":       "Help",
	"-T":           "Theme",
	"--theme":      "Theme",
	"--theme-list": "List Themes",
}

// fileArgIndex is the position of the optional trailing file argument for
// every command that works on an env file.
var fileArgIndex = map[string]int{
	"-g":       1,
	"--get":    1,
	"-s":       2,
	"--set":    2,
	"-u":       1,
	"--unset":  1,
	"-l":       0,
	"--list":   0,
	"--sort":   0,
	"-m":       1,
	"--merge":  1,
	"-d":       0,
	"--diff":   0,
	"-b":       0,
	"--backup": 0,
	"--export": 1,
	"--init":   0,
	"-w":       0,
	"--watch":  0,
	"-e":       0,
	"--edit":   0,
}

// fileArg returns the file argument at index idx, falling back to the
// configured default env file.
func fileArg(conf config.AppConfig, args []string, idx int) string {
	if len(args) > idx && args[idx] != "" {
		return args[idx]
	}
	return conf.DefaultEnvFile
}

// firstArg returns the first argument or "".
func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// Execute runs the parsed command groups and returns the process exit code.
// Modifier flags apply to everything after them; without a command the
// interactive editor opens on the default file.
func Execute(ctx context.Context, groups []CommandGroup) int {
	conf := config.LoadAppConfig()
	if err := theme.Load(ctx, conf.UI.Theme); err != nil {
		logger.Warn(ctx, "%v", err)
	}

	state := CmdState{}
	ranCommand := false
	exitCode := 0

	for _, group := range groups {
		// Apply modifier flags to the run
		for _, flag := range group.Flags {
			switch flag {
			case "-f", "--force":
				state.Force = true
			case "-y", "--yes":
				state.Yes = true
			case "-t", "--tui":
				state.TUI = true
			case "-v", "--verbose":
				logger.SetLevel(logger.LevelDebug)
			case "-x", "--debug":
				logger.SetLevel(logger.LevelTrace)
			}
		}

		if group.Command == "" {
			continue
		}
		ranCommand = true

		if title, ok := commandTitles[group.Command]; ok {
			logger.Info(ctx, "%s command: '{{_UserCommand_}}%s{{_NC_}}'", title, strings.Join(group.CommandSlice(), " "))
		}

		args := group.Args
		var err error

		switch group.Command {
		case "-g", "--get":
			err = envops.Get(ctx, fileArg(conf, args, 1), args[0])

		case "-s", "--set":
			err = envops.Set(ctx, conf, fileArg(conf, args, 2), args[0], args[1], state.Force)

		case "-u", "--unset":
			err = envops.Unset(ctx, conf, fileArg(conf, args, 1), args[0])

		case "-l", "--list":
			err = envops.List(ctx, fileArg(conf, args, 0))

		case "--sort":
			err = envops.Sort(ctx, conf, fileArg(conf, args, 0))

		case "-m", "--merge":
			err = envops.Merge(ctx, conf, fileArg(conf, args, 1), args[0], !state.Force)

		case "-d", "--diff":
			var clean bool
			clean, err = envops.Diff(ctx, fileArg(conf, args, 0))
			if err == nil && !clean {
				// Drift reports through the exit code like diff(1)
				exitCode = 1
			}

		case "-b", "--backup":
			_, err = envops.Backup(ctx, conf, fileArg(conf, args, 0))

		case "--export":
			err = envops.Export(ctx, fileArg(conf, args, 1), args[0], os.Stdout)

		case "--init":
			err = envops.Init(ctx, fileArg(conf, args, 0), state.Force)

		case "-w", "--watch":
			err = watch.Watch(ctx, fileArg(conf, args, 0), nil)

		case "-e", "--edit":
			err = tui.Start(ctx, conf, fileArg(conf, args, 0))

		case "-U", "--update":
			err = update.SelfUpdate(ctx, conf, state.Force, state.Yes, firstArg(args))

		case "-V", "--version":
			err = handleVersion(ctx, conf)

		case "-h", "--help":
			PrintHelp(firstArg(args))

		case "-T", "--theme", "--theme-list":
			err = handleTheme(ctx, conf, group)
		}

		if err != nil {
			logger.Error(ctx, err.Error())
			return 1
		}

		// The --tui modifier follows the command up with the editor on the
		// file the command worked on
		if state.TUI && group.Command != "-e" && group.Command != "--edit" {
			if idx, ok := fileArgIndex[group.Command]; ok {
				if err := tui.Start(ctx, conf, fileArg(conf, args, idx)); err != nil {
					logger.Error(ctx, err.Error())
					return 1
				}
			}
		}
	}

	if !ranCommand {
		// No command given: open the interactive editor on the default file
		if err := tui.Start(ctx, conf, conf.DefaultEnvFile); err != nil {
			logger.Error(ctx, err.Error())
			return 1
		}
	}

	return exitCode
}

func handleVersion(ctx context.Context, conf config.AppConfig) error {
	logger.Display(ctx, update.GetVersionDisplay())
	if update.GetUpdateStatus(ctx, conf) {
		logger.Display(ctx, "Update available: {{_Update_}}%s{{_NC_}} (run '{{_UserCommand_}}%s --update{{_NC_}}' to install)", update.LatestVersion, version.CommandName)
	}
	return nil
}

func handleTheme(ctx context.Context, conf config.AppConfig, group CommandGroup) error {
	switch group.Command {
	case "-T", "--theme":
		if len(group.Args) == 0 {
			name := conf.UI.Theme
			if name == "" {
				name = "default"
			}
			logger.Display(ctx, "Current theme is: {{_Theme_}}%s{{_NC_}}", name)
			logger.Notice(ctx, "Run '{{_UserCommand_}}%s --theme-list{{_NC_}}' to see the available themes.", version.CommandName)
			return nil
		}

		newTheme := group.Args[0]
		if !themeExists(newTheme) {
			return fmt.Errorf("theme '{{_Theme_}}%s{{_NC_}}' not found in '{{_Folder_}}%s{{_NC_}}'", newTheme, paths.GetThemesDir())
		}

		conf.UI.Theme = newTheme
		if err := config.SaveAppConfig(conf); err != nil {
			return fmt.Errorf("unable to save theme setting: %w", err)
		}
		// Reload so output later in this run already uses the new palette
		if err := theme.Load(ctx, newTheme); err != nil {
			return err
		}
		logger.Notice(ctx, "Theme updated to: {{_Theme_}}%s{{_NC_}}", newTheme)

	case "--theme-list":
		palettes, err := theme.List()
		if err != nil {
			return fmt.Errorf("unable to list themes: %w", err)
		}
		if len(palettes) == 0 {
			logger.Warn(ctx, "No themes found in '{{_Folder_}}%s{{_NC_}}'.", paths.GetThemesDir())
			return nil
		}

		headers := []string{"Theme", "Description", "Author"}
		var data []string
		for _, p := range palettes {
			data = append(data, fmt.Sprintf("{{_Theme_}}%s{{_NC_}}", p.Name), p.Description, p.Author)
		}
		console.PrintTable(headers, data, conf.UI.LineCharacters)
	}
	return nil
}

// themeExists reports whether name selects the built-in palette or one from
// the themes folder.
func themeExists(name string) bool {
	if strings.EqualFold(name, "default") || strings.EqualFold(name, version.ApplicationName) {
		return true
	}
	palettes, err := theme.List()
	if err != nil {
		return false
	}
	for _, p := range palettes {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}
