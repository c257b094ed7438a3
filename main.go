package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EnvStore/cmd"
	"EnvStore/internal/assets"
	"EnvStore/internal/config"
	"EnvStore/internal/console"
	"EnvStore/internal/logger"
	"EnvStore/internal/update"
	"EnvStore/internal/version"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	slog.SetDefault(logger.NewLogger())

	// SIGINT/SIGTERM cancel the context so long-running commands like
	// --watch shut down cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Defer cleanup to ensure it runs even if we return early or panic
	defer cleanup(ctx)

	// Recover from logger.FatalError to ensure cleanup runs
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(logger.FatalError); ok {
				// This panic was intentional from logger.Fatal/FatalNoTrace
				exitCode = 1
			} else {
				// Re-panic for other errors
				panic(r)
			}
		}
		if exitCode != 0 {
			fmt.Fprintln(os.Stderr, console.Parse(fmt.Sprintf("{{_ApplicationName_}}%s{{_NC_}} did not finish running successfully.", version.ApplicationName)))
		}
	}()

	// Ensure embedded assets are extracted
	if err := assets.EnsureAssets(ctx); err != nil {
		logger.Error(ctx, "Failed to ensure assets: %v", err)
		// We continue, as the app might still work with hardcoded defaults
	}

	// Parse command line arguments
	groups, err := cmd.Parse(os.Args[1:])
	if err != nil {
		logger.Error(ctx, err.Error())
		return 1
	}

	// Check for a newer release in the background while the command runs
	checkDone := make(chan struct{})
	if wantsStartupCheck(groups) {
		conf := config.LoadAppConfig()
		go func() {
			defer close(checkDone)
			update.GetUpdateStatus(ctx, conf)
		}()
	} else {
		close(checkDone)
	}

	// Hand off execution to the cmd package
	exitCode = cmd.Execute(ctx, groups)

	// Announce after the command output so the check never delays it
	select {
	case <-checkDone:
		update.AnnounceUpdate(ctx)
	case <-time.After(2 * time.Second):
		// Slow network; skip the announcement this run
	}

	return exitCode
}

// wantsStartupCheck reports whether this invocation should look for a newer
// release in the background. Scripted runs (stdout not a terminal) skip the
// check, as do commands that handle their own: --update, --version, --help,
// and the editor, whose footer shows the result of its own check.
func wantsStartupCheck(groups []cmd.CommandGroup) bool {
	if !console.IsTTY() {
		return false
	}
	ranCommand := false
	for _, group := range groups {
		for _, flag := range group.Flags {
			if flag == "-t" || flag == "--tui" {
				return false
			}
		}
		switch group.Command {
		case "":
			continue
		case "-U", "--update", "-V", "--version", "-h", "--help", "-e", "--edit":
			return false
		}
		ranCommand = true
	}
	// No command opens the editor
	return ranCommand
}

func cleanup(ctx context.Context) {
	logger.Info(ctx, "Cleaning up...")
	logger.Cleanup()
}
