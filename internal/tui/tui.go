package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"EnvStore/internal/config"
	"EnvStore/internal/console"
	"EnvStore/internal/envfile"
	"EnvStore/internal/logger"
	"EnvStore/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Initialize loads the theme and derives the editor styles from it without
// starting the run loop.
func Initialize(ctx context.Context, conf config.AppConfig) error {
	if err := theme.Load(ctx, conf.UI.Theme); err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	// Style from the freshly registered tags
	InitStyles(conf)

	// Set color profile from centralized detection (respects COLORTERM/TERM)
	lipgloss.SetColorProfile(console.GetPreferredProfile())

	return nil
}

// Start opens the entry editor on the env file at path and blocks until the
// user quits or ctx is cancelled.
func Start(ctx context.Context, conf config.AppConfig, path string) error {
	if !console.IsTTY() {
		return errors.New("the editor needs an interactive terminal")
	}

	if err := Initialize(ctx, conf); err != nil {
		return err
	}

	store, err := envfile.New(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		// Editing a file that does not exist yet: start empty, create on save
		store = envfile.Create(path)
	}

	logger.Info(ctx, "Editing {{_File_}}%s{{_NC_}} (%d entries)", path, store.Len())

	// Quiet the console handler while the alternate screen is up; the file
	// handler keeps logging.
	prevLevel := logger.LevelVar.Level()
	logger.SetLevel(logger.LevelError)
	defer logger.SetLevel(prevLevel)

	model := NewModel(ctx, conf, store)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Let panic recovery restore the terminal before printing a trace
	console.SetTUIEnabled(true)
	console.TUIShutdown = func() { _ = program.ReleaseTerminal() }
	defer func() {
		console.TUIShutdown = nil
		console.SetTUIEnabled(false)
	}()

	_, err = program.Run()
	// Reset terminal colors on exit to prevent "bleeding" into the shell prompt
	fmt.Print("\x1b[0m")

	// ctx cancellation (SIGINT) kills the program; that is a clean exit here
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled)) {
		return nil
	}
	return err
}
