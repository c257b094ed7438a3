package logger

import (
	"EnvStore/internal/console"
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Recover traps panics and reports them through FatalWithStackSkip.
// Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	if r := recover(); r != nil {
		// Suppress further panics during recovery to avoid loops
		defer func() {
			_ = recover()
		}()

		// Restore terminal if TUI was running
		if console.TUIShutdown != nil {
			console.TUIShutdown()
		}
		console.SetTUIEnabled(false)

		// An intentional Fatal panic was already logged
		if _, ok := r.(FatalError); ok {
			return
		}

		// Skip 2 frames: Recover + runtime.gopanic
		FatalWithStackSkip(ctx, 2, "panic: %v", r)
	}
}

// RecoverTUI wraps a tea.Cmd so a panic inside it restores the terminal
// before the fatal report is printed.
func RecoverTUI(ctx context.Context, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		defer func() {
			if r := recover(); r != nil {
				defer func() {
					_ = recover()
				}()

				if console.TUIShutdown != nil {
					console.TUIShutdown()
				}
				console.SetTUIEnabled(false)

				if _, ok := r.(FatalError); ok {
					return
				}

				// Skip 2 frames: closure + runtime.gopanic
				FatalWithStackSkip(ctx, 2, "TUI panic: %v", r)
			}
		}()
		return cmd()
	}
}
