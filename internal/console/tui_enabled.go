package console

import "sync/atomic"

var tuiEnabled atomic.Bool

// IsTUIEnabled returns true if the application is currently running in TUI mode.
func IsTUIEnabled() bool {
	return tuiEnabled.Load()
}

// SetTUIEnabled sets whether the application is running in TUI mode.
func SetTUIEnabled(enabled bool) {
	tuiEnabled.Store(enabled)
}

// TUIShutdown, when set, restores the terminal from TUI mode. Panic
// recovery calls it before printing so the trace lands on a sane screen.
var TUIShutdown func()
