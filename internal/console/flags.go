package console

import (
	"github.com/spf13/pflag"
)

// The modifier getters read the pflag values that cmd.Parse sets while it
// walks the command line, so any package can check a modifier without
// threading state through every call.

// Force returns true if the --force flag is set.
func Force() bool {
	v, _ := pflag.CommandLine.GetBool("force")
	return v
}

// AssumeYes returns true if the --yes flag is set.
func AssumeYes() bool {
	v, _ := pflag.CommandLine.GetBool("yes")
	return v
}

// Verbose returns true if the --verbose flag is set.
func Verbose() bool {
	v, _ := pflag.CommandLine.GetBool("verbose")
	return v
}

// Debug returns true if the --debug flag is set.
func Debug() bool {
	v, _ := pflag.CommandLine.GetBool("debug")
	return v
}

// TUI returns true if the --tui flag is set.
func TUI() bool {
	v, _ := pflag.CommandLine.GetBool("tui")
	return v
}
