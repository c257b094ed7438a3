package cmd

import (
	"EnvStore/internal/version"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseError wraps argument parsing errors to provide rich output in the
// style of classic shell getopts errors: the full command line with the
// failing option highlighted, a caret under it, and the usage of the
// command involved.
type ParseError struct {
	Args           []string // The full argument list passed to Parse
	Index          int      // The index where the error occurred
	Message        string   // The specific error message
	FailingCommand string   // The command being processed (e.g. "--set")
}

func (e *ParseError) Error() string {
	indent := "   "

	// Build command line string
	var cmdLineParts []string

	// Prepend the executable name as the command text
	cmdLineParts = append(cmdLineParts, fmt.Sprintf("{{_UserCommand_}}%s{{_NC_}}", version.CommandName))

	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		str := e.Args[i]
		if i == e.Index {
			// Highlight failing option
			str = fmt.Sprintf("{{_UserCommandError_}}%s{{_NC_}}", str)
		} else {
			str = fmt.Sprintf("{{_UserCommand_}}%s{{_NC_}}", str)
		}
		cmdLineParts = append(cmdLineParts, str)
	}

	// Join parts and wrap in single quotes as a whole visual unit
	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"
	// Indent + ' + envstore + space + previous args + spaces
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1 // arg + space
	}
	pointerLine := strings.Repeat(" ", caretOffset) + "{{_UserCommandErrorMarker_}}^{{_NC_}}"

	// Message might contain %c (command) or %o (option)
	failingOpt := ""
	if e.Index < len(e.Args) {
		failingOpt = e.Args[e.Index]
	}

	formattedCmd := fmt.Sprintf("'{{_UserCommand_}}%s{{_NC_}}'", e.FailingCommand)
	formattedOpt := fmt.Sprintf("'{{_UserCommand_}}%s{{_NC_}}'", failingOpt)

	replacer := strings.NewReplacer(
		"%c", formattedCmd,
		"%o", formattedOpt,
	)
	formattedMsg := replacer.Replace(e.Message)

	out := fmt.Sprintf("Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)

	// Add Usage if applicable
	if e.FailingCommand != "" {
		out += fmt.Sprintf("\n%sUsage is:\n", indent)
		usageStr := GetUsage(e.FailingCommand)
		for _, line := range strings.Split(usageStr, "\n") {
			out += fmt.Sprintf("%s%s\n", indent, line)
		}
	} else {
		out += fmt.Sprintf("\n%sRun '{{_UserCommand_}}%s --help{{_NC_}}' for usage.\n", indent, version.CommandName)
	}

	return out
}

// CommandGroup represents a parsed group of modifier flags and a command
// with its arguments
type CommandGroup struct {
	Flags   []string
	Command string
	Args    []string
}

// FullSlice returns the reconstructed slice of strings for the group
func (cg CommandGroup) FullSlice() []string {
	var s []string
	s = append(s, cg.Flags...)
	if cg.Command != "" {
		s = append(s, cg.Command)
	}
	s = append(s, cg.Args...)
	return s
}

// CommandSlice returns the command and its arguments as a slice
func (cg CommandGroup) CommandSlice() []string {
	var s []string
	if cg.Command != "" {
		s = append(s, cg.Command)
	}
	s = append(s, cg.Args...)
	return s
}

// Flatten converts a slice of CommandGroups into a single slice of strings
func Flatten(groups []CommandGroup) []string {
	var s []string
	for _, g := range groups {
		s = append(s, g.FullSlice()...)
	}
	return s
}

// modifiers are the flags that change how a command runs rather than what
// runs. They can appear anywhere before the command.
var modifiers = map[string]string{
	"-f": "force", "--force": "force",
	"-v": "verbose", "--verbose": "verbose",
	"-x": "debug", "--debug": "debug",
	"-y": "yes", "--yes": "yes",
	"-t": "tui", "--tui": "tui",
}

// Parse splits the raw command line into modifier flags and one command
// with its arguments. Combined short flags are expanded first (-fy becomes
// -f -y), long commands accept an inline value (--get=KEY), and at most one
// command is allowed per run.
func Parse(args []string) ([]CommandGroup, error) {
	// Initialize flags to make sure help text is available
	InitFlags()

	// Reset modifier values so repeated parses don't inherit state
	for _, name := range []string{"force", "verbose", "debug", "yes", "tui"} {
		_ = pflag.CommandLine.Set(name, "false")
	}

	// Pre-process args to expand combined short flags (e.g. -fy -> -f -y)
	var expandedArgs []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && len(arg) > 2 && !strings.Contains(arg, "=") {
			for _, c := range arg[1:] {
				expandedArgs = append(expandedArgs, fmt.Sprintf("-%c", c))
			}
		} else {
			expandedArgs = append(expandedArgs, arg)
		}
	}

	var groups []CommandGroup
	var currentGroup CommandGroup
	var lastCommand string
	var firstCommand string

	i := 0
	for i < len(expandedArgs) {
		arg := expandedArgs[i]

		if !strings.HasPrefix(arg, "-") {
			// Non-flag argument at top level: the previous command did not
			// want it
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: fmt.Sprintf("invalid option '%s'", arg), FailingCommand: lastCommand}
		}

		if name, ok := modifiers[arg]; ok {
			currentGroup.Flags = append(currentGroup.Flags, arg)
			// Make the value visible to console.Force and friends
			_ = pflag.CommandLine.Set(name, "true")
			lastCommand = arg
			i++
			continue
		}

		// Not a modifier and starts with -, so it's a command.

		// Long commands may carry an inline value (--get=KEY); split it off
		// so validation and dispatch see the bare command.
		base := arg
		inline := ""
		hasInline := false
		if strings.HasPrefix(arg, "--") && strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			base, inline = parts[0], parts[1]
			hasInline = true
		}

		// Validate that the command is a known flag
		cmdName := strings.TrimLeft(base, "-")
		var validFlag *pflag.Flag
		if strings.HasPrefix(base, "--") {
			validFlag = pflag.Lookup(cmdName)
		} else if len(cmdName) == 1 {
			validFlag = pflag.CommandLine.ShorthandLookup(cmdName)
		}

		if validFlag == nil {
			return nil, &ParseError{Args: expandedArgs, Index: i, Message: "Invalid option %o"}
		}

		if firstCommand != "" {
			return nil, &ParseError{Args: expandedArgs, Index: i, FailingCommand: firstCommand, Message: "Only one command per run. Command %c was already given."}
		}
		firstCommand = base

		currentGroup.Command = base
		lastCommand = base
		cmdIndex := i
		i++

		if hasInline {
			currentGroup.Args = append(currentGroup.Args, inline)
		}

		// Consume arguments for this command. The trailing [FILE] is always
		// optional; the required arguments come first.
		var minArgs, maxArgs int
		var missingMsg string

		switch base {
		case "-g", "--get", "-u", "--unset":
			minArgs, maxArgs = 1, 2
			missingMsg = "Command %c requires a variable name."

		case "-s", "--set":
			minArgs, maxArgs = 2, 3
			missingMsg = "Command %c requires a variable name and a value."

		case "-m", "--merge":
			minArgs, maxArgs = 1, 2
			missingMsg = "Command %c requires a source file."

		case "--export":
			minArgs, maxArgs = 1, 2
			missingMsg = "Command %c requires an output format."

		case "-l", "--list", "--sort", "-d", "--diff",
			"-b", "--backup", "--init", "-w", "--watch", "-e", "--edit":
			minArgs, maxArgs = 0, 1

		case "-U", "--update", "-T", "--theme":
			minArgs, maxArgs = 0, 1

		case "-h", "--help":
			// Help takes the option to describe, which itself starts with
			// a dash
			if i < len(expandedArgs) && strings.HasPrefix(expandedArgs[i], "-") {
				currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
				i++
			}

		default:
			// -V, --version, --theme-list take no arguments. Anything the
			// user supplies anyway is caught as an invalid option on the
			// next loop pass.
		}

		for len(currentGroup.Args) < maxArgs {
			if i >= len(expandedArgs) || strings.HasPrefix(expandedArgs[i], "-") {
				break
			}
			currentGroup.Args = append(currentGroup.Args, expandedArgs[i])
			i++
		}
		if len(currentGroup.Args) < minArgs {
			return nil, &ParseError{Args: expandedArgs, Index: cmdIndex, FailingCommand: base, Message: missingMsg}
		}

		// Command group finished
		groups = append(groups, currentGroup)
		currentGroup = CommandGroup{}
	}

	// Trailing modifiers without a command still count; the executor decides
	// what runs (usually the editor).
	if len(currentGroup.Flags) > 0 {
		groups = append(groups, currentGroup)
	}

	return groups, nil
}
