package cmd

import (
	"EnvStore/internal/console"
	"EnvStore/internal/version"
	"fmt"
	"strings"
)

// PrintHelp prints usage information.
// If target is empty, prints global usage.
// If target is specified, prints usage for that specific flag/command.
func PrintHelp(target string) {
	fmt.Println(console.Parse(GetUsage(target)))
}

// GetUsage returns usage information as a string.
// If target is empty, returns global usage.
// If target is specified, returns usage for that specific flag/command.
func GetUsage(target string) string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appName := version.ApplicationName
	appCmd := version.CommandName

	// If target is empty, print intro
	if target == "" {
		printStr(fmt.Sprintf("Usage: {{_UsageCommand_}}%s{{_NC_}} [{{_UsageCommand_}}<Flags>{{_NC_}}] [{{_UsageCommand_}}<Command>{{_NC_}}]", appCmd))
		printStr("")
		printStr(fmt.Sprintf("{{_ApplicationName_}}%s{{_NC_}} [{{_Version_}}%s{{_NC_}}]", appName, version.Version))
		printStr(fmt.Sprintf("{{_ApplicationName_}}%s{{_NC_}} reads, edits, and canonically rewrites '{{_UsageVar_}}KEY=VALUE{{_NC_}}' env files.", appName))
		printStr("For regular usage you can run without providing any options; this opens the")
		printStr("interactive editor.")
		printStr("")
		printStr("Commands that work on an env file take an optional trailing {{_UsageFile_}}<file>{{_NC_}} argument.")
		printStr("Without it the default file from the config is used ('{{_UsageFile_}}.env{{_NC_}}' in the current")
		printStr("folder unless changed). Only one command runs per invocation; modifier flags")
		printStr("come before the command and apply to it.")
		printStr("")
		printStr("Flags:")
		printStr("")
	}

	showAll := target == ""

	match := func(opts ...string) bool {
		if showAll {
			return true
		}
		for _, o := range opts {
			if o == target {
				return true
			}
		}
		return false
	}

	// Flags
	if match("-f", "--force") {
		printStr("{{_UsageCommand_}}-f --force{{_NC_}}")
		printStr("	Skip safety checks: let '{{_UsageCommand_}}--set{{_NC_}}' create a missing file, '{{_UsageCommand_}}--init{{_NC_}}' overwrite an")
		printStr("	existing one, and '{{_UsageCommand_}}--merge{{_NC_}}' overwrite variables that already exist")
	}
	if match("-v", "--verbose") {
		printStr("{{_UsageCommand_}}-v --verbose{{_NC_}}")
		printStr("	Verbose")
	}
	if match("-x", "--debug") {
		printStr("{{_UsageCommand_}}-x --debug{{_NC_}}")
		printStr("	Debug")
	}
	if match("-y", "--yes") {
		printStr("{{_UsageCommand_}}-y --yes{{_NC_}}")
		printStr("	Assume Yes for all prompts")
	}
	if match("-t", "--tui") {
		printStr("{{_UsageCommand_}}-t --tui{{_NC_}}")
		printStr("	Open the interactive editor on the file after the command finishes")
	}

	if showAll {
		printStr("")
		printStr("Commands:")
		printStr("")
	}

	// Commands
	if match("-g", "--get", "--get=") {
		printStr("{{_UsageCommand_}}-g --get{{_NC_}} {{_UsageVar_}}<var>{{_NC_}} [{{_UsageFile_}}<file>{{_NC_}}]")
		printStr("{{_UsageCommand_}}--get={{_NC_}}{{_UsageVar_}}<var>{{_NC_}}")
		printStr("	Print the value of a variable")
	}
	if match("-s", "--set", "--set=") {
		printStr("{{_UsageCommand_}}-s --set{{_NC_}} {{_UsageVar_}}<var>{{_NC_}} {{_UsageVar_}}<value>{{_NC_}} [{{_UsageFile_}}<file>{{_NC_}}]")
		printStr("	Set a variable to a value and rewrite the file in canonical form")
	}
	if match("-u", "--unset", "--unset=") {
		printStr("{{_UsageCommand_}}-u --unset{{_NC_}} {{_UsageVar_}}<var>{{_NC_}} [{{_UsageFile_}}<file>{{_NC_}}]")
		printStr("	Remove a variable")
	}
	if match("-l", "--list") {
		printStr("{{_UsageCommand_}}-l --list{{_NC_}} [{{_UsageFile_}}<file>{{_NC_}}]")
		printStr("	List all variables as {{_UsageVar_}}KEY=VALUE{{_NC_}}, sorted by key")
	}
	if match("--sort") {
		printStr("{{_UsageCommand_}}--sort{{_NC_}} [{{_UsageFile_}}<file>{{_NC_}}]")
		printStr("	Rewrite the file in its canonical form: one {{_UsageVar_}}KEY=VALUE{{_NC_}} per line, sorted by")
		printStr("	key, lines without '=' dropped, duplicate keys folded to the last value")
	}
	if match("-m", "--merge", "--merge=") {
		printStr("{{_UsageCommand_}}-m --merge{{_NC_}} {{_UsageFile_}}<source>{{_NC_}} [{{_UsageFile_}}<file>{{_NC_}}]")
		printStr("	Merge variables from a source env file; variables that already exist are")
		printStr("	kept unless '{{_UsageCommand_}}--force{{_NC_}}' is given")
	}
	if match("-d", "--diff") {
		printStr("{{_UsageCommand_}}-d --diff{{_NC_}} [{{_UsageFile_}}<file>{{_NC_}}]")
		printStr("	Show what a canonical rewrite would change; exits 1 when there is drift")
	}
	if match("-b", "--backup") {
		printStr("{{_UsageCommand_}}-b --backup{{_NC_}} [{{_UsageFile_}}<file>{{_NC_}}]")
		printStr("	Copy the file into the backups folder with a timestamp")
	}
	if match("--export", "--export=") {
		printStr("{{_UsageCommand_}}--export{{_NC_}} < {{_UsageFormat_}}yaml{{_NC_}} | {{_UsageFormat_}}toml{{_NC_}} > [{{_UsageFile_}}<file>{{_NC_}}]")
		printStr("	Write the variables to stdout in the given format")
	}
	if match("--init") {
		printStr("{{_UsageCommand_}}--init{{_NC_}} [{{_UsageFile_}}<file>{{_NC_}}]")
		printStr("	Create an env file from the starter template; refuses to overwrite an")
		printStr("	existing file without '{{_UsageCommand_}}--force{{_NC_}}'")
	}
	if match("-w", "--watch") {
		printStr("{{_UsageCommand_}}-w --watch{{_NC_}} [{{_UsageFile_}}<file>{{_NC_}}]")
		printStr("	Watch the file and report added, changed, and removed variables")
	}
	if match("-e", "--edit") {
		printStr("{{_UsageCommand_}}-e --edit{{_NC_}} [{{_UsageFile_}}<file>{{_NC_}}]")
		printStr("	Open the interactive editor")
	}

	if showAll {
		printStr("")
		printStr("Maintenance Commands:")
		printStr("")
	}

	// Maintenance Commands
	if match("-U", "--update", "--update=") {
		printStr("{{_UsageCommand_}}-U --update{{_NC_}}")
		printStr(fmt.Sprintf("	Update {{_ApplicationName_}}%s{{_NC_}} using GitHub releases", appName))
		printStr("{{_UsageCommand_}}-U --update{{_NC_}} [{{_Version_}}<version or channel>{{_NC_}}]")
		printStr("	Update to the given release ('{{_Version_}}v1.2.3{{_NC_}}') or to the newest release of a")
		printStr("	channel ('{{_Version_}}beta{{_NC_}}')")
	}
	if match("-V", "--version") {
		printStr("{{_UsageCommand_}}-V --version{{_NC_}}")
		printStr("	Display version information and check for a newer release")
	}
	if match("-T", "--theme", "--theme=") {
		printStr("{{_UsageCommand_}}-T --theme{{_NC_}}")
		printStr("	Shows the current theme")
		printStr("{{_UsageCommand_}}-T --theme{{_NC_}} {{_UsageTheme_}}<themename>{{_NC_}}")
		printStr("	Saves and applies the specified theme")
	}
	if match("--theme-list") {
		printStr("{{_UsageCommand_}}--theme-list{{_NC_}}")
		printStr("	Lists the available themes")
	}
	if match("-h", "--help") {
		printStr("{{_UsageCommand_}}-h --help{{_NC_}}")
		printStr("	Show this usage information")
		printStr("{{_UsageCommand_}}-h --help{{_NC_}} {{_UsageOption_}}<option>{{_NC_}}")
		printStr("	Show the usage of the specified option")
	}

	return strings.TrimRight(sb.String(), "\n")
}
