package console

// Raw ANSI Color Codes
const (
	// Reset
	CodeReset = "\033[0m"

	// Modifiers
	CodeBold          = "\033[1m"
	CodeDim           = "\033[2m"
	CodeItalic        = "\033[3m"
	CodeUnderline     = "\033[4m"
	CodeBlink         = "\033[5m"
	CodeReverse       = "\033[7m"
	CodeStrikethrough = "\033[9m"

	// Modifier resets
	CodeBoldOff          = "\033[22m"
	CodeDimOff           = "\033[22m"
	CodeItalicOff        = "\033[23m"
	CodeUnderlineOff     = "\033[24m"
	CodeBlinkOff         = "\033[25m"
	CodeReverseOff       = "\033[27m"
	CodeStrikethroughOff = "\033[29m"

	// Foreground
	CodeBlack   = "\033[30m"
	CodeRed     = "\033[31m"
	CodeGreen   = "\033[32m"
	CodeYellow  = "\033[33m"
	CodeBlue    = "\033[34m"
	CodeMagenta = "\033[35m"
	CodeCyan    = "\033[36m"
	CodeWhite   = "\033[37m"

	// Foreground (Bright)
	CodeBrightBlack   = "\033[90m"
	CodeBrightRed     = "\033[91m"
	CodeBrightGreen   = "\033[92m"
	CodeBrightYellow  = "\033[93m"
	CodeBrightBlue    = "\033[94m"
	CodeBrightMagenta = "\033[95m"
	CodeBrightCyan    = "\033[96m"
	CodeBrightWhite   = "\033[97m"

	// Background
	CodeBlackBg   = "\033[40m"
	CodeRedBg     = "\033[41m"
	CodeGreenBg   = "\033[42m"
	CodeYellowBg  = "\033[43m"
	CodeBlueBg    = "\033[44m"
	CodeMagentaBg = "\033[45m"
	CodeCyanBg    = "\033[46m"
	CodeWhiteBg   = "\033[47m"

	// Background (Bright)
	CodeBrightBlackBg   = "\033[100m"
	CodeBrightRedBg     = "\033[101m"
	CodeBrightGreenBg   = "\033[102m"
	CodeBrightYellowBg  = "\033[103m"
	CodeBrightBlueBg    = "\033[104m"
	CodeBrightMagentaBg = "\033[105m"
	CodeBrightCyanBg    = "\033[106m"
	CodeBrightWhiteBg   = "\033[107m"
)

// AppColors defines the struct for program-wide colors/styles
type AppColors struct {
	// Base Codes
	Reset     string
	Bold      string
	Dim       string
	Underline string
	Blink     string
	Reverse   string

	// Base Colors (Foreground)
	Black   string
	Red     string
	Green   string
	Yellow  string
	Blue    string
	Magenta string
	Cyan    string
	White   string

	// Base Colors (Background)
	BlackBg   string
	RedBg     string
	GreenBg   string
	YellowBg  string
	BlueBg    string
	MagentaBg string
	CyanBg    string
	WhiteBg   string

	// Semantic Colors
	Timestamp              string
	Trace                  string
	Debug                  string
	Info                   string
	Notice                 string
	Warn                   string
	Error                  string
	Fatal                  string
	FatalFooter            string
	TraceHeader            string
	TraceFooter            string
	TraceFrameNumber       string
	TraceFrameLines        string
	TraceSourceFile        string
	TraceLineNumber        string
	TraceFunction          string
	UnitTestPass           string
	UnitTestFail           string
	UnitTestFailArrow      string
	ApplicationName        string
	File                   string
	Folder                 string
	Theme                  string
	Update                 string
	URL                    string
	UserCommand            string
	UserCommandError       string
	UserCommandErrorMarker string
	Var                    string
	Value                  string
	Version                string
	Yes                    string
	No                     string
	DiffInsert             string
	DiffDelete             string
	DiffEqual              string

	// Usage Colors
	UsageCommand string
	UsageOption  string
	UsageFile    string
	UsageFormat  string
	UsageTheme   string
	UsageVar     string
}

// Colors is the global instance for application output (stdout)
var Colors AppColors

func init() {
	// Color definitions in [fg:bg:flags] tag format. These are resolved to
	// ANSI at print time; non-TTY output strips them instead.
	Colors = AppColors{
		// Base Codes
		Reset:     "[-]",
		Bold:      "[::B]",
		Dim:       "[::D]",
		Underline: "[::U]",
		Blink:     "[::L]",
		Reverse:   "[::R]",

		// Base Colors (Foreground)
		Black:   "[black]",
		Red:     "[red]",
		Green:   "[green]",
		Yellow:  "[yellow]",
		Blue:    "[blue]",
		Magenta: "[magenta]",
		Cyan:    "[cyan]",
		White:   "[white]",

		// Base Colors (Background)
		BlackBg:   "[:black]",
		RedBg:     "[:red]",
		GreenBg:   "[:green]",
		YellowBg:  "[:yellow]",
		BlueBg:    "[:blue]",
		MagentaBg: "[:magenta]",
		CyanBg:    "[:cyan]",
		WhiteBg:   "[:white]",

		// Semantic Colors
		Timestamp:              "[-]",
		Trace:                  "[blue]",
		Debug:                  "[blue]",
		Info:                   "[blue]",
		Notice:                 "[green]",
		Warn:                   "[yellow]",
		Error:                  "[red]",
		Fatal:                  "[white:red]",
		FatalFooter:            "[-]",
		TraceHeader:            "[red]",
		TraceFooter:            "[red]",
		TraceFrameNumber:       "[red]",
		TraceFrameLines:        "[red]",
		TraceSourceFile:        "[cyan::B]",
		TraceLineNumber:        "[yellow::B]",
		TraceFunction:          "[green::B]",
		UnitTestPass:           "[green]",
		UnitTestFail:           "[red]",
		UnitTestFailArrow:      "[red]",
		ApplicationName:        "[cyan::B]",
		File:                   "[cyan::B]",
		Folder:                 "[cyan::B]",
		Theme:                  "[cyan]",
		Update:                 "[green]",
		URL:                    "[cyan::U]",
		UserCommand:            "[yellow::B]",
		UserCommandError:       "[red::U]",
		UserCommandErrorMarker: "[red]",
		Var:                    "[magenta]",
		Value:                  "[-]",
		Version:                "[cyan]",
		Yes:                    "[green]",
		No:                     "[red]",
		DiffInsert:             "[green]",
		DiffDelete:             "[red]",
		DiffEqual:              "[::D]",

		// Usage Colors
		UsageCommand: "[yellow::B]",
		UsageOption:  "[yellow]",
		UsageFile:    "[cyan::B]",
		UsageFormat:  "[cyan]",
		UsageTheme:   "[cyan]",
		UsageVar:     "[magenta]",
	}
	BuildColorMap()
	RegisterBaseTags()
}

// RegisterBaseTags registers semantic shorthands and aliases used throughout
// the application on top of the tags derived from the Colors struct.
func RegisterBaseTags() {
	// Shorthand aliases
	RegisterColor("_NC_", "[-]")
	RegisterColor("_BD_", "[::B]")
	RegisterColor("_UL_", "[::U]")
	RegisterColor("_DM_", "[::D]")
	RegisterColor("_BL_", "[::L]")

	// Field-derived tags are registered by BuildColorMap; the explicit
	// registrations below keep the most used ones stable even when a theme
	// overrides the rest.
	RegisterColor("_ApplicationName_", Colors.ApplicationName)
	RegisterColor("_Version_", Colors.Version)
	RegisterColor("_UserCommand_", Colors.UserCommand)
	RegisterColor("_UserCommandError_", Colors.UserCommandError)
	RegisterColor("_UserCommandErrorMarker_", Colors.UserCommandErrorMarker)
	RegisterColor("_Var_", Colors.Var)
	RegisterColor("_Yes_", Colors.Yes)
	RegisterColor("_No_", Colors.No)

	// Usage Colors
	RegisterColor("_UsageCommand_", Colors.UsageCommand)
	RegisterColor("_UsageOption_", Colors.UsageOption)
	RegisterColor("_UsageFile_", Colors.UsageFile)
	RegisterColor("_UsageFormat_", Colors.UsageFormat)
	RegisterColor("_UsageTheme_", Colors.UsageTheme)
	RegisterColor("_UsageVar_", Colors.UsageVar)

	// Log Level Tags (Shorthands for logger consistency)
	RegisterColor("_Timestamp_", Colors.Timestamp)
	RegisterColor("_Notice_", Colors.Notice)
	RegisterColor("_Warn_", Colors.Warn)
	RegisterColor("_Error_", Colors.Error)
	RegisterColor("_Fatal_", Colors.Fatal)
	RegisterColor("_Debug_", Colors.Debug)
	RegisterColor("_Info_", Colors.Info)
	RegisterColor("_Trace_", Colors.Trace)
}
