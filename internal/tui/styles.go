package tui

import (
	"EnvStore/internal/config"
	"EnvStore/internal/console"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all lipgloss styles derived from the console tag registry,
// so theme palettes restyle the editor the same way they restyle CLI output.
type Styles struct {
	// Title bar
	Title    lipgloss.Style
	FilePath lipgloss.Style
	Dirty    lipgloss.Style

	// Entry list
	ItemKey   lipgloss.Style
	ItemValue lipgloss.Style
	Selected  lipgloss.Style

	// Input prompts
	PromptLabel lipgloss.Style

	// Confirm buttons
	Question       lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style

	// Status + help line
	StatusOK    lipgloss.Style
	StatusError lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style

	// Update hint in the title bar
	UpdateHint lipgloss.Style

	// Chrome
	Muted   lipgloss.Style
	Border  lipgloss.Border
	SepChar string
}

// currentStyles holds the active styles
var currentStyles Styles

// GetStyles returns the current styles
func GetStyles() Styles {
	return currentStyles
}

// ansiIndex maps base color names to ANSI palette indices understood by
// lipgloss.Color.
var ansiIndex = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"bright-black":   "8",
	"bright-red":     "9",
	"bright-green":   "10",
	"bright-yellow":  "11",
	"bright-blue":    "12",
	"bright-magenta": "13",
	"bright-cyan":    "14",
	"bright-white":   "15",
}

// lipglossColor resolves a color name from a style tag to a lipgloss color.
// Returns false for empty or default ("-") parts.
func lipglossColor(name string) (lipgloss.Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "-" {
		return "", false
	}
	if strings.HasPrefix(name, "#") {
		return lipgloss.Color(name), true
	}
	if idx, ok := ansiIndex[name]; ok {
		return lipgloss.Color(idx), true
	}
	if hex := console.GetHexForColor(name); hex != "" {
		return lipgloss.Color(hex), true
	}
	return "", false
}

// styleFromTag builds a lipgloss style from a registered semantic tag.
// The tag value uses the fg:bg:flags form, e.g. "[cyan::B]".
func styleFromTag(name string) lipgloss.Style {
	st := lipgloss.NewStyle()

	def := strings.Trim(console.GetColorDefinition(name), "[]")
	if def == "" || def == "-" {
		return st
	}

	parts := strings.Split(def, ":")
	if c, ok := lipglossColor(parts[0]); ok {
		st = st.Foreground(c)
	}
	if len(parts) > 1 {
		if c, ok := lipglossColor(parts[1]); ok {
			st = st.Background(c)
		}
	}
	if len(parts) > 2 {
		for _, flag := range parts[2] {
			switch flag {
			case 'B':
				st = st.Bold(true)
			case 'D':
				st = st.Faint(true)
			case 'I':
				st = st.Italic(true)
			case 'U':
				st = st.Underline(true)
			case 'L':
				st = st.Blink(true)
			case 'R':
				st = st.Reverse(true)
			case 'S':
				st = st.Strikethrough(true)
			}
		}
	}
	return st
}

// InitStyles initializes lipgloss styles from the registered console tags.
// Call after theme.Load so palette overrides are picked up.
func InitStyles(conf config.AppConfig) {
	// Border style based on line_characters setting
	if conf.UI.LineCharacters {
		currentStyles.Border = lipgloss.RoundedBorder()
		currentStyles.SepChar = "─"
	} else {
		currentStyles.Border = lipgloss.NormalBorder()
		currentStyles.SepChar = "-"
	}

	currentStyles.Title = styleFromTag("ApplicationName")
	currentStyles.FilePath = styleFromTag("File")
	currentStyles.Dirty = styleFromTag("Warn")

	currentStyles.ItemKey = styleFromTag("Var")
	currentStyles.ItemValue = styleFromTag("Value")
	currentStyles.Selected = lipgloss.NewStyle().Reverse(true)

	currentStyles.PromptLabel = styleFromTag("UserCommand")

	currentStyles.Question = styleFromTag("Warn")
	currentStyles.ButtonActive = lipgloss.NewStyle().Reverse(true).Bold(true)
	currentStyles.ButtonInactive = lipgloss.NewStyle().Faint(true)

	currentStyles.StatusOK = styleFromTag("Notice")
	currentStyles.StatusError = styleFromTag("Error")
	currentStyles.HelpKey = styleFromTag("UserCommand")
	currentStyles.HelpDesc = lipgloss.NewStyle().Faint(true)

	currentStyles.UpdateHint = styleFromTag("Update")

	currentStyles.Muted = lipgloss.NewStyle().Faint(true)
}
