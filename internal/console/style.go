package console

import (
	"strings"
)

// colorToHexMap resolves extended color names that have no dedicated ANSI
// code. Base colors hit ansiMap first and never reach this table.
var colorToHexMap = map[string]string{
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"brown":   "#a52a2a",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"gold":    "#ffd700",
	"teal":    "#008080",
	"navy":    "#000080",
	"olive":   "#808000",
	"maroon":  "#800000",
	"lime":    "#00ff00",
	"aqua":    "#00ffff",
	"fuchsia": "#ff00ff",
}

// GetHexForColor returns the hex value for an extended color name, or ""
// when the name is unknown.
func GetHexForColor(name string) string {
	return colorToHexMap[strings.ToLower(name)]
}

// styleTagToDirect converts a bracketed style tag like "[cyan::B]" to the
// direct tag form "{{|cyan::B|}}".
func styleTagToDirect(tag string) string {
	if len(tag) < 2 || tag[0] != '[' || tag[len(tag)-1] != ']' {
		return ""
	}
	return "{{|" + tag[1:len(tag)-1] + "|}}"
}

// styleTagToANSI converts a bracketed style tag like "[cyan::B]" to ANSI codes
func styleTagToANSI(tag string) string {
	if len(tag) < 2 || tag[0] != '[' || tag[len(tag)-1] != ']' {
		return ""
	}
	return parseStyleCodeToANSI(tag[1 : len(tag)-1])
}

// parseStyleCodeToANSI parses fg:bg:flags format and returns ANSI codes.
// Flags are single characters, case-sensitive: upper sets, lower clears
// (B/b bold, D/d dim, I/i italic, U/u underline, L/l blink, R/r reverse,
// S/s strikethrough). A leading '-' in the flags part clears all modifiers
// first.
func parseStyleCodeToANSI(content string) string {
	if content == "" || content == "-" {
		return CodeReset
	}

	parts := strings.Split(content, ":")
	var codes strings.Builder

	// Clear modifiers up front when flags start with '-'
	if len(parts) > 2 && strings.HasPrefix(parts[2], "-") {
		codes.WriteString(CodeBoldOff)
		codes.WriteString(CodeItalicOff)
		codes.WriteString(CodeUnderlineOff)
		codes.WriteString(CodeBlinkOff)
		codes.WriteString(CodeReverseOff)
		codes.WriteString(CodeStrikethroughOff)
	}

	// Part 0: Foreground color
	if len(parts) > 0 && parts[0] != "" && parts[0] != "-" {
		name := strings.ToLower(parts[0])
		switch {
		case strings.HasPrefix(name, "#"):
			codes.WriteString(hexToANSI(name, false))
		case attributeMap[name] != "":
			codes.WriteString(attributeMap[name])
		case ansiMap[name] != "":
			codes.WriteString(ansiMap[name])
		case colorToHexMap[name] != "":
			codes.WriteString(hexToANSI(colorToHexMap[name], false))
		}
	}

	// Part 1: Background color
	if len(parts) > 1 && parts[1] != "" && parts[1] != "-" {
		name := strings.ToLower(parts[1])
		switch {
		case strings.HasPrefix(name, "#"):
			codes.WriteString(hexToANSI(name, true))
		case ansiMap[name+"bg"] != "":
			codes.WriteString(ansiMap[name+"bg"])
		case colorToHexMap[name] != "":
			codes.WriteString(hexToANSI(colorToHexMap[name], true))
		}
	}

	// Part 2: Flag characters
	if len(parts) > 2 && parts[2] != "" {
		for _, flag := range strings.TrimPrefix(parts[2], "-") {
			if code, ok := ansiMap[string(flag)]; ok {
				codes.WriteString(code)
			}
		}
	}

	return codes.String()
}

// hexToANSI renders a hex color through the active profile, which downgrades
// it for terminals with fewer colors. The Ascii profile yields no color.
func hexToANSI(hex string, background bool) string {
	c := preferredProfile.Color(hex)
	if c == nil {
		return ""
	}
	return wrapSequence(c.Sequence(background))
}

// wrapSequence ensures a color sequence part is wrapped in CSI delimiters
func wrapSequence(seq string) string {
	if seq == "" {
		return ""
	}
	if strings.HasPrefix(seq, "\x1b[") {
		return seq
	}
	return "\033[" + seq + "m"
}
