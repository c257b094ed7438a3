package console

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// semanticRegex matches {{_content_}} format for semantic tags
	semanticRegex = regexp.MustCompile(`\{\{_([A-Za-z0-9_]+)_\}\}`)

	// directRegex matches {{|content|}} format for direct fg:bg:flags codes
	directRegex = regexp.MustCompile(`\{\{\|([A-Za-z0-9_:\-#]*)\|\}\}`)

	// ansiRegex matches ANSI SGR escape sequences
	ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)
)

// ExpandTags resolves semantic tags {{_Tag_}} into direct {{|code|}} tags so
// a single pass of direct-tag processing can render the text. Unknown
// semantic tags are stripped. Direct tags pass through untouched.
func ExpandTags(text string) string {
	ensureMaps()

	return semanticRegex.ReplaceAllStringFunc(text, func(match string) string {
		content := strings.ToLower(match[3 : len(match)-3])
		if tag, ok := semanticMap[content]; ok {
			return styleTagToDirect(tag)
		}
		return ""
	})
}

// ToANSI converts semantic and direct tags to ANSI escape sequences.
// When stdout is not a terminal all tags are stripped instead.
func ToANSI(text string) string {
	ensureMaps()
	if !isTTYGlobal {
		return Strip(text)
	}

	// Pass 1: semantic tags {{_Tag_}}
	text = semanticRegex.ReplaceAllStringFunc(text, func(match string) string {
		content := strings.ToLower(match[3 : len(match)-3])
		if tag, ok := semanticMap[content]; ok {
			return styleTagToANSI(tag)
		}
		return ""
	})

	// Pass 2: direct tags {{|code|}}
	text = directRegex.ReplaceAllStringFunc(text, func(match string) string {
		return parseStyleCodeToANSI(match[3 : len(match)-3])
	})

	return text
}

// Strip removes all semantic and direct tags from text, as well as ANSI
// escape sequences.
func Strip(text string) string {
	text = semanticRegex.ReplaceAllString(text, "")
	text = directRegex.ReplaceAllString(text, "")
	return StripANSI(text)
}

// StripANSI removes ANSI SGR escape sequences from text.
func StripANSI(text string) string {
	return ansiRegex.ReplaceAllString(text, "")
}

// Parse is a convenience alias for ToANSI.
func Parse(text string) string {
	return ToANSI(text)
}

// Sprintf formats according to a format specifier and returns the string with ANSI codes
func Sprintf(format string, a ...any) string {
	return ToANSI(fmt.Sprintf(format, a...))
}

// Print prints with ANSI color codes parsed
func Print(a ...any) {
	fmt.Print(ToANSI(fmt.Sprint(a...)))
}

// Println prints a line with ANSI color codes parsed
func Println(a ...any) {
	fmt.Println(ToANSI(fmt.Sprint(a...)))
}
