package console

import (
	"context"
	"os"
	"strings"

	"golang.org/x/term"
)

// Printer is a function compatible with logger.Notice
type Printer func(ctx context.Context, msg string, args ...any)

// QuestionPrompt prompts the user with a Yes/No question and reads a single
// key in raw mode. defaultValue determines the action on Enter ("Y"=Yes,
// "N"=No, ""=require input). forceYes short-circuits to true without
// prompting (the -y flag).
func QuestionPrompt(ctx context.Context, printer Printer, question string, defaultValue string, forceYes bool) bool {
	if forceYes {
		return true
	}

	ynPrompt := "[YN]"
	if strings.EqualFold(defaultValue, "y") {
		ynPrompt = "[Yn]"
	} else if strings.EqualFold(defaultValue, "n") {
		ynPrompt = "[yN]"
	}

	printer(ctx, question)
	printer(ctx, ynPrompt)

	// Switch to raw mode to read a single character
	fd := int(os.Stdin.Fd())
	var oldState *term.State
	if term.IsTerminal(fd) {
		var err error
		oldState, err = term.MakeRaw(fd)
		if err == nil {
			defer term.Restore(fd, oldState)
		}
	}

	b := make([]byte, 1)
	answer := false

	for {
		if _, err := os.Stdin.Read(b); err != nil {
			// Fall back to the default, or No when there is none.
			answer = strings.EqualFold(defaultValue, "y")
			break
		}

		input := string(b[0])

		// Enter picks the default when one exists
		if input == "\r" || input == "\n" {
			if strings.EqualFold(defaultValue, "y") {
				answer = true
				break
			}
			if strings.EqualFold(defaultValue, "n") {
				answer = false
				break
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "y" {
			answer = true
			break
		}
		if lower == "n" {
			answer = false
			break
		}
		// Ignore other keys
	}

	// Restore terminal before printing log messages
	if oldState != nil {
		_ = term.Restore(fd, oldState)
	}

	if answer {
		printer(ctx, "Answered: {{_Yes_}}Yes{{|-|}}")
	} else {
		printer(ctx, "Answered: {{_No_}}No{{|-|}}")
	}

	return answer
}
