// Package testutils holds helpers shared by the package tests.
package testutils

import (
	"fmt"
	"os"
	"testing"
	"text/tabwriter"
)

// TestCase represents a single comparison scenario.
type TestCase struct {
	Name     string
	Input    string
	Expected string
	Actual   string
	Pass     bool
}

// PrintTestTable prints a formatted table of comparison results and fails
// the test if any case has Pass=false. ANSI codes are used directly so the
// table renders the same regardless of the console package state under test.
func PrintTestTable(t *testing.T, cases []TestCase) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)

	const (
		Reset = "\033[0m"
		Red   = "\033[31m"
		Green = "\033[32m"
	)

	fmt.Fprintf(w, "Input\tExpected Value\tReturned Value\t\n")

	anyFailed := false
	for _, tc := range cases {
		rowColor := Reset
		actualColor := Green
		leftPtr := " "
		rightPtr := " "

		if !tc.Pass {
			anyFailed = true
			rowColor = Red
			actualColor = Red
			leftPtr = Red + ">" + Reset
			rightPtr = Red + "<" + Reset
		}

		fmt.Fprintf(w, "%s %s%q%s\t%s%q%s\t%s%q%s\t%s\n",
			leftPtr,
			rowColor, tc.Input, Reset,
			rowColor, tc.Expected, Reset,
			actualColor, tc.Actual, Reset,
			rightPtr,
		)
	}

	w.Flush()
	fmt.Println()

	if anyFailed {
		for _, tc := range cases {
			if !tc.Pass {
				t.Errorf("%s: input %q: expected %q, got %q", tc.Name, tc.Input, tc.Expected, tc.Actual)
			}
		}
	}
}
