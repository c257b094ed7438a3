package console

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type tableChars struct {
	TopLeft, TopRight, BottomLeft, BottomRight string
	Horizontal, Vertical, Cross                string
	TLeft, TRight, TTop, TBottom               string
}

var (
	unicodeChars = tableChars{
		TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
		Horizontal: "─", Vertical: "│", Cross: "┼",
		TLeft: "├", TRight: "┤", TTop: "┬", TBottom: "┴",
	}
	asciiChars = tableChars{
		TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		Horizontal: "-", Vertical: "|", Cross: "+",
		TLeft: "|", TRight: "|", TTop: "-", TBottom: "-",
	}
)

// PrintTable prints a bordered table with the given headers and data.
// data is a flat list of cells, row-major; its length should be a multiple
// of len(headers). Cells may contain semantic tags; widths are computed on
// the stripped text.
func PrintTable(headers []string, data []string, useLineChars bool) {
	cols := len(headers)
	if cols == 0 {
		return
	}

	chars := asciiChars
	if useLineChars {
		chars = unicodeChars
	}

	// Column widths from the widest stripped cell
	colWidths := make([]int, cols)
	for i, h := range headers {
		if l := utf8.RuneCountInString(Strip(h)); l > colWidths[i] {
			colWidths[i] = l
		}
	}
	for i, d := range data {
		col := i % cols
		if l := utf8.RuneCountInString(Strip(d)); l > colWidths[col] {
			colWidths[col] = l
		}
	}

	border := func(left, junction, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i := 0; i < cols; i++ {
			b.WriteString(strings.Repeat(chars.Horizontal, colWidths[i]+2))
			if i < cols-1 {
				b.WriteString(junction)
			} else {
				b.WriteString(right)
			}
		}
		return b.String()
	}

	printRow := func(row []string) {
		var b strings.Builder
		b.WriteString(chars.Vertical)
		for i, cell := range row {
			padding := colWidths[i] - utf8.RuneCountInString(Strip(cell))
			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", padding))
			b.WriteString(" ")
			b.WriteString(chars.Vertical)
		}
		fmt.Println(ToANSI(b.String()))
	}

	fmt.Println(ToANSI(border(chars.TopLeft, chars.TTop, chars.TopRight)))
	printRow(headers)
	fmt.Println(ToANSI(border(chars.TLeft, chars.Cross, chars.TRight)))

	for i := 0; i < len(data); i += cols {
		end := i + cols
		if end > len(data) {
			end = len(data)
		}
		row := data[i:end]
		if len(row) < cols {
			filled := make([]string, cols)
			copy(filled, row)
			row = filled
		}
		printRow(row)
	}

	fmt.Println(ToANSI(border(chars.BottomLeft, chars.TBottom, chars.BottomRight)))
}
