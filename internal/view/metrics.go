package view

import (
	"strconv"

	"github.com/mattn/go-runewidth"
)

// RuneWidth is the cell width of r at visual column col. Tabs advance to the
// next tab stop; zero-width runes take no cell.
func RuneWidth(r rune, col, tabWidth int) int {
	if r == '\t' {
		if tabWidth < 1 {
			tabWidth = 1
		}
		return tabWidth - col%tabWidth
	}
	return runewidth.RuneWidth(r)
}

// VisualCol returns the visual column of char index col in line.
func VisualCol(line []rune, col, tabWidth int) int {
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	x := 0
	for i := 0; i < col; i++ {
		x += RuneWidth(line[i], x, tabWidth)
	}
	return x
}

// Measure returns the cell width of s starting at visual column col.
func Measure(s string, col, tabWidth int) int {
	x := col
	for _, r := range s {
		x += RuneWidth(r, x, tabWidth)
	}
	return x - col
}

// GutterWidth is the width of the line-number column: the digits of the
// largest zero-based line number plus two cells of padding.
func GutterWidth(lineCount int) int {
	last := lineCount - 1
	if last < 0 {
		last = 0
	}
	return len(strconv.Itoa(last)) + 2
}

// Truncate cuts s to at most width cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "")
}
