// Package canvas provides a fixed-size grid of characters with a parallel
// grid of cell styles. Diagrams are assembled by placing smaller canvases
// onto larger ones.
package canvas

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Canvas is a width x height block of characters. Cells are addressed by
// character, never by byte, so multi-byte box-drawing glyphs occupy one cell.
type Canvas struct {
	width  int
	height int
	cells  [][]rune
	styles *Styles
}

// New returns a canvas filled with spaces and unset styles.
func New(width, height int) *Canvas {
	cells := make([][]rune, height)
	for i := range cells {
		row := make([]rune, width)
		for j := range row {
			row[j] = ' '
		}
		cells[i] = row
	}
	return &Canvas{
		width:  width,
		height: height,
		cells:  cells,
		styles: NewStyles(width, height),
	}
}

// FromText returns a canvas just large enough to hold text: as wide as its
// longest line and as tall as its line count. Shorter lines are padded with spaces.
func FromText(text string) *Canvas {
	lines := splitLines(text)
	width := 0
	for _, ln := range lines {
		width = max(width, utf8.RuneCountInString(ln))
	}
	c := New(width, len(lines))
	c.PlaceText(0, 0, text)
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Place copies src onto c with its top-left corner at (row, col). Every cell
// of src is written, spaces included, and src's styles are merged over c's.
// It panics when src does not fit.
func (c *Canvas) Place(row, col int, src *Canvas) {
	c.checkBounds(row, col, src.width, src.height)
	for r, line := range src.cells {
		copy(c.cells[row+r][col:], line)
	}
	c.styles.Set(row, col, src.styles)
}

// PlaceText writes text line by line starting at (row, col), leaving styles untouched.
// Only the characters of each line are written. It panics when a line does not fit.
func (c *Canvas) PlaceText(row, col int, text string) {
	for i, ln := range splitLines(text) {
		runes := []rune(ln)
		c.checkBounds(row+i, col, len(runes), 1)
		copy(c.cells[row+i][col:], runes)
	}
}

// Row returns the characters of row i.
func (c *Canvas) Row(i int) string {
	return string(c.cells[i])
}

// Lines returns every row of the canvas.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.height)
	for i := range c.cells {
		lines[i] = c.Row(i)
	}
	return lines
}

// Rune returns the character at the given cell.
func (c *Canvas) Rune(row, col int) rune {
	return c.cells[row][col]
}

// Style returns the style of the given cell as stored, possibly with unset attributes.
func (c *Canvas) Style(row, col int) Style {
	return c.styles.Get(row, col)
}

// Styles returns the style grid of the canvas.
func (c *Canvas) Styles() *Styles {
	return c.styles
}

// WithStyles lets fn modify the style grid in place.
func (c *Canvas) WithStyles(fn func(*Styles)) {
	fn(c.styles)
}

// String returns the rows of the canvas, each terminated by a newline.
func (c *Canvas) String() string {
	var sb strings.Builder
	for _, row := range c.cells {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (c *Canvas) checkBounds(row, col, width, height int) {
	if row < 0 || col < 0 || row+height > c.height || col+width > c.width {
		panic(fmt.Sprintf("canvas: %dx%d block at (%d, %d) exceeds %dx%d canvas",
			width, height, row, col, c.width, c.height))
	}
}

// splitLines splits text on newlines. A trailing newline does not start an extra line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
