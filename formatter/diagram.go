package formatter

import (
	"io"
	"strings"

	"github.com/gnolang/trex/internal/canvas"
)

// StyleFunc turns a run of equally styled text into terminal output,
// typically by wrapping it in escape sequences. The style is always resolved,
// so no attribute is unset.
type StyleFunc func(style canvas.Style, text string) string

// PlainStyleFunc ignores styles and returns the text unchanged.
func PlainStyleFunc(_ canvas.Style, text string) string {
	return text
}

// Write prints every row of c through fn. Consecutive cells with the same
// style are passed to fn as one run. Each row ends with a call for the default
// style and empty text, so that fn can reset the terminal, followed by a newline.
func Write(w io.Writer, c *canvas.Canvas, fn StyleFunc) error {
	reset := canvas.Style{}.Resolve()

	for row := 0; row < c.Height(); row++ {
		var (
			line strings.Builder
			run  strings.Builder
			cur  canvas.Style
		)
		for col := 0; col < c.Width(); col++ {
			style := c.Style(row, col).Resolve()
			if col > 0 && style != cur {
				line.WriteString(fn(cur, run.String()))
				run.Reset()
			}
			cur = style
			run.WriteRune(c.Rune(row, col))
		}
		if run.Len() > 0 {
			line.WriteString(fn(cur, run.String()))
		}
		line.WriteString(fn(reset, ""))
		line.WriteByte('\n')

		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

// Sprint is like Write but returns the output as a string.
func Sprint(c *canvas.Canvas, fn StyleFunc) string {
	var sb strings.Builder
	// writing to a strings.Builder never fails
	_ = Write(&sb, c, fn)
	return sb.String()
}
