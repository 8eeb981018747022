// Package diagram draws pattern trees as box-drawing railroad diagrams.
//
// Every node becomes a rectangular canvas. Sequences are laid out left to
// right, alternations stack their branches between two vertical rails, and
// repetitions wrap their child in a loop with a label describing its bounds:
//
//	hello (?:\W+|[0-9])+
//
//	       ╭─\W──╮
//	hello ─┤ ╰─╯ ├─
//	       │ 1.. │
//	       ╰0-9──╯
//
//	       ╰─────╯
//	       1..
package diagram

import (
	"fmt"
	"strings"

	"github.com/gnolang/trex/internal/canvas"
	"github.com/gnolang/trex/internal/pattern"
)

// Renderer converts pattern trees into canvases using a fixed theme.
// A Renderer holds no mutable state and may be shared between goroutines.
type Renderer struct {
	theme Theme
}

// New creates a Renderer that styles glyphs with theme.
func New(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

var defaultRenderer = New(DefaultTheme())

// Render draws node with the default theme.
func Render(node pattern.Node) *canvas.Canvas {
	return defaultRenderer.Render(node)
}

// Theme returns the theme the renderer was created with.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Render draws node. Every row of the result has the same width.
func (r *Renderer) Render(node pattern.Node) *canvas.Canvas {
	switch n := node.(type) {
	case pattern.Literal:
		return r.styled(escapeLiteral(n.Char), r.theme.Literal)
	case pattern.Start:
		return r.special("^")
	case pattern.End:
		return r.special("$")
	case pattern.Any:
		return r.special(".")
	case pattern.WordBoundary:
		return r.special(`\b`)
	case pattern.Shorthand:
		return r.special(n.Kind.Escape())
	case pattern.AsciiRange:
		return r.styled(escapeLiteral(n.Low)+"-"+escapeLiteral(n.High), r.theme.Range)
	case *pattern.Sequence:
		return r.sequence(n.Items)
	case *pattern.Alternation:
		return r.alternation(n.Alternatives)
	case *pattern.Repetition:
		return r.repetition(n)
	case *pattern.Capture:
		return r.Render(n.Child)
	default:
		panic(fmt.Sprintf("diagram: unexpected node type %T", node))
	}
}

func (r *Renderer) special(glyph string) *canvas.Canvas {
	return r.styled(glyph, r.theme.Special)
}

func (r *Renderer) styled(text string, style canvas.Style) *canvas.Canvas {
	c := canvas.FromText(text)
	if !style.IsZero() {
		c.WithStyles(func(s *canvas.Styles) { s.Clear(style) })
	}
	return c
}

func escapeLiteral(ch rune) string {
	switch ch {
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	default:
		return string(ch)
	}
}

// sequence places the children side by side, vertically centered.
func (r *Renderer) sequence(items []pattern.Node) *canvas.Canvas {
	blocks := make([]*canvas.Canvas, len(items))
	width, height := 0, 0
	for i, item := range items {
		blocks[i] = r.Render(item)
		width += blocks[i].Width()
		height = max(height, blocks[i].Height())
	}

	c := canvas.New(width, height)
	col := 0
	for _, b := range blocks {
		c.Place((height-b.Height())/2, col, b)
		col += b.Width()
	}
	return c
}

// alternation stacks the branches between two rails joined at the middle row.
// Each branch gets at least one row so that empty branches still show a path.
func (r *Renderer) alternation(alternatives []pattern.Node) *canvas.Canvas {
	switch len(alternatives) {
	case 0:
		return canvas.New(0, 0)
	case 1:
		return r.Render(alternatives[0])
	}

	blocks := make([]*canvas.Canvas, len(alternatives))
	slots := make([]int, len(alternatives))
	width := 0
	for i, alt := range alternatives {
		blocks[i] = r.Render(alt)
		slots[i] = max(blocks[i].Height(), 1)
		width = max(width, blocks[i].Width())
	}
	height := sumSlots(slots)
	if height%2 == 0 {
		height++
	}
	middle := height / 2

	c := canvas.New(width+2, height)

	// the padding row of an even total sits below the last slot
	last := slots[len(slots)-1]
	firstCenter := slots[0] / 2
	lastCenter := sumSlots(slots) - last + last/2
	for row := firstCenter + 1; row < lastCenter; row++ {
		c.PlaceText(row, 0, "│"+strings.Repeat(" ", width)+"│")
	}
	c.PlaceText(middle, 0, "┤"+strings.Repeat(" ", width)+"├")

	row := 0
	for i, b := range blocks {
		center := row + slots[i]/2
		c.PlaceText(center, 0, branchConnector(i, len(blocks), center-middle, width))
		c.Place(row, 1, b)
		row += slots[i]
	}
	return c
}

func sumSlots(slots []int) int {
	total := 0
	for _, s := range slots {
		total += s
	}
	return total
}

// branchConnector draws the row joining branch idx to both rails. offset is
// the branch center relative to the middle row of the alternation.
func branchConnector(idx, count, offset, width int) string {
	line := strings.Repeat("─", width)
	first, last := idx == 0, idx == count-1
	switch {
	case offset == 0 && first:
		return "┬" + line + "┬"
	case offset == 0 && last:
		return "┴" + line + "┴"
	case offset == 0:
		return "┼" + line + "┼"
	case offset < 0 && first:
		return "╭" + line + "╮"
	case offset > 0 && last:
		return "╰" + line + "╯"
	default:
		return "├" + line + "┤"
	}
}

// repetitionLabel describes the bounds of a repetition, e.g. "1..", "..=3" or "=2".
func repetitionLabel(lower, upper int) string {
	switch {
	case upper == pattern.Unbounded && lower == 0:
		return ".."
	case upper == pattern.Unbounded:
		return fmt.Sprintf("%d..", lower)
	case upper == 1 && lower == 0:
		return ""
	case upper == lower:
		return fmt.Sprintf("=%d", upper)
	case lower == 0:
		return fmt.Sprintf("..=%d", upper)
	default:
		return fmt.Sprintf("%d..=%d", lower, upper)
	}
}

// repetition draws the child on a track with an optional bypass above it
// (minimum zero) and a loop back below it (more than one pass allowed).
// Lazy and greedy repetitions look the same.
func (r *Renderer) repetition(n *pattern.Repetition) *canvas.Canvas {
	child := r.Render(n.Child)
	label := repetitionLabel(n.Min, n.Max)

	width := max(child.Width(), len([]rune(label)), 2)
	c := canvas.New(width+2, child.Height()+4)
	middle := c.Height() / 2
	line := strings.Repeat("─", width)

	if n.Min == 0 {
		for row := 2; row < middle; row++ {
			c.PlaceText(row, 0, "│"+strings.Repeat(" ", width)+"│")
		}
		c.PlaceText(1, 0, "╭"+line+"╮")
		c.PlaceText(middle, 0, "┴"+line+"┴")
	} else {
		c.PlaceText(middle, 0, "─"+line+"─")
	}

	if n.Max == pattern.Unbounded || n.Max > 1 {
		c.PlaceText(child.Height()+2, 1, "╰"+strings.Repeat("─", width-2)+"╯")
		c.Place(child.Height()+3, 1, r.styled(label, r.theme.Label))
	}

	c.Place(2, 1, child)
	return c
}
