// Package regex is the entry point for turning pattern expressions into
// terminal diagrams. It ties together parsing, rendering, configuration and
// batch processing.
package regex

import (
	"fmt"

	"github.com/gnolang/trex/formatter"
	"github.com/gnolang/trex/internal/canvas"
	"github.com/gnolang/trex/internal/diagram"
	"github.com/gnolang/trex/internal/pattern"
)

// Flags are the matching flags given alongside an expression. They are kept
// with the parsed value but do not change how it is drawn.
type Flags struct {
	IgnoreCase bool
	Multiline  bool
}

type Option func(*Flags)

func WithIgnoreCase() Option {
	return func(f *Flags) { f.IgnoreCase = true }
}

func WithMultiline() Option {
	return func(f *Flags) { f.Multiline = true }
}

// Regex is a parsed pattern expression.
type Regex struct {
	source string
	root   pattern.Node
	flags  Flags
}

// Parse parses expr. Errors come straight from the parser so callers can
// inspect them with errors.Is and errors.As.
func Parse(expr string, opts ...Option) (*Regex, error) {
	root, err := pattern.Parse(expr)
	if err != nil {
		return nil, err
	}

	re := &Regex{source: expr, root: root}
	for _, opt := range opts {
		opt(&re.flags)
	}
	return re, nil
}

func (r *Regex) Root() pattern.Node { return r.root }
func (r *Regex) Source() string     { return r.source }
func (r *Regex) Flags() Flags       { return r.flags }

// Diagram renders the expression. A nil renderer uses the default theme.
func (r *Regex) Diagram(renderer *diagram.Renderer) *canvas.Canvas {
	if renderer == nil {
		return diagram.Render(r.root)
	}
	return renderer.Render(r.root)
}

// String returns the diagram without any styling.
func (r *Regex) String() string {
	return r.Diagram(nil).String()
}

// WithStyle returns a Stringer that prints the default diagram through fn.
func (r *Regex) WithStyle(fn formatter.StyleFunc) fmt.Stringer {
	return styledRegex{re: r, fn: fn}
}

type styledRegex struct {
	re *Regex
	fn formatter.StyleFunc
}

func (s styledRegex) String() string {
	return formatter.Sprint(s.re.Diagram(nil), s.fn)
}
