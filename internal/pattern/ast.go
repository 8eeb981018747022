package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

// Unbounded marks a repetition without an upper bound.
const Unbounded = -1

// Node represents a node in the pattern AST.
type Node interface {
	isNode()
	String() string
}

var (
	_ Node = Literal{}
	_ Node = Start{}
	_ Node = End{}
	_ Node = Any{}
	_ Node = WordBoundary{}
	_ Node = Shorthand{}
	_ Node = AsciiRange{}
	_ Node = (*Sequence)(nil)
	_ Node = (*Alternation)(nil)
	_ Node = (*Repetition)(nil)
	_ Node = (*Capture)(nil)
)

// Literal matches a single character.
type Literal struct {
	Char rune
}

func (Literal) isNode() {}
func (l Literal) String() string {
	return fmt.Sprintf("Literal(%s)", strconv.QuoteRune(l.Char))
}

// Start is the `^` anchor.
type Start struct{}

func (Start) isNode() {}
func (Start) String() string { return "Start" }

// End is the `$` anchor.
type End struct{}

func (End) isNode() {}
func (End) String() string { return "End" }

// Any is `.`.
type Any struct{}

func (Any) isNode() {}
func (Any) String() string { return "Any" }

// WordBoundary is `\b`.
type WordBoundary struct{}

func (WordBoundary) isNode() {}
func (WordBoundary) String() string { return "WordBoundary" }

// ShorthandKind enumerates the character-class escapes.
type ShorthandKind int

const (
	_ ShorthandKind = iota
	Alphanumeric
	NotAlphanumeric
	Digit
	NotDigit
	Whitespace
	NotWhitespace
)

func (k ShorthandKind) String() string {
	switch k {
	case Alphanumeric:
		return "Alphanumeric"
	case NotAlphanumeric:
		return "NotAlphanumeric"
	case Digit:
		return "Digit"
	case NotDigit:
		return "NotDigit"
	case Whitespace:
		return "Whitespace"
	case NotWhitespace:
		return "NotWhitespace"
	default:
		return "Unknown"
	}
}

// Escape returns the escape sequence that produces the shorthand, e.g. `\d`.
func (k ShorthandKind) Escape() string {
	switch k {
	case Alphanumeric:
		return `\w`
	case NotAlphanumeric:
		return `\W`
	case Digit:
		return `\d`
	case NotDigit:
		return `\D`
	case Whitespace:
		return `\s`
	case NotWhitespace:
		return `\S`
	default:
		return `\?`
	}
}

// Shorthand is one of `\w \W \d \D \s \S`.
type Shorthand struct {
	Kind ShorthandKind
}

func (Shorthand) isNode() {}
func (s Shorthand) String() string { return s.Kind.String() }

// AsciiRange is an inclusive character range inside a character class.
type AsciiRange struct {
	Low  rune
	High rune
}

func (AsciiRange) isNode() {}
func (r AsciiRange) String() string {
	return fmt.Sprintf("AsciiRange(%s, %s)", strconv.QuoteRune(r.Low), strconv.QuoteRune(r.High))
}

// Sequence is a concatenation. An empty sequence matches the empty string.
type Sequence struct {
	Items []Node
}

func (*Sequence) isNode() {}
func (s *Sequence) String() string {
	return "Sequence" + formatChildren(s.Items)
}

// Alternation holds the branches of `a|b` or the members of a character class.
// List order is the top-to-bottom order of the rendered diagram.
type Alternation struct {
	Alternatives []Node
}

func (*Alternation) isNode() {}
func (a *Alternation) String() string {
	return "Alternation" + formatChildren(a.Alternatives)
}

// Repetition is a quantified node. Max is Unbounded when there is no upper limit.
type Repetition struct {
	Child Node
	Min   int
	Max   int
	Lazy  bool
}

func (*Repetition) isNode() {}
func (r *Repetition) String() string {
	kind := "Greedy"
	if r.Lazy {
		kind = "Lazy"
	}
	upper := "inf"
	if r.Max != Unbounded {
		upper = strconv.Itoa(r.Max)
	}
	return fmt.Sprintf("%s{%d,%s}%s", kind, r.Min, upper, formatChildren([]Node{r.Child}))
}

// Bounded reports whether the repetition has an upper limit.
func (r *Repetition) Bounded() bool { return r.Max != Unbounded }

// Capture is a capturing group. Name is empty for unnamed groups.
type Capture struct {
	Child Node
	Name  string
}

func (*Capture) isNode() {}
func (c *Capture) String() string {
	if c.Name == "" {
		return "Capture" + formatChildren([]Node{c.Child})
	}
	return fmt.Sprintf("Capture<%s>%s", c.Name, formatChildren([]Node{c.Child}))
}

func formatChildren(children []Node) string {
	if len(children) == 0 {
		return "()"
	}
	var sb strings.Builder
	sb.WriteString("(\n")
	for _, child := range children {
		sb.WriteString("  ")
		sb.WriteString(strings.ReplaceAll(child.String(), "\n", "\n  "))
		sb.WriteString("\n")
	}
	sb.WriteString(")")
	return sb.String()
}
