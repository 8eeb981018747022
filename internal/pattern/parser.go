package pattern

import (
	"strconv"
	"strings"
	"unicode"
)

// parser is a recursive descent parser over the characters of a pattern.
// It never backtracks; at most one character of lookahead is inspected.
type parser struct {
	input []rune
	pos   int // index of the next unread character
}

// Parse converts a pattern expression into its AST.
// On failure the error is either ErrUnexpectedEndOfInput or *UnexpectedCharError
// and no partial tree is returned.
func Parse(expr string) (Node, error) {
	return ParseRunes([]rune(expr))
}

// ParseRunes is like Parse but takes the input as characters.
func ParseRunes(input []rune) (Node, error) {
	p := &parser{input: input}
	return p.parseBranches(false)
}

// next consumes one character and returns it with its position.
func (p *parser) next() (rune, int, bool) {
	if p.pos >= len(p.input) {
		return 0, p.pos, false
	}
	ch := p.input[p.pos]
	p.pos++
	return ch, p.pos - 1, true
}

// peek returns the next character without consuming it.
func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

// nextIf consumes the next character only if it equals want.
func (p *parser) nextIf(want rune) bool {
	if ch, ok := p.peek(); ok && ch == want {
		p.pos++
		return true
	}
	return false
}

// parseBranches parses `|` separated segments. At the top level the input may
// simply end; inside a group the segments must be closed by `)`.
// Without any `|` the result is a bare Sequence.
func (p *parser) parseBranches(inGroup bool) (Node, error) {
	var (
		items    []Node
		branches []Node
	)

	for {
		ch, pos, ok := p.next()
		if !ok {
			if inGroup {
				return nil, ErrUnexpectedEndOfInput
			}
			break
		}
		if inGroup && ch == ')' {
			break
		}
		if ch == '|' {
			branches = append(branches, &Sequence{Items: items})
			items = nil
			continue
		}

		node, err := p.parseTerm(ch, pos)
		if err != nil {
			return nil, err
		}
		items = append(items, node)
	}

	seq := &Sequence{Items: items}
	if len(branches) == 0 {
		return seq, nil
	}
	return &Alternation{Alternatives: append(branches, seq)}, nil
}

// parseTerm parses a primary term that starts with the already consumed ch,
// followed by an optional quantifier.
func (p *parser) parseTerm(ch rune, pos int) (Node, error) {
	var (
		node Node
		err  error
	)

	switch ch {
	case '?', '*', '+', '{':
		return nil, unexpectedChar(ch, pos)
	case '^':
		node = Start{}
	case '$':
		node = End{}
	case '.':
		node = Any{}
	case '\\':
		node, err = p.parseEscape()
	case '(':
		node, err = p.parseGroup()
	case '[':
		node, err = p.parseClass()
	default:
		node = Literal{Char: ch}
	}
	if err != nil {
		return nil, err
	}

	return p.parseQuantifier(node)
}

func (p *parser) parseQuantifier(node Node) (Node, error) {
	ch, ok := p.peek()
	if !ok {
		return node, nil
	}

	var lower, upper int
	switch ch {
	case '?':
		p.pos++
		return &Repetition{Child: node, Min: 0, Max: 1}, nil
	case '*':
		p.pos++
		lower, upper = 0, Unbounded
	case '+':
		p.pos++
		lower, upper = 1, Unbounded
	case '{':
		p.pos++
		var err error
		lower, upper, err = p.parseBraces()
		if err != nil {
			return nil, err
		}
	default:
		return node, nil
	}

	lazy := p.nextIf('?')
	return &Repetition{Child: node, Min: lower, Max: upper, Lazy: lazy}, nil
}

// missing marks a brace bound without digits.
const missing = -1

// parseBraces parses the body of `{m}`, `{m,}`, `{,n}` or `{m,n}` after the
// opening brace. Whitespace is ignored.
func (p *parser) parseBraces() (int, int, error) {
	var (
		bounds []int
		digits strings.Builder
	)

	for {
		ch, pos, ok := p.next()
		if !ok {
			return 0, 0, ErrUnexpectedEndOfInput
		}

		switch {
		case ch == '}':
			bounds = append(bounds, parseBound(digits.String()))
			switch len(bounds) {
			case 1:
				if bounds[0] == missing {
					return 0, 0, unexpectedChar(ch, pos)
				}
				return bounds[0], bounds[0], nil
			case 2:
				lower, upper := bounds[0], bounds[1]
				if lower == missing {
					lower = 0
				}
				if upper == missing {
					upper = Unbounded
				}
				if upper != Unbounded && lower > upper {
					return 0, 0, unexpectedChar(ch, pos)
				}
				return lower, upper, nil
			default:
				return 0, 0, unexpectedChar(ch, pos)
			}
		case ch == ',':
			bounds = append(bounds, parseBound(digits.String()))
			digits.Reset()
		case unicode.IsSpace(ch):
		case ch >= '0' && ch <= '9':
			digits.WriteRune(ch)
		default:
			return 0, 0, unexpectedChar(ch, pos)
		}
	}
}

func parseBound(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return missing
	}
	return n
}

// parseGroup parses a group after its opening parenthesis.
// Non-capturing groups yield their body without a wrapper.
func (p *parser) parseGroup() (Node, error) {
	capturing := true
	name := ""

	if p.nextIf('?') {
		ch, pos, ok := p.next()
		if !ok {
			return nil, ErrUnexpectedEndOfInput
		}
		switch ch {
		case '<':
			var err error
			name, err = p.parseGroupName()
			if err != nil {
				return nil, err
			}
		case ':':
			capturing = false
		default:
			return nil, unexpectedChar(ch, pos)
		}
	}

	body, err := p.parseBranches(true)
	if err != nil {
		return nil, err
	}
	if !capturing {
		return body, nil
	}
	return &Capture{Child: body, Name: name}, nil
}

func (p *parser) parseGroupName() (string, error) {
	var name strings.Builder
	for {
		ch, pos, ok := p.next()
		switch {
		case !ok:
			return "", ErrUnexpectedEndOfInput
		case ch == '>' && name.Len() == 0:
			return "", unexpectedChar(ch, pos)
		case ch == '>':
			return name.String(), nil
		default:
			name.WriteRune(ch)
		}
	}
}

// parseEscape resolves the character following a backslash.
func (p *parser) parseEscape() (Node, error) {
	ch, pos, ok := p.next()
	if !ok {
		return nil, ErrUnexpectedEndOfInput
	}

	switch ch {
	case 'w':
		return Shorthand{Kind: Alphanumeric}, nil
	case 'W':
		return Shorthand{Kind: NotAlphanumeric}, nil
	case 's':
		return Shorthand{Kind: Whitespace}, nil
	case 'S':
		return Shorthand{Kind: NotWhitespace}, nil
	case 'd':
		return Shorthand{Kind: Digit}, nil
	case 'D':
		return Shorthand{Kind: NotDigit}, nil
	case 'b':
		return WordBoundary{}, nil
	case 'n':
		return Literal{Char: '\n'}, nil
	case 'r':
		return Literal{Char: '\r'}, nil
	case 't':
		return Literal{Char: '\t'}, nil
	case '.', '*', '+', '[', ']', '(', ')', '|', '{', '}', '\\':
		return Literal{Char: ch}, nil
	default:
		return nil, unexpectedChar(ch, pos)
	}
}
