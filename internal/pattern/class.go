package pattern

// classSet holds the members of a character class in first-seen order.
// Members are always comparable leaf nodes.
type classSet struct {
	members []Node
	index   map[Node]struct{}
}

func newClassSet() *classSet {
	return &classSet{index: make(map[Node]struct{})}
}

func (s *classSet) add(n Node) {
	if _, ok := s.index[n]; ok {
		return
	}
	s.index[n] = struct{}{}
	s.members = append(s.members, n)
}

func (s *classSet) remove(n Node) {
	if _, ok := s.index[n]; !ok {
		return
	}
	delete(s.index, n)
	for i, m := range s.members {
		if m == n {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return
		}
	}
}

type classState int

const (
	classIdle       classState = iota
	classLiteral               // last member was a single character, a '-' may follow
	classRangeStart            // saw "x-", waiting for the upper bound
)

// parseClass parses a `[...]` class after its opening bracket into an
// Alternation of its members.
func (p *parser) parseClass() (Node, error) {
	var (
		set     = newClassSet()
		state   = classIdle
		pending rune
	)

	for {
		ch, pos, ok := p.next()
		if !ok {
			return nil, ErrUnexpectedEndOfInput
		}

		var member Node
		switch ch {
		case ']':
			if state == classRangeStart {
				set.add(Literal{Char: '-'})
			}
			if len(set.members) == 0 {
				return nil, unexpectedChar(ch, pos)
			}
			return &Alternation{Alternatives: set.members}, nil
		case '\\':
			n, err := p.parseEscape()
			if err != nil {
				return nil, err
			}
			member = n
		case '-':
			if state == classLiteral {
				state = classRangeStart
				continue
			}
			member = Literal{Char: '-'}
		default:
			member = Literal{Char: ch}
		}

		lit, isLiteral := member.(Literal)
		switch {
		case isLiteral && state == classRangeStart:
			if lit.Char < pending {
				return nil, unexpectedChar(lit.Char, pos)
			}
			set.remove(Literal{Char: pending})
			set.add(AsciiRange{Low: pending, High: lit.Char})
			state = classIdle
		case isLiteral:
			set.add(lit)
			pending = lit.Char
			state = classLiteral
		default:
			// a shorthand cannot close a range, the dash stays literal
			if state == classRangeStart {
				set.add(Literal{Char: '-'})
			}
			set.add(member)
			state = classIdle
		}
	}
}
