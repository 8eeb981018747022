package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(r rune) Node { return Literal{Char: r} }

func seq(items ...Node) *Sequence { return &Sequence{Items: items} }

func alt(alternatives ...Node) *Alternation { return &Alternation{Alternatives: alternatives} }

func lits(s string) []Node {
	var nodes []Node
	for _, r := range s {
		nodes = append(nodes, lit(r))
	}
	return nodes
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected Node
	}{
		{
			name:     "literals",
			input:    "hello",
			expected: seq(lits("hello")...),
		},
		{
			name:     "empty input",
			input:    "",
			expected: &Sequence{},
		},
		{
			name:     "digit shorthand",
			input:    `\d`,
			expected: seq(Shorthand{Kind: Digit}),
		},
		{
			name:     "any",
			input:    ".",
			expected: seq(Any{}),
		},
		{
			name:     "anchors",
			input:    `^\bx$`,
			expected: seq(Start{}, WordBoundary{}, lit('x'), End{}),
		},
		{
			name:     "control escapes",
			input:    `\n\r\t`,
			expected: seq(lit('\n'), lit('\r'), lit('\t')),
		},
		{
			name:     "escaped metacharacters",
			input:    `\.\*\+\[\]\(\)\|\{\}\\`,
			expected: seq(lits(`.*+[]()|{}\`)...),
		},
		{
			name:     "closing delimiters are literals at the top level",
			input:    ")]}",
			expected: seq(lits(")]}")...),
		},
		{
			name:     "greedy star",
			input:    "A*",
			expected: seq(&Repetition{Child: lit('A'), Min: 0, Max: Unbounded}),
		},
		{
			name:     "greedy plus",
			input:    "A+",
			expected: seq(&Repetition{Child: lit('A'), Min: 1, Max: Unbounded}),
		},
		{
			name:     "lazy star",
			input:    "A*?",
			expected: seq(&Repetition{Child: lit('A'), Min: 0, Max: Unbounded, Lazy: true}),
		},
		{
			name:     "lazy plus",
			input:    "A+?",
			expected: seq(&Repetition{Child: lit('A'), Min: 1, Max: Unbounded, Lazy: true}),
		},
		{
			name:     "optional",
			input:    "A?",
			expected: seq(&Repetition{Child: lit('A'), Min: 0, Max: 1}),
		},
		{
			name:     "greedy range quantifier",
			input:    "A{2, 4}",
			expected: seq(&Repetition{Child: lit('A'), Min: 2, Max: 4}),
		},
		{
			name:     "lazy range quantifier",
			input:    "A{2, 4}?",
			expected: seq(&Repetition{Child: lit('A'), Min: 2, Max: 4, Lazy: true}),
		},
		{
			name:     "exact quantifier",
			input:    "A{2}",
			expected: seq(&Repetition{Child: lit('A'), Min: 2, Max: 2}),
		},
		{
			name:     "open end quantifier",
			input:    "A{2,}",
			expected: seq(&Repetition{Child: lit('A'), Min: 2, Max: Unbounded}),
		},
		{
			name:     "open start quantifier",
			input:    "A{,2}",
			expected: seq(&Repetition{Child: lit('A'), Min: 0, Max: 2}),
		},
		{
			name:     "both bounds missing",
			input:    "A{ , }",
			expected: seq(&Repetition{Child: lit('A'), Min: 0, Max: Unbounded}),
		},
		{
			name:     "non capturing group",
			input:    "A(?:B)C",
			expected: seq(lit('A'), seq(lit('B')), lit('C')),
		},
		{
			name:     "capturing group",
			input:    "A(B)C",
			expected: seq(lit('A'), &Capture{Child: seq(lit('B'))}, lit('C')),
		},
		{
			name:     "named capturing group",
			input:    "A(?<test>B)C",
			expected: seq(lit('A'), &Capture{Child: seq(lit('B')), Name: "test"}, lit('C')),
		},
		{
			name:     "empty group",
			input:    "()",
			expected: seq(&Capture{Child: &Sequence{}}),
		},
		{
			name:     "quantified group",
			input:    "(ab)+",
			expected: seq(&Repetition{Child: &Capture{Child: seq(lit('a'), lit('b'))}, Min: 1, Max: Unbounded}),
		},
		{
			name:     "top level alternation",
			input:    "ab|c",
			expected: alt(seq(lit('a'), lit('b')), seq(lit('c'))),
		},
		{
			name:     "empty alternatives",
			input:    "|a|",
			expected: alt(&Sequence{}, seq(lit('a')), &Sequence{}),
		},
		{
			name:     "alternation inside group",
			input:    "(a|b)c",
			expected: seq(&Capture{Child: alt(seq(lit('a')), seq(lit('b')))}, lit('c')),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseCharacterClass(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []Node
	}{
		{
			name:     "simple",
			input:    "[ad]",
			expected: []Node{lit('a'), lit('d')},
		},
		{
			name:     "range",
			input:    "[a-d]",
			expected: []Node{AsciiRange{Low: 'a', High: 'd'}},
		},
		{
			name:     "range with trailing dash",
			input:    "[a-d-]",
			expected: []Node{AsciiRange{Low: 'a', High: 'd'}, lit('-')},
		},
		{
			name:     "simple with trailing dash",
			input:    "[ad-]",
			expected: []Node{lit('a'), lit('d'), lit('-')},
		},
		{
			name:     "leading dash",
			input:    "[-a]",
			expected: []Node{lit('-'), lit('a')},
		},
		{
			name:  "multiple ranges",
			input: "[a-d0-3-]",
			expected: []Node{
				AsciiRange{Low: 'a', High: 'd'},
				AsciiRange{Low: '0', High: '3'},
				lit('-'),
			},
		},
		{
			name:     "dash after a completed range is literal",
			input:    "[a-d-z]",
			expected: []Node{AsciiRange{Low: 'a', High: 'd'}, lit('-'), lit('z')},
		},
		{
			name:     "escaped members",
			input:    `[\]\\]`,
			expected: []Node{lit(']'), lit('\\')},
		},
		{
			name:     "shorthand members",
			input:    `[\d\w_]`,
			expected: []Node{Shorthand{Kind: Digit}, Shorthand{Kind: Alphanumeric}, lit('_')},
		},
		{
			name:     "shorthand cannot close a range",
			input:    `[a-\d]`,
			expected: []Node{lit('a'), lit('-'), Shorthand{Kind: Digit}},
		},
		{
			name:     "duplicates collapse",
			input:    "[abab]",
			expected: []Node{lit('a'), lit('b')},
		},
		{
			name:     "range replaces its start character",
			input:    "[xa-c]",
			expected: []Node{lit('x'), AsciiRange{Low: 'a', High: 'c'}},
		},
		{
			name:     "caret is an ordinary member",
			input:    "[^a]",
			expected: []Node{lit('^'), lit('a')},
		},
		{
			name:     "metacharacters are literal inside",
			input:    "[.*(]",
			expected: []Node{lit('.'), lit('*'), lit('(')},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			require.NoError(t, err)

			root, ok := got.(*Sequence)
			require.True(t, ok, "expected a sequence, got %s", got)
			require.Len(t, root.Items, 1)

			class, ok := root.Items[0].(*Alternation)
			require.True(t, ok, "expected an alternation, got %s", root.Items[0])
			assert.Equal(t, tt.expected, class.Alternatives)
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		char  rune
		pos   int
		eof   bool
	}{
		{name: "too many commas", input: "A{2,4,6}", char: '}', pos: 7},
		{name: "unterminated group", input: "(A", eof: true},
		{name: "unknown escape", input: `\q`, char: 'q', pos: 1},
		{name: "escape at end", input: `ab\`, eof: true},
		{name: "leading quantifier", input: "*a", char: '*', pos: 0},
		{name: "leading brace", input: "{2}", char: '{', pos: 0},
		{name: "double star", input: "a**", char: '*', pos: 2},
		{name: "optional has no lazy form", input: "a??", char: '?', pos: 2},
		{name: "quantifier after alternation bar", input: "a|+", char: '+', pos: 2},
		{name: "stacked braces", input: "a{2}{3}", char: '{', pos: 4},
		{name: "unterminated brace", input: "A{2", eof: true},
		{name: "empty brace", input: "A{}", char: '}', pos: 2},
		{name: "blank brace", input: "A{ }", char: '}', pos: 3},
		{name: "letter in brace", input: "A{x}", char: 'x', pos: 2},
		{name: "reversed bounds", input: "A{5,2}", char: '}', pos: 5},
		{name: "empty group name", input: "(?<>a)", char: '>', pos: 3},
		{name: "unterminated group name", input: "(?<ab", eof: true},
		{name: "unsupported group modifier", input: "(?=a)", char: '=', pos: 2},
		{name: "modifier at end", input: "(?", eof: true},
		{name: "unterminated named group body", input: "(?<n>a|b", eof: true},
		{name: "unterminated class", input: "[abc", eof: true},
		{name: "empty class", input: "[]", char: ']', pos: 1},
		{name: "reversed range", input: "[z-a]", char: 'a', pos: 3},
		{name: "error inside class escape", input: `[\q]`, char: 'q', pos: 2},
		{name: "multibyte positions count characters", input: "é{1,2,3}", char: '}', pos: 7},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			node, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, node)

			if tt.eof {
				assert.ErrorIs(t, err, ErrUnexpectedEndOfInput)
				return
			}

			var uc *UnexpectedCharError
			require.ErrorAs(t, err, &uc)
			assert.Equal(t, tt.char, uc.Char)
			assert.Equal(t, tt.pos, uc.Pos)
		})
	}
}

func TestParseHelloScenario(t *testing.T) {
	t.Parallel()
	got, err := Parse(`hello (?:\W+|[0-9])+`)
	require.NoError(t, err)

	expected := seq(append(lits("hello "),
		&Repetition{
			Child: alt(
				seq(&Repetition{Child: Shorthand{Kind: NotAlphanumeric}, Min: 1, Max: Unbounded}),
				seq(alt(AsciiRange{Low: '0', High: '9'})),
			),
			Min: 1,
			Max: Unbounded,
		},
	)...)
	assert.Equal(t, expected, got)
}

func TestParseDeterministic(t *testing.T) {
	t.Parallel()
	inputs := []string{
		`^(\+\d{1,2}\s)?\(?\d{3}\)?[a-z\s.-]\d{3}[\s.-]\d{4}$`,
		`[zyxa-cq-t-]+?`,
		`(?<year>\d{4})-(?<month>\d{2})|never`,
	}

	for _, input := range inputs {
		first, err := Parse(input)
		require.NoError(t, err)
		second, err := Parse(input)
		require.NoError(t, err)
		assert.Equal(t, first, second, input)
		assert.Equal(t, first.String(), second.String(), input)
	}
}

func TestNodeString(t *testing.T) {
	t.Parallel()
	node, err := Parse(`(?<d>\d{2,})|x?`)
	require.NoError(t, err)

	expected := `Alternation(
  Sequence(
    Capture<d>(
      Sequence(
        Greedy{2,inf}(
          Digit
        )
      )
    )
  )
  Sequence(
    Greedy{0,1}(
      Literal('x')
    )
  )
)`
	assert.Equal(t, expected, node.String())
}
