/*
Package pattern parses regular-expression-like pattern expressions into an
abstract syntax tree. The tree is only ever inspected and drawn; nothing in
this package matches text.

# Syntax

	^ $ .            start, end, any character
	\w \W \d \D \s \S
	\b               word boundary
	\n \r \t         control characters
	\. \* \+ \[ \] \( \) \| \{ \} \\
	                 escaped metacharacters
	[a-z0-9_-]       character class, ranges and literal members
	(...)            capturing group
	(?<name>...)     named capturing group
	(?:...)          non-capturing group
	a|b              alternation
	? * + {m} {m,} {,n} {m,n}
	                 quantifiers, `*`, `+` and `{...}` accept a trailing `?` (lazy)

# AST

Parse returns a Node which is one of Literal, Start, End, Any, WordBoundary,
Shorthand, AsciiRange, *Sequence, *Alternation, *Repetition or *Capture.

A pattern without a top-level `|` parses to a bare *Sequence. Non-capturing
groups contribute their body directly. A character class becomes an
*Alternation whose members keep the order in which they first appear.

# Errors

Errors are either ErrUnexpectedEndOfInput or an *UnexpectedCharError carrying
the offending character and its 0-based character offset:

	_, err := pattern.Parse(`A{2,4,6}`)
	var uc *pattern.UnexpectedCharError
	if errors.As(err, &uc) {
		fmt.Println(uc.Char, uc.Pos) // '}' 7
	}
*/
package pattern
