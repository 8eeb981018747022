package pattern

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEndOfInput is returned when the input ends in the middle of a construct.
var ErrUnexpectedEndOfInput = errors.New("unexpected end of input")

// UnexpectedCharError reports an invalid character and its 0-based position
// (in characters, not bytes) within the original input.
type UnexpectedCharError struct {
	Char rune
	Pos  int
}

func (e *UnexpectedCharError) Error() string {
	return fmt.Sprintf("unexpected character %q at position %d", e.Char, e.Pos)
}

func unexpectedChar(ch rune, pos int) error {
	return &UnexpectedCharError{Char: ch, Pos: pos}
}
