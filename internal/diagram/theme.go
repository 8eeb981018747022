package diagram

import "github.com/gnolang/trex/internal/canvas"

// Theme holds the styles applied to the different kinds of glyphs.
// Unset attributes leave the terminal defaults in place.
type Theme struct {
	// Special styles anchors, `.`, `\b` and the shorthand classes.
	Special canvas.Style
	Literal canvas.Style
	Range   canvas.Style
	// Label styles the quantifier label under a repetition loop.
	Label canvas.Style
}

// DefaultTheme highlights special glyphs in bold blue and leaves everything else unstyled.
func DefaultTheme() Theme {
	return Theme{
		Special: canvas.Style{
			Foreground: canvas.ColorBlue,
			Format:     canvas.FormatBold,
		},
	}
}
