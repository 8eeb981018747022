package canvas

import (
	"fmt"
	"strings"
)

// Color is a terminal color. The zero value ColorUnset means "inherit",
// ColorDefault resets to the terminal's own color.
type Color uint8

const (
	ColorUnset Color = iota
	ColorDefault
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorLightBlack
	ColorLightRed
	ColorLightGreen
	ColorLightYellow
	ColorLightBlue
	ColorLightMagenta
	ColorLightCyan
	ColorLightWhite
)

var colorNames = map[Color]string{
	ColorDefault:      "default",
	ColorBlack:        "black",
	ColorRed:          "red",
	ColorGreen:        "green",
	ColorYellow:       "yellow",
	ColorBlue:         "blue",
	ColorMagenta:      "magenta",
	ColorCyan:         "cyan",
	ColorWhite:        "white",
	ColorLightBlack:   "lightblack",
	ColorLightRed:     "lightred",
	ColorLightGreen:   "lightgreen",
	ColorLightYellow:  "lightyellow",
	ColorLightBlue:    "lightblue",
	ColorLightMagenta: "lightmagenta",
	ColorLightCyan:    "lightcyan",
	ColorLightWhite:   "lightwhite",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return ""
}

// Light reports whether c is one of the bright variants.
func (c Color) Light() bool {
	return c >= ColorLightBlack && c <= ColorLightWhite
}

// Format is a text attribute, with the same Unset/Default split as Color.
type Format uint8

const (
	FormatUnset Format = iota
	FormatDefault
	FormatBold
	FormatDim
	FormatUnderline
	FormatReverse
	FormatItalic
)

var formatNames = map[Format]string{
	FormatDefault:   "default",
	FormatBold:      "bold",
	FormatDim:       "dim",
	FormatUnderline: "underline",
	FormatReverse:   "reverse",
	FormatItalic:    "italic",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return ""
}

// ParseColor converts a color name such as "blue" or "light-red" into a Color.
// The empty string yields ColorUnset.
func ParseColor(name string) (Color, error) {
	key := normalizeName(name)
	if key == "" {
		return ColorUnset, nil
	}
	for c, n := range colorNames {
		if n == key {
			return c, nil
		}
	}
	return ColorUnset, fmt.Errorf("unknown color %q", name)
}

// ParseFormat converts a format name such as "bold" into a Format.
// The empty string yields FormatUnset.
func ParseFormat(name string) (Format, error) {
	key := normalizeName(name)
	if key == "" {
		return FormatUnset, nil
	}
	for f, n := range formatNames {
		if n == key {
			return f, nil
		}
	}
	return FormatUnset, fmt.Errorf("unknown format %q", name)
}

func normalizeName(name string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(name)))
}

// Style is the styling of one cell. Unset attributes are left to whatever
// is underneath when styles are merged.
type Style struct {
	Foreground Color
	Background Color
	Format     Format
}

// Apply overwrites the attributes of s that are set in other.
func (s *Style) Apply(other Style) {
	if other.Foreground != ColorUnset {
		s.Foreground = other.Foreground
	}
	if other.Background != ColorUnset {
		s.Background = other.Background
	}
	if other.Format != FormatUnset {
		s.Format = other.Format
	}
}

// Resolve returns s with every unset attribute replaced by its default.
func (s Style) Resolve() Style {
	if s.Foreground == ColorUnset {
		s.Foreground = ColorDefault
	}
	if s.Background == ColorUnset {
		s.Background = ColorDefault
	}
	if s.Format == FormatUnset {
		s.Format = FormatDefault
	}
	return s
}

// IsZero reports whether no attribute is set.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Styles is a grid of cell styles matching a Canvas cell for cell.
type Styles struct {
	width  int
	height int
	cells  []Style
}

// NewStyles returns a width x height grid with every attribute unset.
func NewStyles(width, height int) *Styles {
	return &Styles{
		width:  width,
		height: height,
		cells:  make([]Style, width*height),
	}
}

func (s *Styles) Width() int  { return s.width }
func (s *Styles) Height() int { return s.height }

// Get returns the style at the given cell. It panics when the cell is outside the grid.
func (s *Styles) Get(row, col int) Style {
	s.checkBounds(row, col, 1, 1)
	return s.cells[row*s.width+col]
}

// Set merges src into s with its top-left corner at (row, col).
// It panics when src does not fit.
func (s *Styles) Set(row, col int, src *Styles) {
	s.checkBounds(row, col, src.width, src.height)
	for r := 0; r < src.height; r++ {
		offset := (row+r)*s.width + col
		for c := 0; c < src.width; c++ {
			s.cells[offset+c].Apply(src.cells[r*src.width+c])
		}
	}
}

// Clear assigns style to every cell, replacing whatever was there.
func (s *Styles) Clear(style Style) {
	for i := range s.cells {
		s.cells[i] = style
	}
}

func (s *Styles) checkBounds(row, col, width, height int) {
	if row < 0 || col < 0 || row+height > s.height || col+width > s.width {
		panic(fmt.Sprintf("canvas: %dx%d styles at (%d, %d) exceed %dx%d grid",
			width, height, row, col, s.width, s.height))
	}
}
