package formatter

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/gnolang/trex/internal/canvas"
)

// ColorMode selects when ColorStyleFunc emits escape sequences.
type ColorMode string

const (
	// ColorAuto colors output only when stdout is a terminal.
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a mode name. The empty string means ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return ColorMode(s), nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

var foregrounds = map[canvas.Color]color.Attribute{
	canvas.ColorBlack:        color.FgBlack,
	canvas.ColorRed:          color.FgRed,
	canvas.ColorGreen:        color.FgGreen,
	canvas.ColorYellow:       color.FgYellow,
	canvas.ColorBlue:         color.FgBlue,
	canvas.ColorMagenta:      color.FgMagenta,
	canvas.ColorCyan:         color.FgCyan,
	canvas.ColorWhite:        color.FgWhite,
	canvas.ColorLightBlack:   color.FgHiBlack,
	canvas.ColorLightRed:     color.FgHiRed,
	canvas.ColorLightGreen:   color.FgHiGreen,
	canvas.ColorLightYellow:  color.FgHiYellow,
	canvas.ColorLightBlue:    color.FgHiBlue,
	canvas.ColorLightMagenta: color.FgHiMagenta,
	canvas.ColorLightCyan:    color.FgHiCyan,
	canvas.ColorLightWhite:   color.FgHiWhite,
}

var backgrounds = map[canvas.Color]color.Attribute{
	canvas.ColorBlack:        color.BgBlack,
	canvas.ColorRed:          color.BgRed,
	canvas.ColorGreen:        color.BgGreen,
	canvas.ColorYellow:       color.BgYellow,
	canvas.ColorBlue:         color.BgBlue,
	canvas.ColorMagenta:      color.BgMagenta,
	canvas.ColorCyan:         color.BgCyan,
	canvas.ColorWhite:        color.BgWhite,
	canvas.ColorLightBlack:   color.BgHiBlack,
	canvas.ColorLightRed:     color.BgHiRed,
	canvas.ColorLightGreen:   color.BgHiGreen,
	canvas.ColorLightYellow:  color.BgHiYellow,
	canvas.ColorLightBlue:    color.BgHiBlue,
	canvas.ColorLightMagenta: color.BgHiMagenta,
	canvas.ColorLightCyan:    color.BgHiCyan,
	canvas.ColorLightWhite:   color.BgHiWhite,
}

var formats = map[canvas.Format]color.Attribute{
	canvas.FormatBold:      color.Bold,
	canvas.FormatDim:       color.Faint,
	canvas.FormatUnderline: color.Underline,
	canvas.FormatReverse:   color.ReverseVideo,
	canvas.FormatItalic:    color.Italic,
}

// attributes converts a style into fatih/color attributes.
// Default and unset attributes contribute nothing.
func attributes(style canvas.Style) []color.Attribute {
	var attrs []color.Attribute
	if a, ok := foregrounds[style.Foreground]; ok {
		attrs = append(attrs, a)
	}
	if a, ok := backgrounds[style.Background]; ok {
		attrs = append(attrs, a)
	}
	if a, ok := formats[style.Format]; ok {
		attrs = append(attrs, a)
	}
	return attrs
}

// ColorStyleFunc returns a StyleFunc emitting ANSI escapes through fatih/color.
// Every run is closed with a reset, so the trailing default call of Write
// produces nothing.
func ColorStyleFunc(mode ColorMode) StyleFunc {
	if mode == ColorNever {
		return PlainStyleFunc
	}

	return func(style canvas.Style, text string) string {
		attrs := attributes(style)
		if text == "" || len(attrs) == 0 {
			return text
		}
		c := color.New(attrs...)
		if mode == ColorAlways {
			c.EnableColor()
		}
		return c.Sprint(text)
	}
}
