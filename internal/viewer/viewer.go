// Package viewer shows a diagram in a scrollable full-screen terminal view.
package viewer

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/gnolang/trex/internal/canvas"
)

// surface is the part of tcell.Screen needed for drawing.
type surface interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
	Show()
}

// Viewer pans over a canvas that may be larger than the terminal.
type Viewer struct {
	screen tcell.Screen
	canvas *canvas.Canvas
	logger *zap.Logger

	// top-left canvas cell shown at the screen origin
	offsetX, offsetY int
}

func New(screen tcell.Screen, c *canvas.Canvas, logger *zap.Logger) *Viewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Viewer{screen: screen, canvas: c, logger: logger}
}

// Offset returns the canvas column and row drawn at the top-left corner.
func (v *Viewer) Offset() (x, y int) { return v.offsetX, v.offsetY }

// Run takes over the screen until the user quits or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	if err := v.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer v.screen.Fini()

	stop := context.AfterFunc(ctx, func() {
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	v.draw(v.screen)
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				v.logger.Debug("Viewer interrupted", zap.Error(ctx.Err()))
				return nil
			}
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev, v.screen) {
				v.logger.Debug("Viewer closed")
				return nil
			}
		}
		v.draw(v.screen)
	}
}

// handleKey scrolls the view and reports whether the viewer should close.
func (v *Viewer) handleKey(ev *tcell.EventKey, s surface) bool {
	width, height := s.Size()
	dx, dy := 0, 0

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		dy = -1
	case tcell.KeyDown:
		dy = 1
	case tcell.KeyLeft:
		dx = -1
	case tcell.KeyRight:
		dx = 1
	case tcell.KeyPgUp:
		dy = -height
	case tcell.KeyPgDn:
		dy = height
	case tcell.KeyHome:
		v.offsetX, v.offsetY = 0, 0
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			dy = -1
		case 'j':
			dy = 1
		case 'h':
			dx = -1
		case 'l':
			dx = 1
		case 'g':
			v.offsetX, v.offsetY = 0, 0
			return false
		}
	}

	v.offsetX = clamp(v.offsetX+dx, v.canvas.Width()-width)
	v.offsetY = clamp(v.offsetY+dy, v.canvas.Height()-height)
	return false
}

func (v *Viewer) draw(s surface) {
	s.Clear()
	width, height := s.Size()
	for y := 0; y < height && y+v.offsetY < v.canvas.Height(); y++ {
		row := y + v.offsetY
		for x := 0; x < width && x+v.offsetX < v.canvas.Width(); x++ {
			col := x + v.offsetX
			s.SetContent(x, y, v.canvas.Rune(row, col), nil, ConvertStyle(v.canvas.Style(row, col)))
		}
	}
	s.Show()
}

func clamp(offset, limit int) int {
	if offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// ConvertStyle maps a cell style onto the terminal's palette.
func ConvertStyle(style canvas.Style) tcell.Style {
	style = style.Resolve()
	out := tcell.StyleDefault.
		Foreground(convertColor(style.Foreground)).
		Background(convertColor(style.Background))

	switch style.Format {
	case canvas.FormatBold:
		out = out.Bold(true)
	case canvas.FormatDim:
		out = out.Dim(true)
	case canvas.FormatUnderline:
		out = out.Underline(true)
	case canvas.FormatReverse:
		out = out.Reverse(true)
	case canvas.FormatItalic:
		out = out.Italic(true)
	}
	return out
}

// convertColor relies on canvas colors following the ANSI order from black
// to light white, which matches the first 16 palette entries.
func convertColor(c canvas.Color) tcell.Color {
	if c < canvas.ColorBlack || c > canvas.ColorLightWhite {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c - canvas.ColorBlack))
}
