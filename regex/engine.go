package regex

import (
	"github.com/gnolang/trex/formatter"
	"github.com/gnolang/trex/internal/canvas"
	"github.com/gnolang/trex/internal/diagram"
)

// Engine renders expressions with a configured theme and color mode.
// It is safe for concurrent use.
type Engine struct {
	config   Config
	renderer *diagram.Renderer
	style    formatter.StyleFunc
}

// New creates an Engine from the configuration file at configPath.
func New(configPath string) (*Engine, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewEngine(config)
}

func NewEngine(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// both were checked by Validate
	theme, _ := config.Theme.Theme()
	mode, _ := config.ColorMode()

	return &Engine{
		config:   config,
		renderer: diagram.New(theme),
		style:    formatter.ColorStyleFunc(mode),
	}, nil
}

func (e *Engine) Config() Config { return e.config }

// StyleFunc returns the function used to color diagrams.
func (e *Engine) StyleFunc() formatter.StyleFunc { return e.style }

func (e *Engine) Compile(expr string, opts ...Option) (*Regex, error) {
	return Parse(expr, opts...)
}

// Diagram draws an already compiled expression with the engine's theme.
func (e *Engine) Diagram(re *Regex) *canvas.Canvas {
	return re.Diagram(e.renderer)
}

// Canvas parses expr and draws it with the engine's theme.
func (e *Engine) Canvas(expr string) (*canvas.Canvas, error) {
	re, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return e.Diagram(re), nil
}

// Render parses expr and returns its diagram as terminal text.
func (e *Engine) Render(expr string) (string, error) {
	c, err := e.Canvas(expr)
	if err != nil {
		return "", err
	}
	return formatter.Sprint(c, e.style), nil
}
