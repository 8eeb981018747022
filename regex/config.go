package regex

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/trex/formatter"
	"github.com/gnolang/trex/internal/canvas"
	"github.com/gnolang/trex/internal/diagram"
)

// DefaultConfigPath is the configuration file looked up in the working directory.
const DefaultConfigPath = ".trex.yaml"

// Config represents the overall configuration: output coloring and the theme.
type Config struct {
	Name  string      `yaml:"name"`
	Color string      `yaml:"color"`
	Theme ThemeConfig `yaml:"theme"`
}

type ThemeConfig struct {
	Special StyleConfig `yaml:"special"`
	Literal StyleConfig `yaml:"literal"`
	Range   StyleConfig `yaml:"range"`
	Label   StyleConfig `yaml:"label"`
}

// StyleConfig names colors and formats, e.g. {foreground: blue, format: bold}.
// Omitted attributes stay unset.
type StyleConfig struct {
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Format     string `yaml:"format,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Name:  "trex",
		Color: string(formatter.ColorAuto),
		Theme: ThemeConfig{
			Special: StyleConfig{Foreground: "blue", Format: "bold"},
		},
	}
}

// LoadConfig reads the configuration at path. An empty path yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return LoadConfigFS(afero.NewOsFs(), path)
}

// LoadConfigFS is like LoadConfig but reads from fs. Keys missing from the
// file keep their default values; unknown keys are rejected.
func LoadConfigFS(fs afero.Fs, path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := fs.Open(path)
	if err != nil {
		return config, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Validate checks that every color, format and color mode name is known.
func (c Config) Validate() error {
	if _, err := c.ColorMode(); err != nil {
		return err
	}
	_, err := c.Theme.Theme()
	return err
}

func (c Config) ColorMode() (formatter.ColorMode, error) {
	return formatter.ParseColorMode(c.Color)
}

// Theme converts the configured styles into a diagram theme.
func (t ThemeConfig) Theme() (diagram.Theme, error) {
	var (
		theme diagram.Theme
		err   error
	)
	fields := []struct {
		name string
		cfg  StyleConfig
		dst  *canvas.Style
	}{
		{"special", t.Special, &theme.Special},
		{"literal", t.Literal, &theme.Literal},
		{"range", t.Range, &theme.Range},
		{"label", t.Label, &theme.Label},
	}
	for _, f := range fields {
		if *f.dst, err = f.cfg.Style(); err != nil {
			return diagram.Theme{}, fmt.Errorf("theme.%s: %w", f.name, err)
		}
	}
	return theme, nil
}

func (s StyleConfig) Style() (canvas.Style, error) {
	var (
		style canvas.Style
		err   error
	)
	if style.Foreground, err = canvas.ParseColor(s.Foreground); err != nil {
		return style, err
	}
	if style.Background, err = canvas.ParseColor(s.Background); err != nil {
		return style, err
	}
	if style.Format, err = canvas.ParseFormat(s.Format); err != nil {
		return style, err
	}
	return style, nil
}

// WriteConfigFS writes config as YAML to path, replacing any existing file.
func WriteConfigFS(fs afero.Fs, path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return afero.WriteFile(fs, path, d, 0o644)
}
