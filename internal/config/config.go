// Package config loads the presenter settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"InkOverlay/internal/state"
)

// EnvPath names the environment variable that points at the config file.
const EnvPath = "INKOVERLAY_CONFIG"

type Swatch struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

type Remote struct {
	Enabled   bool `yaml:"enabled"`
	Port      int  `yaml:"port"`
	Advertise bool `yaml:"advertise"`
}

type Config struct {
	MarkerWidth  float32  `yaml:"marker_width"`
	EraserRadius float32  `yaml:"eraser_radius"`
	DefaultColor string   `yaml:"default_color"`
	Palette      []Swatch `yaml:"palette"`
	Remote       Remote   `yaml:"remote"`
	LogLevel     string   `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	cfg := Config{
		MarkerWidth:  6,
		EraserRadius: 24,
		DefaultColor: "red",
		Remote:       Remote{Enabled: true, Port: 8888, Advertise: true},
		LogLevel:     "info",
	}
	for _, s := range state.DefaultPalette() {
		c := s.Color
		cfg.Palette = append(cfg.Palette, Swatch{Name: s.Name, Hex: fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)})
	}
	return cfg
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks sizes, port and palette.
func (c Config) Validate() error {
	if c.MarkerWidth <= 0 {
		return fmt.Errorf("marker_width must be positive, got %v", c.MarkerWidth)
	}
	if c.EraserRadius <= 0 {
		return fmt.Errorf("eraser_radius must be positive, got %v", c.EraserRadius)
	}
	if c.Remote.Port <= 0 || c.Remote.Port > 65535 {
		return fmt.Errorf("remote.port out of range: %d", c.Remote.Port)
	}
	palette, err := c.ToolPalette()
	if err != nil {
		return err
	}
	if _, err := palette.Lookup(c.DefaultColor); err != nil {
		return fmt.Errorf("default_color: %w", err)
	}
	return nil
}

// ToolPalette converts the configured swatches.
func (c Config) ToolPalette() (state.Palette, error) {
	if len(c.Palette) == 0 {
		return nil, errors.New("palette is empty")
	}
	var p state.Palette
	for _, s := range c.Palette {
		if s.Name == "" {
			return nil, errors.New("palette entry without a name")
		}
		col, err := state.ParseHex(s.Hex)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", s.Name, err)
		}
		p = append(p, state.Swatch{Name: s.Name, Color: col})
	}
	return p, nil
}

// ToolState builds the shared tool state from the settings.
func (c Config) ToolState() (*state.ToolState, error) {
	palette, err := c.ToolPalette()
	if err != nil {
		return nil, err
	}
	ts := state.NewToolState(palette, c.MarkerWidth, c.EraserRadius)
	if err := ts.SetColor(c.DefaultColor); err != nil {
		return nil, err
	}
	return ts, nil
}
