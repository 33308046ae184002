// Package config loads the runtime settings of the cardkit command.
package config

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	BackendTerminal = "terminal"
	BackendWindow   = "window"
)

const (
	MinFPS   = 1
	MaxFPS   = 240
	MinScale = 1
	MaxScale = 32
)

// Config holds every setting the command reads; zero values are replaced by Default
type Config struct {
	FPS        int    `toml:"fps"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Scale      int    `toml:"scale"`
	Seed       uint64 `toml:"seed"`
	Atlas      string `toml:"atlas"`
	Layout     string `toml:"layout"`
	Debug      bool   `toml:"debug"`
	Backend    string `toml:"backend"`
	Title      string `toml:"title"`
	Background string `toml:"background"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		FPS:        30,
		Width:      700,
		Height:     500,
		Scale:      5,
		Backend:    BackendTerminal,
		Title:      "Card Game",
		Background: "#c8e6c8",
	}
}

// Load reads a TOML file over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Decode(string(data))
}

// Decode parses TOML over the defaults and validates the result
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown keys %v", undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations
func (c Config) Validate() error {
	if c.FPS < MinFPS || c.FPS > MaxFPS {
		return fmt.Errorf("config: fps %d out of range [%d, %d]", c.FPS, MinFPS, MaxFPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Scale < MinScale || c.Scale > MaxScale {
		return fmt.Errorf("config: scale %d out of range [%d, %d]", c.Scale, MinScale, MaxScale)
	}
	switch c.Backend {
	case BackendTerminal, BackendWindow:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor parses the hex background color
func (c Config) BackgroundColor() (color.RGBA, error) {
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: background %q: %w", c.Background, err)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Encode writes the config as TOML
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
