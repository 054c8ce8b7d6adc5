package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Physical holds the fabrication constants. They shape the geometry itself,
// so changing any of them changes every emitted coordinate.
type Physical struct {
	PanelSizeMM      float64
	FrameWidthMM     float64
	SeparatorWidthMM float64
	Segments         int
	Tolerance        float64
	Window           int
}

func DefaultPhysical() Physical {
	return Physical{
		PanelSizeMM:      217.7,
		FrameWidthMM:     3.2,
		SeparatorWidthMM: 2.8,
		Segments:         900,
		Tolerance:        0.01,
		Window:           1,
	}
}

type Config struct {
	Image        string  `toml:"image"`
	Output       string  `toml:"output"`
	Lines        int     `toml:"lines"`
	MinThickness float64 `toml:"min_thickness"`
	MaxThickness float64 `toml:"max_thickness"`
	Contrast     float64 `toml:"contrast"`
	CenterX      float64 `toml:"center_x"`
	CenterY      float64 `toml:"center_y"`
	Split        bool    `toml:"split"`
	GCode        string  `toml:"gcode"`
	Verbose      bool    `toml:"verbose"`
}

func DefaultConfig() Config {
	return Config{
		Output:       "salida.svg",
		Lines:        120,
		MinThickness: 6.0,
		MaxThickness: 16.0,
		Contrast:     75.0,
		CenterX:      -20.0,
		CenterY:      50.0,
		Split:        true,
	}
}

// LoadConfig reads a TOML file on top of the defaults. Keys the Config does
// not know are rejected so typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Paths in the file never went through a shell.
	for _, p := range []*string{&cfg.Image, &cfg.Output, &cfg.GCode} {
		if *p, err = homedir.Expand(*p); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Image == "" {
		return fmt.Errorf("%w: an input image is required", ErrInvalidConfig)
	}
	if c.Lines < 1 {
		return fmt.Errorf("%w: the number of lines must be at least 1", ErrInvalidConfig)
	}
	if c.MinThickness < 0 || c.MaxThickness < 0 {
		return fmt.Errorf("%w: thickness cannot be negative", ErrInvalidConfig)
	}
	if c.MinThickness > c.MaxThickness {
		return fmt.Errorf("%w: minimum thickness %g is greater than maximum %g", ErrInvalidConfig, c.MinThickness, c.MaxThickness)
	}
	return nil
}
