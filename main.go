package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
)

func newFlagSet(cfg *Config, configPath *string) *flag.FlagSet {
	fs := flag.NewFlagSet("circularlines", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: circularlines [flags] <image>\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(configPath, "config", *configPath, "TOML file with default settings")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "Output SVG file")
	fs.IntVar(&cfg.Lines, "n", cfg.Lines, "Number of rings")
	fs.Float64Var(&cfg.MinThickness, "min", cfg.MinThickness, "Minimum ring thickness (px)")
	fs.Float64Var(&cfg.MaxThickness, "max", cfg.MaxThickness, "Maximum ring thickness (px)")
	fs.Float64Var(&cfg.Contrast, "c", cfg.Contrast, "Contrast, 50 is neutral")
	fs.Float64Var(&cfg.CenterX, "cx", cfg.CenterX, "Ring centre X as a percentage of the width")
	fs.Float64Var(&cfg.CenterY, "cy", cfg.CenterY, "Ring centre Y as a percentage of the height")
	fs.BoolFunc("no-split", "Only write the full canvas, no panels", func(string) error {
		cfg.Split = false
		return nil
	})
	fs.StringVar(&cfg.GCode, "gcode", cfg.GCode, "Also write G-code outlines to this file")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Debug logging")
	return fs
}

// parseArgs layers defaults, an optional config file and explicit flags, in
// that order of precedence.
func parseArgs(args []string, stderr io.Writer) (Config, error) {
	var configPath string
	first := DefaultConfig()
	fs := newFlagSet(&first, &configPath)
	fs.SetOutput(stderr)
	if _, err := parseInterleaved(fs, args); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = LoadConfig(configPath); err != nil {
			return Config{}, err
		}
	}

	fs = newFlagSet(&cfg, &configPath)
	fs.SetOutput(io.Discard)
	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return Config{}, err
	}
	switch len(positional) {
	case 0:
	case 1:
		cfg.Image = positional[0]
	default:
		return Config{}, fmt.Errorf("%w: unexpected arguments %q", ErrInvalidConfig, positional[1:])
	}
	return cfg, nil
}

// parseInterleaved parses args with fs, letting flags follow positional
// arguments as in "rings photo.jpg -n 500". Positionals are returned in order.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

// run generates the full canvas and, when splitting, its panels. Nothing is
// written unless the image loads and every ring has been composed.
func run(cfg Config, src RasterSource) error {
	Logger().Info("loading image", "path", cfg.Image)
	img, err := src.Load(cfg.Image)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	grid, layout := PrepareGrid(img, cfg.Contrast)
	sheet := NewSheet(grid, layout, DefaultPhysical())
	Logger().Info("canvas",
		"pixels", fmt.Sprintf("%dx%d", sheet.Width, sheet.Height),
		"mm", fmt.Sprintf("%gx%g", sheet.WidthMM(), sheet.HeightMM()),
		"panels", fmt.Sprintf("%dx%d", layout.Cols, layout.Rows),
		"split", cfg.Split)

	compositor := NewCompositor()
	region, stats, err := compositor.Compose(grid, sheet, cfg.RingParams())
	if err != nil {
		return err
	}

	if err := WriteSVGFile(cfg.Output, SheetDocument(sheet, region)); err != nil {
		return err
	}
	Logger().Info("full canvas written", "path", cfg.Output)

	if cfg.GCode != "" {
		if err := WriteGCodeFile(cfg.GCode, region, 1/sheet.Scale()); err != nil {
			return err
		}
		Logger().Info("g-code written", "path", cfg.GCode)
	}

	if cfg.Split {
		panels, err := SlicePanels(compositor.Engine, region, sheet)
		if err != nil {
			return err
		}
		dir := PanelDir(cfg.Output)
		if _, err := WritePanels(dir, panels, sheet, cfg.GCode != ""); err != nil {
			return err
		}
		Logger().Info("panels written", "dir", dir, "count", len(panels), "of", layout.Count())
	}

	Logger().Info("statistics",
		"points_before", stats.PointsBefore,
		"points_after", stats.PointsAfter,
		"reduction", fmt.Sprintf("%.1f%%", stats.Reduction()),
		"complete", stats.Complete,
		"cut", stats.Cut,
		"discarded", stats.Discarded)
	return nil
}

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(cfg, fileSource{}); err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("Rings successfully written to %s\n", cfg.Output)
}
