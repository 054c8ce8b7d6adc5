package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGradientPNG(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "gradient.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	img := grayRGBA(120, 80, func(x, y int) uint8 { return uint8(2 * x) })
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Image = writeGradientPNG(t, dir)
	cfg.Output = filepath.Join(dir, "rings.svg")
	cfg.GCode = filepath.Join(dir, "rings.gcode")
	cfg.Lines = 8
	cfg.MinThickness = 1
	cfg.MaxThickness = 4
	cfg.CenterX = 50
	require.NoError(t, cfg.Validate())

	require.NoError(t, run(cfg, fileSource{}))

	assert.FileExists(t, cfg.Output)
	assert.FileExists(t, cfg.GCode)

	// The frame touches every panel, so none is skipped.
	for i := 1; i <= 6; i++ {
		assert.FileExists(t, filepath.Join(dir, "rings", fmt.Sprintf("panel_%d.svg", i)))
		assert.FileExists(t, filepath.Join(dir, "rings", fmt.Sprintf("panel_%d.gcode", i)))
	}
}

func TestRunNoSplit(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Image = writeGradientPNG(t, dir)
	cfg.Output = filepath.Join(dir, "rings.svg")
	cfg.Lines = 4
	cfg.Split = false

	require.NoError(t, run(cfg, fileSource{}))
	assert.FileExists(t, cfg.Output)
	assert.NoDirExists(t, filepath.Join(dir, "rings"))
}

func TestRunLoadFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Image = filepath.Join(dir, "missing.png")
	cfg.Output = filepath.Join(dir, "rings.svg")

	assert.Error(t, run(cfg, fileSource{}))
	assert.NoFileExists(t, cfg.Output)
}
