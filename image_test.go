package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayRGBA(width, height int, level func(x, y int) uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := level(x, y)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func TestCropToRatio(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          image.Point
	}{
		{"too wide", 300, 100, image.Pt(150, 100)},
		{"too tall", 80, 200, image.Pt(80, 120)},
		{"within tolerance", 301, 200, image.Pt(301, 200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := grayRGBA(tt.width, tt.height, func(x, y int) uint8 { return 0 })
			got := cropToRatio(img, LayoutFor(tt.width, tt.height))
			assert.Equal(t, tt.want, got.Bounds().Size())
		})
	}
}

func TestCropToRatioKeepsCentre(t *testing.T) {
	img := grayRGBA(300, 100, func(x, y int) uint8 { return uint8(x / 2) })
	grid := gridFromRGBA(cropToRatio(img, LayoutFor(300, 100)))

	require.Equal(t, 150, grid.Width)
	assert.Equal(t, uint8(37), grid.At(0, 0))
	assert.Equal(t, uint8(112), grid.At(149, 99))
}

func TestAdjustContrast(t *testing.T) {
	levels := []uint8{0, 100, 200, 100}
	img := grayRGBA(4, 1, func(x, y int) uint8 { return levels[x] })

	high := gridFromRGBA(adjustContrast(img, 100))
	diff(t, []uint8{0, 100, 255, 100}, high.Pix)

	low := gridFromRGBA(adjustContrast(img, 25))
	diff(t, []uint8{50, 100, 150, 100}, low.Pix)

	same := gridFromRGBA(adjustContrast(img, 50))
	diff(t, levels, same.Pix)
}

func TestPrepareGrid(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 300, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 150; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	grid, layout := PrepareGrid(img, 50)
	assert.Equal(t, PanelLayout{Cols: 3, Rows: 2}, layout)
	require.Equal(t, 300, grid.Width)
	require.Equal(t, 200, grid.Height)

	// Luma of pure red. The untouched pixels are transparent black and
	// are composited onto white.
	assert.Equal(t, uint8(76), grid.At(10, 10))
	assert.Equal(t, uint8(255), grid.At(290, 190))
}

func TestPrepareGridPortrait(t *testing.T) {
	img := grayRGBA(100, 300, func(x, y int) uint8 { return 128 })

	grid, layout := PrepareGrid(img, 50)
	assert.Equal(t, PanelLayout{Cols: 2, Rows: 3}, layout)
	assert.Equal(t, 100, grid.Width)
	assert.Equal(t, 150, grid.Height)
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(dir, "in.png")
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, grayRGBA(12, 8, func(x, y int) uint8 { return uint8(x * 10) })))
		require.NoError(t, f.Close())

		img, err := LoadImage(path)
		require.NoError(t, err)
		assert.Equal(t, image.Pt(12, 8), img.Bounds().Size())
	})

	t.Run("misnamed", func(t *testing.T) {
		path := filepath.Join(dir, "really-a-png.jpg")
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, grayRGBA(6, 4, func(x, y int) uint8 { return 0 })))
		require.NoError(t, f.Close())

		img, err := LoadImage(path)
		require.NoError(t, err)
		assert.Equal(t, image.Pt(6, 4), img.Bounds().Size())
	})

	t.Run("svg", func(t *testing.T) {
		path := filepath.Join(dir, "in.svg")
		src := `<svg xmlns="http://www.w3.org/2000/svg" width="600" height="300" viewBox="0 0 600 300">` +
			`<rect x="0" y="0" width="150" height="300" fill="black"/></svg>`
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

		img, err := LoadImage(path)
		require.NoError(t, err)
		assert.Equal(t, image.Pt(600, 300), img.Bounds().Size())

		// Cropped to 450x300 around the centre: source x = 75 + x.
		grid, _ := PrepareGrid(img, 50)
		require.Equal(t, 450, grid.Width)
		require.Equal(t, 300, grid.Height)
		assert.Less(t, grid.At(30, 150), uint8(10))
		assert.Equal(t, uint8(255), grid.At(300, 150))
	})

	t.Run("small svg", func(t *testing.T) {
		path := filepath.Join(dir, "icon.svg")
		src := `<svg xmlns="http://www.w3.org/2000/svg" width="40" height="20" viewBox="0 0 40 20">` +
			`<rect x="0" y="0" width="10" height="20" fill="black"/></svg>`
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

		img, err := LoadImage(path)
		require.NoError(t, err)
		assert.Equal(t, image.Pt(256, 128), img.Bounds().Size())

		// Scaled by 6.4 and cropped to 192x128: source x = 32 + x.
		grid, _ := PrepareGrid(img, 50)
		require.Equal(t, 192, grid.Width)
		assert.Less(t, grid.At(10, 64), uint8(10))
		assert.Equal(t, uint8(255), grid.At(150, 64))
	})

	t.Run("unsupported", func(t *testing.T) {
		path := filepath.Join(dir, "in.xcf")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		_, err := LoadImage(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadImage(filepath.Join(dir, "nope.png"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("corrupt", func(t *testing.T) {
		path := filepath.Join(dir, "bad.png")
		require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

		_, err := LoadImage(path)
		assert.ErrorContains(t, err, "decoding")
	})
}

func TestSVGRasterSize(t *testing.T) {
	tests := []struct {
		w, h    float64
		want    image.Point
		wantErr bool
	}{
		{600, 300, image.Pt(600, 300), false},
		{40, 20, image.Pt(256, 128), false},
		{24, 24, image.Pt(256, 256), false},
		{0, 20, image.Point{}, true},
		{20, 0.5, image.Point{}, true},
	}
	for _, tt := range tests {
		got, err := svgRasterSize(tt.w, tt.h)
		if tt.wantErr {
			assert.Error(t, err, "%gx%g", tt.w, tt.h)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%gx%g", tt.w, tt.h)
	}
}
