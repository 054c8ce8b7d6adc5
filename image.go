package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// RasterSource loads the picture the rings are generated from.
type RasterSource interface {
	Load(path string) (image.Image, error)
}

type fileSource struct{}

func (fileSource) Load(path string) (image.Image, error) {
	return LoadImage(path)
}

// decoders maps a format name, as reported by filetype or taken from the file
// extension, to its decoder. SVG is handled separately.
var decoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpg":  jpeg.Decode,
	"jpeg": jpeg.Decode,
	"gif":  gif.Decode,
	"bmp":  bmp.Decode,
	"tif":  tiff.Decode,
	"tiff": tiff.Decode,
	"webp": webp.Decode,
}

// LoadImage decodes the image at filePath. The format is sniffed from the
// content first so misnamed files still load; the extension decides otherwise.
func LoadImage(filePath string) (image.Image, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	format := imageFormat(filePath, data)
	if format == "svg" {
		return rasterizeSVG(data)
	}
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filePath, err)
	}
	return img, nil
}

func imageFormat(filePath string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		if _, ok := decoders[kind.Extension]; ok {
			return kind.Extension
		}
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), ".")
}

// PrepareGrid converts a decoded image into the intensity grid: flattened on
// white, converted to luma, centre-cropped to the panel grid's aspect ratio
// and contrast adjusted. The layout is chosen from the uncropped orientation.
func PrepareGrid(img image.Image, contrast float64) (*PixelGrid, PanelLayout) {
	bounds := img.Bounds()
	layout := LayoutFor(bounds.Dx(), bounds.Dy())

	gray := effect.GrayscaleWithWeights(flattenOnWhite(img), 0.299, 0.587, 0.114)
	gray = cropToRatio(gray, layout)

	if contrast != 50 {
		Logger().Info("adjusting contrast", "contrast", contrast)
		gray = adjustContrast(gray, contrast)
	}

	return gridFromRGBA(gray), layout
}

func flattenOnWhite(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Over)
	return dst
}

// cropToRatio crops the centre of img to cols:rows. Images already within 1%
// of the target ratio are returned untouched.
func cropToRatio(img *image.RGBA, layout PanelLayout) *image.RGBA {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return img
	}

	ratio := float64(width) / float64(height)
	target := float64(layout.Cols) / float64(layout.Rows)
	if math.Abs(ratio-target) < 0.01 {
		return img
	}

	newWidth, newHeight := width, height
	offsetX, offsetY := 0, 0
	if ratio > target {
		newWidth = int(float64(height) * target)
		offsetX = (width - newWidth) / 2
	} else {
		newHeight = int(float64(width) / target)
		offsetY = (height - newHeight) / 2
	}

	origin := bounds.Min.Add(image.Pt(offsetX, offsetY))
	cropped := transform.Crop(img, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(newWidth, newHeight))})
	Logger().Info("image cropped", "from", fmt.Sprintf("%dx%d", width, height), "to", fmt.Sprintf("%dx%d", newWidth, newHeight))
	return cropped
}

// adjustContrast scales every gray level away from the rounded image mean by
// contrast/50. Results are truncated and clipped to [0, 255].
func adjustContrast(img *image.RGBA, contrast float64) *image.RGBA {
	factor := contrast / 50.0

	bounds := img.Bounds()
	var sum, count float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum += float64(img.Pix[img.PixOffset(x, y)])
			count++
		}
	}
	if count == 0 {
		return img
	}
	mean := float64(int(sum/count + 0.5))

	var lut [256]uint8
	for v := range lut {
		out := mean + factor*(float64(v)-mean)
		switch {
		case out <= 0:
			lut[v] = 0
		case out >= 255:
			lut[v] = 255
		default:
			lut[v] = uint8(out)
		}
	}

	return adjust.Apply(img, func(c color.RGBA) color.RGBA {
		v := lut[c.R]
		return color.RGBA{R: v, G: v, B: v, A: c.A}
	})
}

func gridFromRGBA(img *image.RGBA) *PixelGrid {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pix := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pix[y*width+x] = img.Pix[img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)]
		}
	}
	return NewPixelGrid(width, height, pix)
}
