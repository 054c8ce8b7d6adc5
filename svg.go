package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// minSVGSide is the smallest long side an SVG input is rendered at. Icon
// sized view boxes would otherwise leave only a few pixels per ring.
const minSVGSide = 256

// rasterizeSVG renders SVG artwork as gray levels on white so it can be
// sampled like any raster image.
func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	size, err := svgRasterSize(icon.ViewBox.W, icon.ViewBox.H)
	if err != nil {
		return nil, err
	}

	dst := image.NewGray(image.Rectangle{Max: size})
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	drawIcon(icon, dst)
	return dst, nil
}

// svgRasterSize keeps one pixel per view box unit unless that leaves the long
// side under minSVGSide, in which case the artwork is scaled up uniformly.
func svgRasterSize(w, h float64) (image.Point, error) {
	if !(w >= 1 && h >= 1) {
		return image.Point{}, errors.New("svg has an empty view box")
	}
	scale := math.Max(1, minSVGSide/math.Max(w, h))
	return image.Pt(int(w*scale), int(h*scale)), nil
}

// drawIcon fits icon to the bounds of dst and paints it.
func drawIcon(icon *oksvg.SvgIcon, dst draw.Image) {
	b := dst.Bounds()
	icon.SetTarget(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()))

	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	scanner.SetClip(b)
	icon.Draw(rasterx.NewDasher(b.Dx(), b.Dy(), scanner), 1.0)
}
