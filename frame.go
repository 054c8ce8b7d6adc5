package main

import "honnef.co/go/curve"

type PanelLayout struct {
	Cols int
	Rows int
}

// LayoutFor picks three panels across for landscape (and square) images and
// two across for portrait ones.
func LayoutFor(width, height int) PanelLayout {
	if width >= height {
		return PanelLayout{Cols: 3, Rows: 2}
	}
	return PanelLayout{Cols: 2, Rows: 3}
}

func (l PanelLayout) Count() int {
	return l.Cols * l.Rows
}

// Sheet ties the pixel canvas to its physical size.
type Sheet struct {
	Width    int
	Height   int
	Layout   PanelLayout
	Physical Physical
}

func NewSheet(grid *PixelGrid, layout PanelLayout, phys Physical) Sheet {
	return Sheet{Width: grid.Width, Height: grid.Height, Layout: layout, Physical: phys}
}

func (s Sheet) WidthMM() float64 {
	return float64(s.Layout.Cols) * s.Physical.PanelSizeMM
}

func (s Sheet) HeightMM() float64 {
	return float64(s.Layout.Rows) * s.Physical.PanelSizeMM
}

// Scale is the number of pixels per millimetre.
func (s Sheet) Scale() float64 {
	return float64(s.Width) / s.WidthMM()
}

func (s Sheet) PanelSizePx() float64 {
	return s.Physical.PanelSizeMM * s.Scale()
}

func (s Sheet) Bounds() curve.Rect {
	return curve.Rect{X0: 0, Y0: 0, X1: float64(s.Width), Y1: float64(s.Height)}
}

// Frame returns the four border strips along the canvas edges.
func (s Sheet) Frame() []curve.Rect {
	w, h := float64(s.Width), float64(s.Height)
	m := s.Physical.FrameWidthMM * s.Scale()
	return []curve.Rect{
		{X0: 0, Y0: 0, X1: w, Y1: m},
		{X0: 0, Y0: h - m, X1: w, Y1: h},
		{X0: 0, Y0: 0, X1: m, Y1: h},
		{X0: w - m, Y0: 0, X1: w, Y1: h},
	}
}

// Separators returns one strip centred on every internal panel boundary:
// Cols-1 vertical strips spanning the full height and Rows-1 horizontal
// strips spanning the full width.
func (s Sheet) Separators() []curve.Rect {
	w, h := float64(s.Width), float64(s.Height)
	half := s.Physical.SeparatorWidthMM * s.Scale() / 2

	var rects []curve.Rect
	for c := 1; c < s.Layout.Cols; c++ {
		x := s.Physical.PanelSizeMM * float64(c) * s.Scale()
		rects = append(rects, curve.Rect{X0: x - half, Y0: 0, X1: x + half, Y1: h})
	}
	for r := 1; r < s.Layout.Rows; r++ {
		y := s.Physical.PanelSizeMM * float64(r) * s.Scale()
		rects = append(rects, curve.Rect{X0: 0, Y0: y - half, X1: w, Y1: y + half})
	}
	return rects
}

// PanelBounds is the pixel rectangle of the panel at (col, row).
func (s Sheet) PanelBounds(col, row int) curve.Rect {
	size := s.PanelSizePx()
	x0 := float64(col) * size
	y0 := float64(row) * size
	return curve.Rect{X0: x0, Y0: y0, X1: x0 + size, Y1: y0 + size}
}
