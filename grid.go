package main

// PixelGrid is a read-only row-major grid of 8-bit intensities, 0 black and
// 255 white.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []uint8
}

func NewPixelGrid(width, height int, pix []uint8) *PixelGrid {
	return &PixelGrid{Width: width, Height: height, Pix: pix}
}

// UniformGrid is a grid where every pixel has the same intensity.
func UniformGrid(width, height int, intensity uint8) *PixelGrid {
	pix := make([]uint8, width*height)
	for i := range pix {
		pix[i] = intensity
	}
	return NewPixelGrid(width, height, pix)
}

func (g *PixelGrid) In(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

func (g *PixelGrid) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}
