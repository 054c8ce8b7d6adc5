package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutFor(t *testing.T) {
	assert.Equal(t, PanelLayout{Cols: 3, Rows: 2}, LayoutFor(300, 200))
	assert.Equal(t, PanelLayout{Cols: 3, Rows: 2}, LayoutFor(200, 200))
	assert.Equal(t, PanelLayout{Cols: 2, Rows: 3}, LayoutFor(200, 300))
	assert.Equal(t, 6, LayoutFor(1, 2).Count())
}

func testSheet(width, height int) Sheet {
	layout := LayoutFor(width, height)
	return NewSheet(UniformGrid(width, height, 255), layout, DefaultPhysical())
}

func TestSheetScale(t *testing.T) {
	s := testSheet(6531, 4354)

	assert.InDelta(t, 653.1, s.WidthMM(), 1e-9)
	assert.InDelta(t, 435.4, s.HeightMM(), 1e-9)
	assert.InDelta(t, 10, s.Scale(), 1e-9)
	assert.InDelta(t, 2177, s.PanelSizePx(), 1e-6)
}

func TestFrame(t *testing.T) {
	s := testSheet(6531, 4354)
	frame := s.Frame()
	require.Len(t, frame, 4)

	assert.InDelta(t, 32, frame[0].Height(), 1e-9)
	assert.InDelta(t, 6531, frame[0].Width(), 1e-9)
	assert.InDelta(t, 4354-32, frame[1].Y0, 1e-9)
	assert.InDelta(t, 32, frame[2].Width(), 1e-9)
	assert.InDelta(t, 6531-32, frame[3].X0, 1e-9)
}

func TestSeparatorsLandscape(t *testing.T) {
	s := testSheet(6531, 4354)
	seps := s.Separators()
	require.Len(t, seps, 3)

	for i, x := range []float64{2177, 4354} {
		assert.InDelta(t, x, seps[i].Center().X, 1e-6)
		assert.InDelta(t, 28, seps[i].Width(), 1e-6)
		assert.InDelta(t, 4354, seps[i].Height(), 1e-9)
	}
	assert.InDelta(t, 2177, seps[2].Center().Y, 1e-6)
	assert.InDelta(t, 28, seps[2].Height(), 1e-6)
	assert.InDelta(t, 6531, seps[2].Width(), 1e-9)
}

func TestSeparatorsPortrait(t *testing.T) {
	s := testSheet(4354, 6531)
	seps := s.Separators()
	require.Len(t, seps, 3)

	vertical := 0
	for _, r := range seps {
		if r.Height() > r.Width() {
			vertical++
		}
	}
	assert.Equal(t, 1, vertical)
}

func TestPanelBounds(t *testing.T) {
	s := testSheet(6531, 4354)
	b := s.PanelBounds(2, 1)

	assert.InDelta(t, 4354, b.X0, 1e-6)
	assert.InDelta(t, 2177, b.Y0, 1e-6)
	assert.InDelta(t, 6531, b.X1, 1e-6)
	assert.InDelta(t, 4354, b.Y1, 1e-6)
}
