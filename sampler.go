package main

import (
	"math"

	"honnef.co/go/curve"
)

// Sampler reads image intensities along a circle, one value per angular
// segment.
type Sampler interface {
	Sample(grid *PixelGrid, c curve.Circle, segments int) []float64
}

// midpointSampler samples every segment at its angular midpoint. Pixel
// coordinates are truncated toward zero; samples outside the grid read as
// white.
type midpointSampler struct{}

func (midpointSampler) Sample(grid *PixelGrid, c curve.Circle, segments int) []float64 {
	samples := make([]float64, segments)
	for j := range samples {
		angle := 2 * math.Pi * (float64(j) + 0.5) / float64(segments)
		x := int(c.Center.X + c.Radius*math.Cos(angle))
		y := int(c.Center.Y + c.Radius*math.Sin(angle))

		if grid.In(x, y) {
			samples[j] = float64(grid.At(x, y))
		} else {
			samples[j] = 255
		}
	}
	return samples
}

// Smooth applies a circular moving average of the given window. A window of
// one or less returns a copy of values.
func Smooth(values []float64, window int) []float64 {
	n := len(values)
	out := make([]float64, n)
	if window <= 1 {
		copy(out, values)
		return out
	}

	half := window / 2
	for i := range out {
		var sum float64
		for k := 0; k < window; k++ {
			idx := ((i+k-half)%n + n) % n
			sum += values[idx]
		}
		out[i] = sum / float64(window)
	}
	return out
}

// Thickness maps an intensity in [0, 255] to a ring width: white gives
// minWidth, black gives maxWidth.
func Thickness(intensity, minWidth, maxWidth float64) float64 {
	t := minWidth + (maxWidth-minWidth)*(1.0-intensity/255.0)
	return math.Min(maxWidth, math.Max(minWidth, t))
}

func ThicknessProfile(intensities []float64, minWidth, maxWidth float64) []float64 {
	profile := make([]float64, len(intensities))
	for i, v := range intensities {
		profile[i] = Thickness(v, minWidth, maxWidth)
	}
	return profile
}
