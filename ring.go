package main

import (
	"math"

	"honnef.co/go/curve"
)

// Boundary is the outer and inner edge of one ring, index aligned with the
// thickness profile it was built from. Both sequences are circular.
type Boundary struct {
	Outer []curve.Point
	Inner []curve.Point
}

func (b Boundary) Len() int {
	return len(b.Outer)
}

// RingPoints places the boundary points of a ring around c. Point j sits at
// the start angle of segment j, half a segment behind the angle the segment
// was sampled at.
func RingPoints(c curve.Circle, thickness []float64) Boundary {
	n := len(thickness)
	b := Boundary{
		Outer: make([]curve.Point, n),
		Inner: make([]curve.Point, n),
	}

	for j, t := range thickness {
		dir := curve.VecFromAngle(2 * math.Pi * float64(j) / float64(n))
		b.Outer[j] = c.Center.Translate(dir.Mul(c.Radius + t/2))
		b.Inner[j] = c.Center.Translate(dir.Mul(c.Radius - t/2))
	}
	return b
}

// BuildRing turns a boundary into an annulus. Degenerate rings come back as
// errors so the caller can count and skip them.
func BuildRing(engine GeometryEngine, b Boundary) (Region, error) {
	return engine.Annulus(b.Outer, b.Inner)
}
