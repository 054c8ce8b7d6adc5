package main

import (
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// completeAreaRatio is the share of a ring's area that must survive clipping
// for the ring to count as complete rather than cut.
const completeAreaRatio = 0.99

// Stats counts what happened to the rings of one run.
type Stats struct {
	PointsBefore int
	PointsAfter  int
	Complete     int
	Cut          int
	Discarded    int
}

// Reduction is the percentage of boundary points removed by optimization.
func (s Stats) Reduction() float64 {
	if s.PointsBefore == 0 {
		return 0
	}
	return 100 * (1 - float64(s.PointsAfter)/float64(s.PointsBefore))
}

type RingParams struct {
	Lines        int
	MinThickness float64
	MaxThickness float64
	// CenterX and CenterY are percentages of the canvas size. Values outside
	// [0, 100] put the centre off the canvas.
	CenterX float64
	CenterY float64
	Split   bool
}

func (c Config) RingParams() RingParams {
	return RingParams{
		Lines:        c.Lines,
		MinThickness: c.MinThickness,
		MaxThickness: c.MaxThickness,
		CenterX:      c.CenterX,
		CenterY:      c.CenterY,
		Split:        c.Split,
	}
}

// Compositor turns a pixel grid into the unified ring region of a sheet.
type Compositor struct {
	Engine  GeometryEngine
	Sampler Sampler
}

func NewCompositor() *Compositor {
	return &Compositor{Engine: NewGeometryEngine(), Sampler: midpointSampler{}}
}

// Center converts the percentage centre into whole pixel coordinates,
// truncating toward zero.
func (p RingParams) Center(width, height int) curve.Point {
	cx := int(float64(width) * p.CenterX / 100.0)
	cy := int(float64(height) * p.CenterY / 100.0)
	return curve.Pt(float64(cx), float64(cy))
}

// MaxRadius is the distance from center to the farthest canvas corner.
func MaxRadius(center curve.Point, width, height int) float64 {
	bounds := curve.Rect{X0: 0, Y0: 0, X1: float64(width), Y1: float64(height)}
	var d2 float64
	for _, corner := range []curve.Point{
		{X: bounds.X0, Y: bounds.Y0},
		{X: bounds.X1, Y: bounds.Y0},
		{X: bounds.X0, Y: bounds.Y1},
		{X: bounds.X1, Y: bounds.Y1},
	} {
		d2 = math.Max(d2, center.DistanceSquared(corner))
	}
	return math.Sqrt(d2)
}

// reachesCanvas reports whether the bounding box of a ring drawn at its
// widest could touch the canvas.
func reachesCanvas(c curve.Circle, maxThickness float64, bounds curve.Rect) bool {
	box := curve.Circle{Center: c.Center, Radius: c.Radius + maxThickness/2}.BoundingBox()
	return box.X1 >= bounds.X0 && box.X0 <= bounds.X1 &&
		box.Y1 >= bounds.Y0 && box.Y0 <= bounds.Y1
}

// Compose builds every ring, clips it to the canvas and unions the survivors
// with the frame and, when splitting, the panel separators.
func (c *Compositor) Compose(grid *PixelGrid, sheet Sheet, params RingParams) (Region, Stats, error) {
	var stats Stats

	bounds := sheet.Bounds()
	canvasRegion := c.Engine.Rect(bounds)
	center := params.Center(sheet.Width, sheet.Height)
	radiusMax := MaxRadius(center, sheet.Width, sheet.Height)

	Logger().Info("generating rings", "lines", params.Lines, "center", center.String(), "scale", sheet.Scale())

	var parts []Region
	for _, r := range sheet.Frame() {
		parts = append(parts, c.Engine.Rect(r))
	}
	if params.Split {
		for _, r := range sheet.Separators() {
			parts = append(parts, c.Engine.Rect(r))
		}
	}

	for i := 0; i < params.Lines; i++ {
		circle := curve.Circle{
			Center: center,
			Radius: radiusMax * float64(i+1) / float64(params.Lines),
		}
		if !reachesCanvas(circle, params.MaxThickness, bounds) {
			stats.Discarded++
			continue
		}

		ring, err := c.ring(grid, circle, sheet.Physical, params, &stats)
		if err != nil {
			Logger().Debug("ring discarded", "ring", i, "err", err)
			stats.Discarded++
			continue
		}

		clipped, err := c.Engine.Intersect(ring, canvasRegion)
		if err != nil {
			Logger().Warn("ring clipping failed", "ring", i, "err", err)
			stats.Discarded++
			continue
		}
		if clipped.Empty() {
			stats.Discarded++
			continue
		}

		if clipped.Area() < ring.Area()*completeAreaRatio {
			stats.Cut++
		} else {
			stats.Complete++
		}
		parts = append(parts, clipped)

		if (i+1)%50 == 0 {
			Logger().Info("rings processed", "done", i+1, "total", params.Lines)
		}
	}

	region, err := c.Engine.Union(parts...)
	if err != nil {
		return Region{}, stats, fmt.Errorf("final union: %w", err)
	}
	return region, stats, nil
}

func (c *Compositor) ring(grid *PixelGrid, circle curve.Circle, phys Physical, params RingParams, stats *Stats) (Region, error) {
	samples := c.Sampler.Sample(grid, circle, phys.Segments)
	thickness := ThicknessProfile(Smooth(samples, phys.Window), params.MinThickness, params.MaxThickness)

	boundary := RingPoints(circle, thickness)
	optimized, _ := OptimizePoints(boundary, thickness, phys.Tolerance)
	stats.PointsBefore += boundary.Len()
	stats.PointsAfter += optimized.Len()

	return BuildRing(c.Engine, optimized)
}
