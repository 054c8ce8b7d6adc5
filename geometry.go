package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/tdewolff/canvas"
	"honnef.co/go/curve"
)

var (
	ErrDegenerateRing = errors.New("degenerate ring")
	ErrGeometry       = errors.New("geometry engine failure")
)

// Region is a planar area stored as closed polylines. Regions produced by a
// GeometryEngine never self-intersect and their holes run opposite to their
// fills, so the nonzero rule renders them and the signed area is exact.
type Region struct {
	path curve.BezPath
}

func (r Region) Empty() bool {
	return len(r.Contours()) == 0
}

func (r Region) Area() float64 {
	if len(r.path) == 0 {
		return 0
	}
	return math.Abs(r.path.SignedArea())
}

func (r Region) Bounds() curve.Rect {
	return r.path.BoundingBox()
}

func (r Region) Translate(v curve.Vec2) Region {
	return Region{path: r.path.Transform(curve.Translate(v))}
}

// Clamp pulls every coordinate into rect. It is meant for regions already
// clipped to rect, to remove floating point drift at the edges.
func (r Region) Clamp(rect curve.Rect) Region {
	clamp := func(p curve.Point) curve.Point {
		return curve.Pt(min(max(p.X, rect.X0), rect.X1), min(max(p.Y, rect.Y0), rect.Y1))
	}
	path := make(curve.BezPath, len(r.path))
	for i, el := range r.path {
		el.P0, el.P1, el.P2 = clamp(el.P0), clamp(el.P1), clamp(el.P2)
		path[i] = el
	}
	return Region{path: path}
}

// Contours returns every closed ring of the region, fills and holes alike,
// without repeating the first point at the end. Rings with fewer than three
// points are skipped.
func (r Region) Contours() [][]curve.Point {
	var contours [][]curve.Point
	var cur []curve.Point
	flush := func() {
		if len(cur) > 1 && cur[len(cur)-1] == cur[0] {
			cur = cur[:len(cur)-1]
		}
		if len(cur) >= 3 {
			contours = append(contours, cur)
		}
		cur = nil
	}

	for _, el := range r.path {
		switch el.Kind {
		case curve.MoveToKind:
			flush()
			cur = append(cur, el.P0)
		case curve.LineToKind:
			cur = append(cur, el.P0)
		case curve.QuadToKind:
			cur = append(cur, el.P1)
		case curve.CubicToKind:
			cur = append(cur, el.P2)
		case curve.ClosePathKind:
			flush()
		}
	}
	flush()
	return contours
}

// GeometryEngine is the polygon algebra the ring pipeline relies on.
type GeometryEngine interface {
	// Annulus builds a ring from its outer and inner boundary, repairing
	// self-intersections. It fails with ErrDegenerateRing when either
	// boundary has fewer than three points or nothing survives the repair.
	Annulus(outer, inner []curve.Point) (Region, error)
	Rect(r curve.Rect) Region
	Intersect(a, b Region) (Region, error)
	// Union merges all parts in a single pass.
	Union(parts ...Region) (Region, error)
}

// canvasEngine implements GeometryEngine on top of tdewolff/canvas path
// boolean operations.
type canvasEngine struct{}

func NewGeometryEngine() GeometryEngine {
	return canvasEngine{}
}

func (canvasEngine) Annulus(outer, inner []curve.Point) (ring Region, err error) {
	if len(outer) < 3 || len(inner) < 3 {
		return Region{}, ErrDegenerateRing
	}
	defer recoverGeometry(&err)

	p := &canvas.Path{}
	addPolyline(p, outer, false)
	addPolyline(p, inner, true)

	ring = fromCanvas(p.Settle(canvas.NonZero))
	if ring.Empty() {
		return Region{}, ErrDegenerateRing
	}
	return ring, nil
}

// Rect is settled like every other engine output so that its orientation
// matches the fills it is later combined with.
func (canvasEngine) Rect(r curve.Rect) Region {
	r = r.Abs()
	p := canvas.Rectangle(r.Width(), r.Height()).Translate(r.X0, r.Y0)
	return fromCanvas(p.Settle(canvas.NonZero))
}

func (canvasEngine) Intersect(a, b Region) (out Region, err error) {
	if a.Empty() || b.Empty() {
		return Region{}, nil
	}
	defer recoverGeometry(&err)
	return fromCanvas(toCanvas(a).And(toCanvas(b))), nil
}

func (canvasEngine) Union(parts ...Region) (out Region, err error) {
	defer recoverGeometry(&err)

	p := &canvas.Path{}
	for _, part := range parts {
		for _, el := range part.path {
			appendElement(p, el)
		}
	}
	if p.Empty() {
		return Region{}, nil
	}
	return fromCanvas(p.Settle(canvas.NonZero)), nil
}

func recoverGeometry(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrGeometry, r)
	}
}

func addPolyline(p *canvas.Path, pts []curve.Point, reverse bool) {
	for i := range pts {
		pt := pts[i]
		if reverse {
			pt = pts[len(pts)-1-i]
		}
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
		} else {
			p.LineTo(pt.X, pt.Y)
		}
	}
	p.Close()
}

func appendElement(p *canvas.Path, el curve.PathElement) {
	switch el.Kind {
	case curve.MoveToKind:
		p.MoveTo(el.P0.X, el.P0.Y)
	case curve.LineToKind:
		p.LineTo(el.P0.X, el.P0.Y)
	case curve.QuadToKind:
		p.QuadTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y)
	case curve.CubicToKind:
		p.CubeTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
	case curve.ClosePathKind:
		p.Close()
	}
}

func toCanvas(r Region) *canvas.Path {
	p := &canvas.Path{}
	for _, el := range r.path {
		appendElement(p, el)
	}
	return p
}

// fromCanvas flattens a canvas path back into polylines. Boolean results are
// made of straight segments only; any curve is reduced to its end point.
func fromCanvas(p *canvas.Path) Region {
	var path curve.BezPath
	for s := p.Scanner(); s.Scan(); {
		end := s.End()
		switch s.Cmd() {
		case canvas.MoveToCmd:
			path.MoveTo(curve.Pt(end.X, end.Y))
		case canvas.CloseCmd:
			path.ClosePath()
		default:
			path.LineTo(curve.Pt(end.X, end.Y))
		}
	}
	return Region{path: path}
}
