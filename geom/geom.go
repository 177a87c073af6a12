// Package geom provides the 2D primitives shared by the track, obstacles and agents.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is an immutable (x, y) pair in world units.
type Point = r2.Vec

// Polygon is a closed sequence of vertices; the last vertex connects back to the first.
type Polygon []Point

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Lerp returns a + (b-a)*t. t is not clamped, so values outside [0, 1] extrapolate.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpPoint interpolates each axis of a and b by t.
func LerpPoint(a, b Point, t float64) Point {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return LerpPoint(a, b, 0.5)
}

// Touch is the result of a segment intersection.
// Offset is the parametric position along the first segment (0 at its start, 1 at its end).
type Touch struct {
	Point  Point
	Offset float64
}

// SegmentIntersection tests segment ab against segment cd.
// Parallel, collinear and zero-length segments never intersect.
func SegmentIntersection(a, b, c, d Point) (Touch, bool) {
	tTop := (d.X-c.X)*(a.Y-c.Y) - (d.Y-c.Y)*(a.X-c.X)
	uTop := (c.Y-a.Y)*(a.X-b.X) - (c.X-a.X)*(a.Y-b.Y)
	bottom := (d.Y-c.Y)*(b.X-a.X) - (d.X-c.X)*(b.Y-a.Y)

	if bottom == 0 {
		return Touch{}, false
	}

	t := tTop / bottom
	u := uTop / bottom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Touch{}, false
	}

	return Touch{Point: LerpPoint(a, b, t), Offset: t}, true
}

// PolysIntersect reports whether any edge of p crosses any edge of q.
// A polygon lying entirely inside another without touching its edges does not count.
func PolysIntersect(p, q Polygon) bool {
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		for j := range q {
			if _, ok := SegmentIntersection(a, b, q[j], q[(j+1)%len(q)]); ok {
				return true
			}
		}
	}
	return false
}

// SegmentPolygon turns segment ab into the zero-area quad [a, b, b, a]
// so it can be tested with PolysIntersect.
func SegmentPolygon(a, b Point) Polygon {
	return Polygon{a, b, b, a}
}

// Rect returns the axis-aligned rectangle of size w×h centered on (cx, cy).
func Rect(cx, cy, w, h float64) Polygon {
	hw, hh := w/2, h/2
	return Polygon{
		Pt(cx-hw, cy-hh),
		Pt(cx+hw, cy-hh),
		Pt(cx+hw, cy+hh),
		Pt(cx-hw, cy+hh),
	}
}

// OrientedRect returns the w×h rectangle centered on (cx, cy) rotated by angle.
// Angle 0 points toward -Y (screen up), matching car headings.
func OrientedRect(cx, cy, w, h, angle float64) Polygon {
	rad := math.Hypot(w, h) / 2
	alpha := math.Atan2(w, h)
	return Polygon{
		Pt(cx-math.Sin(angle-alpha)*rad, cy-math.Cos(angle-alpha)*rad),
		Pt(cx-math.Sin(angle+alpha)*rad, cy-math.Cos(angle+alpha)*rad),
		Pt(cx-math.Sin(math.Pi+angle-alpha)*rad, cy-math.Cos(math.Pi+angle-alpha)*rad),
		Pt(cx-math.Sin(math.Pi+angle+alpha)*rad, cy-math.Cos(math.Pi+angle+alpha)*rad),
	}
}
