// Package track generates the closed-loop road the agents drive on.
package track

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/racetrack/geom"
)

// Wall is a directed boundary segment. Consecutive walls on the same side form a ring.
type Wall struct {
	A, B geom.Point
}

// Checkpoint is a gate spanning the road width. Its index in Track.Checkpoints is
// its position along the loop.
type Checkpoint struct {
	A, B geom.Point
}

// Params controls track generation.
type Params struct {
	WorldWidth    float64
	WorldHeight   float64
	ControlPoints int     // points around the loop (default 10)
	RadiusFactor  float64 // base radius as a fraction of min(width, height)
	Jitter        float64 // radius jitter span; 0.5 gives ±25% of the base radius
	Width         float64 // road width
}

// DefaultParams returns the parameters used for an 800x600 world.
func DefaultParams() Params {
	return Params{
		WorldWidth:    800,
		WorldHeight:   600,
		ControlPoints: 10,
		RadiusFactor:  0.35,
		Jitter:        0.5,
		Width:         60,
	}
}

// Track is the static geometry of one generated loop.
type Track struct {
	Points      []geom.Point // control points; the first is repeated at the end
	Walls       []Wall
	Checkpoints []Checkpoint
	Start       geom.Point
	Width       float64
}

// crossSection is one left/right edge pair across the road.
type crossSection struct {
	left, right geom.Point
}

// Generate builds a new random track. It always succeeds; heavy jitter can produce
// self-intersecting roads, which are left as they are.
func Generate(rng *rand.Rand, p Params) *Track {
	n := p.ControlPoints
	if n < 3 {
		n = 3
	}

	cx := p.WorldWidth / 2
	cy := p.WorldHeight / 2
	radius := math.Min(p.WorldWidth, p.WorldHeight) * p.RadiusFactor

	points := make([]geom.Point, 0, n+1)
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * math.Pi * 2
		r := radius + (rng.Float64()-0.5)*radius*p.Jitter
		points = append(points, geom.Pt(cx+math.Cos(angle)*r, cy+math.Sin(angle)*r))
	}
	points = append(points, points[0])

	road := make([]crossSection, 0, 2*n)
	for i := 1; i < len(points); i++ {
		p1, p2 := points[i-1], points[i]
		heading := math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
		ox := math.Sin(heading) * p.Width / 2
		oy := math.Cos(heading) * p.Width / 2

		road = append(road,
			crossSection{left: geom.Pt(p1.X-ox, p1.Y+oy), right: geom.Pt(p1.X+ox, p1.Y-oy)},
			crossSection{left: geom.Pt(p2.X-ox, p2.Y+oy), right: geom.Pt(p2.X+ox, p2.Y-oy)},
		)
	}

	t := &Track{
		Points:      points,
		Walls:       make([]Wall, 0, 2*len(road)),
		Checkpoints: make([]Checkpoint, 0, len(road)),
		Width:       p.Width,
	}
	for i := range road {
		next := road[(i+1)%len(road)]
		t.Walls = append(t.Walls,
			Wall{A: road[i].left, B: next.left},
			Wall{A: road[i].right, B: next.right},
		)
		t.Checkpoints = append(t.Checkpoints, Checkpoint{A: road[i].left, B: road[i].right})
	}
	t.Start = t.Checkpoints[0].Midpoint()

	return t
}

// Midpoint returns the center of the gate.
func (c Checkpoint) Midpoint() geom.Point {
	return geom.Midpoint(c.A, c.B)
}

// Polygon returns the gate as a zero-area quad for intersection tests.
func (c Checkpoint) Polygon() geom.Polygon {
	return geom.SegmentPolygon(c.A, c.B)
}

// Polygon returns the wall as a two-vertex polygon.
func (w Wall) Polygon() geom.Polygon {
	return geom.Polygon{w.A, w.B}
}

// Centerline returns the midpoint of every checkpoint in loop order.
func (t *Track) Centerline() []geom.Point {
	line := make([]geom.Point, len(t.Checkpoints))
	for i, c := range t.Checkpoints {
		line[i] = c.Midpoint()
	}
	return line
}
