package car

import (
	"math"

	"github.com/pthm-cable/racetrack/geom"
	"github.com/pthm-cable/racetrack/track"
)

// Ray is one sensor beam from the car's center outward.
type Ray struct {
	Start, End geom.Point
}

// Reading is the closest contact along a ray. Hit is false when the ray is clear.
type Reading struct {
	geom.Touch
	Hit bool
}

// Sensor casts a fan of rays ahead of the car and records the nearest contact
// on each against walls and obstacle edges.
type Sensor struct {
	RayCount  int
	RayLength float64
	RaySpread float64 // total fan angle in radians

	Rays     []Ray
	Readings []Reading
}

// NewSensor creates a sensor with the given fan geometry.
func NewSensor(count int, length, spread float64) *Sensor {
	return &Sensor{
		RayCount:  count,
		RayLength: length,
		RaySpread: spread,
		Rays:      make([]Ray, count),
		Readings:  make([]Reading, count),
	}
}

// Update recasts the rays from (x, y) at the given heading.
func (s *Sensor) Update(x, y, angle float64, walls []track.Wall, obstacles []geom.Polygon) {
	s.castRays(x, y, angle)
	for i, r := range s.Rays {
		s.Readings[i] = nearest(r, walls, obstacles)
	}
}

// Inputs converts readings to network inputs: 0 for a clear ray, rising toward
// 1 as the contact gets closer.
func (s *Sensor) Inputs() []float64 {
	in := make([]float64, len(s.Readings))
	for i, r := range s.Readings {
		if r.Hit {
			in[i] = 1 - r.Offset
		}
	}
	return in
}

// castRays spreads rays evenly from +spread/2 to -spread/2 around the heading.
// A single ray points straight ahead.
func (s *Sensor) castRays(x, y, angle float64) {
	start := geom.Pt(x, y)
	for i := 0; i < s.RayCount; i++ {
		t := 0.5
		if s.RayCount > 1 {
			t = float64(i) / float64(s.RayCount-1)
		}
		a := geom.Lerp(s.RaySpread/2, -s.RaySpread/2, t) + angle
		end := geom.Pt(x-math.Sin(a)*s.RayLength, y-math.Cos(a)*s.RayLength)
		s.Rays[i] = Ray{Start: start, End: end}
	}
}

// nearest returns the touch with the smallest offset along r.
func nearest(r Ray, walls []track.Wall, obstacles []geom.Polygon) Reading {
	var best Reading
	consider := func(c, d geom.Point) {
		t, ok := geom.SegmentIntersection(r.Start, r.End, c, d)
		if ok && (!best.Hit || t.Offset < best.Offset) {
			best = Reading{Touch: t, Hit: true}
		}
	}

	for _, w := range walls {
		consider(w.A, w.B)
	}
	for _, poly := range obstacles {
		for j := range poly {
			consider(poly[j], poly[(j+1)%len(poly)])
		}
	}
	return best
}
