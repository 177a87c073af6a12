// Package obstacles places hazard boxes on the track and optionally lets them drift.
package obstacles

import (
	"math/rand"

	"github.com/pthm-cable/racetrack/geom"
	"github.com/pthm-cable/racetrack/track"
)

// Obstacle is a box centered on (X, Y). Polygon is derived from the position and
// must be refreshed after every move.
type Obstacle struct {
	X, Y          float64
	Width, Height float64
	Polygon       geom.Polygon
}

// New creates an obstacle with its polygon computed.
func New(x, y, width, height float64) Obstacle {
	o := Obstacle{X: x, Y: y, Width: width, Height: height}
	o.Refresh()
	return o
}

// Refresh recomputes the polygon from the current position.
func (o *Obstacle) Refresh() {
	o.Polygon = geom.Rect(o.X, o.Y, o.Width, o.Height)
}

// Params controls obstacle placement.
type Params struct {
	Width  float64
	Height float64
	Drift  float64 // max per-axis displacement per Perturb call
}

// DefaultParams returns 20x20 obstacles drifting by up to 0.5 per tick.
func DefaultParams() Params {
	return Params{Width: 20, Height: 20, Drift: 0.5}
}

// Field owns the current obstacle set.
type Field struct {
	rng         *rand.Rand
	checkpoints []track.Checkpoint
	params      Params
	obstacles   []Obstacle
}

// NewField creates an empty field that places obstacles across the given gates.
func NewField(rng *rand.Rand, checkpoints []track.Checkpoint, params Params) *Field {
	return &Field{
		rng:         rng,
		checkpoints: checkpoints,
		params:      params,
	}
}

// Generate discards the current set and places n new obstacles. Each one sits at a
// random point across a random checkpoint gate. Overlaps are allowed.
func (f *Field) Generate(n int) {
	f.obstacles = make([]Obstacle, 0, n)
	if len(f.checkpoints) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		c := f.checkpoints[f.rng.Intn(len(f.checkpoints))]
		x := geom.Lerp(c.A.X, c.B.X, f.rng.Float64())
		y := geom.Lerp(c.A.Y, c.B.Y, f.rng.Float64())
		f.obstacles = append(f.obstacles, New(x, y, f.params.Width, f.params.Height))
	}
}

// Perturb nudges every obstacle by an independent uniform delta in
// [-Drift, +Drift] per axis. Obstacles may leave the road.
func (f *Field) Perturb() {
	for i := range f.obstacles {
		o := &f.obstacles[i]
		o.X += (f.rng.Float64()*2 - 1) * f.params.Drift
		o.Y += (f.rng.Float64()*2 - 1) * f.params.Drift
		o.Refresh()
	}
}

// All returns the live obstacle slice. Callers must not retain it across ticks.
func (f *Field) All() []Obstacle {
	return f.obstacles
}

// Polygons returns the current obstacle polygons.
func (f *Field) Polygons() []geom.Polygon {
	polys := make([]geom.Polygon, len(f.obstacles))
	for i := range f.obstacles {
		polys[i] = f.obstacles[i].Polygon
	}
	return polys
}
