// Package agent defines the contracts between the simulation core and the
// pluggable driver implementation (body, sensors and brain).
package agent

import (
	"errors"
	"math/rand"

	"github.com/pthm-cable/racetrack/geom"
	"github.com/pthm-cable/racetrack/track"
)

// ErrInvalidBrainFormat is returned when a brain document cannot be decoded into a
// usable brain.
var ErrInvalidBrainFormat = errors.New("invalid brain format")

// Brain is an opaque decision payload. The core only copies and mutates it.
type Brain interface {
	// Clone returns a deep copy that shares no mutable state with the receiver.
	Clone() Brain
	// Mutate applies an in-place stochastic perturbation of the given amount.
	Mutate(rng *rand.Rand, amount float64)
}

// Agent is a single driver on the track.
type Agent interface {
	Position() geom.Point
	// Polygon is the current body outline, recomputed by Update.
	Polygon() geom.Polygon
	// Damaged reports whether the agent has crashed by its own assessment.
	Damaged() bool
	// Update advances the agent one tick. Walls and obstacles are the only
	// environment it may perceive.
	Update(walls []track.Wall, obstacles []geom.Polygon)
	Brain() Brain
	SetBrain(b Brain)
}

// Factory builds a fresh agent with a default brain at (x, y).
type Factory func(x, y float64) Agent

// Codec converts brains to and from a portable document.
type Codec interface {
	Marshal(b Brain) ([]byte, error)
	// Unmarshal returns an error wrapping ErrInvalidBrainFormat when the document
	// is malformed or structurally incompatible.
	Unmarshal(data []byte) (Brain, error)
}
