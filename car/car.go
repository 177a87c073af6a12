// Package car is the concrete driver: a body with simple arcade kinematics,
// a ray sensor and a neural network that turns sensor readings into controls.
package car

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/racetrack/agent"
	"github.com/pthm-cable/racetrack/geom"
	"github.com/pthm-cable/racetrack/neural"
	"github.com/pthm-cable/racetrack/track"
)

// Params holds the body, motion and sensor settings shared by every car.
type Params struct {
	Width        float64
	Height       float64
	Acceleration float64
	MaxSpeed     float64
	Friction     float64
	TurnRate     float64 // radians per tick at full lock

	RayCount  int
	RayLength float64
	RaySpread float64

	HiddenLayers []int
}

// DefaultParams returns a 30x50 car with a 5-ray, 150-unit, 90 degree sensor.
func DefaultParams() Params {
	return Params{
		Width:        30,
		Height:       50,
		Acceleration: 0.2,
		MaxSpeed:     3,
		Friction:     0.05,
		TurnRate:     0.03,
		RayCount:     5,
		RayLength:    150,
		RaySpread:    math.Pi / 2,
		HiddenLayers: []int{neural.DefaultHidden},
	}
}

// Topology returns the network layer sizes for these params.
func (p Params) Topology() []int {
	layers := append([]int{p.RayCount}, p.HiddenLayers...)
	return append(layers, neural.DefaultOutputs)
}

// Controls are the four driving inputs, read from the network outputs in order.
type Controls struct {
	Forward, Left, Right, Reverse bool
}

func controlsFrom(out []float64) Controls {
	var c Controls
	if len(out) >= neural.DefaultOutputs {
		c.Forward = out[0] > 0
		c.Left = out[1] > 0
		c.Right = out[2] > 0
		c.Reverse = out[3] > 0
	}
	return c
}

// Car implements agent.Agent.
type Car struct {
	X, Y  float64
	Angle float64 // 0 points toward -Y
	Speed float64

	params   Params
	controls Controls
	sensor   *Sensor
	brain    *neural.Network
	polygon  geom.Polygon
	damaged  bool
}

var _ agent.Agent = (*Car)(nil)

// New creates a stationary car at (x, y) driven by brain.
func New(x, y float64, p Params, brain *neural.Network) *Car {
	c := &Car{
		X:      x,
		Y:      y,
		params: p,
		sensor: NewSensor(p.RayCount, p.RayLength, p.RaySpread),
		brain:  brain,
	}
	c.polygon = c.body()
	return c
}

// NewFactory returns a factory that builds cars with fresh random brains.
func NewFactory(rng *rand.Rand, p Params) agent.Factory {
	return func(x, y float64) agent.Agent {
		return New(x, y, p, neural.NewNetwork(rng, p.Topology()...))
	}
}

// Update senses, decides and moves. A damaged car stays where it is.
func (c *Car) Update(walls []track.Wall, obstacles []geom.Polygon) {
	if !c.damaged {
		c.move()
		c.polygon = c.body()
		c.damaged = c.assessDamage(walls, obstacles)
	}

	c.sensor.Update(c.X, c.Y, c.Angle, walls, obstacles)
	if c.brain != nil {
		c.controls = controlsFrom(c.brain.FeedForward(c.sensor.Inputs()))
	}
}

func (c *Car) move() {
	p := c.params
	if c.controls.Forward {
		c.Speed += p.Acceleration
	}
	if c.controls.Reverse {
		c.Speed -= p.Acceleration
	}

	if c.Speed > p.MaxSpeed {
		c.Speed = p.MaxSpeed
	}
	if c.Speed < -p.MaxSpeed/2 {
		c.Speed = -p.MaxSpeed / 2
	}

	if c.Speed > 0 {
		c.Speed -= p.Friction
	}
	if c.Speed < 0 {
		c.Speed += p.Friction
	}
	if math.Abs(c.Speed) < p.Friction {
		c.Speed = 0
	}

	// Steering reverses when backing up.
	if c.Speed != 0 {
		flip := 1.0
		if c.Speed < 0 {
			flip = -1
		}
		if c.controls.Left {
			c.Angle += p.TurnRate * flip
		}
		if c.controls.Right {
			c.Angle -= p.TurnRate * flip
		}
	}

	c.X -= math.Sin(c.Angle) * c.Speed
	c.Y -= math.Cos(c.Angle) * c.Speed
}

func (c *Car) body() geom.Polygon {
	return geom.OrientedRect(c.X, c.Y, c.params.Width, c.params.Height, c.Angle)
}

func (c *Car) assessDamage(walls []track.Wall, obstacles []geom.Polygon) bool {
	for _, w := range walls {
		if geom.PolysIntersect(c.polygon, w.Polygon()) {
			return true
		}
	}
	for _, o := range obstacles {
		if geom.PolysIntersect(c.polygon, o) {
			return true
		}
	}
	return false
}

func (c *Car) Position() geom.Point     { return geom.Pt(c.X, c.Y) }
func (c *Car) Polygon() geom.Polygon    { return c.polygon }
func (c *Car) Damaged() bool            { return c.damaged }
func (c *Car) Sensor() *Sensor          { return c.sensor }
func (c *Car) Controls() Controls       { return c.controls }
func (c *Car) Network() *neural.Network { return c.brain }

// Brain returns the car's network.
func (c *Car) Brain() agent.Brain {
	if c.brain == nil {
		return nil
	}
	return c.brain
}

// SetBrain replaces the network. Brains of another type are ignored.
func (c *Car) SetBrain(b agent.Brain) {
	if n, ok := b.(*neural.Network); ok {
		c.brain = n
	}
}

// SetControls overrides the controls used on the next move.
func (c *Car) SetControls(ctl Controls) {
	c.controls = ctl
}
