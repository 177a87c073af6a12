// Package neural provides the layered step network that drives each car.
package neural

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/racetrack/agent"
)

// Default topology: 5 sensor rays -> 6 hidden -> 4 controls.
const (
	DefaultInputs  = 5
	DefaultHidden  = 6
	DefaultOutputs = 4 // forward, left, right, reverse
)

// Level is one fully connected layer with step activation.
// Weights are indexed [input][output].
type Level struct {
	Inputs  []float64   `json:"inputs"`
	Outputs []float64   `json:"outputs"`
	Biases  []float64   `json:"biases"`
	Weights [][]float64 `json:"weights"`
}

// NewLevel creates a randomly initialized level with weights and biases in [-1, 1].
func NewLevel(rng *rand.Rand, inputCount, outputCount int) *Level {
	l := &Level{
		Inputs:  make([]float64, inputCount),
		Outputs: make([]float64, outputCount),
		Biases:  make([]float64, outputCount),
		Weights: make([][]float64, inputCount),
	}
	for i := range l.Weights {
		l.Weights[i] = make([]float64, outputCount)
		for j := range l.Weights[i] {
			l.Weights[i][j] = rng.Float64()*2 - 1
		}
	}
	for i := range l.Biases {
		l.Biases[i] = rng.Float64()*2 - 1
	}
	return l
}

// FeedForward stores inputs, computes outputs and returns them.
// An output fires (1) when its weighted sum exceeds its bias.
func (l *Level) FeedForward(inputs []float64) []float64 {
	copy(l.Inputs, inputs)
	for i := range l.Outputs {
		var sum float64
		for j := range l.Inputs {
			sum += l.Inputs[j] * l.Weights[j][i]
		}
		if sum > l.Biases[i] {
			l.Outputs[i] = 1
		} else {
			l.Outputs[i] = 0
		}
	}
	return l.Outputs
}

// clone returns a deep copy of the level.
func (l *Level) clone() *Level {
	c := &Level{
		Inputs:  append([]float64(nil), l.Inputs...),
		Outputs: append([]float64(nil), l.Outputs...),
		Biases:  append([]float64(nil), l.Biases...),
		Weights: make([][]float64, len(l.Weights)),
	}
	for i, row := range l.Weights {
		c.Weights[i] = append([]float64(nil), row...)
	}
	return c
}

// Network is a stack of levels. It implements agent.Brain.
type Network struct {
	Levels []*Level `json:"levels"`
}

// NewNetwork creates a network with the given neuron counts per layer,
// e.g. NewNetwork(rng, 5, 6, 4).
func NewNetwork(rng *rand.Rand, neuronCounts ...int) *Network {
	n := &Network{}
	for i := 0; i+1 < len(neuronCounts); i++ {
		n.Levels = append(n.Levels, NewLevel(rng, neuronCounts[i], neuronCounts[i+1]))
	}
	return n
}

// NewDefault creates a network with the default topology.
func NewDefault(rng *rand.Rand) *Network {
	return NewNetwork(rng, DefaultInputs, DefaultHidden, DefaultOutputs)
}

// FeedForward runs inputs through every level and returns the final outputs.
// The returned slice is owned by the network.
func (n *Network) FeedForward(inputs []float64) []float64 {
	out := inputs
	for _, l := range n.Levels {
		out = l.FeedForward(out)
	}
	return out
}

// InputCount returns the number of inputs the first level expects.
func (n *Network) InputCount() int {
	if len(n.Levels) == 0 {
		return 0
	}
	return len(n.Levels[0].Inputs)
}

// OutputCount returns the number of outputs of the last level.
func (n *Network) OutputCount() int {
	if len(n.Levels) == 0 {
		return 0
	}
	return len(n.Levels[len(n.Levels)-1].Outputs)
}

// Clone returns a deep copy of the network.
func (n *Network) Clone() agent.Brain {
	return n.Copy()
}

// Copy is Clone with the concrete type.
func (n *Network) Copy() *Network {
	c := &Network{Levels: make([]*Level, len(n.Levels))}
	for i, l := range n.Levels {
		c.Levels[i] = l.clone()
	}
	return c
}

// Mutate moves every weight and bias toward a fresh uniform [-1, 1] draw by
// the given amount: 0 leaves the network unchanged, 1 replaces it.
func (n *Network) Mutate(rng *rand.Rand, amount float64) {
	for _, l := range n.Levels {
		lerpTowardRandom(rng, l.Biases, amount)
		for _, row := range l.Weights {
			lerpTowardRandom(rng, row, amount)
		}
	}
}

// lerpTowardRandom sets v[i] = v[i] + (r[i]-v[i])*amount with r[i] ~ U[-1, 1].
func lerpTowardRandom(rng *rand.Rand, v []float64, amount float64) {
	target := make([]float64, len(v))
	for i := range target {
		target[i] = rng.Float64()*2 - 1
	}
	floats.Scale(1-amount, v)
	floats.AddScaled(v, amount, target)
}
