package neural

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pthm-cable/racetrack/agent"
)

// Codec reads and writes networks as JSON documents of the form
// {"levels":[{"inputs":[],"outputs":[],"biases":[],"weights":[[]]}]}.
// Non-zero Inputs/Outputs make Unmarshal reject networks of another shape.
type Codec struct {
	Inputs  int
	Outputs int
}

// Marshal encodes a *Network.
func (c Codec) Marshal(b agent.Brain) ([]byte, error) {
	n, ok := b.(*Network)
	if !ok {
		return nil, fmt.Errorf("unsupported brain type %T", b)
	}
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshaling network: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates a network document.
func (c Codec) Unmarshal(data []byte) (agent.Brain, error) {
	var n Network
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", agent.ErrInvalidBrainFormat, err)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if c.Inputs > 0 && n.InputCount() != c.Inputs {
		return nil, fmt.Errorf("%w: network has %d inputs, want %d", agent.ErrInvalidBrainFormat, n.InputCount(), c.Inputs)
	}
	if c.Outputs > 0 && n.OutputCount() != c.Outputs {
		return nil, fmt.Errorf("%w: network has %d outputs, want %d", agent.ErrInvalidBrainFormat, n.OutputCount(), c.Outputs)
	}
	return &n, nil
}

// Validate checks that the levels are non-empty, consistently sized, chained
// output-to-input and hold only finite numbers.
func (n *Network) Validate() error {
	if len(n.Levels) == 0 {
		return fmt.Errorf("%w: no levels", agent.ErrInvalidBrainFormat)
	}
	for i, l := range n.Levels {
		if l == nil {
			return fmt.Errorf("%w: level %d is null", agent.ErrInvalidBrainFormat, i)
		}
		in, out := len(l.Inputs), len(l.Outputs)
		if in == 0 || out == 0 {
			return fmt.Errorf("%w: level %d has %d inputs and %d outputs", agent.ErrInvalidBrainFormat, i, in, out)
		}
		if len(l.Biases) != out {
			return fmt.Errorf("%w: level %d has %d biases for %d outputs", agent.ErrInvalidBrainFormat, i, len(l.Biases), out)
		}
		if len(l.Weights) != in {
			return fmt.Errorf("%w: level %d has %d weight rows for %d inputs", agent.ErrInvalidBrainFormat, i, len(l.Weights), in)
		}
		for j, row := range l.Weights {
			if len(row) != out {
				return fmt.Errorf("%w: level %d weight row %d has %d columns, want %d", agent.ErrInvalidBrainFormat, i, j, len(row), out)
			}
			if !finite(row) {
				return fmt.Errorf("%w: level %d weight row %d is not finite", agent.ErrInvalidBrainFormat, i, j)
			}
		}
		if !finite(l.Biases) {
			return fmt.Errorf("%w: level %d biases are not finite", agent.ErrInvalidBrainFormat, i)
		}
		if i > 0 && len(n.Levels[i-1].Outputs) != in {
			return fmt.Errorf("%w: level %d expects %d inputs but level %d has %d outputs",
				agent.ErrInvalidBrainFormat, i, in, i-1, len(n.Levels[i-1].Outputs))
		}
	}
	return nil
}

func finite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
