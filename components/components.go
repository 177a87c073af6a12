// Package components defines ECS components for agent entities.
package components

import "github.com/pthm-cable/racetrack/agent"

// Driver holds the agent implementation behind an entity.
type Driver struct {
	Agent agent.Agent
}

// Fitness is the highest checkpoint index the agent reached this generation.
type Fitness struct {
	Checkpoint int
}

// Lineage records where an agent came from.
type Lineage struct {
	Generation    int  // generation the agent was born into
	Slot          int  // index within that generation's population
	Mutated       bool // false for agents that kept their default brain
	ParentFitness int  // fitness of the selected parent (0 without one)
}
