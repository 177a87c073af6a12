package sim

import "github.com/pthm-cable/racetrack/obstacles"

// Settings holds the simulation parameters. PopulationSize, Lifespan and
// MutationAmount are fixed for a run; obstacle settings can change live through
// the Simulation setters.
type Settings struct {
	PopulationSize   int
	Lifespan         int     // survival clock in ticks
	MutationAmount   float64 // passed to Brain.Mutate for every child
	ObstacleCount    int
	DynamicObstacles bool
	Obstacles        obstacles.Params
}

// DefaultSettings returns the standard run parameters.
func DefaultSettings() Settings {
	return Settings{
		PopulationSize:   200,
		Lifespan:         500,
		MutationAmount:   0.1,
		ObstacleCount:    5,
		DynamicObstacles: false,
		Obstacles:        obstacles.DefaultParams(),
	}
}

// normalized clamps values that would make the tick loop meaningless. An
// empty population would roll over on every call.
func (s Settings) normalized() Settings {
	if s.PopulationSize < 1 {
		s.PopulationSize = 1
	}
	if s.Lifespan < 1 {
		s.Lifespan = 1
	}
	if s.ObstacleCount < 0 {
		s.ObstacleCount = 0
	}
	return s
}
