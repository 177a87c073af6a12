// Package sim is the evolution engine: it owns the agent population, scores
// progress around the track, retires crashed agents and breeds each new
// generation from the last one.
package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/racetrack/agent"
	"github.com/pthm-cable/racetrack/components"
	"github.com/pthm-cable/racetrack/geom"
	"github.com/pthm-cable/racetrack/obstacles"
	"github.com/pthm-cable/racetrack/track"
)

// ErrNoBestAgent is returned when a brain is requested before any agent exists.
var ErrNoBestAgent = errors.New("no best agent")

// Phase is the generation lifecycle state.
type Phase uint8

const (
	PhaseActive      Phase = iota // agents are being ticked
	PhaseRollingOver              // NextGeneration is running
)

// Simulation is one evolving population on one track. It is not safe for
// concurrent use; readers should observe it between Update calls.
type Simulation struct {
	rng      *rand.Rand
	settings Settings
	factory  agent.Factory

	world      *ecs.World
	agentMap   *ecs.Map3[components.Driver, components.Fitness, components.Lineage]
	driverMap  *ecs.Map[components.Driver]
	fitnessMap *ecs.Map[components.Fitness]
	lineageMap *ecs.Map[components.Lineage]

	track *track.Track
	gates []geom.Polygon
	field *obstacles.Field

	// Every agent entity is in exactly one of active or saved, except a best
	// agent retained from an earlier generation, which is in neither.
	active []ecs.Entity
	saved  []ecs.Entity

	best         ecs.Entity
	hasBest      bool
	bestRetained bool

	phase      Phase
	generation int
	clock      int
	tick       int64

	report     GenerationReport
	lastReport GenerationReport
	hasLast    bool
}

// New creates a simulation on the given track and spawns the first generation
// with default brains.
func New(rng *rand.Rand, tr *track.Track, settings Settings, factory agent.Factory) *Simulation {
	settings = settings.normalized()
	world := ecs.NewWorld()

	s := &Simulation{
		rng:        rng,
		settings:   settings,
		factory:    factory,
		world:      world,
		agentMap:   ecs.NewMap3[components.Driver, components.Fitness, components.Lineage](world),
		driverMap:  ecs.NewMap[components.Driver](world),
		fitnessMap: ecs.NewMap[components.Fitness](world),
		lineageMap: ecs.NewMap[components.Lineage](world),
		track:      tr,
		generation: 1,
		clock:      settings.Lifespan,
	}

	s.gates = make([]geom.Polygon, len(tr.Checkpoints))
	for i, c := range tr.Checkpoints {
		s.gates[i] = c.Polygon()
	}

	s.field = obstacles.NewField(rng, tr.Checkpoints, settings.Obstacles)
	s.field.Generate(settings.ObstacleCount)

	s.spawnInitialPopulation()
	s.report = GenerationReport{Generation: s.generation, Population: len(s.active)}

	return s
}

// spawnInitialPopulation creates generation 1. The first agent is the best
// until someone makes progress.
func (s *Simulation) spawnInitialPopulation() {
	start := s.track.Start
	s.active = make([]ecs.Entity, 0, s.settings.PopulationSize)
	for slot := 0; slot < s.settings.PopulationSize; slot++ {
		a := s.factory(start.X, start.Y)
		s.active = append(s.active, s.spawn(a, components.Lineage{Generation: s.generation, Slot: slot}))
	}
	if len(s.active) > 0 {
		s.adoptBest(s.active[0])
	}
}

// spawn registers an agent as a new entity with zero fitness.
func (s *Simulation) spawn(a agent.Agent, lineage components.Lineage) ecs.Entity {
	return s.agentMap.NewEntity(&components.Driver{Agent: a}, &components.Fitness{}, &lineage)
}

// release removes an entity from the world if it is still alive.
func (s *Simulation) release(e ecs.Entity) {
	if s.world.Alive(e) {
		s.world.RemoveEntity(e)
	}
}

// adoptBest points the best handle at e. A best retained from an earlier
// generation is released once it is replaced.
func (s *Simulation) adoptBest(e ecs.Entity) {
	if s.hasBest && s.bestRetained && s.best != e {
		s.release(s.best)
	}
	s.best = e
	s.hasBest = true
	s.bestRetained = false
}

// fitnessOf returns the fitness of a live entity.
func (s *Simulation) fitnessOf(e ecs.Entity) int {
	return s.fitnessMap.Get(e).Checkpoint
}

// fitnessValues returns the fitness of each entity in order.
func (s *Simulation) fitnessValues(entities []ecs.Entity) []float64 {
	values := make([]float64, len(entities))
	for i, e := range entities {
		values[i] = float64(s.fitnessOf(e))
	}
	return values
}

// Agent resolves an entity handle to its agent.
func (s *Simulation) Agent(e ecs.Entity) (agent.Agent, bool) {
	if !s.world.Alive(e) {
		return nil, false
	}
	return s.driverMap.Get(e).Agent, true
}

// Fitness returns the fitness of an entity, or -1 if the handle is stale.
func (s *Simulation) Fitness(e ecs.Entity) int {
	if !s.world.Alive(e) {
		return -1
	}
	return s.fitnessOf(e)
}

// SetFitness overrides an entity's fitness. The last write wins.
func (s *Simulation) SetFitness(e ecs.Entity, fitness int) {
	if s.world.Alive(e) {
		s.fitnessMap.Get(e).Checkpoint = fitness
	}
}

// Lineage returns where an entity came from.
func (s *Simulation) Lineage(e ecs.Entity) (components.Lineage, bool) {
	if !s.world.Alive(e) {
		return components.Lineage{}, false
	}
	return *s.lineageMap.Get(e), true
}

// BestAgent returns the record-holding agent and its fitness.
func (s *Simulation) BestAgent() (agent.Agent, int, bool) {
	if !s.hasBest || !s.world.Alive(s.best) {
		return nil, 0, false
	}
	return s.driverMap.Get(s.best).Agent, s.fitnessOf(s.best), true
}

// BestFitness returns the best agent's fitness, or 0 before one exists.
func (s *Simulation) BestFitness() int {
	_, f, _ := s.BestAgent()
	return f
}

// Best returns the best agent's entity handle.
func (s *Simulation) Best() (ecs.Entity, bool) {
	if !s.hasBest || !s.world.Alive(s.best) {
		return ecs.Entity{}, false
	}
	return s.best, true
}

// Active returns the active entities. The slice is owned by the simulation.
func (s *Simulation) Active() []ecs.Entity { return s.active }

// Saved returns the retired entities of the current generation.
func (s *Simulation) Saved() []ecs.Entity { return s.saved }

// ActiveAgents returns the agents still driving.
func (s *Simulation) ActiveAgents() []agent.Agent {
	agents := make([]agent.Agent, len(s.active))
	for i, e := range s.active {
		agents[i] = s.driverMap.Get(e).Agent
	}
	return agents
}

func (s *Simulation) Generation() int                 { return s.generation }
func (s *Simulation) ActiveCount() int                { return len(s.active) }
func (s *Simulation) SavedCount() int                 { return len(s.saved) }
func (s *Simulation) Clock() int                      { return s.clock }
func (s *Simulation) Tick() int64                     { return s.tick }
func (s *Simulation) Phase() Phase                    { return s.phase }
func (s *Simulation) Settings() Settings              { return s.settings }
func (s *Simulation) Track() *track.Track             { return s.track }
func (s *Simulation) Obstacles() []obstacles.Obstacle { return s.field.All() }

// LastReport returns the summary of the most recently finished generation.
func (s *Simulation) LastReport() (GenerationReport, bool) {
	return s.lastReport, s.hasLast
}

// SetObstacleCount regenerates the obstacle field immediately with n obstacles.
func (s *Simulation) SetObstacleCount(n int) {
	if n < 0 {
		n = 0
	}
	s.settings.ObstacleCount = n
	s.field.Generate(n)
}

// SetDynamicObstacles toggles obstacle drift. It takes effect on the next tick.
func (s *Simulation) SetDynamicObstacles(on bool) {
	s.settings.DynamicObstacles = on
}

// SaveBestBrain encodes the best agent's brain.
func (s *Simulation) SaveBestBrain(codec agent.Codec) ([]byte, error) {
	best, _, ok := s.BestAgent()
	if !ok {
		return nil, ErrNoBestAgent
	}
	data, err := codec.Marshal(best.Brain())
	if err != nil {
		return nil, fmt.Errorf("encoding best brain: %w", err)
	}
	return data, nil
}

// LoadBrain decodes a brain document and gives a copy to every active agent
// and the best agent. Malformed documents leave the population untouched.
func (s *Simulation) LoadBrain(codec agent.Codec, data []byte) error {
	brain, err := codec.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("loading brain: %w", err)
	}
	s.ApplyBrain(brain)
	return nil
}

// ApplyBrain gives each active agent and the best agent its own copy of b.
func (s *Simulation) ApplyBrain(b agent.Brain) {
	for _, e := range s.active {
		s.driverMap.Get(e).Agent.SetBrain(b.Clone())
	}
	if best, _, ok := s.BestAgent(); ok {
		best.SetBrain(b.Clone())
	}
}
