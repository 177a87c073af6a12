package sim

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/racetrack/components"
)

// maxFitnessIndex returns the index of the fittest entity. Ties go to the
// first one encountered.
func (s *Simulation) maxFitnessIndex(entities []ecs.Entity) int {
	return floats.MaxIdx(s.fitnessValues(entities))
}

// NextGeneration replaces the population with children of the saved set.
// Agents still active are retired first.
func (s *Simulation) NextGeneration() {
	s.rollover(CauseManual)
}

// rollover ends the current generation and breeds the next one.
func (s *Simulation) rollover(cause RolloverCause) {
	s.phase = PhaseRollingOver

	if len(s.active) > 0 {
		s.report.TimedOut += len(s.active)
		s.saved = append(s.saved, s.active...)
		s.active = nil
	}

	if len(s.saved) > 0 {
		s.adoptBest(s.saved[s.maxFitnessIndex(s.saved)])
	}

	s.calculateFitness()
	s.finishReport(cause)

	weights := s.fitnessValues(s.saved)
	start := s.track.Start
	next := make([]ecs.Entity, 0, s.settings.PopulationSize)
	for slot := 0; slot < s.settings.PopulationSize; slot++ {
		a := s.factory(start.X, start.Y)
		lineage := components.Lineage{Generation: s.generation + 1, Slot: slot}

		if parent, ok := s.selectParent(weights); ok {
			brain := s.driverMap.Get(parent).Agent.Brain().Clone()
			brain.Mutate(s.rng, s.settings.MutationAmount)
			a.SetBrain(brain)
			lineage.Mutated = true
			lineage.ParentFitness = s.fitnessOf(parent)
		}

		next = append(next, s.spawn(a, lineage))
	}

	for _, e := range s.saved {
		if s.hasBest && e == s.best {
			s.bestRetained = true
			continue
		}
		s.release(e)
	}

	s.active = next
	s.saved = nil
	s.generation++
	s.clock = s.settings.Lifespan
	s.report = GenerationReport{Generation: s.generation, Population: len(s.active)}

	s.phase = PhaseActive
}

// calculateFitness is where a whole-generation fitness pass would go. Fitness
// is already kept current during ticks, so there is nothing to do.
func (s *Simulation) calculateFitness() {}

// finishReport closes the running report with the saved set's fitness.
func (s *Simulation) finishReport(cause RolloverCause) {
	s.report.Cause = cause
	s.report.Fitness = s.fitnessValues(s.saved)
	if len(s.report.Fitness) > 0 {
		s.report.BestFitness = int(floats.Max(s.report.Fitness))
	}
	s.lastReport = s.report
	s.hasLast = true
}

// SelectParent picks a saved agent with probability proportional to fitness.
// It returns false when the saved set is empty.
func (s *Simulation) SelectParent() (ecs.Entity, bool) {
	return s.selectParent(s.fitnessValues(s.saved))
}

// selectParent runs roulette-wheel selection over s.saved using the
// precomputed weights (one per saved entity, same order).
func (s *Simulation) selectParent(weights []float64) (ecs.Entity, bool) {
	if len(s.saved) == 0 {
		return ecs.Entity{}, false
	}

	sum := floats.Sum(weights)
	if sum == 0 {
		return s.saved[s.rng.Intn(len(s.saved))], true
	}

	r := s.rng.Float64() * sum
	for i, e := range s.saved {
		r -= weights[i]
		if r < 0 {
			return e, true
		}
	}

	// Unreachable unless rounding leaves r at exactly zero.
	return s.saved[floats.MaxIdx(weights)], true
}
