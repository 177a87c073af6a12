package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/racetrack/geom"
)

// Update advances the simulation by one tick.
func (s *Simulation) Update() {
	// The clock never reads 0 here since the tick that runs it out rolls over,
	// so in practice this only catches a population that died out last tick.
	// Waiting a call keeps the emptying tick in that generation's tick count.
	if s.clock <= 0 || len(s.active) == 0 {
		s.rollover(s.rolloverCause())
	}

	s.clock--
	s.tick++
	s.report.Ticks++

	if s.settings.DynamicObstacles {
		s.field.Perturb()
	}

	walls := s.track.Walls
	hazards := s.field.Polygons()

	survivors := make([]ecs.Entity, 0, len(s.active))
	for _, e := range s.active {
		a := s.driverMap.Get(e).Agent
		fitness := s.fitnessMap.Get(e)

		a.Update(walls, hazards)
		poly := a.Polygon()

		for j, gate := range s.gates {
			if j > fitness.Checkpoint && geom.PolysIntersect(poly, gate) {
				fitness.Checkpoint = j
				s.clock = s.settings.Lifespan
				s.report.Improvements++
			}
		}

		hitObstacle := false
		for _, h := range hazards {
			if geom.PolysIntersect(poly, h) {
				hitObstacle = true
				break
			}
		}

		// A car counts obstacle contact as damage too, so check obstacles first.
		switch {
		case hitObstacle:
			s.report.HitObstacle++
			s.saved = append(s.saved, e)
		case a.Damaged():
			s.report.Crashed++
			s.saved = append(s.saved, e)
		default:
			survivors = append(survivors, e)
		}
	}
	s.active = survivors

	if len(s.active) > 0 {
		leader := s.active[s.maxFitnessIndex(s.active)]
		if _, _, ok := s.BestAgent(); !ok || s.fitnessOf(leader) > s.fitnessOf(s.best) {
			s.adoptBest(leader)
		}
	}

	// The tick that runs the clock out also rolls the generation over.
	if s.clock <= 0 {
		s.rollover(s.rolloverCause())
	}
}

// rolloverCause prefers exhaustion when the clock ran out on the same tick the
// last agent retired.
func (s *Simulation) rolloverCause() RolloverCause {
	if len(s.active) == 0 {
		return CausePopulationExhausted
	}
	return CauseClockExpired
}
