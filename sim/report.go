package sim

// RolloverCause says why a generation ended.
type RolloverCause uint8

const (
	CauseNone                RolloverCause = iota
	CauseClockExpired                      // survival clock ran out with agents still active
	CausePopulationExhausted               // every agent retired before the clock ran out
	CauseManual                            // NextGeneration called directly
)

// String returns the cause name used in logs and CSV output.
func (c RolloverCause) String() string {
	switch c {
	case CauseClockExpired:
		return "clock_expired"
	case CausePopulationExhausted:
		return "population_exhausted"
	case CauseManual:
		return "manual"
	default:
		return "none"
	}
}

// GenerationReport summarizes one finished generation.
type GenerationReport struct {
	Generation int
	Ticks      int
	Population int
	Cause      RolloverCause

	// Retirements by reason
	Crashed      int // agent flagged itself damaged
	HitObstacle  int // retired by the obstacle hazard check
	TimedOut     int // still active when the clock expired
	Improvements int // checkpoint records set during the generation

	// Fitness of every agent in the saved set at rollover, in saved order
	Fitness     []float64
	BestFitness int
}
