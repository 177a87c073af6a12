package telemetry

import "github.com/pthm-cable/racetrack/sim"

// Collector turns generation reports into GenerationStats and tracks
// run-level progress across generations.
type Collector struct {
	record     int
	hasRecord  bool
	stagnation int
	flushed    int // last generation flushed
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// ShouldFlush returns true if a generation finished since the last flush.
func (c *Collector) ShouldFlush(report sim.GenerationReport, ok bool) bool {
	return ok && report.Generation > c.flushed
}

// Flush produces the stats for a finished generation and advances the
// record and stagnation counters.
func (c *Collector) Flush(report sim.GenerationReport) GenerationStats {
	summary := ComputeFitnessStats(report.Fitness)

	if !c.hasRecord || report.BestFitness > c.record {
		c.record = report.BestFitness
		c.hasRecord = true
		c.stagnation = 0
	} else {
		c.stagnation++
	}
	c.flushed = report.Generation

	return GenerationStats{
		Generation: report.Generation,
		Ticks:      report.Ticks,
		Population: report.Population,
		Cause:      report.Cause.String(),

		Crashed:     report.Crashed,
		HitObstacle: report.HitObstacle,
		TimedOut:    report.TimedOut,

		Improvements: report.Improvements,

		BestFitness: report.BestFitness,
		FitnessMean: summary.Mean,
		FitnessStd:  summary.Std,
		FitnessP25:  summary.P25,
		FitnessP50:  summary.P50,
		FitnessP75:  summary.P75,
		ZeroFitness: summary.Zero,

		RecordFitness: c.record,
		Stagnation:    c.stagnation,
	}
}

// Record returns the best generation fitness seen so far.
func (c *Collector) Record() int {
	return c.record
}

// Stagnation returns the number of generations since the record improved.
func (c *Collector) Stagnation() int {
	return c.stagnation
}
