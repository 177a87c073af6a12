package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds aggregated statistics for one finished generation.
type GenerationStats struct {
	Generation int    `csv:"generation"`
	Ticks      int    `csv:"ticks"`
	Population int    `csv:"population"`
	Cause      string `csv:"cause"`

	// Retirements
	Crashed     int `csv:"crashed"`
	HitObstacle int `csv:"hit_obstacle"`
	TimedOut    int `csv:"timed_out"`

	Improvements int `csv:"improvements"`

	// Fitness distribution over the saved set
	BestFitness int     `csv:"best_fitness"`
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP25  float64 `csv:"fitness_p25"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP75  float64 `csv:"fitness_p75"`
	ZeroFitness int     `csv:"zero_fitness"` // agents that never passed a gate

	// Run-level progress
	RecordFitness int `csv:"record_fitness"` // best fitness of any generation so far
	Stagnation    int `csv:"stagnation"`     // generations since the record last improved
}

// Quantile returns the empirical p-quantile of values, which must be sorted.
// Returns 0 if values is empty.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// FitnessSummary holds the distribution of a set of fitness values.
type FitnessSummary struct {
	Mean, Std     float64
	P25, P50, P75 float64
	Zero          int
}

// ComputeFitnessStats summarizes fitness values. Std is the sample standard
// deviation and is 0 for fewer than two values.
func ComputeFitnessStats(values []float64) FitnessSummary {
	var s FitnessSummary
	if len(values) == 0 {
		return s
	}

	if len(values) == 1 {
		s.Mean = values[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.P25 = Quantile(sorted, 0.25)
	s.P50 = Quantile(sorted, 0.50)
	s.P75 = Quantile(sorted, 0.75)

	for _, v := range sorted {
		if v != 0 {
			break
		}
		s.Zero++
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("ticks", s.Ticks),
		slog.Int("population", s.Population),
		slog.String("cause", s.Cause),
		slog.Int("crashed", s.Crashed),
		slog.Int("hit_obstacle", s.HitObstacle),
		slog.Int("timed_out", s.TimedOut),
		slog.Int("improvements", s.Improvements),
		slog.Int("best_fitness", s.BestFitness),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Int("zero_fitness", s.ZeroFitness),
		slog.Int("record_fitness", s.RecordFitness),
		slog.Int("stagnation", s.Stagnation),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"ticks", s.Ticks,
		"cause", s.Cause,
		"crashed", s.Crashed,
		"hit_obstacle", s.HitObstacle,
		"timed_out", s.TimedOut,
		"best_fitness", s.BestFitness,
		"fitness_mean", s.FitnessMean,
		"fitness_p50", s.FitnessP50,
		"record_fitness", s.RecordFitness,
		"stagnation", s.Stagnation,
	)
}
