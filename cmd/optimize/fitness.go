package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/racetrack/config"
	"github.com/pthm-cable/racetrack/game"
	"github.com/pthm-cable/racetrack/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params         *ParamVector
	maxGenerations int
	maxTicks       int64
	seeds          []int64
	baseConfig     *config.Config

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastQuality    float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxGenerations int, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:         params,
		maxGenerations: maxGenerations,
		maxTicks:       maxTicks,
		seeds:          seeds,
		baseConfig:     baseCfg,
		bestFitness:    math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	checkpoints int
	generations []telemetry.GenerationStats // collected via StatsCallback
	hallOfFame  *telemetry.HallOfFame
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness    float64
	quality    float64
	hallOfFame *telemetry.HallOfFame
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			results[idx] = seedResult{
				fitness:    computeFitness(result),
				quality:    computeQuality(result),
				hallOfFame: result.hallOfFame,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedHallOfFame *telemetry.HallOfFame

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedHallOfFame = r.hallOfFame
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHallOfFame = bestSeedHallOfFame
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless run until maxGenerations have
// finished or maxTicks have passed.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}
	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 10,
		Config:         cfg,
		StatsCallback: func(stats telemetry.GenerationStats) {
			result.generations = append(result.generations, stats)
		},
	})
	defer g.Unload()

	result.checkpoints = len(g.Sim().Track().Checkpoints)
	for len(result.generations) < fe.maxGenerations && g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	result.hallOfFame = g.HallOfFame()
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(progress × (1.0 + 0.2 × quality)), where progress is the best
// checkpoint reached as a fraction of the loop.
func computeFitness(r *runResult) float64 {
	if len(r.generations) == 0 || r.checkpoints < 2 {
		return 0
	}
	record := r.generations[len(r.generations)-1].RecordFitness
	progress := float64(record) / float64(r.checkpoints-1)
	return -(progress * (1.0 + 0.2*computeQuality(r)))
}

// computeQuality scores how far the typical car gets in the second half of
// the run, in [0, 1].
func computeQuality(r *runResult) float64 {
	if len(r.generations) == 0 || r.checkpoints < 2 {
		return 0
	}
	late := r.generations[len(r.generations)/2:]
	medians := make([]float64, len(late))
	for i, g := range late {
		medians[i] = g.FitnessP50
	}
	return clamp01(stat.Mean(medians, nil) / float64(r.checkpoints-1))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
