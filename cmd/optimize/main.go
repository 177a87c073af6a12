// Command optimize searches for run parameters under which the population
// learns to drive furthest around the track, using CMA-ES.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/racetrack/config"
	"github.com/pthm-cable/racetrack/telemetry"
)

type options struct {
	configPath     string
	maxGenerations int
	maxTicks       int64
	seeds          int
	maxEvals       int
	population     int
	outputDir      string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.IntVar(&o.maxGenerations, "max-generations", 30, "Generations per run")
	flag.Int64Var(&o.maxTicks, "max-ticks", 200000, "Tick cap per run")
	flag.IntVar(&o.seeds, "seeds", 3, "Tracks (seeds) per evaluation")
	flag.IntVar(&o.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flag.IntVar(&o.population, "population", 0, "CMA-ES population size (0 = 4 + 3 ln(dim))")
	flag.StringVar(&o.outputDir, "output", "", "Output directory for results")
	flag.Parse()
	return o
}

func main() {
	opts := parseFlags()
	if opts.outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := config.Init(opts.configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	seeds := make([]int64, opts.seeds)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, opts.maxGenerations, opts.maxTicks, seeds, baseCfg)

	evalLog, err := telemetry.CreateCSVLog[EvalRecord](filepath.Join(opts.outputDir, "optimize_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer evalLog.Close()

	progress := newTracker(opts.maxEvals)
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			values := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(values)
			quality := evaluator.LastQuality()

			progress.observe(fitness, values)
			if err := evalLog.Append(params.Record(progress.evals, fitness, quality, values)); err != nil {
				log.Printf("failed to log evaluation: %v", err)
			}
			progress.print(fitness, quality)
			return fitness
		},
	}

	dim := params.Dim()
	popSize := opts.population
	if popSize == 0 {
		popSize = 4 + int(3.0*math.Log(float64(dim)))
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: opts.maxEvals,
		Concurrent:      0, // seeds already run in parallel inside Evaluate
	}

	fmt.Printf("CMA-ES over %d parameters, population=%d, max_evals=%d\n", dim, popSize, opts.maxEvals)
	fmt.Printf("%d seeds per evaluation, %d generations per run (tick cap %d)\n", opts.seeds, opts.maxGenerations, opts.maxTicks)

	initX := params.Normalize(params.ExtractFromConfig(baseCfg))
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best := progress.bestParams
	if best == nil && result != nil {
		best = params.Clamp(params.Denormalize(result.X))
	}
	if best == nil {
		log.Fatal("no evaluation finished")
	}

	fmt.Printf("\nDone after %d evaluations in %s, best fitness %.3f\n",
		progress.evals, formatDuration(time.Since(progress.start)), progress.bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %s (%s): %.6f\n", spec.Name, spec.Path, best[i])
	}

	writeResults(opts.outputDir, baseCfg, params, best, evaluator)
}

// writeResults saves the best config and the hall of fame from the best run.
func writeResults(dir string, baseCfg *config.Config, params *ParamVector, best []float64, evaluator *FitnessEvaluator) {
	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, best)

	configPath := filepath.Join(dir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configPath)
	}

	hof := evaluator.BestHallOfFame()
	if hof == nil {
		return
	}
	data, err := hof.MarshalJSON()
	if err != nil {
		log.Printf("failed to marshal hall of fame: %v", err)
		return
	}
	hofPath := filepath.Join(dir, "hall_of_fame.json")
	if err := os.WriteFile(hofPath, data, 0644); err != nil {
		log.Printf("failed to write hall of fame: %v", err)
		return
	}
	fmt.Printf("Hall of fame saved to: %s\n", hofPath)
}
