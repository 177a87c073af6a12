package main

import (
	"fmt"
	"math"
	"time"
)

// EvalRecord is one row of optimize_log.csv. Parameter columns follow the
// order of NewParamVector.
type EvalRecord struct {
	Eval           int     `csv:"eval"`
	Fitness        float64 `csv:"fitness"`
	Progress       float64 `csv:"progress"`
	Quality        float64 `csv:"quality"`
	MutationAmount float64 `csv:"mutation_amount"`
	RayCount       int     `csv:"ray_count"`
	RayLength      float64 `csv:"ray_length"`
	RaySpread      float64 `csv:"ray_spread_degrees"`
	HiddenNeurons  int     `csv:"hidden_neurons"`
	TurnRate       float64 `csv:"turn_rate"`
}

// Record builds the log row for clamped parameter values.
func (pv *ParamVector) Record(eval int, fitness, quality float64, values []float64) EvalRecord {
	return EvalRecord{
		Eval:           eval,
		Fitness:        fitness,
		Progress:       progressOf(fitness, quality),
		Quality:        quality,
		MutationAmount: values[0],
		RayCount:       int(values[1]),
		RayLength:      values[2],
		RaySpread:      values[3],
		HiddenNeurons:  int(values[4]),
		TurnRate:       values[5],
	}
}

// progressOf undoes the quality bonus in computeFitness.
func progressOf(fitness, quality float64) float64 {
	return -fitness / (1.0 + 0.2*quality)
}

// tracker keeps the best evaluation and prints progress with an ETA.
type tracker struct {
	evals, maxEvals int
	start           time.Time
	bestFitness     float64
	bestParams      []float64
}

func newTracker(maxEvals int) *tracker {
	return &tracker{maxEvals: maxEvals, start: time.Now(), bestFitness: math.Inf(1)}
}

// observe counts an evaluation and keeps its values if it is the best so far.
func (t *tracker) observe(fitness float64, values []float64) {
	t.evals++
	if fitness < t.bestFitness {
		t.bestFitness = fitness
		t.bestParams = append([]float64(nil), values...)
	}
}

func (t *tracker) print(fitness, quality float64) {
	elapsed := time.Since(t.start)
	remaining := time.Duration(t.maxEvals-t.evals) * (elapsed / time.Duration(t.evals))
	fmt.Printf("Eval %d/%d: progress=%.0f%% quality=%.2f (best=%.3f) | elapsed: %s, ETA: %s\n",
		t.evals, t.maxEvals, progressOf(fitness, quality)*100, quality, t.bestFitness,
		formatDuration(elapsed), formatDuration(remaining))
}

// formatDuration formats d as 1h02m03s, or 2m03s under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
