// Package main provides CMA-ES optimization for racetrack run parameters.
package main

import (
	"math"

	"github.com/pthm-cable/racetrack/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before it is applied
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "mutation_amount", Path: "mutation.amount", Min: 0.01, Max: 0.5, Default: 0.1},
			{Name: "ray_count", Path: "sensors.ray_count", Min: 3, Max: 9, Default: 5, Integer: true},
			{Name: "ray_length", Path: "sensors.ray_length", Min: 60, Max: 300, Default: 150},
			{Name: "ray_spread_degrees", Path: "sensors.ray_spread_degrees", Min: 30, Max: 180, Default: 90},
			{Name: "hidden_neurons", Path: "neural.hidden_layers[0]", Min: 2, Max: 16, Default: 6, Integer: true},
			{Name: "turn_rate", Path: "agent.turn_rate", Min: 0.01, Max: 0.08, Default: 0.03},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and rounds integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct. Order must match
// Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Mutation.Amount = clamped[0]
	cfg.Sensors.RayCount = int(clamped[1])
	cfg.Sensors.RayLength = clamped[2]
	cfg.Sensors.RaySpreadDegree = clamped[3]

	hidden := []int{int(clamped[4])}
	if len(cfg.Neural.HiddenLayers) > 1 {
		hidden = append(hidden, cfg.Neural.HiddenLayers[1:]...)
	}
	cfg.Neural.HiddenLayers = hidden

	cfg.Agent.TurnRate = clamped[5]

	cfg.RecomputeDerived()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	hidden := 0.0
	if len(cfg.Neural.HiddenLayers) > 0 {
		hidden = float64(cfg.Neural.HiddenLayers[0])
	}
	return []float64{
		cfg.Mutation.Amount,
		float64(cfg.Sensors.RayCount),
		cfg.Sensors.RayLength,
		cfg.Sensors.RaySpreadDegree,
		hidden,
		cfg.Agent.TurnRate,
	}
}
