package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/racetrack/config"
	"github.com/pthm-cable/racetrack/telemetry"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestClampRoundsIntegers(t *testing.T) {
	pv := NewParamVector()
	v := pv.Clamp([]float64{-1, 4.6, 1000, 45, 2.2, 0.03})

	want := []float64{0.01, 5, 300, 45, 2, 0.03}
	for i := range want {
		if math.Abs(v[i]-want[i]) > 1e-9 {
			t.Errorf("%s = %v, want %v", pv.Specs[i].Name, v[i], want[i])
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Neural.HiddenLayers = []int{6, 4}

	pv.ApplyToConfig(cfg, []float64{0.2, 7, 200, 120, 9, 0.05})

	if cfg.Mutation.Amount != 0.2 || cfg.Sensors.RayCount != 7 || cfg.Agent.TurnRate != 0.05 {
		t.Errorf("fields not applied: %+v %+v", cfg.Mutation, cfg.Sensors)
	}
	topo := cfg.Derived.Topology
	if len(topo) != 4 || topo[0] != 7 || topo[1] != 9 || topo[2] != 4 {
		t.Errorf("topology = %v, want [7 9 4 outputs]", topo)
	}
	if math.Abs(cfg.Derived.RaySpread-120*math.Pi/180) > 1e-9 {
		t.Errorf("ray spread = %v", cfg.Derived.RaySpread)
	}

	got := pv.ExtractFromConfig(cfg)
	if got[1] != 7 || got[4] != 9 {
		t.Errorf("extract = %v", got)
	}
}

func TestComputeFitness(t *testing.T) {
	r := &runResult{
		checkpoints: 11,
		generations: []telemetry.GenerationStats{
			{RecordFitness: 2, FitnessP50: 0},
			{RecordFitness: 5, FitnessP50: 5},
		},
	}

	// Second half is the last generation: median 5 of 10 gates.
	if q := computeQuality(r); math.Abs(q-0.5) > 1e-9 {
		t.Errorf("quality = %v, want 0.5", q)
	}
	// progress 0.5 * (1 + 0.2*0.5)
	if f := computeFitness(r); math.Abs(f+0.55) > 1e-9 {
		t.Errorf("fitness = %v, want -0.55", f)
	}
	if p := progressOf(computeFitness(r), computeQuality(r)); math.Abs(p-0.5) > 1e-9 {
		t.Errorf("progress = %v, want 0.5", p)
	}
}

func TestComputeFitnessEmpty(t *testing.T) {
	for _, r := range []*runResult{
		{checkpoints: 10},
		{checkpoints: 1, generations: []telemetry.GenerationStats{{RecordFitness: 3}}},
	} {
		if f := computeFitness(r); f != 0 {
			t.Errorf("fitness = %v, want 0", f)
		}
	}
}

func TestEvalLogWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	l, err := telemetry.CreateCSVLog[EvalRecord](path)
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector()
	for i := 1; i <= 3; i++ {
		if err := l.Append(pv.Record(i, -0.5, 0.1, pv.DefaultVector())); err != nil {
			t.Fatal(err)
		}
	}
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "eval,fitness,progress,quality,mutation_amount") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m00s"},
		{95 * time.Second, "1m35s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h02m03s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
