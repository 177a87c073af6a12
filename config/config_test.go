package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Population.Size != 200 || cfg.Population.Lifespan != 500 {
		t.Errorf("population = %+v, want size 200 lifespan 500", cfg.Population)
	}
	if cfg.Track.Width != 60 || cfg.Track.ControlPoints != 10 {
		t.Errorf("track = %+v", cfg.Track)
	}
	if cfg.Mutation.Amount != 0.1 {
		t.Errorf("mutation amount = %v, want 0.1", cfg.Mutation.Amount)
	}

	// World falls back to the screen size.
	if cfg.Derived.WorldW != 800 || cfg.Derived.WorldH != 600 {
		t.Errorf("world = %vx%v, want 800x600", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
	if math.Abs(cfg.Derived.RaySpread-math.Pi/2) > 1e-12 {
		t.Errorf("ray spread = %v, want pi/2", cfg.Derived.RaySpread)
	}

	want := []int{5, 6, 4}
	if len(cfg.Derived.Topology) != len(want) {
		t.Fatalf("topology = %v, want %v", cfg.Derived.Topology, want)
	}
	for i := range want {
		if cfg.Derived.Topology[i] != want[i] {
			t.Errorf("topology = %v, want %v", cfg.Derived.Topology, want)
		}
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	overlay := "population:\n  size: 20\nworld:\n  width: 1600\nneural:\n  hidden_layers: [8, 6]\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Population.Size != 20 {
		t.Errorf("size = %d, want 20", cfg.Population.Size)
	}
	// Fields absent from the overlay keep their defaults.
	if cfg.Population.Lifespan != 500 {
		t.Errorf("lifespan = %d, want 500", cfg.Population.Lifespan)
	}
	if cfg.Derived.WorldW != 1600 || cfg.Derived.WorldH != 600 {
		t.Errorf("world = %vx%v, want 1600x600", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
	if len(cfg.Derived.Topology) != 4 {
		t.Errorf("topology = %v, want 4 layers", cfg.Derived.Topology)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("population: [not, a, map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Obstacles.Count = 12

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Obstacles.Count != 12 {
		t.Errorf("obstacle count = %d, want 12", loaded.Obstacles.Count)
	}
}

func TestCfgAfterInit(t *testing.T) {
	MustInit("")
	if Cfg().Screen.Width != 800 {
		t.Errorf("screen width = %d, want 800", Cfg().Screen.Width)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	cp := cfg.Clone()
	cp.Neural.HiddenLayers[0] = 99
	cp.Population.Size = 1

	if cfg.Neural.HiddenLayers[0] == 99 {
		t.Error("clone shares hidden layers with the original")
	}
	if cfg.Population.Size == 1 {
		t.Error("clone shares population with the original")
	}
}

func TestRecomputeDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	cfg.Sensors.RayCount = 7
	cfg.Sensors.RaySpreadDegree = 180
	cfg.RecomputeDerived()

	if cfg.Derived.Topology[0] != 7 {
		t.Errorf("topology inputs = %d, want 7", cfg.Derived.Topology[0])
	}
	if math.Abs(cfg.Derived.RaySpread-math.Pi) > 1e-12 {
		t.Errorf("ray spread = %v, want pi", cfg.Derived.RaySpread)
	}
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
	}{
		{"empty population", "population:\n  size: 0\n"},
		{"too few control points", "track:\n  control_points: 2\n"},
		{"mutation above one", "mutation:\n  amount: 1.5\n"},
		{"zero hidden layer", "neural:\n  hidden_layers: [4, 0]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "run.yaml")
			if err := os.WriteFile(path, []byte(tt.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}
