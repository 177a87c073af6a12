package telemetry

import (
	"math/rand"
	"path/filepath"
	"testing"
)

func TestHallOfFameOrdering(t *testing.T) {
	hof := NewHallOfFame(3, 1, rand.New(rand.NewSource(42)))
	brain := []byte(bareBrain)

	tests := []struct {
		generation, fitness int
		wantAdded           bool
	}{
		{1, 0, false}, // below min fitness
		{2, 4, true},
		{3, 9, true},
		{4, 6, true},
		{5, 2, false}, // full and lowest
		{6, 7, true},  // evicts fitness 4
	}

	for _, tt := range tests {
		if got := hof.Consider(tt.generation, tt.fitness, brain); got != tt.wantAdded {
			t.Errorf("Consider(gen %d, fitness %d) = %v, want %v", tt.generation, tt.fitness, got, tt.wantAdded)
		}
	}

	if hof.Size() != 3 {
		t.Fatalf("size = %d, want 3", hof.Size())
	}
	want := []int{9, 7, 6}
	for i, e := range hof.entries {
		if e.Fitness != want[i] {
			t.Errorf("entry %d fitness = %d, want %d", i, e.Fitness, want[i])
		}
	}
	if hof.TopFitness() != 9 {
		t.Errorf("top fitness = %d, want 9", hof.TopFitness())
	}
	if best, ok := hof.Best(); !ok || best.Generation != 3 {
		t.Errorf("best = %+v, want generation 3", best)
	}
}

func TestHallOfFameSample(t *testing.T) {
	hof := NewHallOfFame(5, 0, rand.New(rand.NewSource(42)))
	if _, ok := hof.Sample(); ok {
		t.Error("empty hall returned a sample")
	}

	hof.Consider(1, 3, []byte(bareBrain))
	hof.Consider(2, 5, []byte(bareBrain))
	for i := 0; i < 20; i++ {
		e, ok := hof.Sample()
		if !ok || (e.Fitness != 3 && e.Fitness != 5) {
			t.Fatalf("sample = %+v, %v", e, ok)
		}
	}
}

func TestHallOfFameFileRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	hof := NewHallOfFame(4, 0, rng)
	hof.Consider(1, 2, []byte(bareBrain))
	hof.Consider(2, 8, []byte(bareBrain))

	dir := t.TempDir()
	om, err := NewOutputManager(dir, DefaultOutputFiles())
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()
	if err := om.WriteHallOfFame(hof); err != nil {
		t.Fatalf("WriteHallOfFame failed: %v", err)
	}

	loaded, err := LoadHallOfFameFromFile(filepath.Join(dir, "hall_of_fame.json"), 4, rng)
	if err != nil {
		t.Fatalf("LoadHallOfFameFromFile failed: %v", err)
	}
	if loaded.Size() != 2 || loaded.TopFitness() != 8 {
		t.Errorf("loaded size %d top %d, want 2 and 8", loaded.Size(), loaded.TopFitness())
	}
}
