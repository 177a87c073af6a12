package obstacles

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/racetrack/geom"
	"github.com/pthm-cable/racetrack/track"
)

func gates() []track.Checkpoint {
	return []track.Checkpoint{
		{A: geom.Pt(0, 0), B: geom.Pt(100, 0)},
		{A: geom.Pt(0, 50), B: geom.Pt(0, 150)},
	}
}

func TestGenerateCount(t *testing.T) {
	f := NewField(rand.New(rand.NewSource(42)), gates(), DefaultParams())

	f.Generate(7)
	if len(f.All()) != 7 {
		t.Fatalf("len = %d, want 7", len(f.All()))
	}
	if len(f.Polygons()) != 7 {
		t.Errorf("polygons = %d, want 7", len(f.Polygons()))
	}

	f.Generate(2)
	if len(f.All()) != 2 {
		t.Errorf("regenerate should discard old obstacles, len = %d", len(f.All()))
	}
}

func TestGeneratePlacesOnGates(t *testing.T) {
	f := NewField(rand.New(rand.NewSource(1)), gates(), DefaultParams())
	f.Generate(50)

	for i, o := range f.All() {
		onFirst := o.Y == 0 && o.X >= 0 && o.X <= 100
		onSecond := o.X == 0 && o.Y >= 50 && o.Y <= 150
		if !onFirst && !onSecond {
			t.Errorf("obstacle %d at (%v, %v) is not on any gate", i, o.X, o.Y)
		}
		if len(o.Polygon) != 4 {
			t.Errorf("obstacle %d polygon has %d vertices", i, len(o.Polygon))
		}
	}
}

func TestGenerateWithoutCheckpoints(t *testing.T) {
	f := NewField(rand.New(rand.NewSource(1)), nil, DefaultParams())
	f.Generate(3)
	if len(f.All()) != 0 {
		t.Errorf("len = %d, want 0", len(f.All()))
	}
}

func TestPerturbBounded(t *testing.T) {
	p := DefaultParams()
	f := NewField(rand.New(rand.NewSource(9)), gates(), p)
	f.Generate(20)

	before := make([]Obstacle, len(f.All()))
	copy(before, f.All())

	f.Perturb()

	moved := false
	for i, o := range f.All() {
		dx := math.Abs(o.X - before[i].X)
		dy := math.Abs(o.Y - before[i].Y)
		if dx > p.Drift || dy > p.Drift {
			t.Errorf("obstacle %d moved (%v, %v), more than drift %v", i, dx, dy, p.Drift)
		}
		if dx > 0 || dy > 0 {
			moved = true
		}
		want := geom.Rect(o.X, o.Y, o.Width, o.Height)
		for k := range want {
			if o.Polygon[k] != want[k] {
				t.Fatalf("obstacle %d polygon not refreshed after move", i)
			}
		}
	}
	if !moved {
		t.Error("Perturb did not move any obstacle")
	}
}
