package track

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/racetrack/geom"
)

func TestGenerateCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := DefaultParams()
	tr := Generate(rng, p)

	if len(tr.Points) != p.ControlPoints+1 {
		t.Errorf("points = %d, want %d", len(tr.Points), p.ControlPoints+1)
	}
	if tr.Points[0] != tr.Points[len(tr.Points)-1] {
		t.Error("loop is not closed: first and last control points differ")
	}

	wantCheckpoints := 2 * p.ControlPoints
	if len(tr.Checkpoints) != wantCheckpoints {
		t.Errorf("checkpoints = %d, want %d", len(tr.Checkpoints), wantCheckpoints)
	}
	if len(tr.Walls) != 2*wantCheckpoints {
		t.Errorf("walls = %d, want %d", len(tr.Walls), 2*wantCheckpoints)
	}
}

func TestGenerateRingConnectivity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := Generate(rng, DefaultParams())

	// Walls alternate left/right; each side's walls chain end to start.
	n := len(tr.Walls)
	for i := 0; i < n; i++ {
		next := tr.Walls[(i+2)%n]
		if tr.Walls[i].B != next.A {
			t.Fatalf("wall %d does not connect to wall %d", i, (i+2)%n)
		}
	}
}

func TestGenerateCheckpointsSpanWidth(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := DefaultParams()
	tr := Generate(rng, p)

	for i, c := range tr.Checkpoints {
		w := math.Hypot(c.B.X-c.A.X, c.B.Y-c.A.Y)
		if math.Abs(w-p.Width) > 1e-9 {
			t.Errorf("checkpoint %d width = %v, want %v", i, w, p.Width)
		}
		if tr.Walls[2*i].A != c.A || tr.Walls[2*i+1].A != c.B {
			t.Errorf("checkpoint %d does not start its walls", i)
		}
	}
}

func TestGenerateStartIsGateZeroMidpoint(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tr := Generate(rng, DefaultParams())

	want := geom.Midpoint(tr.Checkpoints[0].A, tr.Checkpoints[0].B)
	if tr.Start != want {
		t.Errorf("start = %v, want %v", tr.Start, want)
	}
}

func TestGenerateRadiusJitterBounds(t *testing.T) {
	p := DefaultParams()
	base := math.Min(p.WorldWidth, p.WorldHeight) * p.RadiusFactor
	cx, cy := p.WorldWidth/2, p.WorldHeight/2

	for seed := int64(0); seed < 20; seed++ {
		tr := Generate(rand.New(rand.NewSource(seed)), p)
		for _, pt := range tr.Points {
			r := math.Hypot(pt.X-cx, pt.Y-cy)
			if r < base*0.75-1e-9 || r > base*1.25+1e-9 {
				t.Fatalf("seed %d: radius %v outside ±25%% of %v", seed, r, base)
			}
		}
	}
}

func TestCenterline(t *testing.T) {
	tr := Generate(rand.New(rand.NewSource(5)), DefaultParams())
	line := tr.Centerline()
	if len(line) != len(tr.Checkpoints) {
		t.Fatalf("centerline length = %d, want %d", len(line), len(tr.Checkpoints))
	}
	if line[0] != tr.Start {
		t.Errorf("centerline[0] = %v, want start %v", line[0], tr.Start)
	}
}
