package ui

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/racetrack/neural"
)

func TestLayerRows(t *testing.T) {
	net := neural.NewNetwork(rand.New(rand.NewSource(42)), 5, 6, 4)

	rows := layerRows(net)
	want := []int{5, 6, 4}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("rows[%d] = %d, want %d", i, rows[i], want[i])
		}
	}

	if layerRows(nil) != nil {
		t.Error("nil network should have no rows")
	}
}

func TestNodePositions(t *testing.T) {
	pos := nodePositions([]int{3, 1}, 0, 0, 100, 200, 10)

	// Inputs sit on the bottom margin, spread across the width.
	if pos[0][0].X != 10 || pos[0][2].X != 90 {
		t.Errorf("input row x = %v..%v, want 10..90", pos[0][0].X, pos[0][2].X)
	}
	if pos[0][0].Y != 190 {
		t.Errorf("input row y = %v, want 190", pos[0][0].Y)
	}

	// A single node is centered; the last row sits on the top margin.
	if pos[1][0].X != 50 || pos[1][0].Y != 10 {
		t.Errorf("output node = %v, want (50, 10)", pos[1][0])
	}
}
