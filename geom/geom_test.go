package geom

import (
	"math"
	"testing"
)

func square(x, y, size float64) Polygon {
	return Polygon{Pt(x, y), Pt(x+size, y), Pt(x+size, y+size), Pt(x, y+size)}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		name    string
		a, b, t float64
		want    float64
	}{
		{"start", 2, 10, 0, 2},
		{"end", 2, 10, 1, 10},
		{"middle", 2, 10, 0.5, 6},
		{"extrapolate above", 0, 10, 1.5, 15},
		{"extrapolate below", 0, 10, -0.5, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(tt.a, tt.b, tt.t); got != tt.want {
				t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
			}
		})
	}
}

func TestSegmentIntersection(t *testing.T) {
	touch, ok := SegmentIntersection(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0))
	if !ok {
		t.Fatal("crossing diagonals should intersect")
	}
	if math.Abs(touch.Offset-0.5) > 1e-9 {
		t.Errorf("offset = %v, want 0.5", touch.Offset)
	}
	if math.Abs(touch.Point.X-5) > 1e-9 || math.Abs(touch.Point.Y-5) > 1e-9 {
		t.Errorf("point = %v, want (5, 5)", touch.Point)
	}

	if _, ok := SegmentIntersection(Pt(0, 0), Pt(10, 0), Pt(0, 1), Pt(10, 1)); ok {
		t.Error("parallel segments should not intersect")
	}
	if _, ok := SegmentIntersection(Pt(0, 0), Pt(1, 1), Pt(5, 0), Pt(5, 10)); ok {
		t.Error("segment ending before the other should not intersect")
	}
}

func TestPolysIntersect(t *testing.T) {
	tests := []struct {
		name string
		p, q Polygon
		want bool
	}{
		{"overlapping squares", square(0, 0, 2), square(1, 1, 2), true},
		{"squares sharing an edge", square(0, 0, 1), square(1, 0, 1), true},
		{"disjoint squares", square(0, 0, 1), square(5, 5, 1), false},
		{"contained square without crossing", square(0, 0, 10), square(4, 4, 1), false},
		{"zero-length segment on an edge", Polygon{Pt(1, 0), Pt(1, 0)}, square(0, 0, 2), false},
		{"zero-length segment inside", Polygon{Pt(1, 1), Pt(1, 1)}, square(0, 0, 2), false},
		{"square against zero-length segment", square(0, 0, 2), Polygon{Pt(2, 1), Pt(2, 1)}, false},
		{"segment quad crossing square", SegmentPolygon(Pt(-1, 1), Pt(3, 1)), square(0, 0, 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolysIntersect(tt.p, tt.q); got != tt.want {
				t.Errorf("PolysIntersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := Rect(10, 20, 20, 10)
	if len(r) != 4 {
		t.Fatalf("len = %d, want 4", len(r))
	}
	if r[0] != Pt(0, 15) || r[2] != Pt(20, 25) {
		t.Errorf("unexpected corners %v", r)
	}
}

func TestOrientedRectUnrotated(t *testing.T) {
	r := OrientedRect(0, 0, 30, 50, 0)
	for _, p := range r {
		if math.Abs(math.Abs(p.X)-15) > 1e-9 || math.Abs(math.Abs(p.Y)-25) > 1e-9 {
			t.Errorf("corner %v not on the 30x50 box", p)
		}
	}
}
