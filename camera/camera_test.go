package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/racetrack/geom"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestToScreenCentered(t *testing.T) {
	cam := New(800, 600)
	cam.Center = geom.Pt(50, -20)

	x, y := cam.ToScreen(geom.Pt(50, -20))
	if x != 400 || y != 300 {
		t.Errorf("center maps to (%v, %v), want (400, 300)", x, y)
	}
}

func TestToWorldRoundTrip(t *testing.T) {
	cam := New(800, 600)
	cam.Center = geom.Pt(120, -40)
	cam.ZoomBy(2)

	for _, p := range []geom.Point{geom.Pt(120, -40), geom.Pt(0, 0), geom.Pt(300, 75.5)} {
		x, y := cam.ToScreen(p)
		back := cam.ToWorld(x, y)
		if math.Abs(back.X-p.X) > 1e-3 || math.Abs(back.Y-p.Y) > 1e-3 {
			t.Errorf("round trip %v -> %v", p, back)
		}
	}
}

func TestFrameFitsPoints(t *testing.T) {
	cam := New(800, 600)
	cam.MaxZoom = 10

	// A 100x50 box in a 800x600 viewport with 50px margins: width limits the zoom.
	cam.Frame([]geom.Point{geom.Pt(0, 0), geom.Pt(100, 50), geom.Pt(40, 10)}, 50)

	if !near(cam.Center.X, 50) || !near(cam.Center.Y, 25) {
		t.Errorf("center = %v, want (50, 25)", cam.Center)
	}
	if !near(cam.Zoom, 7) {
		t.Errorf("zoom = %v, want 7", cam.Zoom)
	}

	x, _ := cam.ToScreen(geom.Pt(0, 0))
	if math.Abs(float64(x)-50) > 1e-3 {
		t.Errorf("left edge at x=%v, want the 50px margin", x)
	}
}

func TestFrameClampsZoom(t *testing.T) {
	cam := New(800, 600)
	cam.Frame([]geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}, 0)

	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %v, want clamped to %v", cam.Zoom, cam.MaxZoom)
	}
}

func TestFollowSmoothing(t *testing.T) {
	cam := New(800, 600)
	cam.Smoothing = 0.5

	cam.Follow(geom.Pt(100, 0))
	if !near(cam.Center.X, 50) {
		t.Errorf("after one step x = %v, want 50", cam.Center.X)
	}
	cam.Follow(geom.Pt(100, 0))
	if !near(cam.Center.X, 75) {
		t.Errorf("after two steps x = %v, want 75", cam.Center.X)
	}
}

func TestPanStopsFollowingUntilReset(t *testing.T) {
	cam := New(800, 600)
	cam.Frame([]geom.Point{geom.Pt(0, 0), geom.Pt(400, 300)}, 0)
	home := cam.Center

	cam.Pan(10, 0)
	if cam.Following() {
		t.Fatal("pan should stop following")
	}
	panned := cam.Center
	cam.Follow(geom.Pt(1000, 1000))
	if cam.Center != panned {
		t.Error("follow moved a detached camera")
	}

	cam.Reset()
	if !cam.Following() || cam.Center != home {
		t.Errorf("reset: following=%v center=%v, want true and %v", cam.Following(), cam.Center, home)
	}
}

func TestZoomLimits(t *testing.T) {
	cam := New(800, 600)

	tests := []struct {
		factor float64
		want   float64
	}{
		{2, 2},
		{10, 4},
		{0.001, 0.25},
	}
	for _, tt := range tests {
		cam.ZoomBy(tt.factor)
		if !near(cam.Zoom, tt.want) {
			t.Errorf("ZoomBy(%v) -> %v, want %v", tt.factor, cam.Zoom, tt.want)
		}
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(800, 600)
	cam.Center = geom.Pt(10, 10)

	under := cam.ToWorld(600, 150)
	cam.ZoomAt(600, 150, 2)

	if !near(cam.Zoom, 2) {
		t.Errorf("zoom = %v, want 2", cam.Zoom)
	}
	got := cam.ToWorld(600, 150)
	if math.Abs(got.X-under.X) > 1e-6 || math.Abs(got.Y-under.Y) > 1e-6 {
		t.Errorf("point under cursor moved from %v to %v", under, got)
	}
}

func TestVisible(t *testing.T) {
	cam := New(800, 600)

	tests := []struct {
		name   string
		p      geom.Point
		radius float64
		want   bool
	}{
		{"center", geom.Pt(0, 0), 0, true},
		{"edge", geom.Pt(400, 0), 0, true},
		{"outside", geom.Pt(450, 0), 10, false},
		{"radius reaches in", geom.Pt(450, 0), 60, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.Visible(tt.p, tt.radius); got != tt.want {
				t.Errorf("Visible(%v, %v) = %v, want %v", tt.p, tt.radius, got, tt.want)
			}
		})
	}
}
