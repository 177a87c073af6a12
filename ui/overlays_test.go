package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayDefaults(t *testing.T) {
	s := NewOverlays()

	for _, o := range []Overlay{OverlayCheckpoints, OverlayPopulation, OverlaySensors, OverlayNetwork} {
		if !s.On(o) {
			t.Errorf("overlay %d should start on", o)
		}
	}
	if s.On(OverlayHitboxes) {
		t.Error("hitboxes should start off")
	}
}

func TestOverlayGroups(t *testing.T) {
	groups := NewOverlays().Groups()

	want := []struct {
		name  string
		items int
	}{{"track", 1}, {"cars", 2}, {"debug", 2}}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(groups), len(want))
	}
	for i, w := range want {
		if groups[i].Name != w.name || len(groups[i].Items) != w.items {
			t.Errorf("group %d = %s with %d items, want %s with %d", i, groups[i].Name, len(groups[i].Items), w.name, w.items)
		}
	}
}

func TestOverlayToggleIsIndependent(t *testing.T) {
	s := NewOverlays()

	if !s.Toggle(OverlayHitboxes) {
		t.Error("first toggle should turn hitboxes on")
	}
	if !s.On(OverlaySensors) {
		t.Error("toggling hitboxes changed sensors")
	}
	if s.Toggle(OverlayHitboxes) {
		t.Error("second toggle should turn hitboxes off")
	}

	s.Set(OverlaySensors, false)
	s.Set(OverlaySensors, false)
	if s.On(OverlaySensors) {
		t.Error("Set(false) should be idempotent")
	}
}

func TestOverlayHandleKey(t *testing.T) {
	s := NewOverlays()

	o, on, ok := s.HandleKey(rl.KeyH)
	if !ok || o != OverlayHitboxes || !on {
		t.Errorf("HandleKey(H) = %d, %v, %v", o, on, ok)
	}
	if _, _, ok := s.HandleKey(rl.KeyZ); ok {
		t.Error("unbound key should not toggle")
	}
	if n := len(s.Keys()); n != 5 {
		t.Errorf("Keys() has %d entries, want 5", n)
	}
}

func TestOverlayKeyLabel(t *testing.T) {
	if got := (OverlayInfo{Key: rl.KeyS}).KeyLabel(); got != "S" {
		t.Errorf("KeyLabel = %q, want S", got)
	}
}
