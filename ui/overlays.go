package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Overlay is one optional layer of the track view. Values are bit flags.
type Overlay uint8

const (
	OverlayCheckpoints Overlay = 1 << iota
	OverlayPopulation
	OverlaySensors
	OverlayNetwork
	OverlayHitboxes
)

// OverlayInfo describes how an overlay is listed and toggled.
type OverlayInfo struct {
	Overlay Overlay
	Name    string
	Key     int32
	Group   string
}

// KeyLabel is the printable name of the toggle key.
func (o OverlayInfo) KeyLabel() string {
	return string(rune(o.Key))
}

// overlayTable lists overlays in panel order; groups appear in first-use order.
var overlayTable = []OverlayInfo{
	{OverlayCheckpoints, "Checkpoints", rl.KeyC, "track"},
	{OverlayPopulation, "All cars", rl.KeyA, "cars"},
	{OverlaySensors, "Best sensors", rl.KeyS, "cars"},
	{OverlayNetwork, "Network", rl.KeyN, "debug"},
	{OverlayHitboxes, "Hitboxes", rl.KeyH, "debug"},
}

const defaultOverlays = OverlayCheckpoints | OverlayPopulation | OverlaySensors | OverlayNetwork

// OverlayGroup is a heading in the overlay list.
type OverlayGroup struct {
	Name  string
	Items []OverlayInfo
}

// Overlays is the set of overlays currently shown.
type Overlays struct {
	on Overlay
}

// NewOverlays returns the default set: everything except hitboxes.
func NewOverlays() *Overlays {
	return &Overlays{on: defaultOverlays}
}

func (s *Overlays) On(o Overlay) bool { return s.on&o != 0 }

// Set shows or hides o.
func (s *Overlays) Set(o Overlay, on bool) {
	if on {
		s.on |= o
	} else {
		s.on &^= o
	}
}

// Toggle flips o and returns its new state.
func (s *Overlays) Toggle(o Overlay) bool {
	s.on ^= o
	return s.On(o)
}

// HandleKey toggles the overlay bound to key, if any.
func (s *Overlays) HandleKey(key int32) (Overlay, bool, bool) {
	for _, info := range overlayTable {
		if info.Key == key {
			return info.Overlay, s.Toggle(info.Overlay), true
		}
	}
	return 0, false, false
}

// Keys returns the toggle keys in table order.
func (s *Overlays) Keys() []int32 {
	keys := make([]int32, len(overlayTable))
	for i, info := range overlayTable {
		keys[i] = info.Key
	}
	return keys
}

// Groups returns the overlay table grouped for display.
func (s *Overlays) Groups() []OverlayGroup {
	var groups []OverlayGroup
	for _, info := range overlayTable {
		if n := len(groups); n > 0 && groups[n-1].Name == info.Group {
			groups[n-1].Items = append(groups[n-1].Items, info)
			continue
		}
		groups = append(groups, OverlayGroup{Name: info.Group, Items: []OverlayInfo{info}})
	}
	return groups
}
