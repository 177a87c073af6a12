package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/racetrack/ui"
)

// controlsLegend is drawn along the bottom of the track view.
const controlsLegend = "SPACE pause  </> speed  G next gen  K save  L load  F fame  arrows pan  +/- zoom  HOME reset"

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetSpeed(g.speed - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetSpeed(g.speed + 1)
	}

	if rl.IsKeyPressed(rl.KeyG) {
		g.sim.NextGeneration()
		g.flushTelemetry()
	}
	if rl.IsKeyPressed(rl.KeyK) {
		g.saveBrainFromUI()
	}
	if rl.IsKeyPressed(rl.KeyL) {
		g.loadBrainFromUI()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		g.recallFromUI()
	}

	if g.overlays != nil {
		for _, key := range g.overlays.Keys() {
			if rl.IsKeyPressed(key) {
				g.overlays.HandleKey(key)
			}
		}
	}

	g.handleCameraInput()
}

// applyControls carries out the side panel's requests.
func (g *Game) applyControls(action ui.ControlsAction) {
	if action.Speed != g.speed {
		g.SetSpeed(action.Speed)
	}
	if action.ApplyObstacles {
		g.sim.SetObstacleCount(action.ObstacleCount)
	}
	if action.ToggleDynamic {
		g.sim.SetDynamicObstacles(!g.sim.Settings().DynamicObstacles)
	}
	if action.SaveBrain {
		g.saveBrainFromUI()
	}
	if action.LoadBrain {
		g.loadBrainFromUI()
	}
	if action.NextGeneration {
		g.sim.NextGeneration()
		g.flushTelemetry()
	}
}

func (g *Game) saveBrainFromUI() {
	if err := g.SaveBrain(); err != nil {
		g.status = "save failed: " + err.Error()
		return
	}
	g.status = "saved " + g.brainPath
}

func (g *Game) loadBrainFromUI() {
	if err := g.LoadBrain(); err != nil {
		g.status = "load failed: " + err.Error()
		return
	}
	g.status = "loaded " + g.brainPath
}

func (g *Game) recallFromUI() {
	entry, err := g.RecallHallOfFame()
	if err != nil {
		g.status = "recall failed: " + err.Error()
		return
	}
	g.status = fmt.Sprintf("recalled gen %d (fitness %d)", entry.Generation, entry.Fitness)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if g.camera != nil {
		g.camera.Resize(float64(g.viewportWidth()), float64(h))
	}
	if g.controls != nil {
		g.controls.SetPosition(int32(g.viewportWidth()), 0)
	}
}

// handleCameraInput processes camera pan/zoom controls. Panning detaches the
// camera from the lead car until Home.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	const panSpeed = 8.0

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Zoom only when the mouse is over the track view
	if mouse := rl.GetMousePosition(); mouse.X < g.viewportWidth() {
		if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
			g.camera.ZoomAt(mouse.X, mouse.Y, 1.0+float64(wheelMove)*0.1)
		}
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
