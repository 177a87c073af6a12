package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the panel shows.
type ControlsState struct {
	Speed         int
	MaxSpeed      int
	ObstacleCount int
	MaxObstacles  int
	Dynamic       bool
}

// ControlsAction is what the user asked for this frame.
type ControlsAction struct {
	Speed          int  // requested speed; equal to the state when unchanged
	ApplyObstacles bool // regenerate the field with ObstacleCount obstacles
	ObstacleCount  int
	ToggleDynamic  bool
	SaveBrain      bool
	LoadBrain      bool
	NextGeneration bool
}

// ControlsPanel renders the right-side settings panel with raygui widgets
// and the overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32

	// Obstacle slider value waiting for Apply
	pendingObstacles float32
	pendingSet       bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the requested actions and the Y below it.
func (c *ControlsPanel) Draw(state ControlsState, overlays *Overlays) (ControlsAction, int32) {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	if !c.pendingSet {
		c.pendingObstacles = float32(state.ObstacleCount)
		c.pendingSet = true
	}

	action := ControlsAction{Speed: state.Speed, ObstacleCount: state.ObstacleCount}

	x := float32(c.x + padding)
	inner := float32(c.width - padding*2)
	y := c.y + padding

	y = r.DrawSectionHeader(c.x+padding, y, "Simulation")

	rl.DrawText(fmt.Sprintf("Speed: %dx", state.Speed), c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	speed := gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: float32(y), Width: inner - 60, Height: 18},
		"1", fmt.Sprintf("%d", state.MaxSpeed),
		float32(state.Speed), 1, float32(state.MaxSpeed),
	)
	action.Speed = int(math.Round(float64(speed)))
	y += 26

	rl.DrawText(fmt.Sprintf("Obstacles: %d", int(c.pendingObstacles)), c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	c.pendingObstacles = gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: float32(y), Width: inner - 60, Height: 18},
		"0", fmt.Sprintf("%d", state.MaxObstacles),
		c.pendingObstacles, 0, float32(state.MaxObstacles),
	)
	y += 24

	half := (inner - 6) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 22}, "Apply") {
		action.ApplyObstacles = true
		action.ObstacleCount = int(math.Round(float64(c.pendingObstacles)))
	}
	dynamicLabel := "Dynamic: off"
	if state.Dynamic {
		dynamicLabel = "Dynamic: on"
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: 22}, dynamicLabel) {
		action.ToggleDynamic = true
	}
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 22}, "Save brain") {
		action.SaveBrain = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 6, Y: float32(y), Width: half, Height: 22}, "Load brain") {
		action.LoadBrain = true
	}
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 22}, "Next generation") {
		action.NextGeneration = true
	}
	y += 34

	if overlays != nil {
		y = c.drawOverlays(y, overlays)
	}

	return action, y
}

// drawOverlays lists the overlay toggles by group.
func (c *ControlsPanel) drawOverlays(y int32, overlays *Overlays) int32 {
	r := c.renderer
	padding := r.Theme.Padding

	y = r.DrawSectionHeader(c.x+padding, y, "Overlays")
	for _, group := range overlays.Groups() {
		for _, info := range group.Items {
			c.drawToggle(c.x+padding, y, info, overlays.On(info.Overlay), c.width-padding*2)
			y += r.Theme.LineHeight
		}
		y += 4
	}
	return y
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, info OverlayInfo, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = r.Theme.Positive
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+3, 8, 8, statusColor)
	rl.DrawText(info.Name, x+14, y, r.Theme.FontSize, nameColor)

	keyText := fmt.Sprintf("[%s]", info.KeyLabel())
	keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
	rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Gray)
}
