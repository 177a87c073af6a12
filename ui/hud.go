package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/racetrack/components"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Generation  int
	Active      int
	Saved       int
	Clock       int
	Lifespan    int
	BestFitness int
	Record      int
	Stagnation  int // generations since Record improved
	Checkpoints int
	Speed       int
	FPS         int32
	Paused      bool
	FreeCamera  bool // camera panned away from the lead car
	Status      string
}

// HUD renders the heads-up display over the track view.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x := int32(10)
	y := int32(10)
	width := int32(260)

	r.DrawPanel(x-6, y-6, width+12, r.Theme.LineHeight*6+16)

	y = r.DrawRow(x, y, "Generation", "%d", data.Generation)
	y = r.DrawRow(x, y, "Active", "%d (%d out)", data.Active, data.Saved)
	y = r.DrawRow(x, y, "Record", "%d (%d gens ago)", data.Record, data.Stagnation)
	// The last gate sits where the first one is, so a lap is Checkpoints-1 gates.
	y = r.DrawMeter(x, y, Meter{Label: "Best", Current: data.BestFitness, Total: max(data.Checkpoints-1, 1)}, width)
	y = r.DrawMeter(x, y, Meter{Label: "Clock", Current: data.Clock, Total: data.Lifespan, Warn: 0.25}, width)

	status := fmt.Sprintf("Speed %dx  FPS %d", data.Speed, data.FPS)
	if data.FreeCamera {
		status += "  (HOME to follow)"
	}
	color := rl.LightGray
	if data.Paused {
		status = "PAUSED"
		color = rl.Yellow
	}
	rl.DrawText(status, x, y, r.Theme.FontSize, color)

	if data.Status != "" {
		rl.DrawText(data.Status, x, y+r.Theme.LineHeight+8, r.Theme.FontSize, rl.SkyBlue)
	}
}

// DrawBestAgent lists the best agent's fields below the main HUD block.
func (h *HUD) DrawBestAgent(fields []components.FieldDescriptor, values []int) {
	r := h.renderer
	x := int32(10)
	y := int32(10) + r.Theme.LineHeight*6 + 24
	r.DrawPanel(x-6, y-6, 272, r.Theme.LineHeight*int32(len(fields))+12)
	r.DrawFields(x, y, fields, values)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
