package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/racetrack/neural"
)

// outputLabels name the car controls in output order.
var outputLabels = []string{"F", "L", "R", "B"}

// NetworkView draws a network's layers bottom to top, inputs first, with the
// live neuron values from the last feed-forward pass.
type NetworkView struct {
	renderer *Renderer
}

// NewNetworkView creates a new network view.
func NewNetworkView() *NetworkView {
	return &NetworkView{renderer: NewRenderer()}
}

// layerRows returns the node count of each row, inputs first.
func layerRows(net *neural.Network) []int {
	if net == nil || len(net.Levels) == 0 {
		return nil
	}
	rows := make([]int, 0, len(net.Levels)+1)
	rows = append(rows, len(net.Levels[0].Inputs))
	for _, l := range net.Levels {
		rows = append(rows, len(l.Outputs))
	}
	return rows
}

// nodePositions lays rows out from the bottom of the box to the top, each
// row's nodes spread evenly across the width.
func nodePositions(rows []int, x, y, width, height, margin float32) [][]rl.Vector2 {
	pos := make([][]rl.Vector2, len(rows))
	innerW := width - margin*2
	innerH := height - margin*2
	for i, n := range rows {
		rowY := y + height - margin
		if len(rows) > 1 {
			rowY -= innerH * float32(i) / float32(len(rows)-1)
		}
		pos[i] = make([]rl.Vector2, n)
		for j := 0; j < n; j++ {
			t := float32(0.5)
			if n > 1 {
				t = float32(j) / float32(n-1)
			}
			pos[i][j] = rl.Vector2{X: x + margin + innerW*t, Y: rowY}
		}
	}
	return pos
}

// Draw renders net inside the given box.
func (v *NetworkView) Draw(net *neural.Network, x, y, width, height int32) {
	r := v.renderer
	r.DrawPanel(x, y, width, height)

	rows := layerRows(net)
	if rows == nil {
		rl.DrawText("no network", x+r.Theme.Padding, y+r.Theme.Padding, r.Theme.FontSize, r.Theme.LabelColor)
		return
	}

	const radius = 9
	pos := nodePositions(rows, float32(x), float32(y), float32(width), float32(height), 24)

	for i, l := range net.Levels {
		for in := range l.Weights {
			for out, w := range l.Weights[in] {
				if in >= len(pos[i]) || out >= len(pos[i+1]) {
					continue
				}
				rl.DrawLineEx(pos[i][in], pos[i+1][out], 1.5, weightColor(w, r.Theme))
			}
		}
	}

	for i, row := range pos {
		values := rowValues(net, i)
		for j, p := range row {
			value := 0.0
			if j < len(values) {
				value = values[j]
			}
			rl.DrawCircleV(p, radius, rl.Black)
			rl.DrawCircleV(p, radius*0.7, valueColor(value))

			if i > 0 {
				bias := net.Levels[i-1].Biases[j]
				rl.DrawCircleLines(int32(p.X), int32(p.Y), radius+2, weightColor(bias, r.Theme))
			}
			if i == len(pos)-1 && j < len(outputLabels) {
				rl.DrawText(outputLabels[j], int32(p.X)-4, int32(p.Y)-radius-16, r.Theme.FontSize, r.Theme.ValueColor)
			}
		}
	}
}

// rowValues returns the last values seen at row i.
func rowValues(net *neural.Network, i int) []float64 {
	if i == 0 {
		return net.Levels[0].Inputs
	}
	return net.Levels[i-1].Outputs
}

// weightColor is green for positive and red for negative, more opaque the
// larger the magnitude.
func weightColor(w float64, theme Theme) rl.Color {
	c := theme.Positive
	if w < 0 {
		c = theme.Negative
	}
	c.A = uint8(40 + 215*math.Min(1, math.Abs(w)))
	return c
}

// valueColor shades a neuron from dark to yellow by activation.
func valueColor(v float64) rl.Color {
	a := uint8(255 * math.Max(0, math.Min(1, v)))
	return rl.Color{R: 255, G: 220, B: 0, A: a}
}
