package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/racetrack/components"
)

// Renderer draws panel rows in one theme.
type Renderer struct {
	Theme Theme
}

func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a bordered background box.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a heading and returns the next row's y.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawRow draws "label: value", formatting the value, and returns the next
// row's y.
func (r *Renderer) DrawRow(x, y int32, label, format string, args ...any) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(fmt.Sprintf(format, args...), x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// Meter is a labelled fill bar for a count out of a total.
type Meter struct {
	Label          string
	Current, Total int
	// Warn colors the fill with BarFillLow when the fraction drops below it
	Warn float32
}

// DrawMeter draws m across width and returns the next row's y.
func (r *Renderer) DrawMeter(x, y int32, m Meter, width int32) int32 {
	f := fraction(m.Current, m.Total)
	barX := x + r.Theme.LabelWidth
	barW := width - r.Theme.LabelWidth - 60

	rl.DrawText(m.Label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barW, r.Theme.BarHeight, r.Theme.BarBg)

	fill := r.Theme.BarFill
	if f < m.Warn {
		fill = r.Theme.BarFillLow
	}
	rl.DrawRectangle(barX, y+2, int32(float32(barW)*f), r.Theme.BarHeight, fill)

	rl.DrawText(fmt.Sprintf("%d/%d", m.Current, m.Total), barX+barW+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

// DrawFields draws one row per descriptor with the matching value.
func (r *Renderer) DrawFields(x, y int32, fields []components.FieldDescriptor, values []int) int32 {
	for i, fd := range fields {
		if i >= len(values) {
			break
		}
		y = r.DrawRow(x, y, fd.Label, fd.Format, values[i])
	}
	return y
}

// fraction returns current/total clamped to [0, 1]; 0 when total is not positive.
func fraction(current, total int) float32 {
	if total <= 0 {
		return 0
	}
	return min(max(float32(current)/float32(total), 0), 1)
}
