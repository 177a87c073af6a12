package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/racetrack/agent"
	"github.com/pthm-cable/racetrack/car"
	"github.com/pthm-cable/racetrack/components"
	"github.com/pthm-cable/racetrack/geom"
	"github.com/pthm-cable/racetrack/ui"
)

var (
	colorBackground = rl.Color{R: 60, G: 110, B: 60, A: 255}
	colorRoad       = rl.Color{R: 90, G: 90, B: 95, A: 255}
	colorWall       = rl.White
	colorCheckpoint = rl.Color{R: 255, G: 255, B: 255, A: 50}
	colorObstacle   = rl.Color{R: 200, G: 60, B: 60, A: 255}
	colorCar        = rl.Color{R: 40, G: 40, B: 40, A: 50}
	colorBest       = rl.Color{R: 30, G: 90, B: 220, A: 255}
	colorDamaged    = rl.Gray
	colorRay        = rl.Yellow
	colorRayHit     = rl.Black
	colorHitbox     = rl.Color{R: 255, G: 0, B: 255, A: 160}
)

// Draw renders the track view, the side panel and the HUD.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	vw := int32(g.viewportWidth())
	rl.BeginScissorMode(0, 0, vw, int32(g.screenHeight))
	g.drawTrack()
	g.drawObstacles()
	if g.overlays.On(ui.OverlayPopulation) {
		g.drawPopulation()
	}
	g.drawBest()
	rl.EndScissorMode()

	g.drawUI()

	rl.EndDrawing()
}

// toScreen converts a world point to screen coordinates.
func (g *Game) toScreen(p geom.Point) rl.Vector2 {
	x, y := g.camera.ToScreen(p)
	return rl.Vector2{X: x, Y: y}
}

// drawTrack draws the road surface, walls and checkpoints.
func (g *Game) drawTrack() {
	tr := g.sim.Track()
	roadWidth := g.camera.Scale(tr.Width)

	center := tr.Centerline()
	for i := range center {
		a := g.toScreen(center[i])
		b := g.toScreen(center[(i+1)%len(center)])
		rl.DrawLineEx(a, b, roadWidth, colorRoad)
		rl.DrawCircleV(a, roadWidth/2, colorRoad)
	}

	if g.overlays.On(ui.OverlayCheckpoints) {
		for _, c := range tr.Checkpoints {
			rl.DrawLineEx(g.toScreen(c.A), g.toScreen(c.B), 1, colorCheckpoint)
		}
	}

	for _, w := range tr.Walls {
		rl.DrawLineEx(g.toScreen(w.A), g.toScreen(w.B), 2, colorWall)
	}

	start := g.toScreen(tr.Start)
	rl.DrawCircleLines(int32(start.X), int32(start.Y), g.camera.Scale(6), rl.Green)
}

// drawObstacles fills each obstacle box.
func (g *Game) drawObstacles() {
	for _, o := range g.sim.Obstacles() {
		g.fillPolygon(o.Polygon, colorObstacle)
	}
}

// drawPopulation draws every active car translucent.
func (g *Game) drawPopulation() {
	hitboxes := g.overlays.On(ui.OverlayHitboxes)
	for _, a := range g.sim.ActiveAgents() {
		poly := a.Polygon()
		if !g.onScreen(a.Position(), poly) {
			continue
		}
		g.fillPolygon(poly, colorCar)
		if hitboxes {
			g.strokePolygon(poly, colorHitbox)
		}
	}
}

// drawBest draws the best car opaque, with its sensor rays on top.
func (g *Game) drawBest() {
	best, _, ok := g.sim.BestAgent()
	if !ok {
		return
	}

	color := colorBest
	if best.Damaged() {
		color = colorDamaged
	}
	g.fillPolygon(best.Polygon(), color)
	if g.overlays.On(ui.OverlayHitboxes) {
		g.strokePolygon(best.Polygon(), colorHitbox)
	}

	if g.overlays.On(ui.OverlaySensors) {
		g.drawSensor(best)
	}
}

// drawSensor draws each ray yellow up to its contact and black beyond it.
func (g *Game) drawSensor(a agent.Agent) {
	c, ok := a.(*car.Car)
	if !ok {
		return
	}
	s := c.Sensor()
	for i, ray := range s.Rays {
		start := g.toScreen(ray.Start)
		end := g.toScreen(ray.End)
		if i < len(s.Readings) && s.Readings[i].Hit {
			touch := g.toScreen(s.Readings[i].Point)
			rl.DrawLineEx(start, touch, 2, colorRay)
			rl.DrawLineEx(touch, end, 2, colorRayHit)
			continue
		}
		rl.DrawLineEx(start, end, 2, colorRay)
	}
}

// onScreen reports whether a body around center may be in the viewport.
func (g *Game) onScreen(center geom.Point, poly geom.Polygon) bool {
	radius := 0.0
	for _, p := range poly {
		radius = max(radius, math.Hypot(p.X-center.X, p.Y-center.Y))
	}
	return g.camera.Visible(center, radius)
}

// fillPolygon fills a convex polygon as a triangle fan. Both windings are
// drawn so the result does not depend on vertex order.
func (g *Game) fillPolygon(poly geom.Polygon, color rl.Color) {
	if len(poly) < 3 {
		return
	}
	p0 := g.toScreen(poly[0])
	for i := 1; i+1 < len(poly); i++ {
		p1 := g.toScreen(poly[i])
		p2 := g.toScreen(poly[i+1])
		rl.DrawTriangle(p0, p1, p2, color)
		rl.DrawTriangle(p0, p2, p1, color)
	}
}

// strokePolygon outlines a closed polygon.
func (g *Game) strokePolygon(poly geom.Polygon, color rl.Color) {
	for i := range poly {
		rl.DrawLineEx(g.toScreen(poly[i]), g.toScreen(poly[(i+1)%len(poly)]), 1, color)
	}
}

// drawUI draws the side panel and the HUD.
func (g *Game) drawUI() {
	cfg := g.sim.Settings()
	px := int32(g.viewportWidth())
	pw := int32(g.panelWidth)
	h := int32(g.screenHeight)

	rl.DrawRectangle(px, 0, pw, h, rl.Color{R: 15, G: 18, B: 22, A: 255})

	action, y := g.controls.Draw(ui.ControlsState{
		Speed:         g.speed,
		MaxSpeed:      g.maxSpeed,
		ObstacleCount: cfg.ObstacleCount,
		MaxObstacles:  g.maxObstacles(),
		Dynamic:       cfg.DynamicObstacles,
	}, g.overlays)
	g.applyControls(action)

	if g.overlays.On(ui.OverlayNetwork) {
		if c, ok := g.bestCar(); ok && y < h-60 {
			g.netView.Draw(c.Network(), px+10, y+6, pw-20, h-y-16)
		}
	}

	record := g.collector.Record()
	if best := g.sim.BestFitness(); best > record {
		record = best
	}
	g.hud.Draw(ui.HUDData{
		Generation:  g.sim.Generation(),
		Active:      g.sim.ActiveCount(),
		Saved:       g.sim.SavedCount(),
		Clock:       g.sim.Clock(),
		Lifespan:    cfg.Lifespan,
		BestFitness: g.sim.BestFitness(),
		Record:      record,
		Stagnation:  g.collector.Stagnation(),
		Checkpoints: len(g.sim.Track().Checkpoints),
		Speed:       g.speed,
		FPS:         rl.GetFPS(),
		Paused:      g.paused,
		FreeCamera:  !g.camera.Following(),
		Status:      g.status,
	})
	g.drawBestLineage()
	g.hud.DrawControls(h, controlsLegend)
}

// drawBestLineage lists where the best car came from under the HUD.
func (g *Game) drawBestLineage() {
	e, ok := g.sim.Best()
	if !ok {
		return
	}
	lineage, ok := g.sim.Lineage(e)
	if !ok {
		return
	}
	fitness := components.Fitness{Checkpoint: g.sim.Fitness(e)}
	g.hud.DrawBestAgent(components.AgentFieldDescriptors(), lineage.Values(fitness))
}

// bestCar returns the best agent as a car.
func (g *Game) bestCar() (*car.Car, bool) {
	best, _, ok := g.sim.BestAgent()
	if !ok {
		return nil, false
	}
	c, ok := best.(*car.Car)
	return c, ok
}

// maxObstacles is the obstacle slider's upper bound.
func (g *Game) maxObstacles() int {
	return max(g.sim.Settings().ObstacleCount, g.obstacleLimit, 1)
}
