// Package camera is a chase camera for the track view. It frames the whole
// track on reset and otherwise eases toward the lead car, until the user pans
// it away.
package camera

import (
	"math"

	"github.com/pthm-cable/racetrack/geom"
)

// Camera maps world points into a viewport.
type Camera struct {
	Center geom.Point
	Zoom   float64 // screen pixels per world unit

	ViewportW, ViewportH float64

	MinZoom, MaxZoom float64

	// Smoothing is the fraction of the distance to the target covered per
	// Follow call, in (0, 1]
	Smoothing float64

	home      geom.Point
	homeZoom  float64
	following bool
}

// New creates a camera for a viewport of w×h pixels, looking at the origin
// at 1:1.
func New(w, h float64) *Camera {
	return &Camera{
		Zoom:      1,
		ViewportW: w,
		ViewportH: h,
		MinZoom:   0.25,
		MaxZoom:   4,
		Smoothing: 1,
		homeZoom:  1,
		following: true,
	}
}

// Frame sets the home view to fit every point with margin pixels to spare on
// each side, and moves there.
func (c *Camera) Frame(points []geom.Point, margin float64) {
	if len(points) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	c.home = geom.Pt((minX+maxX)/2, (minY+maxY)/2)
	c.homeZoom = 1
	w, h := maxX-minX, maxY-minY
	availW, availH := c.ViewportW-2*margin, c.ViewportH-2*margin
	if w > 0 && h > 0 && availW > 0 && availH > 0 {
		c.homeZoom = c.clampZoom(min(availW/w, availH/h))
	}
	c.Reset()
}

// Reset returns to the home view and resumes following.
func (c *Camera) Reset() {
	c.Center = c.home
	c.Zoom = c.homeZoom
	c.following = true
}

// Following reports whether Follow moves the camera.
func (c *Camera) Following() bool { return c.following }

// Follow eases the camera toward target. It does nothing after a manual pan
// until Reset.
func (c *Camera) Follow(target geom.Point) {
	if !c.following {
		return
	}
	s := min(max(c.Smoothing, 0.01), 1)
	c.Center = geom.Pt(
		c.Center.X+(target.X-c.Center.X)*s,
		c.Center.Y+(target.Y-c.Center.Y)*s,
	)
}

// Pan moves the view by (dx, dy) screen pixels and stops following.
func (c *Camera) Pan(dx, dy float64) {
	c.Center = geom.Pt(c.Center.X+dx/c.Zoom, c.Center.Y+dy/c.Zoom)
	c.following = false
}

// ZoomBy multiplies the zoom by factor, within [MinZoom, MaxZoom].
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom = c.clampZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor keeping the world point under screen (x, y) fixed.
func (c *Camera) ZoomAt(x, y float32, factor float64) {
	before := c.ToWorld(x, y)
	c.ZoomBy(factor)
	after := c.ToWorld(x, y)
	c.Center = geom.Pt(c.Center.X+before.X-after.X, c.Center.Y+before.Y-after.Y)
}

func (c *Camera) clampZoom(z float64) float64 {
	return min(max(z, c.MinZoom), c.MaxZoom)
}

// Resize changes the viewport size.
func (c *Camera) Resize(w, h float64) {
	c.ViewportW, c.ViewportH = w, h
}

// ToScreen converts a world point to screen pixels.
func (c *Camera) ToScreen(p geom.Point) (x, y float32) {
	return float32(c.ViewportW/2 + (p.X-c.Center.X)*c.Zoom),
		float32(c.ViewportH/2 + (p.Y-c.Center.Y)*c.Zoom)
}

// ToWorld converts screen pixels to a world point.
func (c *Camera) ToWorld(x, y float32) geom.Point {
	return geom.Pt(
		c.Center.X+(float64(x)-c.ViewportW/2)/c.Zoom,
		c.Center.Y+(float64(y)-c.ViewportH/2)/c.Zoom,
	)
}

// Scale converts a world length to screen pixels.
func (c *Camera) Scale(length float64) float32 {
	return float32(length * c.Zoom)
}

// Visible reports whether a circle of the given world radius around p may
// show in the viewport.
func (c *Camera) Visible(p geom.Point, radius float64) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(p.X-c.Center.X) <= halfW && math.Abs(p.Y-c.Center.Y) <= halfH
}
