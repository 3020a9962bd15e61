package component

import "math"

// Viewport is the playable area in pixels, origin at the top-left corner.
type Viewport struct {
	Width  float64
	Height float64
}

// MaxRadius is the largest radius that still fits inside the viewport.
func (v Viewport) MaxRadius() float64 {
	return math.Min(v.Width, v.Height) / 2
}

// Floor is the y coordinate of the bottom edge.
func (v Viewport) Floor() float64 {
	return v.Height
}
