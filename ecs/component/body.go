package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
)

// Body is the physical state of one circular entity.
type Body struct {
	Name     string
	Position cp.Vector
	Velocity cp.Vector
	Radius   float64
	// Weight is the mass proxy. Non-positive values fall back to Radius.
	Weight float64
	Color  color.RGBA

	Movable bool
	Bouncy  bool
	Static  bool

	// MarkedForDeletion asks the owner to destroy the body after the tick.
	MarkedForDeletion bool
}

var BodyComponent = NewComponent[Body]()

// Mass returns Weight, or Radius when Weight is unset, or 1 as a last resort.
func (b *Body) Mass() float64 {
	switch {
	case b.Weight > 0:
		return b.Weight
	case b.Radius > 0:
		return b.Radius
	default:
		return 1
	}
}

// InverseMass is zero for static bodies.
func (b *Body) InverseMass() float64 {
	if b.Static {
		return 0
	}
	return 1 / b.Mass()
}

// Diagnostic palette. Precedence is resolved by the boundary stage.
var (
	ColorDefault   = colornames.Red
	ColorColliding = colornames.Blue
	ColorGround    = colornames.Green
	ColorCeiling   = colornames.Yellow
	ColorSide      = colornames.Purple
)

// NamedColor looks up an SVG color name such as "green" or "steelblue".
func NamedColor(name string) (color.RGBA, bool) {
	c, ok := colornames.Map[name]
	return c, ok
}
