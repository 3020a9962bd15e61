package system

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/circlesim/common"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
)

// BoundarySystem keeps every body and its radius inside the viewport and
// raises the edge flags. It runs after integration, which snaps to the
// floor on its own; both corrections are idempotent.
type BoundarySystem struct {
	Tuning common.Tuning
}

func NewBoundarySystem(t common.Tuning) *BoundarySystem {
	return &BoundarySystem{Tuning: t}
}

func (s *BoundarySystem) Step(w *ecs.World, tick Tick, contacts ContactReport) ContactReport {
	out := contacts.Clone()
	if s == nil || w == nil {
		return out
	}
	ents, bodies := liveBodies(w, component.BoundedComponent.ID())
	for i, body := range bodies {
		if c := s.clamp(body, tick.View); c != component.ContactNone {
			out.Set(ents[i], c)
		}
	}
	return out
}

func (s *BoundarySystem) clamp(body *component.Body, view component.Viewport) component.Contact {
	body.Radius = cp.Clamp(body.Radius, s.Tuning.MinRadius, s.Tuning.MaxRadius)
	body.Radius = math.Min(body.Radius, view.MaxRadius())
	r := body.Radius

	var c component.Contact
	if body.Position.Y+r >= view.Height {
		body.Position.Y = view.Height - r
		c = c.With(component.ContactGround)
	}
	if body.Position.Y-r <= 0 {
		body.Position.Y = r
		body.Velocity.Y = 0
		c = c.With(component.ContactCeiling)
	}
	if body.Position.X+r >= view.Width {
		body.Position.X = view.Width - r
		c = c.With(component.ContactRight)
	}
	if body.Position.X-r <= 0 {
		body.Position.X = r
		c = c.With(component.ContactLeft)
	}
	if c.Has(component.ContactSide) && !body.Bouncy {
		body.Velocity.X = 0
	}
	return c
}

// ContactColor picks the diagnostic color, lowest to highest precedence:
// default, colliding, on ground, at ceiling, at a side wall.
func ContactColor(c component.Contact) color.RGBA {
	switch {
	case c.Has(component.ContactSide):
		return component.ColorSide
	case c.Has(component.ContactCeiling):
		return component.ColorCeiling
	case c.Has(component.ContactGround):
		return component.ColorGround
	case c.Has(component.ContactColliding):
		return component.ColorColliding
	default:
		return component.ColorDefault
	}
}
