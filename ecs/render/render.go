package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
	"golang.org/x/image/colornames"
)

// velocityScale stretches velocity arrows so slow bodies stay readable.
const velocityScale = 4

// ContactSource reports the flags raised for a body in the last tick.
type ContactSource interface {
	Contacts(e ecs.Entity) component.Contact
}

// RenderSystem draws every body as a filled circle in its contact color.
type RenderSystem struct {
	Debug bool

	contacts ContactSource
}

func NewRenderSystem(contacts ContactSource) *RenderSystem {
	return &RenderSystem{contacts: contacts}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.BodyComponent, func(e ecs.Entity, b *component.Body) {
		x, y, rad := float32(b.Position.X), float32(b.Position.Y), float32(b.Radius)
		vector.FillCircle(screen, x, y, rad, b.Color, true)
		if b.Movable {
			vector.StrokeCircle(screen, x, y, rad+1.5, 1, colornames.White, true)
		}
		if !r.Debug {
			return
		}
		vx := x + float32(b.Velocity.X*velocityScale)
		vy := y + float32(b.Velocity.Y*velocityScale)
		vector.StrokeLine(screen, x, y, vx, vy, 1, colornames.Lightgrey, true)
		if r.contacts != nil && r.contacts.Contacts(e).Has(component.ContactColliding) {
			vector.StrokeCircle(screen, x, y, rad+3, 1, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}, true)
		}
	})
}
