package entity

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/circlesim/common"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
	"github.com/milk9111/circlesim/ecs/system"
	"github.com/milk9111/circlesim/prefabs"
)

var ErrCapacity = errors.New("entity: body capacity reached")

// SpawnBody adds body to the world and registers it with every stage.
func SpawnBody(w *ecs.World, body component.Body) (ecs.Entity, error) {
	if w == nil {
		return 0, component.ErrNilWorld
	}
	if CountBodies(w) >= common.MaxBodies {
		return 0, fmt.Errorf("%w (%d)", ErrCapacity, common.MaxBodies)
	}

	e := w.CreateEntity()
	if body.Name == "" {
		body.Name = "player " + strconv.Itoa(e.Index())
	}
	if err := ecs.Add(w, e, component.BodyComponent, body); err != nil {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("entity: add body: %w", err)
	}
	if err := system.Register(w, e); err != nil {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("entity: register body: %w", err)
	}
	w.Events().Push(ecs.Event{Type: ecs.EventSpawned, Entity: e, Data: body.Name})
	return e, nil
}

// CountBodies returns the number of bodies in the world.
func CountBodies(w *ecs.World) int {
	return len(w.Query(component.BodyComponent.ID()))
}

// BodyFromSpec converts a prefab entry into a body component.
func BodyFromSpec(spec prefabs.BodySpec) (component.Body, error) {
	c, err := ParseColor(spec.Color)
	if err != nil {
		return component.Body{}, err
	}
	return component.Body{
		Name:     spec.Name,
		Position: cp.Vector{X: spec.X, Y: spec.Y},
		Velocity: cp.Vector{X: spec.VX, Y: spec.VY},
		Radius:   spec.Radius,
		Weight:   spec.Weight,
		Color:    c,
		Movable:  spec.Movable,
		Bouncy:   spec.Bouncy,
		Static:   spec.Static,
	}, nil
}

// SpecFromBody is the inverse of BodyFromSpec; colors are written as hex.
func SpecFromBody(body *component.Body) prefabs.BodySpec {
	return prefabs.BodySpec{
		Name:    body.Name,
		X:       body.Position.X,
		Y:       body.Position.Y,
		VX:      body.Velocity.X,
		VY:      body.Velocity.Y,
		Radius:  body.Radius,
		Weight:  body.Weight,
		Color:   FormatColor(body.Color),
		Movable: body.Movable,
		Bouncy:  body.Bouncy,
		Static:  body.Static,
	}
}

// Snapshot lists every body of the world in slot order.
func Snapshot(w *ecs.World) []prefabs.BodySpec {
	var out []prefabs.BodySpec
	ecs.ForEach(w, component.BodyComponent, func(_ ecs.Entity, body *component.Body) {
		out = append(out, SpecFromBody(body))
	})
	return out
}

// ParseColor accepts an SVG color name or #rrggbb. Empty means the default.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return component.ColorDefault, nil
	}
	if c, ok := component.NamedColor(s); ok {
		return c, nil
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok && len(hex) == 6 {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("entity: unknown color %q", s)
}

func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
