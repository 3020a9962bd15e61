package system

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/circlesim/common"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
)

func TestBoundaryContainsEveryBody(t *testing.T) {
	tuning := common.DefaultTuning()
	views := []component.Viewport{
		testView,
		{Width: 12, Height: 30},
		{Width: 1.5, Height: 1.5},
	}
	rng := rand.New(rand.NewPCG(7, 11))

	for _, view := range views {
		w := ecs.NewWorld()
		var ents []ecs.Entity
		for i := 0; i < 50; i++ {
			ents = append(ents, spawn(t, w, component.Body{
				Position: vec(rng.Float64()*3*view.Width-view.Width, rng.Float64()*3*view.Height-view.Height),
				Velocity: vec(rng.Float64()*20-10, rng.Float64()*20-10),
				Radius:   rng.Float64()*40 - 10,
				Bouncy:   i%2 == 0,
			}))
		}

		NewBoundarySystem(tuning).Step(w, Tick{Dt: frame, View: view}, nil)

		maxR := min(tuning.MaxRadius, view.MaxRadius())
		for _, e := range ents {
			b := bodyOf(t, w, e)
			if b.Radius > maxR {
				t.Fatalf("view %v: radius %g exceeds %g", view, b.Radius, maxR)
			}
			if b.Radius < tuning.MinRadius && b.Radius != view.MaxRadius() {
				t.Fatalf("view %v: radius %g below minimum", view, b.Radius)
			}
			const eps = 1e-9
			if b.Position.X-b.Radius < -eps || b.Position.X+b.Radius > view.Width+eps ||
				b.Position.Y-b.Radius < -eps || b.Position.Y+b.Radius > view.Height+eps {
				t.Fatalf("view %v: body at %v r=%g escapes the viewport", view, b.Position, b.Radius)
			}
		}
	}
}

func TestBoundaryFlags(t *testing.T) {
	tuning := common.DefaultTuning()
	cases := []struct {
		name  string
		body  component.Body
		want  component.Contact
		check func(t *testing.T, b *component.Body)
	}{
		{
			name: "inside",
			body: component.Body{Position: vec(100, 100), Radius: 5},
			want: component.ContactNone,
		},
		{
			name: "floor",
			body: component.Body{Position: vec(100, 599), Radius: 5},
			want: component.ContactGround,
			check: func(t *testing.T, b *component.Body) {
				if b.Position.Y != 595 {
					t.Fatalf("expected y 595, got %g", b.Position.Y)
				}
			},
		},
		{
			name: "ceiling_zeroes_vy",
			body: component.Body{Position: vec(100, 2), Velocity: vec(1, -4), Radius: 5},
			want: component.ContactCeiling,
			check: func(t *testing.T, b *component.Body) {
				if b.Position.Y != 5 || b.Velocity.Y != 0 {
					t.Fatalf("expected y 5 vy 0, got y %g vy %g", b.Position.Y, b.Velocity.Y)
				}
			},
		},
		{
			name: "right_wall_stops_non_bouncy",
			body: component.Body{Position: vec(899, 100), Velocity: vec(2, 0), Radius: 5},
			want: component.ContactRight,
			check: func(t *testing.T, b *component.Body) {
				if b.Position.X != 895 || b.Velocity.X != 0 {
					t.Fatalf("expected x 895 vx 0, got x %g vx %g", b.Position.X, b.Velocity.X)
				}
			},
		},
		{
			name: "left_wall_keeps_bouncy_velocity",
			body: component.Body{Position: vec(-3, 100), Velocity: vec(2, 0), Radius: 5, Bouncy: true},
			want: component.ContactLeft,
			check: func(t *testing.T, b *component.Body) {
				if b.Position.X != 5 || b.Velocity.X != 2 {
					t.Fatalf("expected x 5 vx 2, got x %g vx %g", b.Position.X, b.Velocity.X)
				}
			},
		},
		{
			name: "corner",
			body: component.Body{Position: vec(900, 600), Radius: 5},
			want: component.ContactGround | component.ContactRight,
		},
		{
			name: "radius_clamped_up",
			body: component.Body{Position: vec(100, 100), Radius: 0.2},
			want: component.ContactNone,
			check: func(t *testing.T, b *component.Body) {
				if b.Radius != tuning.MinRadius {
					t.Fatalf("expected radius %g, got %g", tuning.MinRadius, b.Radius)
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := spawn(t, w, c.body)
			out := NewBoundarySystem(tuning).Step(w, tick(component.Input{}), nil)
			if got := out.Of(e); got != c.want {
				t.Fatalf("expected flags %s, got %s", c.want, got)
			}
			if c.check != nil {
				c.check(t, bodyOf(t, w, e))
			}
		})
	}
}

func TestBoundaryIsIdempotent(t *testing.T) {
	w := ecs.NewWorld()
	e := spawn(t, w, component.Body{Position: vec(910, 620), Radius: 30})
	s := NewBoundarySystem(common.DefaultTuning())
	s.Step(w, tick(component.Input{}), nil)
	first := *bodyOf(t, w, e)
	s.Step(w, tick(component.Input{}), nil)
	if second := *bodyOf(t, w, e); second != first {
		t.Fatalf("second pass changed the body: %+v -> %+v", first, second)
	}
}

func TestContactColorPrecedence(t *testing.T) {
	cases := []struct {
		in   component.Contact
		want color.RGBA
	}{
		{component.ContactNone, component.ColorDefault},
		{component.ContactColliding, component.ColorColliding},
		{component.ContactColliding | component.ContactGround, component.ColorGround},
		{component.ContactGround | component.ContactCeiling, component.ColorCeiling},
		{component.ContactCeiling | component.ContactLeft, component.ColorSide},
		{component.ContactRight | component.ContactColliding, component.ColorSide},
	}
	for _, c := range cases {
		if got := ContactColor(c.in); got != c.want {
			t.Fatalf("ContactColor(%s) = %v, want %v", c.in, got, c.want)
		}
	}
}
