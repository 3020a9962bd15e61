package system

import (
	"testing"

	"github.com/milk9111/circlesim/common"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
)

func TestIntegrateCases(t *testing.T) {
	tuning := common.DefaultTuning()
	floor := testView.Floor()
	cases := []struct {
		name       string
		body       component.Body
		grounded   bool
		wantGround bool
		check      func(t *testing.T, b *component.Body)
	}{
		{
			name: "gravity_in_air",
			body: component.Body{Position: vec(100, 100), Radius: 5, Weight: 1},
			check: func(t *testing.T, b *component.Body) {
				if !approx(b.Velocity.Y, tuning.Gravity) || !approx(b.Position.Y, 100+tuning.Gravity) {
					t.Fatalf("expected vy %g y %g, got vy %g y %g", tuning.Gravity, 100+tuning.Gravity, b.Velocity.Y, b.Position.Y)
				}
			},
		},
		{
			name: "fall_speed_capped",
			body: component.Body{Position: vec(100, 100), Velocity: vec(0, 9.9), Radius: 5, Weight: 1},
			check: func(t *testing.T, b *component.Body) {
				if !approx(b.Velocity.Y, tuning.MaxFallSpeed) {
					t.Fatalf("expected vy %g, got %g", tuning.MaxFallSpeed, b.Velocity.Y)
				}
			},
		},
		{
			name:       "resting_body_pinned",
			body:       component.Body{Position: vec(100, floor-5), Velocity: vec(0, 3), Radius: 5, Weight: 1},
			grounded:   true,
			wantGround: true,
			check: func(t *testing.T, b *component.Body) {
				if b.Velocity.Y != 0 || b.Position.Y != floor-5 {
					t.Fatalf("expected pinned body, got y %g vy %g", b.Position.Y, b.Velocity.Y)
				}
			},
		},
		{
			name:       "landing_stops_non_bouncy",
			body:       component.Body{Position: vec(100, floor-6), Velocity: vec(0, 4), Radius: 5, Weight: 1},
			wantGround: true,
			check: func(t *testing.T, b *component.Body) {
				if b.Velocity.Y != 0 || b.Position.Y != floor-5 {
					t.Fatalf("expected body on floor, got y %g vy %g", b.Position.Y, b.Velocity.Y)
				}
			},
		},
		{
			name: "bouncy_floor_reflects",
			body: component.Body{Position: vec(100, floor-6), Velocity: vec(0, 5), Radius: 5, Weight: 1, Bouncy: true},
			check: func(t *testing.T, b *component.Body) {
				want := -(5 + tuning.Gravity) * tuning.Bounce
				if !approx(b.Velocity.Y, want) {
					t.Fatalf("expected vy %g, got %g", want, b.Velocity.Y)
				}
			},
		},
		{
			name: "heavy_bouncy_rebounds_less",
			body: component.Body{Position: vec(100, floor-6), Velocity: vec(0, 5), Radius: 5, Weight: 21, Bouncy: true},
			check: func(t *testing.T, b *component.Body) {
				want := -(5 + tuning.Gravity) * tuning.Bounce * 0.5
				if !approx(b.Velocity.Y, want) {
					t.Fatalf("expected vy %g, got %g", want, b.Velocity.Y)
				}
			},
		},
		{
			name:       "slow_bounce_comes_to_rest",
			body:       component.Body{Position: vec(100, floor-5), Velocity: vec(0, -0.3), Radius: 5, Weight: 1, Bouncy: true},
			wantGround: true,
			check: func(t *testing.T, b *component.Body) {
				if b.Velocity.Y != 0 {
					t.Fatalf("expected vy 0, got %g", b.Velocity.Y)
				}
			},
		},
		{
			name: "bouncy_wall_reflects",
			body: component.Body{Position: vec(5, 100), Velocity: vec(-3, 0), Radius: 5, Bouncy: true},
			check: func(t *testing.T, b *component.Body) {
				if !approx(b.Velocity.X, 3*tuning.Bounce) {
					t.Fatalf("expected vx %g, got %g", 3*tuning.Bounce, b.Velocity.X)
				}
			},
		},
		{
			name: "bouncy_leaving_wall_untouched",
			body: component.Body{Position: vec(4, 100), Velocity: vec(3, 0), Radius: 5, Bouncy: true},
			check: func(t *testing.T, b *component.Body) {
				if b.Velocity.X != 3 {
					t.Fatalf("expected vx 3, got %g", b.Velocity.X)
				}
			},
		},
		{
			name: "friction_scaled_by_mass",
			body: component.Body{Position: vec(100, 100), Velocity: vec(1, 0), Radius: 5, Weight: 1},
			check: func(t *testing.T, b *component.Body) {
				if !approx(b.Velocity.X, tuning.Friction) {
					t.Fatalf("expected vx %g, got %g", tuning.Friction, b.Velocity.X)
				}
			},
		},
		{
			name: "static_untouched",
			body: component.Body{Position: vec(100, 100), Velocity: vec(1, 1), Radius: 5, Static: true},
			check: func(t *testing.T, b *component.Body) {
				if b.Position != vec(100, 100) || b.Velocity != vec(1, 1) {
					t.Fatalf("static body moved: %+v", b)
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := spawn(t, w, c.body)
			in := NewContactReport()
			if c.grounded {
				in.Set(e, component.ContactGround)
			}
			in.Set(e, component.ContactColliding)

			out := NewIntegrationSystem(tuning).Step(w, tick(component.Input{}), in)
			if got := out.Has(e, component.ContactGround); got != c.wantGround {
				t.Fatalf("expected ground=%v, got %v", c.wantGround, got)
			}
			if out.Has(e, component.ContactColliding) {
				t.Fatalf("integration must start a fresh report")
			}
			c.check(t, bodyOf(t, w, e))
		})
	}
}

func TestDropSettlesWithoutRestitution(t *testing.T) {
	for _, bouncy := range []bool{false, true} {
		tuning := common.DefaultTuning()
		tuning.Bounce = 0
		w := ecs.NewWorld()
		e := spawn(t, w, component.Body{Position: vec(450, 50), Radius: 5, Weight: 1, Bouncy: bouncy})
		sim := NewSimulation(tuning, nil)
		body := bodyOf(t, w, e)

		const limit = 300
		settledAt := -1
		for i := 0; i < limit; i++ {
			sim.Step(w, tick(component.Input{}))
			resting := body.Velocity.Y == 0 && approx(body.Position.Y, testView.Height-body.Radius)
			switch {
			case resting && settledAt < 0:
				settledAt = i
			case !resting && settledAt >= 0:
				t.Fatalf("bouncy=%v: body left the floor at tick %d after settling at %d", bouncy, i, settledAt)
			}
		}
		if settledAt < 0 {
			t.Fatalf("bouncy=%v: body did not settle within %d ticks, y=%g vy=%g", bouncy, limit, body.Position.Y, body.Velocity.Y)
		}
	}
}

func TestMassBounceFactor(t *testing.T) {
	cases := []struct {
		mass, k, want float64
	}{
		{1, 0.05, 1},
		{21, 0.05, 0.5},
		{5, 0, 1},
	}
	for _, c := range cases {
		if got := massBounceFactor(c.mass, c.k); !approx(got, c.want) {
			t.Fatalf("massBounceFactor(%g, %g) = %g, want %g", c.mass, c.k, got, c.want)
		}
	}
}

func TestIntegrateScalesWithDt(t *testing.T) {
	tuning := common.DefaultTuning()
	const dt = 1.0 / 30 // two reference frames
	cases := []struct {
		name  string
		body  component.Body
		check func(t *testing.T, b *component.Body)
	}{
		{
			name: "gravity_and_displacement",
			body: component.Body{Position: vec(100, 100), Radius: 5, Weight: 1},
			check: func(t *testing.T, b *component.Body) {
				vy := tuning.Gravity * 2
				if !approx(b.Velocity.Y, vy) || !approx(b.Position.Y, 100+vy*2) {
					t.Fatalf("expected vy %g y %g, got vy %g y %g", vy, 100+vy*2, b.Velocity.Y, b.Position.Y)
				}
			},
		},
		{
			name: "friction_and_displacement",
			body: component.Body{Position: vec(100, 100), Velocity: vec(1, 0), Radius: 5, Weight: 2},
			check: func(t *testing.T, b *component.Body) {
				if !approx(b.Position.X, 102) {
					t.Fatalf("expected x 102, got %g", b.Position.X)
				}
				// Friction^(step/mass) with step 2 and mass 2
				if !approx(b.Velocity.X, tuning.Friction) {
					t.Fatalf("expected vx %g, got %g", tuning.Friction, b.Velocity.X)
				}
			},
		},
		{
			name: "light_body_friction_squares",
			body: component.Body{Position: vec(100, 100), Velocity: vec(1, 0), Radius: 5, Weight: 1},
			check: func(t *testing.T, b *component.Body) {
				if want := tuning.Friction * tuning.Friction; !approx(b.Velocity.X, want) {
					t.Fatalf("expected vx %g, got %g", want, b.Velocity.X)
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := spawn(t, w, c.body)
			NewIntegrationSystem(tuning).Step(w, tickAt(dt, component.Input{}), nil)
			c.check(t, bodyOf(t, w, e))
		})
	}
}

func TestBouncyReboundIsCapped(t *testing.T) {
	tuning := common.DefaultTuning()
	tuning.MaxFlySpeed = 3
	floor := testView.Floor()
	w := ecs.NewWorld()
	e := spawn(t, w, component.Body{Position: vec(100, floor-6), Velocity: vec(0, 5), Radius: 5, Weight: 1, Bouncy: true})

	NewIntegrationSystem(tuning).Step(w, tick(component.Input{}), nil)
	if got := bodyOf(t, w, e).Velocity.Y; !approx(got, -tuning.MaxFlySpeed) {
		t.Fatalf("expected rebound capped at %g, got %g", -tuning.MaxFlySpeed, got)
	}
}
