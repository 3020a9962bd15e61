package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/circlesim/common"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
)

const (
	restBounceSpeed   = 0.3
	frictionSnapSpeed = 0.01
)

// IntegrationSystem applies gravity, floor bounce, wall bounce and surface
// friction, then advances positions with explicit Euler steps.
type IntegrationSystem struct {
	Tuning common.Tuning
}

func NewIntegrationSystem(t common.Tuning) *IntegrationSystem {
	return &IntegrationSystem{Tuning: t}
}

// Step starts a fresh report: only contacts found this tick survive it.
func (s *IntegrationSystem) Step(w *ecs.World, tick Tick, contacts ContactReport) ContactReport {
	out := NewContactReport()
	if s == nil || w == nil {
		return out
	}

	step := s.Tuning.Step(tick.Dt)
	ents, bodies := liveBodies(w, component.DynamicComponent.ID())
	for i, body := range bodies {
		if body.Static {
			continue
		}
		if s.integrate(body, contacts.Has(ents[i], component.ContactGround), step, tick.View) {
			out.Set(ents[i], component.ContactGround)
		}
	}
	return out
}

// integrate advances one body and reports whether it rests on the floor.
func (s *IntegrationSystem) integrate(body *component.Body, grounded bool, step float64, view component.Viewport) bool {
	t := s.Tuning
	floor := view.Floor() - body.Radius

	// resting bodies skip gravity and stay pinned to the floor
	if grounded && !body.Bouncy {
		body.Velocity.Y = 0
		body.Position.Y = floor
		body.Position.X += body.Velocity.X * step
		return true
	}

	body.Velocity.Y = math.Min(body.Velocity.Y+t.Gravity*step, t.MaxFallSpeed)
	body.Position.Y += body.Velocity.Y * step
	body.Position.X += body.Velocity.X * step

	onGround := false
	if body.Position.Y >= floor {
		body.Position.Y = floor
		if body.Bouncy {
			vy := -body.Velocity.Y * t.Bounce * massBounceFactor(body.Mass(), t.MassBounceDamping)
			vy = cp.Clamp(vy, -t.MaxFlySpeed, t.MaxFlySpeed)
			if math.Abs(vy) < restBounceSpeed {
				vy = 0
				onGround = true
			}
			body.Velocity.Y = vy
		} else {
			if body.Velocity.Y > 0 {
				body.Velocity.Y = 0
			}
			onGround = true
		}
	}

	if body.Bouncy {
		left := body.Position.X-body.Radius <= 0 && body.Velocity.X < 0
		right := body.Position.X+body.Radius >= view.Width && body.Velocity.X > 0
		if left || right {
			body.Velocity.X = -body.Velocity.X * t.Bounce
		}
	} else {
		body.Velocity.X = common.Snap(body.Velocity.X*math.Pow(t.Friction, step/body.Mass()), frictionSnapSpeed)
	}
	return onGround
}

// massBounceFactor makes heavier bodies rebound less.
func massBounceFactor(mass, k float64) float64 {
	return 1 / (1 + (mass-1)*k)
}
