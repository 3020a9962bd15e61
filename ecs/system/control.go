package system

import (
	"math"

	"github.com/milk9111/circlesim/common"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
)

const idleSnapSpeed = 0.05

// ControlSystem turns the input snapshot into velocity, radius and deletion
// changes on movable bodies. It never writes positions.
type ControlSystem struct {
	Tuning common.Tuning

	jumpHeld bool
}

func NewControlSystem(t common.Tuning) *ControlSystem {
	return &ControlSystem{Tuning: t}
}

func (c *ControlSystem) Step(w *ecs.World, tick Tick, contacts ContactReport) ContactReport {
	out := contacts.Clone()
	if c == nil || w == nil {
		return out
	}

	in := tick.Input
	jumpPressed := in.Jump && !c.jumpHeld
	c.jumpHeld = in.Jump

	t := c.Tuning
	step := t.Step(tick.Dt)
	ents, bodies := liveBodies(w, component.InputTargetComponent.ID())
	for i, body := range bodies {
		if !body.Movable {
			continue
		}
		e := ents[i]
		mass := body.Mass()
		grounded := out.Has(e, component.ContactGround)

		switch {
		case in.Left && in.Right:
			body.Velocity.X = 0
		case in.Right:
			body.Velocity.X = math.Min(body.Velocity.X+t.WalkAccel/mass*step, t.MaxWalkSpeed)
		case in.Left:
			body.Velocity.X = math.Max(body.Velocity.X-t.WalkAccel/mass*step, -t.MaxWalkSpeed)
		default:
			body.Velocity.X = common.Snap(body.Velocity.X*math.Pow(t.Friction, step), idleSnapSpeed)
		}

		switch {
		case in.Up && in.Down:
		case in.Up:
			body.Velocity.Y = math.Max(body.Velocity.Y-t.FlyAccel/mass*step, -t.MaxFlySpeed)
			if body.Velocity.Y < 0 {
				out.Clear(e, component.ContactGround)
			}
		case in.Down:
			body.Velocity.Y = math.Min(body.Velocity.Y+t.FallAccel/mass*step, t.MaxFallSpeed)
		}

		if jumpPressed && grounded {
			body.Velocity.Y = -t.FlyAccel / mass
			out.Clear(e, component.ContactGround)
		}

		if in.Grow {
			body.Radius += t.RadiusStep
		}
		if in.Shrink {
			body.Radius -= t.RadiusStep
		}
		if in.Delete {
			body.MarkedForDeletion = true
		}
	}
	return out
}
