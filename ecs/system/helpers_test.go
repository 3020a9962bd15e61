package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/circlesim/common"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
)

const frame = 1.0 / 60

var testView = component.Viewport{Width: common.BaseWidth, Height: common.BaseHeight}

func spawn(t *testing.T, w *ecs.World, body component.Body) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.BodyComponent, body); err != nil {
		t.Fatalf("add body: %v", err)
	}
	if err := Register(w, e); err != nil {
		t.Fatalf("register: %v", err)
	}
	return e
}

func bodyOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Body {
	t.Helper()
	b, ok := ecs.Get(w, e, component.BodyComponent)
	if !ok {
		t.Fatalf("entity %s has no body", e)
	}
	return b
}

func tick(in component.Input) Tick {
	return tickAt(frame, in)
}

func tickAt(dt float64, in component.Input) Tick {
	return Tick{Dt: dt, View: testView, Input: in}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vec(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}
