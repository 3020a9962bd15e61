package system

import (
	"errors"

	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
)

// StageSet selects stage working sets for registration.
type StageSet uint8

const (
	StageInput StageSet = 1 << iota
	StageIntegration
	StageBoundary
	StageCollision

	AllStages = StageInput | StageIntegration | StageBoundary | StageCollision
)

// Register adds e to every stage working set. Adding twice is a no-op.
func Register(w *ecs.World, e ecs.Entity) error {
	return RegisterStages(w, e, AllStages)
}

// RegisterStages adds e to the selected stage working sets.
func RegisterStages(w *ecs.World, e ecs.Entity, stages StageSet) error {
	var errs []error
	if stages&StageInput != 0 && !ecs.Has(w, e, component.InputTargetComponent) {
		errs = append(errs, ecs.Add(w, e, component.InputTargetComponent, component.InputTarget{}))
	}
	if stages&StageIntegration != 0 && !ecs.Has(w, e, component.DynamicComponent) {
		errs = append(errs, ecs.Add(w, e, component.DynamicComponent, component.Dynamic{}))
	}
	if stages&StageBoundary != 0 && !ecs.Has(w, e, component.BoundedComponent) {
		errs = append(errs, ecs.Add(w, e, component.BoundedComponent, component.Bounded{}))
	}
	if stages&StageCollision != 0 && !ecs.Has(w, e, component.ColliderComponent) {
		errs = append(errs, ecs.Add(w, e, component.ColliderComponent, component.Collider{}))
	}
	return errors.Join(errs...)
}

// Unregister removes e from every stage working set. Removing an entity
// that was never registered is a no-op.
func Unregister(w *ecs.World, e ecs.Entity) {
	UnregisterStages(w, e, AllStages)
}

func UnregisterStages(w *ecs.World, e ecs.Entity, stages StageSet) {
	if stages&StageInput != 0 {
		ecs.Remove(w, e, component.InputTargetComponent)
	}
	if stages&StageIntegration != 0 {
		ecs.Remove(w, e, component.DynamicComponent)
	}
	if stages&StageBoundary != 0 {
		ecs.Remove(w, e, component.BoundedComponent)
	}
	if stages&StageCollision != 0 {
		ecs.Remove(w, e, component.ColliderComponent)
	}
}

// liveBodies returns the registered bodies of a stage that are not marked
// for deletion.
func liveBodies(w *ecs.World, tag component.ComponentID) ([]ecs.Entity, []*component.Body) {
	ents := w.Query(tag, component.BodyComponent.ID())
	outE := make([]ecs.Entity, 0, len(ents))
	outB := make([]*component.Body, 0, len(ents))
	for _, e := range ents {
		body, ok := ecs.Get(w, e, component.BodyComponent)
		if !ok || body.MarkedForDeletion {
			continue
		}
		outE = append(outE, e)
		outB = append(outB, body)
	}
	return outE, outB
}
