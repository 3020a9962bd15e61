package system

import (
	"github.com/milk9111/circlesim/common"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
	"go.uber.org/zap"
)

// Simulation runs the four stages in order over one world and keeps the
// final contact report of the last tick, which seeds the next one.
type Simulation struct {
	Control     *ControlSystem
	Integration *IntegrationSystem
	Boundary    *BoundarySystem
	Collision   *CollisionSystem

	scheduler *Scheduler
	contacts  ContactReport
	ticks     uint64
	log       *zap.Logger
}

func NewSimulation(t common.Tuning, log *zap.Logger) *Simulation {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Simulation{
		Control:     NewControlSystem(t),
		Integration: NewIntegrationSystem(t),
		Boundary:    NewBoundarySystem(t),
		Collision:   NewCollisionSystem(t, log.Named("collision")),
		contacts:    NewContactReport(),
		log:         log,
	}
	s.scheduler = NewScheduler(s.Control, s.Integration, s.Boundary, s.Collision)
	return s
}

// SetTuning swaps the constants of every stage between ticks.
func (s *Simulation) SetTuning(t common.Tuning) {
	s.Control.Tuning = t
	s.Integration.Tuning = t
	s.Boundary.Tuning = t
	s.Collision.Tuning = t
}

func (s *Simulation) Tuning() common.Tuning {
	return s.Integration.Tuning
}

// Step advances the world by one tick and recolors every body from the
// resulting contacts.
func (s *Simulation) Step(w *ecs.World, tick Tick) {
	if s == nil || w == nil {
		return
	}
	s.contacts = s.scheduler.Run(w, tick, s.contacts)
	s.ticks++

	ecs.ForEach(w, component.BodyComponent, func(e ecs.Entity, body *component.Body) {
		body.Color = ContactColor(s.contacts.Of(e))
	})
}

// Contacts returns the flags raised for e during the last tick.
func (s *Simulation) Contacts(e ecs.Entity) component.Contact {
	return s.contacts.Of(e)
}

func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

// Remove requests deletion of e; it is destroyed by the next Sweep.
func (s *Simulation) Remove(w *ecs.World, e ecs.Entity) bool {
	body, ok := ecs.Get(w, e, component.BodyComponent)
	if !ok {
		return false
	}
	body.MarkedForDeletion = true
	return true
}

// Sweep destroys every body marked for deletion, drops it from all stage
// working sets and returns the removed handles. Call it between ticks.
func (s *Simulation) Sweep(w *ecs.World) []ecs.Entity {
	var removed []ecs.Entity
	ecs.ForEach(w, component.BodyComponent, func(e ecs.Entity, body *component.Body) {
		if body.MarkedForDeletion {
			removed = append(removed, e)
		}
	})
	for _, e := range removed {
		Unregister(w, e)
		w.DestroyEntity(e)
		delete(s.contacts, e)
		w.Events().Push(ecs.Event{Type: ecs.EventDespawned, Entity: e})
		s.log.Debug("body swept", zap.Stringer("entity", e), zap.Uint64("tick", s.ticks))
	}
	return removed
}

// Reset forgets all contacts, e.g. after the world is rebuilt.
func (s *Simulation) Reset() {
	s.contacts = NewContactReport()
	s.ticks = 0
}
