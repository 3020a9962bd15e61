package system

import (
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
)

// Tick is the per-frame context shared by every stage.
type Tick struct {
	// Dt is the elapsed wall-clock time in seconds.
	Dt    float64
	View  component.Viewport
	Input component.Input
}

// Stage is one step of the per-tick pipeline. It reads the report produced
// by the previous stage and returns the report for the next one.
type Stage interface {
	Step(w *ecs.World, tick Tick, contacts ContactReport) ContactReport
}

// Scheduler runs stages strictly in registration order.
type Scheduler struct {
	stages []Stage
}

func NewScheduler(stages ...Stage) *Scheduler {
	copied := append([]Stage(nil), stages...)
	return &Scheduler{stages: copied}
}

func (s *Scheduler) Add(stage Stage) {
	if stage == nil {
		return
	}
	s.stages = append(s.stages, stage)
}

// Run folds the report through every stage and returns the last one.
func (s *Scheduler) Run(w *ecs.World, tick Tick, contacts ContactReport) ContactReport {
	for _, stage := range s.stages {
		contacts = stage.Step(w, tick, contacts)
	}
	return contacts
}

func (s *Scheduler) Stages() []Stage {
	stages := make([]Stage, 0, len(s.stages))
	return append(stages, s.stages...)
}
