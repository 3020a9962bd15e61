package common

import (
	"errors"
	"testing"
)

func TestDefaultTuningIsValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestTuningValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero_time_scale", func(t *Tuning) { t.TimeScale = 0 }},
		{"zero_friction", func(t *Tuning) { t.Friction = 0 }},
		{"friction_above_one", func(t *Tuning) { t.Friction = 1.2 }},
		{"negative_bounce", func(t *Tuning) { t.Bounce = -0.1 }},
		{"restitution_above_one", func(t *Tuning) { t.Restitution = 2 }},
		{"damping_one", func(t *Tuning) { t.MassBounceDamping = 1 }},
		{"inverted_radius", func(t *Tuning) { t.MinRadius, t.MaxRadius = 5, 2 }},
		{"negative_speed_cap", func(t *Tuning) { t.MaxWalkSpeed = -1 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tuning := DefaultTuning()
			c.mutate(&tuning)
			if err := tuning.Validate(); !errors.Is(err, ErrInvalidTuning) {
				t.Fatalf("expected ErrInvalidTuning, got %v", err)
			}
		})
	}
}

func TestStepAndHelpers(t *testing.T) {
	if got := DefaultTuning().Step(0.5); got != 30 {
		t.Fatalf("Step(0.5) = %g, want 30", got)
	}
	if Snap(0.04, 0.05) != 0 || Snap(-0.04, 0.05) != 0 || Snap(0.06, 0.05) != 0.06 {
		t.Fatalf("Snap wrong")
	}
}
