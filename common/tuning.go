package common

import (
	"errors"
	"fmt"
)

const (
	BaseWidth  = 900
	BaseHeight = 600

	// MaxBodies caps the population of a sandbox.
	MaxBodies = 100
)

// Tuning holds every numeric constant of the simulation. Velocities and
// accelerations are per reference frame; TimeScale converts elapsed seconds
// into reference frames.
type Tuning struct {
	TimeScale float64 `yaml:"time_scale"`

	Gravity  float64 `yaml:"gravity"`
	Bounce   float64 `yaml:"bounce"`
	Friction float64 `yaml:"friction"`
	// Restitution is used by body-body impulses.
	Restitution float64 `yaml:"restitution"`
	// MassBounceDamping is k in 1/(1+(mass-1)*k).
	MassBounceDamping float64 `yaml:"mass_bounce_damping"`

	WalkAccel    float64 `yaml:"walk_accel"`
	MaxWalkSpeed float64 `yaml:"max_walk_speed"`
	FlyAccel     float64 `yaml:"fly_accel"`
	MaxFlySpeed  float64 `yaml:"max_fly_speed"`
	FallAccel    float64 `yaml:"fall_accel"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`

	MinRadius  float64 `yaml:"min_radius"`
	MaxRadius  float64 `yaml:"max_radius"`
	RadiusStep float64 `yaml:"radius_step"`
}

func DefaultTuning() Tuning {
	return Tuning{
		TimeScale:         60,
		Gravity:           0.5,
		Bounce:            0.9,
		Friction:          0.8,
		Restitution:       0.6,
		MassBounceDamping: 0.05,
		WalkAccel:         2.0,
		MaxWalkSpeed:      2.0,
		FlyAccel:          8.0,
		MaxFlySpeed:       10.0,
		FallAccel:         1.0,
		MaxFallSpeed:      10.0,
		MinRadius:         1.0,
		MaxRadius:         10.0,
		RadiusStep:        1.0,
	}
}

// Step converts elapsed seconds into reference frames.
func (t Tuning) Step(dt float64) float64 {
	return dt * t.TimeScale
}

var ErrInvalidTuning = errors.New("invalid tuning")

// Validate rejects values that make the integrator diverge or divide by zero.
func (t Tuning) Validate() error {
	switch {
	case t.TimeScale <= 0:
		return fmt.Errorf("%w: time_scale must be positive, got %g", ErrInvalidTuning, t.TimeScale)
	case t.Friction <= 0 || t.Friction > 1:
		return fmt.Errorf("%w: friction must be in (0, 1], got %g", ErrInvalidTuning, t.Friction)
	case t.Bounce < 0 || t.Bounce > 1:
		return fmt.Errorf("%w: bounce must be in [0, 1], got %g", ErrInvalidTuning, t.Bounce)
	case t.Restitution < 0 || t.Restitution > 1:
		return fmt.Errorf("%w: restitution must be in [0, 1], got %g", ErrInvalidTuning, t.Restitution)
	case t.MassBounceDamping < 0 || t.MassBounceDamping >= 1:
		return fmt.Errorf("%w: mass_bounce_damping must be in [0, 1), got %g", ErrInvalidTuning, t.MassBounceDamping)
	case t.MinRadius <= 0 || t.MaxRadius < t.MinRadius:
		return fmt.Errorf("%w: radius bounds [%g, %g]", ErrInvalidTuning, t.MinRadius, t.MaxRadius)
	case t.MaxWalkSpeed < 0 || t.MaxFlySpeed < 0 || t.MaxFallSpeed < 0:
		return fmt.Errorf("%w: speed caps must not be negative", ErrInvalidTuning)
	}
	return nil
}
