package prefabs

import (
	"fmt"

	"github.com/milk9111/circlesim/common"
	"gopkg.in/yaml.v3"
)

const (
	TuningFile  = "tuning.yaml"
	SandboxFile = "sandbox.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadTuning reads a tuning prefab over the defaults, so a file only needs
// the constants it changes.
func LoadTuning(filename string) (common.Tuning, error) {
	t := common.DefaultTuning()
	data, err := Load(filename)
	if err != nil {
		return t, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return common.DefaultTuning(), fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	if err := t.Validate(); err != nil {
		return common.DefaultTuning(), fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return t, nil
}

type ViewportSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BodySpec describes one body to spawn.
type BodySpec struct {
	Name    string  `yaml:"name,omitempty"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	VX      float64 `yaml:"vx,omitempty"`
	VY      float64 `yaml:"vy,omitempty"`
	Radius  float64 `yaml:"radius"`
	Weight  float64 `yaml:"weight,omitempty"`
	Color   string  `yaml:"color,omitempty"`
	Movable bool    `yaml:"movable,omitempty"`
	Bouncy  bool    `yaml:"bouncy,omitempty"`
	Static  bool    `yaml:"static,omitempty"`
}

// SandboxSpec is the initial population of the sandbox.
type SandboxSpec struct {
	Name     string       `yaml:"name"`
	Viewport ViewportSpec `yaml:"viewport"`
	// Script is an optional tengo scene under scripts/.
	Script string     `yaml:"script"`
	Bodies []BodySpec `yaml:"bodies"`
	// Spawn is the template for bodies added at runtime.
	Spawn BodySpec `yaml:"spawn"`
}

func LoadSandboxSpec(filename string) (*SandboxSpec, error) {
	spec, err := LoadSpec[SandboxSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Viewport.Width <= 0 || spec.Viewport.Height <= 0 {
		spec.Viewport = ViewportSpec{Width: common.BaseWidth, Height: common.BaseHeight}
	}
	if len(spec.Bodies) > common.MaxBodies {
		return nil, fmt.Errorf("prefabs: %s: %d bodies exceeds limit %d", filename, len(spec.Bodies), common.MaxBodies)
	}
	return &spec, nil
}

// MarshalBodies renders bodies as a YAML list that can be pasted under
// `bodies:` in a sandbox prefab.
func MarshalBodies(bodies []BodySpec) ([]byte, error) {
	data, err := yaml.Marshal(bodies)
	if err != nil {
		return nil, fmt.Errorf("prefabs: marshal bodies: %w", err)
	}
	return data, nil
}
