package entity

import (
	"fmt"

	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
	"github.com/milk9111/circlesim/prefabs"
	"go.uber.org/zap"
)

// BuildSandbox populates an empty world from a sandbox prefab: the listed
// bodies first, then the scene script if one is named.
func BuildSandbox(w *ecs.World, spec *prefabs.SandboxSpec, log *zap.Logger) ([]ecs.Entity, error) {
	if spec == nil {
		return nil, fmt.Errorf("entity: nil sandbox spec")
	}
	if log == nil {
		log = zap.NewNop()
	}

	var spawned []ecs.Entity
	for i, bs := range spec.Bodies {
		body, err := BodyFromSpec(bs)
		if err != nil {
			return spawned, fmt.Errorf("entity: sandbox %s body %d: %w", spec.Name, i, err)
		}
		e, err := SpawnBody(w, body)
		if err != nil {
			return spawned, fmt.Errorf("entity: sandbox %s body %d: %w", spec.Name, i, err)
		}
		spawned = append(spawned, e)
	}

	if spec.Script != "" {
		ents, err := LoadScene(w, spec.Script, SandboxViewport(spec), log)
		spawned = append(spawned, ents...)
		if err != nil {
			return spawned, err
		}
	}

	log.Info("sandbox built",
		zap.String("name", spec.Name),
		zap.Int("bodies", len(spawned)),
	)
	return spawned, nil
}

func SandboxViewport(spec *prefabs.SandboxSpec) component.Viewport {
	return component.Viewport{Width: spec.Viewport.Width, Height: spec.Viewport.Height}
}

// SpawnAt spawns a copy of the sandbox spawn template centred on (x, y).
func SpawnAt(w *ecs.World, spec *prefabs.SandboxSpec, x, y float64) (ecs.Entity, error) {
	tmpl := spec.Spawn
	tmpl.X, tmpl.Y = x, y
	body, err := BodyFromSpec(tmpl)
	if err != nil {
		return 0, err
	}
	if tmpl.Name != "" {
		body.Name = fmt.Sprintf("%s %d", tmpl.Name, CountBodies(w)+1)
	}
	return SpawnBody(w, body)
}
