package entity

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
	"github.com/milk9111/circlesim/prefabs"
	"go.uber.org/zap"
)

var errSpawnArgs = errors.New("spawn expects one map argument")

// RunScene executes a tengo scene script. The script sees the viewport as
// `width` and `height` and adds bodies with spawn({x: .., y: .., radius: ..}).
func RunScene(w *ecs.World, src []byte, view component.Viewport, log *zap.Logger) ([]ecs.Entity, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var spawned []ecs.Entity

	spawn := &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, errSpawnArgs
		}
		raw, ok := objectToAny(args[0]).(map[string]any)
		if !ok {
			return nil, errSpawnArgs
		}
		spec, err := decodeBodySpec(raw)
		if err != nil {
			return nil, err
		}
		body, err := BodyFromSpec(spec)
		if err != nil {
			return nil, err
		}
		e, err := SpawnBody(w, body)
		if err != nil {
			return nil, err
		}
		spawned = append(spawned, e)
		return &tengo.Int{Value: int64(e.Index())}, nil
	}}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("width", view.Width); err != nil {
		return nil, err
	}
	if err := script.Add("height", view.Height); err != nil {
		return nil, err
	}
	if err := script.Add("spawn", spawn); err != nil {
		return nil, err
	}

	if _, err := script.Run(); err != nil {
		return spawned, fmt.Errorf("entity: scene script: %w", err)
	}
	log.Debug("scene script finished", zap.Int("spawned", len(spawned)))
	return spawned, nil
}

// LoadScene runs a script from the prefab scripts directory.
func LoadScene(w *ecs.World, name string, view component.Viewport, log *zap.Logger) ([]ecs.Entity, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("entity: load scene %s: %w", name, err)
	}
	return RunScene(w, src, view, log)
}

func decodeBodySpec(raw map[string]any) (prefabs.BodySpec, error) {
	var spec prefabs.BodySpec
	var err error
	num := func(key string, dst *float64) {
		v, ok := raw[key]
		if !ok || err != nil {
			return
		}
		switch n := v.(type) {
		case int:
			*dst = float64(n)
		case float64:
			*dst = n
		default:
			err = fmt.Errorf("spawn: %s must be a number, got %T", key, v)
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := raw[key].(bool); ok {
			*dst = v
		}
	}

	num("x", &spec.X)
	num("y", &spec.Y)
	num("vx", &spec.VX)
	num("vy", &spec.VY)
	num("radius", &spec.Radius)
	num("weight", &spec.Weight)
	if err != nil {
		return spec, err
	}
	spec.Name, _ = raw["name"].(string)
	spec.Color, _ = raw["color"].(string)
	flag("movable", &spec.Movable)
	flag("bouncy", &spec.Bouncy)
	flag("static", &spec.Static)
	return spec, nil
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
