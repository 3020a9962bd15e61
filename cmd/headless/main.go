// Command headless runs a sandbox for a fixed number of ticks without a
// window and logs how far it settled.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/circlesim/config"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
	"github.com/milk9111/circlesim/ecs/entity"
	"github.com/milk9111/circlesim/ecs/system"
	"github.com/milk9111/circlesim/prefabs"
	"go.uber.org/zap"
)

const restSpeed = 0.05

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", config.DefaultPath, "path to the TOML config")
	sandbox := flag.String("sandbox", "", "sandbox prefab in prefabs/ (overrides the config)")
	ticks := flag.Int("ticks", 0, "ticks to run (overrides the config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load config: %w", err)
	}
	if *sandbox != "" {
		cfg.Sim.Sandbox = *sandbox
	}
	if *ticks > 0 {
		cfg.Sim.HeadlessTicks = *ticks
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	tuning, err := prefabs.LoadTuning(cfg.Sim.Tuning)
	if err != nil {
		return err
	}
	spec, err := prefabs.LoadSandboxSpec(cfg.Sim.Sandbox)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	if _, err := entity.BuildSandbox(w, spec, log.Named("sandbox")); err != nil {
		return err
	}
	view := entity.SandboxViewport(spec)
	sim := system.NewSimulation(tuning, log.Named("sim"))

	tick := system.Tick{Dt: cfg.Dt(), View: view}
	for i := 0; i < cfg.Sim.HeadlessTicks; i++ {
		sim.Step(w, tick)
		sim.Sweep(w)
	}

	r := settle(w, sim, view)
	log.Info("settle report",
		zap.String("sandbox", spec.Name),
		zap.Uint64("ticks", sim.Ticks()),
		zap.Int("bodies", r.bodies),
		zap.Int("resting", r.resting),
		zap.Float64("max_speed", r.maxSpeed),
		zap.Int("outside", r.outside),
	)
	if r.outside > 0 {
		// collision runs after the boundary clamp, so a crowded floor can
		// leave bodies slightly outside until the next tick
		log.Warn("bodies outside the viewport after the last tick", zap.Int("outside", r.outside))
	}
	return nil
}

type report struct {
	bodies   int
	resting  int
	outside  int
	maxSpeed float64
}

func settle(w *ecs.World, sim *system.Simulation, view component.Viewport) report {
	var r report
	const slack = 1e-6
	ecs.ForEach(w, component.BodyComponent, func(e ecs.Entity, b *component.Body) {
		r.bodies++
		speed := b.Velocity.Length()
		r.maxSpeed = max(r.maxSpeed, speed)
		if speed < restSpeed && sim.Contacts(e).Has(component.ContactGround) {
			r.resting++
		}
		if b.Position.X+slack < b.Radius || b.Position.X-slack > view.Width-b.Radius ||
			b.Position.Y+slack < b.Radius || b.Position.Y-slack > view.Height-b.Radius {
			r.outside++
		}
	})
	return r
}
