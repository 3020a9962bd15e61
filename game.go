package main

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/circlesim/common"
	"github.com/milk9111/circlesim/config"
	"github.com/milk9111/circlesim/ecs"
	"github.com/milk9111/circlesim/ecs/component"
	"github.com/milk9111/circlesim/ecs/entity"
	"github.com/milk9111/circlesim/ecs/render"
	"github.com/milk9111/circlesim/ecs/system"
	"github.com/milk9111/circlesim/prefabs"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

const statusFrames = 180

var background = color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}

type Game struct {
	cfg   *config.Config
	log   *zap.Logger
	debug bool

	world   *ecs.World
	sim     *system.Simulation
	sandbox *prefabs.SandboxSpec
	view    component.Viewport

	renderer    *render.RenderSystem
	watcher     *prefabs.Watcher
	pauseUI     *ebitenui.UI
	clipboardOK bool

	paused       bool
	resetPending bool
	quit         bool

	status       string
	statusFrames int
}

func NewGame(cfg *config.Config, log *zap.Logger, debug bool) (*Game, error) {
	tuning, err := prefabs.LoadTuning(cfg.Sim.Tuning)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:   cfg,
		log:   log,
		debug: debug,
		sim:   system.NewSimulation(tuning, log.Named("sim")),
	}
	if err := g.rebuild(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)
	g.renderer = render.NewRenderSystem(g.sim)

	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboardOK = true
	}

	if cfg.Sim.HotReload {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Warn("hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("close watcher", zap.Error(err))
		}
	}
}

// rebuild replaces the world with a fresh copy of the sandbox prefab.
func (g *Game) rebuild() error {
	spec, err := prefabs.LoadSandboxSpec(g.cfg.Sim.Sandbox)
	if err != nil {
		return err
	}
	world := ecs.NewWorld()
	if _, err := entity.BuildSandbox(world, spec, g.log.Named("sandbox")); err != nil {
		return err
	}
	world.Events().Drain()

	g.world = world
	g.sandbox = spec
	g.view = entity.SandboxViewport(spec)
	g.sim.Reset()
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.drainReloads()

	act := sampleActions()
	if act.Pause {
		g.paused = !g.paused
	}
	if act.Debug {
		g.debug = !g.debug
	}
	if g.statusFrames > 0 {
		g.statusFrames--
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if act.Reset || g.resetPending {
		g.resetPending = false
		if err := g.rebuild(); err != nil {
			g.log.Error("reset sandbox", zap.Error(err))
		} else {
			g.setStatus("sandbox reset")
		}
	}
	if act.Copy {
		g.copyBodies()
	}
	if act.Spawn {
		g.spawnAt(act.SpawnX, act.SpawnY)
	}

	g.sim.Step(g.world, system.Tick{Dt: g.cfg.Dt(), View: g.view, Input: sampleInput()})
	g.sim.Sweep(g.world)

	for _, evt := range g.world.Events().Drain() {
		g.log.Debug("world event", zap.String("type", evt.Type), zap.Stringer("entity", evt.Entity))
	}
	return nil
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err := <-g.watcher.Errors:
			if err != nil {
				g.log.Warn("watcher error", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	if filepath.Base(path) == g.cfg.Sim.Tuning {
		tuning, err := prefabs.LoadTuning(g.cfg.Sim.Tuning)
		if err != nil {
			g.log.Warn("reload tuning", zap.String("path", path), zap.Error(err))
			return
		}
		g.sim.SetTuning(tuning)
		g.log.Info("tuning reloaded", zap.String("path", path))
		g.setStatus("tuning reloaded")
		return
	}
	if err := g.rebuild(); err != nil {
		g.log.Warn("reload sandbox", zap.String("path", path), zap.Error(err))
		return
	}
	g.log.Info("sandbox reloaded", zap.String("path", path))
	g.setStatus("sandbox reloaded")
}

func (g *Game) spawnAt(x, y float64) {
	e, err := entity.SpawnAt(g.world, g.sandbox, x, y)
	if err != nil {
		g.log.Warn("spawn refused", zap.Error(err))
		g.setStatus(err.Error())
		return
	}
	g.log.Info("body spawned",
		zap.Stringer("entity", e),
		zap.Float64("x", x),
		zap.Float64("y", y),
	)
}

// copyBodies puts the live bodies on the clipboard as sandbox YAML.
func (g *Game) copyBodies() {
	if !g.clipboardOK {
		g.setStatus("clipboard unavailable")
		return
	}
	snap := entity.Snapshot(g.world)
	data, err := prefabs.MarshalBodies(snap)
	if err != nil {
		g.log.Error("copy bodies", zap.Error(err))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus(fmt.Sprintf("copied %d bodies", len(snap)))
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusFrames = statusFrames
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	g.renderer.Debug = g.debug
	g.renderer.Draw(g.world, screen)

	hud := fmt.Sprintf("FPS: %.1f  bodies: %d/%d  tick: %d",
		ebiten.ActualFPS(), entity.CountBodies(g.world), common.MaxBodies, g.sim.Ticks())
	if g.debug {
		hud += g.contactLines()
	}
	if g.statusFrames > 0 {
		hud += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, hud)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) contactLines() string {
	var s string
	ecs.ForEach(g.world, component.BodyComponent, func(e ecs.Entity, b *component.Body) {
		if !b.Movable {
			return
		}
		s += fmt.Sprintf("\n%s %s v=(%.2f, %.2f) r=%.1f [%s]",
			b.Name, e, b.Velocity.X, b.Velocity.Y, b.Radius, g.sim.Contacts(e))
	})
	return s
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.view.Width, g.view.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.view.Width), int(g.view.Height)
}
