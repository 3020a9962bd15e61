package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/circlesim/config"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", config.DefaultPath, "path to the TOML config")
	debug := flag.Bool("debug", false, "enable debug logging and the contact overlay")
	sandbox := flag.String("sandbox", "", "sandbox prefab in prefabs/ (overrides the config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	missing := errors.Is(err, os.ErrNotExist)
	if err != nil && !missing {
		return fmt.Errorf("load config: %w", err)
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	if *sandbox != "" {
		cfg.Sim.Sandbox = *sandbox
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	if missing {
		log.Warn("config not found, using defaults", zap.String("path", *cfgPath))
	}

	game, err := NewGame(cfg, log, *debug)
	if err != nil {
		return err
	}
	defer game.Close()

	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)

	log.Info("starting",
		zap.String("sandbox", cfg.Sim.Sandbox),
		zap.Int("tps", cfg.Window.TPS),
		zap.Float64("dt", cfg.Dt()),
	)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
