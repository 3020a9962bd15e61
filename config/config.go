package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/milk9111/circlesim/common"
	"github.com/milk9111/circlesim/prefabs"
)

// DefaultPath is used when no -config flag is given.
const DefaultPath = "config/circlesim.toml"

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Sim     SimConfig     `toml:"sim"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	TPS       int    `toml:"tps"`
	Resizable bool   `toml:"resizable"`
}

type SimConfig struct {
	Sandbox string `toml:"sandbox"` // prefab file under prefabs/
	Tuning  string `toml:"tuning"`
	// FixedDt is the seconds advanced per tick; 0 means 1/TPS.
	FixedDt   float64 `toml:"fixed_dt"`
	HotReload bool    `toml:"hot_reload"`
	// HeadlessTicks is how long cmd/headless runs.
	HeadlessTicks int `toml:"headless_ticks"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads path over the defaults. A missing file is reported with an
// error wrapping os.ErrNotExist alongside the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Dt returns the seconds advanced per tick.
func (c *Config) Dt() float64 {
	if c.Sim.FixedDt > 0 {
		return c.Sim.FixedDt
	}
	return 1 / float64(c.Window.TPS)
}

func (c *Config) validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Window.TPS <= 0:
		return fmt.Errorf("tps must be positive, got %d", c.Window.TPS)
	case c.Sim.FixedDt < 0:
		return fmt.Errorf("fixed_dt must not be negative, got %g", c.Sim.FixedDt)
	}
	return nil
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "circlesim",
			Width:     common.BaseWidth,
			Height:    common.BaseHeight,
			TPS:       60,
			Resizable: true,
		},
		Sim: SimConfig{
			Sandbox:       prefabs.SandboxFile,
			Tuning:        prefabs.TuningFile,
			HotReload:     true,
			HeadlessTicks: 600,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
