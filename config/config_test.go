package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load("circlesim.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("shipped config differs from defaults:\n%+v\n%+v", cfg, Default())
	}
	if cfg.Dt() != 1.0/60 {
		t.Fatalf("expected dt 1/60, got %g", cfg.Dt())
	}
}

func TestLoad(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "partial",
			body: "[sim]\nfixed_dt = 0.01\n[logging]\nlevel = \"debug\"\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Dt() != 0.01 || cfg.Logging.Level != "debug" || cfg.Window.Width != 900 {
					t.Fatalf("unexpected config %+v", cfg)
				}
			},
		},
		{
			name:    "bad_toml",
			body:    "[window\n",
			wantErr: true,
		},
		{
			name:    "zero_tps",
			body:    "[window]\ntps = 0\n",
			wantErr: true,
		},
		{
			name:    "negative_dt",
			body:    "[sim]\nfixed_dt = -1.0\n",
			wantErr: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.toml")
			if err := os.WriteFile(path, []byte(c.body), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if c.check != nil {
				c.check(t, cfg)
			}
		})
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if cfg == nil || *cfg != *Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestNewLogger(t *testing.T) {
	cases := []struct {
		cfg  LoggingConfig
		want bool // debug enabled
	}{
		{LoggingConfig{Level: "debug", Format: "console"}, true},
		{LoggingConfig{Level: "warn", Format: "json"}, false},
		{LoggingConfig{Level: "bogus"}, false},
	}
	for _, c := range cases {
		log, err := NewLogger(c.cfg)
		if err != nil {
			t.Fatalf("NewLogger(%+v): %v", c.cfg, err)
		}
		if got := log.Core().Enabled(zapcore.DebugLevel); got != c.want {
			t.Fatalf("NewLogger(%+v): debug enabled = %v, want %v", c.cfg, got, c.want)
		}
	}
}
