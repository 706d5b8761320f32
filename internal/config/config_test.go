package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Levels[0].BreakCount = -1
	cfg.Supply.Stocks.Mine = Range{Min: 5, Max: 2}
	cfg.Players = 3

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error %v does not contain a *FieldError", err)
	}

	for _, field := range []string{"levels[0].break_count", "supply.stocks.mine", "players"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error does not mention %s:\n%v", field, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"no levels", func(c *Config) { c.Levels = nil }, "levels"},
		{"no tiers", func(c *Config) { c.Tiers = nil }, "tiers"},
		{"growing tiers", func(c *Config) { c.Tiers[1].Radius = 10 }, "tiers[1].radius"},
		{"limited cannon", func(c *Config) { c.Weapons.Cannon.Unlimited = false }, "weapons.cannon.unlimited"},
		{"negative stock", func(c *Config) { c.Weapons.Mine.InitialStock = -1 }, "weapons.mine.initial_stock"},
		{"stock above cap", func(c *Config) { c.Weapons.Shield.InitialStock = 9 }, "weapons.shield.initial_stock"},
		{"removed ships", func(c *Config) { c.Boundaries.Ship = physics.Remove }, "boundaries.ship"},
		{"zero limit", func(c *Config) { c.Levels[1].Radiation.Limit = 0 }, "levels[1].radiation.limit"},
		{"border too wide", func(c *Config) { c.Levels[0].Radiation.Border = 50 }, "levels[0].radiation.border"},
		{"no fragments", func(c *Config) { c.Levels[0].FragmentsPerBreak = 0 }, "levels[0].fragments_per_break"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention %s", err, tt.field)
			}
		})
	}
}

func TestLevelRepeatsLastWithGrowth(t *testing.T) {
	cfg := Default()
	last := cfg.Levels[len(cfg.Levels)-1]

	if got := cfg.Level(1); got != cfg.Levels[0] {
		t.Errorf("Level(1) = %+v, want first level", got)
	}
	if got := cfg.Level(len(cfg.Levels)); got != last {
		t.Errorf("last configured level changed: %+v", got)
	}

	got := cfg.Level(len(cfg.Levels) + 2)
	if want := last.Asteroids + 2*cfg.Growth.Asteroids; got.Asteroids != want {
		t.Errorf("asteroids = %d, want %d", got.Asteroids, want)
	}
	wantSpeed := last.AsteroidSpeed * cfg.Growth.SpeedFactor * cfg.Growth.SpeedFactor
	if math.Abs(got.AsteroidSpeed-wantSpeed) > 1e-9 {
		t.Errorf("speed = %v, want %v", got.AsteroidSpeed, wantSpeed)
	}
	if got.BreakCount != last.BreakCount || got.Radiation.Limit != last.Radiation.Limit {
		t.Errorf("unexpected change in repeated level: %+v", got)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radroids.toml")
	data := `
players = 2
last_level = 5

[boundaries]
projectile = "wrap"

[weapons.mine]
initial_stock = 7

[supply.stocks.mine]
min = 2
max = 5

[[levels]]
asteroids = 9
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	base := Default()
	cfg, err := LoadFile(path, base)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Players != 2 || cfg.LastLevel != 5 {
		t.Errorf("top-level keys not applied: players=%d last_level=%d", cfg.Players, cfg.LastLevel)
	}
	if cfg.Boundaries.Projectile != physics.Wrap || cfg.Boundaries.Asteroid != physics.Wrap {
		t.Errorf("boundaries = %+v", cfg.Boundaries)
	}
	if cfg.Weapons.Mine.InitialStock != 7 || cfg.Weapons.Mine.BlastRadius != base.Weapons.Mine.BlastRadius {
		t.Errorf("mine weapon = %+v", cfg.Weapons.Mine)
	}
	if got := cfg.Supply.Stocks.Get(object.Mine); got != (Range{Min: 2, Max: 5}) {
		t.Errorf("mine drop range = %+v", got)
	}
	if len(cfg.Levels) != 1 || cfg.Levels[0].Asteroids != 9 {
		t.Fatalf("levels = %+v", cfg.Levels)
	}
	if cfg.Levels[0].BreakCount != base.Levels[0].BreakCount {
		t.Errorf("level keys absent from the file should keep their defaults")
	}
	if base.Levels[0].Asteroids == 9 {
		t.Error("LoadFile mutated the base config")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("lifes = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path, Default()); err == nil || !strings.Contains(err.Error(), "lifes") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestLoadFileBadBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[boundaries]\nship = \"teleport\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path, Default()); err == nil {
		t.Error("expected error for unknown boundary")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("RADROIDS_TEST_INT", "2")
	if n, err := GetEnvInt("RADROIDS_TEST_INT", 1); err != nil || n != 2 {
		t.Errorf("GetEnvInt = %d, %v", n, err)
	}
	t.Setenv("RADROIDS_TEST_INT", "two")
	if _, err := GetEnvInt("RADROIDS_TEST_INT", 1); err == nil {
		t.Error("expected parse error")
	}
	if n, _ := GetEnvInt("RADROIDS_TEST_UNSET", 7); n != 7 {
		t.Errorf("fallback = %d", n)
	}
}
