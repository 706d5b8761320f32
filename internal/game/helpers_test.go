package game

import (
	"testing"

	"github.com/tomz197/radroids/internal/config"
	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

const dt = config.TickTime

// testConfig is a quiet single-player world: no countdowns, no spawn
// protection, no radiation, no drops and one parked asteroid.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.LevelStartTicks = 0
	cfg.LevelClearTicks = 0
	cfg.Ship.InvulnerableTicks = 0
	cfg.Ship.RespawnTicks = 0
	cfg.Growth.Asteroids = 0
	cfg.Levels = []config.Level{{
		Asteroids:         1,
		AsteroidSpeed:     0,
		BreakCount:        0,
		FragmentsPerBreak: 1,
		Radiation:         config.Radiation{Limit: 100, WarnAt: 0.7},
	}}
	return cfg
}

func newTestSession(t *testing.T, cfg config.Config) *Session {
	t.Helper()
	s, err := NewSession(cfg, Options{Seed: 1})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	parkAsteroids(s)
	return s
}

// parkAsteroids moves the level's asteroids into the bottom-left corner,
// away from ships and their line of fire.
func parkAsteroids(s *Session) {
	for _, e := range s.entities {
		if e.Kind == object.KindAsteroid {
			e.Pos = physics.V(6, s.bounds.Height-6)
			e.Vel = physics.Vec2{}
		}
	}
}

func ship(s *Session, id PlayerID) *object.Entity {
	return s.players[id].ship
}

// addAsteroid puts a stationary asteroid into the world immediately.
func addAsteroid(s *Session, pos physics.Vec2, tier, budget int) *object.Entity {
	e := s.newAsteroid(pos, physics.Vec2{}, tier, budget, 0)
	s.entities = append(s.entities, e)
	return e
}

// addBullet puts a stationary bullet owned by player into the world.
func addBullet(s *Session, owner PlayerID, pos physics.Vec2) *object.Entity {
	b := object.NewProjectile(s.newID(), owner, object.Bullet, object.Cannon, pos, physics.Vec2{}, 0.5, 30)
	s.entities = append(s.entities, b)
	return b
}

func count(evs []Event, kind EventKind) int {
	n := 0
	for _, ev := range evs {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func find(evs []Event, kind EventKind) (Event, bool) {
	for _, ev := range evs {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}

func countKind(s *Session, kind object.Kind) int {
	n := 0
	for v := range s.Entities() {
		if v.Kind == kind {
			n++
		}
	}
	return n
}

func cfgRadiation(border, natural, high float64) config.Radiation {
	return config.Radiation{Border: border, NaturalRate: natural, HighRate: high, Limit: 100, WarnAt: 0.7}
}
