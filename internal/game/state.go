package game

import (
	"fmt"
	"math"

	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

// Phase is the state of the level/life state machine.
type Phase int

const (
	LevelStarting Phase = iota // Frozen countdown before play
	Active                     // Normal play
	LifeLost                   // Play continues while a ship waits to respawn
	LevelClear                 // Frozen countdown after the last asteroid
	GameOver                   // Terminal
)

func (p Phase) String() string {
	switch p {
	case LevelStarting:
		return "level_starting"
	case Active:
		return "active"
	case LifeLost:
		return "life_lost"
	case LevelClear:
		return "level_clear"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Ships start pointing up.
const shipHeading = -math.Pi / 2

// Bounded retries when placing asteroids and drops away from ships.
const placementAttempts = 32

func (s *Session) setPhase(p Phase, countdown int) {
	if s.phase != p {
		s.log.Debug("phase change", "from", s.phase, "to", p, "level", s.level, "tick", s.tick)
	}
	s.phase = p
	s.countdown = countdown
}

// advanceCountdown handles the frozen phases. It reports whether the rest of
// the tick is skipped.
func (s *Session) advanceCountdown() bool {
	switch s.phase {
	case LevelStarting:
		if s.countdown > 0 {
			s.countdown--
			return true
		}
		s.setPhase(Active, 0)
		return false

	case LevelClear:
		if s.countdown > 0 {
			s.countdown--
			return true
		}
		if s.cfg.LastLevel > 0 && s.level >= s.cfg.LastLevel {
			s.endGame(true)
			return true
		}
		s.startLevel(s.level + 1)
		return true
	}
	return false
}

// startLevel prepares level n: projectiles are cleared, pending respawns
// happen, ships return to their spawn points with zero exposure and the
// level's asteroids are placed. Drops, lives and ammunition are kept.
func (s *Session) startLevel(n int) {
	s.level = n
	s.levelCfg = s.cfg.Level(n)

	for _, e := range s.entities {
		if e.Kind == object.KindProjectile || e.Kind == object.KindAsteroid {
			e.Kill()
		}
	}
	for _, e := range s.toSpawn {
		if e.Kind == object.KindProjectile {
			e.Kill()
		}
	}

	for _, p := range s.players {
		if p.Eliminated {
			continue
		}
		if p.waiting {
			s.respawn(p)
			continue
		}
		if e := p.liveShip(); e != nil {
			sh := e.Ship
			e.Pos = s.spawnPoint(p.ID)
			e.Vel = physics.Vec2{}
			e.Heading = shipHeading
			sh.Exposure = 0
			sh.Warned = false
			sh.InvulnerableTicks = s.cfg.Ship.InvulnerableTicks
		}
	}
	s.compact()

	tier := s.cfg.Tiers[0]
	for range s.levelCfg.Asteroids {
		pos := s.asteroidPosition(tier.Radius)
		vel := physics.FromAngle(s.rng.Float64()*2*math.Pi, s.levelCfg.AsteroidSpeed*tier.SpeedFactor)
		s.entities = append(s.entities, s.newAsteroid(pos, vel, 0, s.levelCfg.BreakCount, 0))
	}

	s.supply.startLevel(s)
	s.setPhase(LevelStarting, s.cfg.LevelStartTicks)
	s.emit(Event{Kind: EventLevelStarted, Player: NoPlayer, Level: n})
	s.log.Debug("level started",
		"level", n,
		"asteroids", s.levelCfg.Asteroids,
		"speed", s.levelCfg.AsteroidSpeed,
		"break_count", s.levelCfg.BreakCount,
		"fragments", s.levelCfg.FragmentsPerBreak,
		"drops", s.supply.allowance,
	)
}

// asteroidPosition picks a spot on the world edge, away from every ship
// when possible.
func (s *Session) asteroidPosition(radius float64) physics.Vec2 {
	clearance := 4 * (s.cfg.Ship.Radius + radius)
	var pos physics.Vec2
	for range placementAttempts {
		if s.rng.IntN(2) == 0 {
			pos = physics.V(0, s.rng.Float64()*s.bounds.Height)
		} else {
			pos = physics.V(s.rng.Float64()*s.bounds.Width, 0)
		}
		if s.clearOfShips(pos, clearance) {
			break
		}
	}
	return pos
}

// clearOfShips reports whether pos is at least dist away from every live ship.
func (s *Session) clearOfShips(pos physics.Vec2, dist float64) bool {
	for _, p := range s.players {
		if e := p.liveShip(); e != nil && physics.Distance(pos, e.Pos) < dist {
			return false
		}
	}
	return true
}

// destroyShip is the single path for losing a ship, whatever the cause.
func (s *Session) destroyShip(e *object.Entity, cause Cause) {
	sh := e.Ship
	if sh.Destroyed {
		return
	}
	sh.Destroyed = true
	sh.ShieldTicks = 0
	e.Kill()

	p := s.players[sh.Player]
	p.Lives--
	invariant(p.Lives >= 0, "player %v has negative lives", p.ID)
	s.emit(Event{Kind: EventShipDestroyed, Player: p.ID, Entity: e.ID, Pos: e.Pos, Cause: cause})

	if p.Lives > 0 {
		p.waiting = true
		p.respawnIn = s.cfg.Ship.RespawnTicks
		s.emit(Event{Kind: EventLifeLost, Player: p.ID, Cause: cause})
		if s.phase == Active {
			s.setPhase(LifeLost, 0)
		}
		return
	}

	p.Eliminated = true
	s.emit(Event{Kind: EventPlayerEliminated, Player: p.ID, Cause: cause})
	s.log.Info("player eliminated", "player", p.ID, "score", p.Score, "level", s.level, "cause", cause)
}

// respawn gives p a fresh ship, keeping the previous ship's ammunition.
func (s *Session) respawn(p *Player) {
	old := p.ship.Ship
	s.spawnShip(p, old.Stock, old.Selected)
	s.emit(Event{Kind: EventShipRespawned, Player: p.ID, Entity: p.ship.ID, Pos: p.ship.Pos})
}

// advanceRespawns counts down pending respawns and leaves LifeLost once
// every surviving player has a ship again.
func (s *Session) advanceRespawns() {
	for _, p := range s.players {
		if !p.waiting {
			continue
		}
		if p.respawnIn > 0 {
			p.respawnIn--
			continue
		}
		s.respawn(p)
	}
	if s.phase == LifeLost && !s.pendingRespawns() {
		s.setPhase(Active, 0)
	}
}

func (s *Session) pendingRespawns() bool {
	for _, p := range s.players {
		if p.waiting {
			return true
		}
	}
	return false
}

// evaluate checks for game over and level clear at the end of play.
// The game ends only when no player has lives left.
func (s *Session) evaluate() {
	if s.phase != Active && s.phase != LifeLost {
		return
	}
	alive := false
	for _, p := range s.players {
		if !p.Eliminated {
			alive = true
			break
		}
	}
	if !alive {
		s.endGame(false)
		return
	}
	if s.AsteroidCount() == 0 {
		s.setPhase(LevelClear, s.cfg.LevelClearTicks)
		s.emit(Event{Kind: EventLevelCleared, Player: NoPlayer, Level: s.level})
	}
}

func (s *Session) endGame(completed bool) {
	s.setPhase(GameOver, 0)
	s.emit(Event{Kind: EventGameOver, Player: NoPlayer, Level: s.level, Completed: completed})

	kv := []any{"level", s.level, "completed", completed}
	for _, p := range s.players {
		kv = append(kv, p.ID.String(), p.Score)
	}
	s.log.Info("game over", kv...)
}
