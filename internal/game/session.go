// Package game implements the authoritative simulation of a radroids session:
// entity kinematics, collisions, weapons, fragmentation, radiation, supply
// drops and the level/life state machine.
//
// A Session is single-threaded. One goroutine owns it and calls Tick once per
// frame; commands issued in between are applied at the start of the next tick.
package game

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/radroids/internal/config"
	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

// PlayerID identifies a player slot.
type PlayerID = object.PlayerID

// NoPlayer marks events and entities without a player.
const NoPlayer = object.NoPlayer

// Options carries the session's collaborators.
type Options struct {
	// Logger receives phase transitions and level setup. Nil discards.
	Logger *log.Logger
	// Rand drives fragmentation angles, asteroid placement and drops.
	// When nil a PCG source seeded with Seed is used.
	Rand *rand.Rand
	Seed uint64
}

// Player is the per-player record held by the session. Lives live here
// because the ship entity is replaced on respawn.
type Player struct {
	ID         PlayerID
	Lives      int
	Score      int
	Eliminated bool

	ship      *object.Entity // Current ship, or the last destroyed one
	waiting   bool           // Respawn pending
	respawnIn int
	commands  []Command
}

// Session is one running game.
type Session struct {
	cfg    config.Config
	bounds physics.Bounds
	rng    *rand.Rand
	log    *log.Logger

	tick      uint64
	phase     Phase
	countdown int
	level     int
	levelCfg  config.Level

	players  []*Player
	entities []*object.Entity
	toSpawn  []*object.Entity // Entities to add after the current tick
	nextID   uint64
	supply   supplyScheduler
	events   []Event

	// Reused every tick for broad-phase collision detection
	grid      *physics.SpatialGrid
	collide   []int
	positions []physics.Vec2
	contacts  []contact
}

// NewSession validates cfg and starts level 1 in the LevelStarting phase.
func NewSession(cfg config.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	}

	s := &Session{
		cfg:    cfg,
		bounds: cfg.Bounds(),
		rng:    rng,
		log:    logger,
	}

	for i := range cfg.Players {
		p := &Player{ID: PlayerID(i), Lives: cfg.Lives}
		s.players = append(s.players, p)
		s.spawnShip(p, cfg.InitialStock(), object.Cannon)
	}
	s.flushSpawned()

	s.startLevel(1)
	return s, nil
}

// Tick advances the simulation by one frame and returns the events that
// occurred. dt drives motion; every timer counts ticks.
func (s *Session) Tick(dt time.Duration) []Event {
	s.tick++
	defer func() { s.events = nil }()

	if s.phase == GameOver {
		s.dropCommands()
		return s.events
	}

	// Frozen phases only count down
	if s.advanceCountdown() {
		s.dropCommands()
		return s.events
	}

	s.applyCommands()
	s.supply.advance(s)
	s.advanceEntities(dt.Seconds())
	s.triggerProjectiles()
	s.resolveCollisions()
	s.applyRadiation()
	s.advanceRespawns()
	s.evaluate()
	s.compact()

	return s.events
}

// Phase returns the current state machine phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Level returns the current level number, starting at 1.
func (s *Session) Level() int {
	return s.level
}

// Countdown returns the ticks left in a timed phase.
func (s *Session) Countdown() int {
	return s.countdown
}

// Radiation returns the radiation field of the current level.
func (s *Session) Radiation() config.Radiation {
	return s.levelCfg.Radiation
}

// Bounds returns the world rectangle.
func (s *Session) Bounds() physics.Bounds {
	return s.bounds
}

// AsteroidCount returns the number of live asteroids, including fragments
// that join the world at the end of the current tick.
func (s *Session) AsteroidCount() int {
	n := 0
	for _, e := range s.entities {
		if e.Alive && e.Kind == object.KindAsteroid {
			n++
		}
	}
	for _, e := range s.toSpawn {
		if e.Alive && e.Kind == object.KindAsteroid {
			n++
		}
	}
	return n
}

// Winner returns the player with the strictly highest score.
func (s *Session) Winner() (PlayerID, bool) {
	best, tie := NoPlayer, false
	for _, p := range s.players {
		switch {
		case best == NoPlayer || p.Score > s.players[best].Score:
			best, tie = p.ID, false
		case p.Score == s.players[best].Score:
			tie = true
		}
	}
	if tie {
		return NoPlayer, false
	}
	return best, best != NoPlayer
}

// newID returns the next entity ID.
func (s *Session) newID() uint64 {
	s.nextID++
	return s.nextID
}

// spawn queues an entity to be added after the current tick.
func (s *Session) spawn(e *object.Entity) {
	s.toSpawn = append(s.toSpawn, e)
}

// flushSpawned adds all queued entities to the world and clears the queue.
func (s *Session) flushSpawned() {
	for _, e := range s.toSpawn {
		if e.Alive {
			s.entities = append(s.entities, e)
		}
	}
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
}

// compact removes dead entities, checks entity invariants and appends the
// entities spawned during the tick.
func (s *Session) compact() {
	kept := s.entities[:0]
	for _, e := range s.entities {
		if !e.Alive {
			continue
		}
		checkEntity(e)
		kept = append(kept, e)
	}
	clear(s.entities[len(kept):])
	s.entities = kept
	s.flushSpawned()
}

// spawnPoint returns the default position of a player's ship.
func (s *Session) spawnPoint(id PlayerID) physics.Vec2 {
	n := float64(len(s.players))
	return physics.V(s.bounds.Width*float64(id+1)/(n+1), s.bounds.Height/2)
}

// spawnShip queues a fresh ship for p carrying the given ammunition.
func (s *Session) spawnShip(p *Player, stock [object.WeaponCount]int, selected object.WeaponKind) {
	e := object.NewShip(s.newID(), p.ID, s.spawnPoint(p.ID), shipHeading, s.cfg.Ship.Radius, stock)
	e.Ship.Selected = selected
	e.Ship.InvulnerableTicks = s.cfg.Ship.InvulnerableTicks
	p.ship = e
	p.waiting = false
	p.respawnIn = 0
	s.spawn(e)
}

// liveShip returns p's ship if it is in play.
func (p *Player) liveShip() *object.Entity {
	if p.ship == nil || !p.ship.Alive || p.ship.Ship.Destroyed {
		return nil
	}
	return p.ship
}
