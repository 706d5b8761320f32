package game

import (
	"math"

	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

// newAsteroid builds an asteroid of the given tier with a random spin and
// outline.
func (s *Session) newAsteroid(pos, vel physics.Vec2, tier, budget, generation int) *object.Entity {
	// Irregular outline: 8-12 vertices, each within ±30% of the radius
	shape := make([]float64, 8+s.rng.IntN(5))
	for i := range shape {
		shape[i] = 0.7 + s.rng.Float64()*0.6
	}
	spin := (s.rng.Float64() - 0.5) * 2
	e := object.NewAsteroid(s.newID(), pos, vel, s.cfg.Tiers[tier].Radius, spin, tier, budget, generation, shape)
	e.Heading = s.rng.Float64() * 2 * math.Pi
	return e
}

// hitAsteroid destroys an asteroid and, budget and tier permitting, replaces
// it with fragments of the next tier. Fragments join the world after the
// tick. by receives the tier's score unless it is NoPlayer.
func (s *Session) hitAsteroid(e *object.Entity, by PlayerID) {
	if !e.Alive {
		return
	}
	e.Kill()
	a := e.Asteroid
	invariant(a.Budget >= 0, "asteroid %d has negative break budget", e.ID)

	if by != NoPlayer {
		s.players[by].Score += s.cfg.Tiers[a.Tier].Score
	}

	n := s.levelCfg.FragmentsPerBreak
	if a.Budget == 0 || a.Tier == len(s.cfg.Tiers)-1 {
		n = 0
	}
	s.emit(Event{Kind: EventAsteroidDestroyed, Player: by, Entity: e.ID, Pos: e.Pos, Tier: a.Tier, Quantity: n})
	if n == 0 {
		return
	}

	tier := a.Tier + 1
	speed := s.levelCfg.AsteroidSpeed * s.cfg.Tiers[tier].SpeedFactor

	// Fragments fan out evenly from the parent's heading, with a random offset
	base := e.Vel.Normalize()
	if base == (physics.Vec2{}) {
		base = physics.FromAngle(s.rng.Float64()*2*math.Pi, 1)
	}
	step := 2 * math.Pi / float64(n)
	offset := s.rng.Float64() * step
	for i := range n {
		vel := base.Rotate(offset + float64(i)*step).Scale(speed)
		s.spawn(s.newAsteroid(e.Pos, vel, tier, a.Budget-1, a.Generation+1))
	}
}
