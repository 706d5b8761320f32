package game

import (
	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

// advanceEntities moves every live entity and counts down its timers.
func (s *Session) advanceEntities(dt float64) {
	params := s.cfg.Ship.Params()
	for _, e := range s.entities {
		if !e.Alive {
			continue
		}
		switch e.Kind {
		case object.KindShip:
			if e.Ship.TickTimers() {
				s.emit(Event{Kind: EventShieldLowered, Player: e.Owner, Entity: e.ID, Pos: e.Pos, Weapon: object.Shield})
			}
			object.Steer(e, params, dt)
			s.move(e, dt, s.cfg.Boundaries.Ship)

		case object.KindAsteroid:
			s.move(e, dt, s.cfg.Boundaries.Asteroid)

		case object.KindProjectile:
			p := e.Projectile
			if p.Kind == object.Blast {
				continue
			}
			p.TTL--
			if p.ArmTicks > 0 {
				p.ArmTicks--
			}
			if !s.move(e, dt, s.cfg.Boundaries.Projectile) {
				e.Kill()
			}

		case object.KindDrop:
			d := e.Drop
			if d.CollectableIn > 0 {
				d.CollectableIn--
			}
			d.Lifetime--
			if d.Lifetime <= 0 {
				e.Kill()
				s.emit(Event{Kind: EventDropExpired, Player: NoPlayer, Entity: e.ID, Pos: e.Pos, Weapon: d.Weapon, Quantity: d.Quantity})
			}
		}
	}
}

// move integrates e and applies the border mode. It reports false when the
// entity left a world with Remove borders.
func (s *Session) move(e *object.Entity, dt float64, mode physics.Boundary) bool {
	e.Integrate(dt)
	pos, vel, ok := s.bounds.Apply(mode, e.Pos, e.Vel)
	e.Pos, e.Vel = pos, vel
	return ok
}
