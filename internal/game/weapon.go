package game

import (
	"math"

	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

// Gap between a ship's hull and a projectile fired from it.
const muzzleGap = 0.5

// fire launches weapon kind from ship e. Every failure is silent: no stock,
// cooldown running, destroyed ship, or a raised shield the weapon cannot
// fire through.
func (s *Session) fire(e *object.Entity, kind object.WeaponKind) {
	if kind == object.Shield {
		s.raiseShield(e)
		return
	}
	if !kind.Firable() {
		return
	}
	sh := e.Ship
	w := s.cfg.Weapons.Get(kind)
	switch {
	case sh.Destroyed:
		return
	case !w.Unlimited && sh.Stock[kind] == 0:
		return
	case sh.Cooldown[kind] > 0:
		return
	case sh.ShieldUp() && !w.FireThroughShield:
		return
	}

	if !w.Unlimited {
		sh.Stock[kind]--
		invariant(sh.Stock[kind] >= 0, "ship %d fired %v with empty stock", e.ID, kind)
	}
	sh.Cooldown[kind] = w.ReloadTicks

	fired := 1
	switch kind {
	case object.Cannon:
		s.launch(e, object.Bullet, kind, e.Heading)
	case object.HighVelocity:
		s.launch(e, object.HVBullet, kind, e.Heading)
	case object.Firework:
		s.launch(e, object.Shell, kind, e.Heading)
	case object.SuperLaser:
		step := 2 * math.Pi / float64(w.Burst)
		for i := range w.Burst {
			s.launch(e, object.Bullet, kind, e.Heading+float64(i)*step)
		}
		fired = w.Burst
	case object.Mine:
		m := object.NewProjectile(s.newID(), e.Owner, object.Charge, kind,
			e.Pos, physics.FromAngle(e.Heading, w.Speed), w.Radius, w.TTLTicks)
		m.Projectile.ArmTicks = s.cfg.Mine.ArmTicks
		s.spawn(m)
	}

	s.emit(Event{
		Kind:     EventProjectileFired,
		Player:   e.Owner,
		Entity:   e.ID,
		Pos:      e.Pos,
		Weapon:   kind,
		Quantity: fired,
	})
}

// launch spawns one projectile leaving ship e along angle with the ship's
// velocity added.
func (s *Session) launch(e *object.Entity, pk object.ProjectileKind, kind object.WeaponKind, angle float64) {
	w := s.cfg.Weapons.Get(kind)
	pos := e.Pos.Add(physics.FromAngle(angle, e.Radius+w.Radius+muzzleGap))
	vel := e.Vel.Add(physics.FromAngle(angle, w.Speed))
	s.spawn(object.NewProjectile(s.newID(), e.Owner, pk, kind, pos, vel, w.Radius, w.TTLTicks))
}

// switchWeapon selects kind. Selecting an empty weapon, or the shield which
// is raised rather than fired, is ignored.
func (s *Session) switchWeapon(e *object.Entity, kind object.WeaponKind) {
	if !kind.Firable() {
		return
	}
	if !s.cfg.Weapons.Get(kind).Unlimited && e.Ship.Stock[kind] == 0 {
		return
	}
	e.Ship.Selected = kind
}

// raiseShield consumes one shield if none is up.
func (s *Session) raiseShield(e *object.Entity) {
	sh := e.Ship
	if sh.Destroyed || sh.ShieldUp() || sh.Stock[object.Shield] == 0 {
		return
	}
	sh.Stock[object.Shield]--
	sh.ShieldTicks = s.cfg.Shield.DurationTicks
	s.emit(Event{Kind: EventShieldRaised, Player: e.Owner, Entity: e.ID, Pos: e.Pos, Weapon: object.Shield})
}

// detonate ends a shell or mine and returns the blast it leaves behind.
// The caller decides whether the blast joins the world now or after the tick.
func (s *Session) detonate(e *object.Entity) *object.Entity {
	p := e.Projectile
	e.Kill()

	kind := EventShellBurst
	if p.Kind == object.Charge {
		kind = EventMineDetonated
	}
	s.emit(Event{Kind: kind, Player: e.Owner, Entity: e.ID, Pos: e.Pos, Weapon: p.Weapon})

	radius := s.cfg.Weapons.Get(p.Weapon).BlastRadius
	return object.NewProjectile(s.newID(), e.Owner, object.Blast, p.Weapon, e.Pos, physics.Vec2{}, radius, 1)
}

// triggerProjectiles runs after every entity has moved: expired projectiles
// are removed or burst, and armed mines check their proximity trigger.
// Blasts join the world immediately so the collision pass of this tick
// applies them.
func (s *Session) triggerProjectiles() {
	n := len(s.entities)
	for i := range n {
		e := s.entities[i]
		if !e.Alive || e.Kind != object.KindProjectile {
			continue
		}
		p := e.Projectile
		switch {
		case p.Kind == object.Blast:
			continue
		case p.TTL <= 0 && p.Bursts():
			s.entities = append(s.entities, s.detonate(e))
		case p.TTL <= 0:
			e.Kill()
		case p.Kind == object.Charge && p.Armed() && s.mineTriggered(e):
			s.entities = append(s.entities, s.detonate(e))
		}
	}
}

// mineTriggered reports whether an asteroid or another player's ship is
// within the mine's trigger radius.
func (s *Session) mineTriggered(mine *object.Entity) bool {
	r := s.cfg.Mine.TriggerRadius
	for _, e := range s.entities {
		if !e.Alive {
			continue
		}
		switch e.Kind {
		case object.KindAsteroid:
		case object.KindShip:
			if e.Owner == mine.Owner || e.Ship.Destroyed {
				continue
			}
		default:
			continue
		}
		if physics.Distance(mine.Pos, e.Pos) < r+e.Radius {
			return true
		}
	}
	return false
}
