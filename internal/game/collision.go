package game

import (
	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

// rule is the interaction between the two participants of a contact.
type rule int

const (
	ruleNone rule = iota
	ruleShipAsteroid
	ruleShipProjectile
	ruleAsteroidProjectile
	ruleShipDrop
	ruleShipShip
)

// contact is a detected collision. For asymmetric rules a is the ship (or the
// asteroid when paired with a projectile) and b the other participant.
type contact struct {
	rule rule
	a, b *object.Entity
}

// Minimum broad-phase cell size.
const minCellSize = 8.0

// classify looks up the rule for two overlapping entities and orders them
// as the rule expects.
func classify(x, y *object.Entity) (rule, *object.Entity, *object.Entity) {
	if x.Kind > y.Kind {
		x, y = y, x
	}
	switch {
	case x.Kind == object.KindShip && y.Kind == object.KindShip:
		return ruleShipShip, x, y
	case x.Kind == object.KindShip && y.Kind == object.KindAsteroid:
		return ruleShipAsteroid, x, y
	case x.Kind == object.KindShip && y.Kind == object.KindProjectile:
		if y.Owner == x.Owner {
			return ruleNone, nil, nil
		}
		return ruleShipProjectile, x, y
	case x.Kind == object.KindShip && y.Kind == object.KindDrop:
		if !y.Drop.Collectable() {
			return ruleNone, nil, nil
		}
		return ruleShipDrop, x, y
	case x.Kind == object.KindAsteroid && y.Kind == object.KindProjectile:
		return ruleAsteroidProjectile, x, y
	}
	return ruleNone, nil, nil
}

// collidable reports whether e takes part in pairwise collision detection.
// Mines act through their proximity trigger instead.
func collidable(e *object.Entity) bool {
	if !e.Alive {
		return false
	}
	if e.Kind == object.KindProjectile {
		return e.Projectile.Collides()
	}
	return true
}

// detectCollisions is the read-only pass. It returns contacts ordered by the
// insertion order of their participants.
func (s *Session) detectCollisions() []contact {
	s.collide = s.collide[:0]
	s.positions = s.positions[:0]
	maxRadius := 0.0
	for i, e := range s.entities {
		if !collidable(e) {
			continue
		}
		s.collide = append(s.collide, i)
		s.positions = append(s.positions, e.Pos)
		maxRadius = max(maxRadius, e.Radius)
	}

	// Cell size must cover the largest possible contact distance
	cell := max(2*maxRadius, minCellSize)
	if s.grid == nil || s.grid.CellSize() < cell {
		s.grid = physics.NewSpatialGrid(s.bounds, cell)
	}
	s.grid.Clear()
	for i, p := range s.positions {
		s.grid.Insert(p, i)
	}

	s.contacts = s.contacts[:0]
	for _, pair := range s.grid.CandidatePairs(s.positions) {
		x := s.entities[s.collide[pair.A]]
		y := s.entities[s.collide[pair.B]]
		if !x.Overlaps(y) {
			continue
		}
		if r, a, b := classify(x, y); r != ruleNone {
			s.contacts = append(s.contacts, contact{rule: r, a: a, b: b})
		}
	}
	return s.contacts
}

// resolveCollisions detects every contact first, then applies them in order.
// A contact whose non-piercing participant already died earlier in the pass
// is skipped, so destruction is idempotent. Blasts last a single pass.
func (s *Session) resolveCollisions() {
	for _, c := range s.detectCollisions() {
		s.applyContact(c)
	}
	for _, e := range s.entities {
		if e.Alive && e.Kind == object.KindProjectile && e.Projectile.Kind == object.Blast {
			e.Kill()
		}
	}
}

func (s *Session) applyContact(c contact) {
	if !active(c.a) || !active(c.b) {
		return
	}
	switch c.rule {
	case ruleShipAsteroid:
		ship, rock := c.a, c.b
		if ship.Ship.ShieldUp() {
			s.hitAsteroid(rock, ship.Owner)
			return
		}
		s.hitAsteroid(rock, NoPlayer)
		if !ship.Ship.Protected() {
			s.destroyShip(ship, CauseAsteroid)
		}

	case ruleShipProjectile:
		ship, proj := c.a, c.b
		s.consume(proj)
		if !ship.Ship.Protected() {
			s.destroyShip(ship, CauseProjectile)
		}

	case ruleAsteroidProjectile:
		rock, proj := c.a, c.b
		s.consume(proj)
		s.hitAsteroid(rock, proj.Owner)

	case ruleShipDrop:
		s.collect(c.a, c.b)

	case ruleShipShip:
		for _, ship := range []*object.Entity{c.a, c.b} {
			if !ship.Ship.Protected() {
				s.destroyShip(ship, CauseShip)
			}
		}
	}
}

// active reports whether e can still act in the apply pass. Piercing
// projectiles stay active for the whole pass.
func active(e *object.Entity) bool {
	if e.Kind == object.KindProjectile && e.Projectile.Piercing {
		return true
	}
	return e.Alive
}

// consume removes a projectile that hit something. Shells burst; their blast
// joins the world after the tick.
func (s *Session) consume(e *object.Entity) {
	p := e.Projectile
	switch {
	case p.Piercing:
	case p.Bursts():
		s.spawn(s.detonate(e))
	default:
		e.Kill()
	}
}

// collect moves a drop's ammunition into the ship's stock.
func (s *Session) collect(ship, drop *object.Entity) {
	d := drop.Drop
	sh := ship.Ship
	w := s.cfg.Weapons.Get(d.Weapon)

	added := d.Quantity
	if w.MaxStock > 0 {
		added = max(min(added, w.MaxStock-sh.Stock[d.Weapon]), 0)
	}
	sh.Stock[d.Weapon] += added
	drop.Kill()

	s.emit(Event{
		Kind:     EventItemCollected,
		Player:   ship.Owner,
		Entity:   drop.ID,
		Pos:      drop.Pos,
		Weapon:   d.Weapon,
		Quantity: added,
	})
}
