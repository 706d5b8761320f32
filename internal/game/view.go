package game

import (
	"iter"
	"slices"

	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

// EntityView is a read-only copy of an entity for rendering.
type EntityView struct {
	ID      uint64
	Kind    object.Kind
	Pos     physics.Vec2
	Vel     physics.Vec2
	Heading float64
	Radius  float64
	Owner   PlayerID

	Tier       int                   // Asteroids
	Shape      []float64             // Asteroid outline factors
	Projectile object.ProjectileKind // Projectiles
	Weapon     object.WeaponKind     // Projectiles and drops
	Quantity   int                   // Drops

	// Visual state
	Shielded     bool
	Invulnerable bool
	Thrusting    bool
	Armed        bool // Mines
	Collectable  bool // Drops
}

func viewOf(e *object.Entity) EntityView {
	v := EntityView{
		ID:      e.ID,
		Kind:    e.Kind,
		Pos:     e.Pos,
		Vel:     e.Vel,
		Heading: e.Heading,
		Radius:  e.Radius,
		Owner:   e.Owner,
	}
	switch e.Kind {
	case object.KindShip:
		v.Shielded = e.Ship.ShieldUp()
		v.Invulnerable = e.Ship.InvulnerableTicks > 0
		v.Thrusting = e.Ship.Controls.Thrust
		v.Weapon = e.Ship.Selected
	case object.KindAsteroid:
		v.Tier = e.Asteroid.Tier
		v.Shape = slices.Clone(e.Asteroid.Shape)
	case object.KindProjectile:
		v.Projectile = e.Projectile.Kind
		v.Weapon = e.Projectile.Weapon
		v.Armed = e.Projectile.Kind == object.Charge && e.Projectile.Armed()
	case object.KindDrop:
		v.Weapon = e.Drop.Weapon
		v.Quantity = e.Drop.Quantity
		v.Collectable = e.Drop.Collectable()
	}
	return v
}

// Entities yields the live entities as of the last tick, in insertion order.
// The sequence is lazy and can be ranged over again for a fresh pass; it must
// not be used concurrently with Tick.
func (s *Session) Entities() iter.Seq[EntityView] {
	return func(yield func(EntityView) bool) {
		for _, e := range s.entities {
			if !e.Alive {
				continue
			}
			if !yield(viewOf(e)) {
				return
			}
		}
	}
}

// PlayerView summarizes one player for the HUD.
type PlayerView struct {
	ID         PlayerID
	Lives      int
	Score      int
	Eliminated bool
	InPlay     bool // A ship is on the field
	RespawnIn  int  // Ticks until the ship returns, when waiting
	Exposure   float64
	Selected   object.WeaponKind
	Stock      [object.WeaponCount]int
	Shield     int // Shield ticks remaining
}

// Players returns a snapshot of every player.
func (s *Session) Players() []PlayerView {
	views := make([]PlayerView, 0, len(s.players))
	for _, p := range s.players {
		v := PlayerView{
			ID:         p.ID,
			Lives:      p.Lives,
			Score:      p.Score,
			Eliminated: p.Eliminated,
			RespawnIn:  p.respawnIn,
		}
		if p.ship != nil {
			sh := p.ship.Ship
			v.Selected = sh.Selected
			v.Stock = sh.Stock
			v.Exposure = sh.Exposure
			v.Shield = sh.ShieldTicks
		}
		v.InPlay = p.liveShip() != nil
		views = append(views, v)
	}
	return views
}
