// Package object defines the simulated entities as a closed tagged variant:
// every Entity carries a Kind and exactly one matching payload.
package object

import (
	"fmt"

	"github.com/tomz197/radroids/internal/physics"
)

// PlayerID identifies a player slot (0 or 1).
type PlayerID int

// NoPlayer marks entities not owned by any player.
const NoPlayer PlayerID = -1

func (p PlayerID) String() string {
	if p == NoPlayer {
		return "none"
	}
	return fmt.Sprintf("P%d", int(p)+1)
}

// Kind is the entity variant tag.
type Kind int

const (
	KindShip Kind = iota
	KindAsteroid
	KindProjectile
	KindDrop
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindProjectile:
		return "projectile"
	case KindDrop:
		return "drop"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entity is any simulated object. Exactly one payload pointer is non-nil
// and it matches Kind.
type Entity struct {
	ID      uint64
	Kind    Kind
	Pos     physics.Vec2
	Vel     physics.Vec2
	Heading float64 // Radians, 0 = pointing right
	Spin    float64 // Radians per second
	Radius  float64 // Collision radius
	Alive   bool
	Owner   PlayerID

	Ship       *Ship
	Asteroid   *Asteroid
	Projectile *Projectile
	Drop       *Drop
}

// Valid reports whether the payload matches the kind tag.
func (e *Entity) Valid() bool {
	set := 0
	for _, p := range []bool{e.Ship != nil, e.Asteroid != nil, e.Projectile != nil, e.Drop != nil} {
		if p {
			set++
		}
	}
	if set != 1 {
		return false
	}
	switch e.Kind {
	case KindShip:
		return e.Ship != nil
	case KindAsteroid:
		return e.Asteroid != nil
	case KindProjectile:
		return e.Projectile != nil
	case KindDrop:
		return e.Drop != nil
	}
	return false
}

// Integrate advances position and heading by dt seconds.
func (e *Entity) Integrate(dt float64) {
	e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	e.Heading = physics.NormalizeAngle(e.Heading + e.Spin*dt)
}

// Kill marks the entity for removal at the end of the tick.
func (e *Entity) Kill() {
	e.Alive = false
}

// Overlaps reports whether two entities' collision circles overlap.
func (e *Entity) Overlaps(o *Entity) bool {
	return physics.CirclesOverlap(e.Pos, e.Radius, o.Pos, o.Radius)
}
