package object

import (
	"math"

	"github.com/tomz197/radroids/internal/physics"
)

// Controls is the per-tick movement intent of a ship.
type Controls struct {
	Thrust      bool
	RotateLeft  bool
	RotateRight bool
}

// ShipParams are the movement tunables of a ship.
type ShipParams struct {
	ThrustPower   float64 // Acceleration when thrusting, units/s²
	RotationSpeed float64 // Radians per second
	MaxSpeed      float64 // Maximum velocity magnitude
	Drag          float64 // Fraction of speed kept per second when not thrusting (1 = no drag)
}

// Ship is the payload of a player-controlled ship.
type Ship struct {
	Player   PlayerID
	Selected WeaponKind
	Stock    [WeaponCount]int
	Cooldown [WeaponCount]int // Ticks until the weapon may fire again

	Exposure          float64
	Warned            bool // Radiation warning already issued this life
	ShieldTicks       int
	InvulnerableTicks int
	Destroyed         bool

	Controls Controls
}

// NewShip creates a ship entity for player at pos.
func NewShip(id uint64, player PlayerID, pos physics.Vec2, heading, radius float64, stock [WeaponCount]int) *Entity {
	return &Entity{
		ID:      id,
		Kind:    KindShip,
		Pos:     pos,
		Heading: heading,
		Radius:  radius,
		Alive:   true,
		Owner:   player,
		Ship: &Ship{
			Player:   player,
			Selected: Cannon,
			Stock:    stock,
		},
	}
}

// ShieldUp reports whether the ship's shield is raised.
func (s *Ship) ShieldUp() bool {
	return s.ShieldTicks > 0
}

// Protected reports whether destructive collisions are ignored.
func (s *Ship) Protected() bool {
	return s.ShieldTicks > 0 || s.InvulnerableTicks > 0
}

// Steer applies rotation, thrust, drag and the speed cap for dt seconds.
// Position is not changed; Integrate does that.
func Steer(e *Entity, p ShipParams, dt float64) {
	c := e.Ship.Controls
	if c.RotateLeft {
		e.Heading -= p.RotationSpeed * dt
	}
	if c.RotateRight {
		e.Heading += p.RotationSpeed * dt
	}
	e.Heading = physics.NormalizeAngle(e.Heading)

	if c.Thrust {
		e.Vel = e.Vel.Add(physics.FromAngle(e.Heading, p.ThrustPower*dt))
	} else if p.Drag < 1 {
		e.Vel = e.Vel.Scale(math.Pow(p.Drag, dt))
	}
	e.Vel = e.Vel.ClampLen(p.MaxSpeed)
}

// TickTimers counts down cooldowns, shield and spawn protection by one tick.
// It reports whether the shield dropped during this tick.
func (s *Ship) TickTimers() (shieldLowered bool) {
	for i := range s.Cooldown {
		if s.Cooldown[i] > 0 {
			s.Cooldown[i]--
		}
	}
	if s.InvulnerableTicks > 0 {
		s.InvulnerableTicks--
	}
	if s.ShieldTicks > 0 {
		s.ShieldTicks--
		return s.ShieldTicks == 0
	}
	return false
}
