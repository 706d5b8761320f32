package object

import "fmt"

// WeaponKind identifies a ship weapon. Every ship holds one stock per kind.
type WeaponKind int

const (
	Cannon       WeaponKind = iota // Default weapon, never runs out
	HighVelocity                   // Fast bullets
	Firework                       // Shell that bursts into a blast
	SuperLaser                     // Ring of bullets around the ship
	Mine                           // Drifting charge with proximity trigger
	Shield                         // Temporary protection, raised rather than fired

	WeaponCount = iota
)

var weaponNames = [WeaponCount]string{
	Cannon:       "cannon",
	HighVelocity: "high_velocity",
	Firework:     "firework",
	SuperLaser:   "super_laser",
	Mine:         "mine",
	Shield:       "shield",
}

func (w WeaponKind) String() string {
	if w.Valid() {
		return weaponNames[w]
	}
	return fmt.Sprintf("WeaponKind(%d)", int(w))
}

// Valid reports whether w names a real weapon.
func (w WeaponKind) Valid() bool {
	return w >= 0 && w < WeaponCount
}

// Firable reports whether the weapon launches projectiles (the shield does not).
func (w WeaponKind) Firable() bool {
	return w.Valid() && w != Shield
}

// ParseWeapon converts a weapon name into a WeaponKind.
func ParseWeapon(s string) (WeaponKind, error) {
	for i, name := range weaponNames {
		if name == s {
			return WeaponKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weapon %q", s)
}

// Weapons returns all weapon kinds in declaration order.
func Weapons() []WeaponKind {
	ws := make([]WeaponKind, WeaponCount)
	for i := range ws {
		ws[i] = WeaponKind(i)
	}
	return ws
}
