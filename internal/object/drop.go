package object

import "github.com/tomz197/radroids/internal/physics"

// Drop is the payload of a supply drop.
type Drop struct {
	Weapon        WeaponKind
	Quantity      int
	CollectableIn int // Ticks while still falling and not collectable
	Lifetime      int // Ticks until it disappears uncollected
}

// NewDrop creates a stationary supply drop entity.
func NewDrop(id uint64, pos physics.Vec2, radius float64, weapon WeaponKind, quantity, collectableIn, lifetime int) *Entity {
	return &Entity{
		ID:     id,
		Kind:   KindDrop,
		Pos:    pos,
		Radius: radius,
		Alive:  true,
		Owner:  NoPlayer,
		Drop: &Drop{
			Weapon:        weapon,
			Quantity:      quantity,
			CollectableIn: collectableIn,
			Lifetime:      lifetime,
		},
	}
}

// Collectable reports whether a ship can pick the drop up.
func (d *Drop) Collectable() bool {
	return d.CollectableIn <= 0
}
