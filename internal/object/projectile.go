package object

import (
	"fmt"

	"github.com/tomz197/radroids/internal/physics"
)

// ProjectileKind tags what a projectile does on contact and on expiry.
type ProjectileKind int

const (
	Bullet   ProjectileKind = iota // Consumed on hit
	HVBullet                       // Consumed on hit, faster
	Shell                          // Firework: bursts into a Blast on hit or expiry
	Charge                         // Mine: arms, then bursts on proximity or fuse
	Blast                          // Piercing explosion, lives one tick
)

func (k ProjectileKind) String() string {
	switch k {
	case Bullet:
		return "bullet"
	case HVBullet:
		return "hv_bullet"
	case Shell:
		return "shell"
	case Charge:
		return "mine"
	case Blast:
		return "blast"
	default:
		return fmt.Sprintf("ProjectileKind(%d)", int(k))
	}
}

// Projectile is the payload of bullets, shells, mines and blasts.
// Owner on the entity is for attribution only.
type Projectile struct {
	Kind     ProjectileKind
	Weapon   WeaponKind // Weapon that produced it
	TTL      int        // Ticks left; 0 = expire this tick
	ArmTicks int        // Mines: ticks until armed
	Piercing bool       // Hits everything it overlaps and is not consumed
}

// NewProjectile creates a projectile entity.
func NewProjectile(id uint64, owner PlayerID, kind ProjectileKind, weapon WeaponKind, pos, vel physics.Vec2, radius float64, ttl int) *Entity {
	return &Entity{
		ID:      id,
		Kind:    KindProjectile,
		Pos:     pos,
		Vel:     vel,
		Heading: vel.Angle(),
		Radius:  radius,
		Alive:   true,
		Owner:   owner,
		Projectile: &Projectile{
			Kind:     kind,
			Weapon:   weapon,
			TTL:      ttl,
			Piercing: kind == Blast,
		},
	}
}

// Armed reports whether a mine's arming delay has elapsed.
func (p *Projectile) Armed() bool {
	return p.ArmTicks <= 0
}

// Collides reports whether the projectile takes part in collision pairs.
// Mines act through their proximity trigger instead.
func (p *Projectile) Collides() bool {
	return p.Kind != Charge
}

// Bursts reports whether the projectile turns into a blast when it ends.
func (p *Projectile) Bursts() bool {
	return p.Kind == Shell || p.Kind == Charge
}
