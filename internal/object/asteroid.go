package object

import "github.com/tomz197/radroids/internal/physics"

// Asteroid is the payload of a space rock.
type Asteroid struct {
	Tier       int       // 0 = largest
	Budget     int       // Remaining fragmentation events for this lineage
	Generation int       // Fragmentations since the level-start ancestor
	Shape      []float64 // Vertex distance factors, for drawing only
}

// NewAsteroid creates an asteroid entity.
func NewAsteroid(id uint64, pos, vel physics.Vec2, radius, spin float64, tier, budget, generation int, shape []float64) *Entity {
	return &Entity{
		ID:     id,
		Kind:   KindAsteroid,
		Pos:    pos,
		Vel:    vel,
		Spin:   spin,
		Radius: radius,
		Alive:  true,
		Owner:  NoPlayer,
		Asteroid: &Asteroid{
			Tier:       tier,
			Budget:     budget,
			Generation: generation,
			Shape:      shape,
		},
	}
}
