package physics

import (
	"fmt"
	"math"
)

// Boundary selects what happens when an entity crosses the edge of the world.
type Boundary int

const (
	Wrap   Boundary = iota // Reappear on the opposite edge (Asteroids-style)
	Bounce                 // Reflect velocity off the edge
	Remove                 // Leave the world and get removed
)

func (b Boundary) String() string {
	switch b {
	case Wrap:
		return "wrap"
	case Bounce:
		return "bounce"
	case Remove:
		return "remove"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// ParseBoundary converts a config string into a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "wrap":
		return Wrap, nil
	case "bounce":
		return Bounce, nil
	case "remove":
		return Remove, nil
	}
	return Wrap, fmt.Errorf("unknown boundary %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (b Boundary) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Boundary) UnmarshalText(text []byte) error {
	v, err := ParseBoundary(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Bounds is the rectangular world [0,Width) x [0,Height).
type Bounds struct {
	Width  float64
	Height float64
}

// Contains reports whether p lies inside the world.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Inset returns true if p lies at least margin away from every edge.
func (b Bounds) Inset(p Vec2, margin float64) bool {
	return p.X >= margin && p.X <= b.Width-margin && p.Y >= margin && p.Y <= b.Height-margin
}

// Apply transforms a position/velocity pair that may have left the world.
// The returned ok is false only for Remove when the position is outside.
func (b Bounds) Apply(mode Boundary, pos, vel Vec2) (Vec2, Vec2, bool) {
	switch mode {
	case Bounce:
		pos.X, vel.X = reflect(pos.X, vel.X, b.Width)
		pos.Y, vel.Y = reflect(pos.Y, vel.Y, b.Height)
		return pos, vel, true
	case Remove:
		return pos, vel, b.Contains(pos)
	default:
		pos.X = wrap(pos.X, b.Width)
		pos.Y = wrap(pos.Y, b.Height)
		return pos, vel, true
	}
}

func wrap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}

func reflect(p, v, size float64) (float64, float64) {
	if size <= 0 {
		return p, v
	}
	if p < 0 {
		p, v = -p, math.Abs(v)
	}
	if p > size {
		p, v = 2*size-p, -math.Abs(v)
	}
	return math.Min(math.Max(p, 0), size), v
}
