package draw

import (
	"iter"
	"math"

	"github.com/tomz197/radroids/internal/config"
	"github.com/tomz197/radroids/internal/game"
	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

// blinkHz is how often protected ships flash.
const blinkHz = 10.0

// Scene is everything needed to draw one frame of the play field.
type Scene struct {
	Bounds    physics.Bounds
	Radiation config.Radiation
	Entities  iter.Seq[game.EntityView]
	Frame     uint64 // Frame counter for blinking
}

// DrawScene draws the radiation border and every entity onto the canvas.
func DrawScene(c *Canvas, sc Scene) {
	drawBorder(c, sc.Bounds, sc.Radiation.Border)
	for v := range sc.Entities {
		for _, pos := range wrapCopies(v.Pos, v.Radius, sc.Bounds) {
			drawEntity(c, v, pos, sc.Frame)
		}
	}
}

func drawEntity(c *Canvas, v game.EntityView, pos physics.Vec2, frame uint64) {
	switch v.Kind {
	case object.KindShip:
		if v.Invulnerable && !blinkOn(frame) {
			return
		}
		drawShip(c, v, pos)
	case object.KindAsteroid:
		drawAsteroid(c, v, pos)
	case object.KindProjectile:
		drawProjectile(c, v, pos, frame)
	case object.KindDrop:
		if !v.Collectable && !blinkOn(frame) {
			return
		}
		drawDrop(c, v, pos)
	}
}

// blinkOn alternates at blinkHz assuming the frame rate equals the tick rate.
func blinkOn(frame uint64) bool {
	return int(float64(frame)*blinkHz/config.TickRate)%2 == 0
}

func drawShip(c *Canvas, v game.EntityView, pos physics.Vec2) {
	size := v.Radius * 1.5
	tri := c.BorrowPoints(3)
	tri[0] = pos.Add(physics.FromAngle(v.Heading, size))
	tri[1] = pos.Add(physics.FromAngle(v.Heading+2.5, size*0.7))
	tri[2] = pos.Add(physics.FromAngle(v.Heading-2.5, size*0.7))
	// Player two is drawn hollow.
	c.DrawPolygon(tri, v.Owner == 0)

	if v.Thrusting {
		c.Dot(pos.Add(physics.FromAngle(v.Heading+math.Pi, size)))
	}
	if v.Shielded {
		c.DrawCircle(pos, v.Radius*2, 16)
	}
}

func drawAsteroid(c *Canvas, v game.EntityView, pos physics.Vec2) {
	n := len(v.Shape)
	if n < 3 {
		c.DrawCircle(pos, v.Radius, 10)
		return
	}
	pts := c.BorrowPoints(n)
	for i, f := range v.Shape {
		pts[i] = pos.Add(physics.FromAngle(v.Heading+float64(i)*2*math.Pi/float64(n), v.Radius*f))
	}
	c.DrawPolygon(pts, false)
}

func drawProjectile(c *Canvas, v game.EntityView, pos physics.Vec2, frame uint64) {
	switch v.Projectile {
	case object.Blast:
		c.DrawCircle(pos, v.Radius, 20)
	case object.Charge:
		if v.Armed && !blinkOn(frame) {
			c.Dot(pos)
			return
		}
		c.DrawCircle(pos, max(v.Radius, 1), 6)
	case object.Shell:
		c.DrawCircle(pos, max(v.Radius, 0.8), 4)
	case object.HVBullet:
		// Streak along the direction of travel.
		c.DrawLine(pos, pos.Sub(v.Vel.Normalize().Scale(2)))
	default:
		c.Dot(pos)
	}
}

func drawDrop(c *Canvas, v game.EntityView, pos physics.Vec2) {
	r := v.Radius
	diamond := c.BorrowPoints(4)
	diamond[0] = pos.Add(physics.V(0, -r))
	diamond[1] = pos.Add(physics.V(r, 0))
	diamond[2] = pos.Add(physics.V(0, r))
	diamond[3] = pos.Add(physics.V(-r, 0))
	c.DrawPolygon(diamond, v.Collectable)
}

// drawBorder outlines the clean region inside the radiation band with a
// dotted rectangle.
func drawBorder(c *Canvas, b physics.Bounds, border float64) {
	if border <= 0 {
		return
	}
	const step = 3.0
	x0, y0 := border, border
	x1, y1 := b.Width-border, b.Height-border
	for x := x0; x <= x1; x += step {
		c.Dot(physics.V(x, y0))
		c.Dot(physics.V(x, y1))
	}
	for y := y0; y <= y1; y += step {
		c.Dot(physics.V(x0, y))
		c.Dot(physics.V(x1, y))
	}
}

// wrapCopies returns pos plus the mirrored positions needed to draw an object
// that straddles a world edge.
func wrapCopies(pos physics.Vec2, radius float64, b physics.Bounds) []physics.Vec2 {
	out := []physics.Vec2{pos}
	var dx, dy float64
	switch {
	case pos.X < radius:
		dx = b.Width
	case pos.X > b.Width-radius:
		dx = -b.Width
	}
	switch {
	case pos.Y < radius:
		dy = b.Height
	case pos.Y > b.Height-radius:
		dy = -b.Height
	}
	if dx != 0 {
		out = append(out, pos.Add(physics.V(dx, 0)))
	}
	if dy != 0 {
		out = append(out, pos.Add(physics.V(0, dy)))
	}
	if dx != 0 && dy != 0 {
		out = append(out, pos.Add(physics.V(dx, dy)))
	}
	return out
}
