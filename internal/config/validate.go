package config

import (
	"errors"
	"fmt"

	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

// FieldError describes one inconsistent configuration value.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

type checker struct {
	errs []error
}

func (c *checker) check(ok bool, field, format string, args ...any) {
	if !ok {
		c.errs = append(c.errs, &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}
}

// Validate reports every inconsistency in c, joined with errors.Join.
// A nil result means a session can be started with c.
func (c Config) Validate() error {
	var v checker

	v.check(c.Width > 0, "width", "must be positive, got %v", c.Width)
	v.check(c.Height > 0, "height", "must be positive, got %v", c.Height)
	v.check(c.Players >= 1 && c.Players <= MaxPlayers, "players", "must be 1..%d, got %d", MaxPlayers, c.Players)
	v.check(c.Lives >= 1, "lives", "must be at least 1, got %d", c.Lives)
	v.check(c.LastLevel >= 0, "last_level", "must not be negative, got %d", c.LastLevel)
	v.check(c.LevelStartTicks >= 0, "level_start_ticks", "must not be negative")
	v.check(c.LevelClearTicks >= 0, "level_clear_ticks", "must not be negative")

	v.check(c.Boundaries.Ship != physics.Remove, "boundaries.ship", "ships cannot be removed at the border")
	v.check(c.Boundaries.Asteroid != physics.Remove, "boundaries.asteroid", "asteroids cannot be removed at the border")

	s := c.Ship
	v.check(s.Radius > 0, "ship.radius", "must be positive")
	v.check(s.MaxSpeed > 0, "ship.max_speed", "must be positive")
	v.check(s.ThrustPower >= 0, "ship.thrust_power", "must not be negative")
	v.check(s.RotationSpeed >= 0, "ship.rotation_speed", "must not be negative")
	v.check(s.Drag > 0 && s.Drag <= 1, "ship.drag", "must be in (0,1], got %v", s.Drag)
	v.check(s.RespawnTicks >= 0, "ship.respawn_ticks", "must not be negative")
	v.check(s.InvulnerableTicks >= 0, "ship.invulnerable_ticks", "must not be negative")

	v.check(len(c.Tiers) > 0, "tiers", "at least one asteroid tier is required")
	for i, t := range c.Tiers {
		field := fmt.Sprintf("tiers[%d]", i)
		v.check(t.Radius > 0, field+".radius", "must be positive")
		v.check(t.SpeedFactor >= 0, field+".speed_factor", "must not be negative")
		v.check(t.Score >= 0, field+".score", "must not be negative")
		if i > 0 {
			v.check(t.Radius < c.Tiers[i-1].Radius, field+".radius", "must be smaller than the previous tier")
		}
	}

	v.check(len(c.Levels) > 0, "levels", "at least one level is required")
	for i, l := range c.Levels {
		c.validateLevel(&v, fmt.Sprintf("levels[%d]", i), l)
	}
	v.check(c.Growth.Asteroids >= 0, "growth.asteroids", "must not be negative")
	v.check(c.Growth.SpeedFactor > 0, "growth.speed_factor", "must be positive")
	v.check(c.Growth.RadiationFactor > 0, "growth.radiation_factor", "must be positive")

	for _, kind := range object.Weapons() {
		w := c.Weapons.Get(kind)
		field := "weapons." + kind.String()
		v.check(w.InitialStock >= 0, field+".initial_stock", "must not be negative, got %d", w.InitialStock)
		v.check(w.MaxStock >= 0, field+".max_stock", "must not be negative")
		v.check(w.MaxStock == 0 || w.InitialStock <= w.MaxStock, field+".initial_stock", "exceeds max_stock %d", w.MaxStock)
		v.check(w.ReloadTicks >= 0, field+".reload_ticks", "must not be negative")
		if kind.Firable() {
			v.check(w.Speed >= 0, field+".speed", "must not be negative")
			v.check(w.TTLTicks >= 1, field+".ttl_ticks", "must be at least 1")
			v.check(w.Radius > 0, field+".radius", "must be positive")
		}
	}
	v.check(c.Weapons.Cannon.Unlimited, "weapons.cannon.unlimited", "the default weapon must be unlimited")
	v.check(!c.Weapons.Shield.Unlimited, "weapons.shield.unlimited", "shields cannot be unlimited")
	v.check(c.Weapons.SuperLaser.Burst >= 1, "weapons.super_laser.burst", "must be at least 1")
	v.check(c.Weapons.Firework.BlastRadius > 0, "weapons.firework.blast_radius", "must be positive")
	v.check(c.Weapons.Mine.BlastRadius > 0, "weapons.mine.blast_radius", "must be positive")
	v.check(c.Mine.ArmTicks >= 0, "mine.arm_ticks", "must not be negative")
	v.check(c.Mine.TriggerRadius >= 0, "mine.trigger_radius", "must not be negative")
	v.check(c.Shield.DurationTicks >= 1, "shield.duration_ticks", "must be at least 1")

	sp := c.Supply
	v.check(sp.IntervalTicks >= 1, "supply.interval_ticks", "must be at least 1")
	v.check(sp.JitterTicks >= 0, "supply.jitter_ticks", "must not be negative")
	v.check(sp.CollectableInTicks >= 0, "supply.collectable_in_ticks", "must not be negative")
	v.check(sp.LifetimeTicks >= 1, "supply.lifetime_ticks", "must be at least 1")
	v.check(sp.Radius > 0, "supply.radius", "must be positive")
	v.check(sp.SafeDistance >= 0, "supply.safe_distance", "must not be negative")
	for _, kind := range object.Weapons() {
		r := sp.Stocks.Get(kind)
		field := "supply.stocks." + kind.String()
		v.check(r.Min >= 0, field+".min", "must not be negative, got %d", r.Min)
		v.check(r.Min <= r.Max, field, "min %d exceeds max %d", r.Min, r.Max)
	}
	v.check(sp.Stocks.Cannon.Max == 0, "supply.stocks.cannon", "the unlimited weapon cannot be dropped")

	return errors.Join(v.errs...)
}

func (c Config) validateLevel(v *checker, field string, l Level) {
	v.check(l.Asteroids >= 0, field+".asteroids", "must not be negative")
	v.check(l.AsteroidSpeed >= 0, field+".asteroid_speed", "must not be negative")
	v.check(l.BreakCount >= 0, field+".break_count", "must not be negative, got %d", l.BreakCount)
	v.check(l.BreakCount == 0 || l.FragmentsPerBreak >= 1, field+".fragments_per_break", "must be at least 1 when break_count > 0")
	v.check(l.FragmentsPerBreak >= 0, field+".fragments_per_break", "must not be negative")
	v.check(l.Drops >= 0, field+".drops", "must not be negative")

	r := l.Radiation
	v.check(r.Border >= 0, field+".radiation.border", "must not be negative")
	v.check(2*r.Border < min(c.Width, c.Height), field+".radiation.border", "leaves no clean space")
	v.check(r.NaturalRate >= 0, field+".radiation.natural_rate", "must not be negative")
	v.check(r.HighRate >= 0, field+".radiation.high_rate", "must not be negative")
	v.check(r.Limit > 0, field+".radiation.limit", "must be positive")
	v.check(r.WarnAt >= 0 && r.WarnAt <= 1, field+".radiation.warn_at", "must be in [0,1]")
}
