// Package config centralizes all tunable game parameters.
//
// Default returns a playable configuration; LoadFile overlays a TOML file on
// top of it and Validate reports every inconsistency before a session starts.
package config

import (
	"time"

	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

// Frame clock
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// World dimensions in logical units. Rendering scales to fit the terminal.
const (
	WorldWidth  = 120
	WorldHeight = 80
)

// Player
const (
	InitialLives      = 3
	RespawnTicks      = 2 * TickRate
	InvulnerableTicks = 3 * TickRate
	MaxPlayers        = 2
)

// Phases
const (
	LevelStartTicks = 2 * TickRate
	LevelClearTicks = 3 * TickRate / 2
)

// Config is the fully resolved parameter set consumed by a game session.
type Config struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	Players int     `toml:"players"`
	Lives   int     `toml:"lives"`
	// LastLevel completes the game once cleared; 0 plays forever.
	LastLevel int `toml:"last_level"`

	LevelStartTicks int `toml:"level_start_ticks"`
	LevelClearTicks int `toml:"level_clear_ticks"`

	Boundaries Boundaries `toml:"boundaries"`
	Ship       Ship       `toml:"ship"`
	Tiers      []Tier     `toml:"tiers"`
	Levels     []Level    `toml:"levels"`
	Growth     Growth     `toml:"growth"`

	Weapons PerWeapon[Weapon] `toml:"weapons"`
	Mine    Mine              `toml:"mine"`
	Shield  Shield            `toml:"shield"`
	Supply  Supply            `toml:"supply"`
}

// Boundaries selects the border behaviour per entity family.
type Boundaries struct {
	Ship       physics.Boundary `toml:"ship"`
	Asteroid   physics.Boundary `toml:"asteroid"`
	Projectile physics.Boundary `toml:"projectile"`
}

// Ship holds movement and life-cycle parameters of player ships.
type Ship struct {
	Radius            float64 `toml:"radius"`
	ThrustPower       float64 `toml:"thrust_power"`
	RotationSpeed     float64 `toml:"rotation_speed"`
	MaxSpeed          float64 `toml:"max_speed"`
	Drag              float64 `toml:"drag"`
	RespawnTicks      int     `toml:"respawn_ticks"`
	InvulnerableTicks int     `toml:"invulnerable_ticks"`
}

// Params converts the ship section into movement parameters.
func (s Ship) Params() object.ShipParams {
	return object.ShipParams{
		ThrustPower:   s.ThrustPower,
		RotationSpeed: s.RotationSpeed,
		MaxSpeed:      s.MaxSpeed,
		Drag:          s.Drag,
	}
}

// Tier is one asteroid size class. Tiers[0] is the largest.
type Tier struct {
	Radius      float64 `toml:"radius"`
	SpeedFactor float64 `toml:"speed_factor"` // Multiplies the level's asteroid speed
	Score       int     `toml:"score"`
}

// Level holds the per-level asteroid and radiation setup.
type Level struct {
	Asteroids         int       `toml:"asteroids"`
	AsteroidSpeed     float64   `toml:"asteroid_speed"`
	BreakCount        int       `toml:"break_count"`
	FragmentsPerBreak int       `toml:"fragments_per_break"`
	Drops             int       `toml:"drops"` // Supply drops allowed this level
	Radiation         Radiation `toml:"radiation"`
}

// Radiation describes the field of one level. Ships inside the clean rectangle
// (the world inset by Border) accrue NaturalRate per tick, others HighRate.
type Radiation struct {
	Border      float64 `toml:"border"`
	NaturalRate float64 `toml:"natural_rate"`
	HighRate    float64 `toml:"high_rate"`
	Limit       float64 `toml:"limit"`
	WarnAt      float64 `toml:"warn_at"` // Fraction of Limit
}

// Growth is applied once per level past the last configured one.
type Growth struct {
	Asteroids       int     `toml:"asteroids"`
	SpeedFactor     float64 `toml:"speed_factor"`
	RadiationFactor float64 `toml:"radiation_factor"`
}

// Weapon holds the firing parameters of one weapon kind.
type Weapon struct {
	Unlimited         bool    `toml:"unlimited"`
	InitialStock      int     `toml:"initial_stock"`
	MaxStock          int     `toml:"max_stock"` // 0 = uncapped
	ReloadTicks       int     `toml:"reload_ticks"`
	Speed             float64 `toml:"speed"`
	TTLTicks          int     `toml:"ttl_ticks"` // Fuse for fireworks and mines
	Radius            float64 `toml:"radius"`
	Burst             int     `toml:"burst"`        // Super laser ring size
	BlastRadius       float64 `toml:"blast_radius"` // Fireworks and mines
	FireThroughShield bool    `toml:"fire_through_shield"`
}

// Mine holds the proximity trigger of laid mines.
type Mine struct {
	ArmTicks      int     `toml:"arm_ticks"`
	TriggerRadius float64 `toml:"trigger_radius"`
}

// Shield holds shield parameters.
type Shield struct {
	DurationTicks int `toml:"duration_ticks"`
}

// Supply configures the supply drop scheduler.
type Supply struct {
	IntervalTicks      int              `toml:"interval_ticks"`
	JitterTicks        int              `toml:"jitter_ticks"`
	CollectableInTicks int              `toml:"collectable_in_ticks"`
	LifetimeTicks      int              `toml:"lifetime_ticks"`
	Radius             float64          `toml:"radius"`
	SafeDistance       float64          `toml:"safe_distance"`
	Stocks             PerWeapon[Range] `toml:"stocks"` // Max == 0 never drops
}

// Range is an inclusive integer range.
type Range struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

// PerWeapon stores one value per weapon kind under readable TOML keys.
type PerWeapon[T any] struct {
	Cannon       T `toml:"cannon"`
	HighVelocity T `toml:"high_velocity"`
	Firework     T `toml:"firework"`
	SuperLaser   T `toml:"super_laser"`
	Mine         T `toml:"mine"`
	Shield       T `toml:"shield"`
}

// At returns a pointer to the value for kind.
func (p *PerWeapon[T]) At(kind object.WeaponKind) *T {
	switch kind {
	case object.Cannon:
		return &p.Cannon
	case object.HighVelocity:
		return &p.HighVelocity
	case object.Firework:
		return &p.Firework
	case object.SuperLaser:
		return &p.SuperLaser
	case object.Mine:
		return &p.Mine
	case object.Shield:
		return &p.Shield
	}
	panic("config: invalid weapon kind " + kind.String())
}

// Get returns the value for kind.
func (p PerWeapon[T]) Get(kind object.WeaponKind) T {
	return *p.At(kind)
}

// Bounds returns the world rectangle.
func (c Config) Bounds() physics.Bounds {
	return physics.Bounds{Width: c.Width, Height: c.Height}
}

// InitialStock returns the starting ammunition of a new ship.
func (c Config) InitialStock() [object.WeaponCount]int {
	var stock [object.WeaponCount]int
	for _, w := range object.Weapons() {
		stock[w] = c.Weapons.Get(w).InitialStock
	}
	return stock
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:           WorldWidth,
		Height:          WorldHeight,
		Players:         1,
		Lives:           InitialLives,
		LevelStartTicks: LevelStartTicks,
		LevelClearTicks: LevelClearTicks,
		Boundaries: Boundaries{
			Ship:       physics.Wrap,
			Asteroid:   physics.Wrap,
			Projectile: physics.Remove,
		},
		Ship: Ship{
			Radius:            2,
			ThrustPower:       40,
			RotationSpeed:     5,
			MaxSpeed:          25,
			Drag:              0.5,
			RespawnTicks:      RespawnTicks,
			InvulnerableTicks: InvulnerableTicks,
		},
		Tiers: []Tier{
			{Radius: 5, SpeedFactor: 1, Score: 20},
			{Radius: 3, SpeedFactor: 1.6, Score: 50},
			{Radius: 1.5, SpeedFactor: 2.5, Score: 100},
		},
		Levels: []Level{
			{
				Asteroids: 4, AsteroidSpeed: 6, BreakCount: 2, FragmentsPerBreak: 2, Drops: 2,
				Radiation: Radiation{Border: 12, NaturalRate: 0.02, HighRate: 0.5, Limit: 100, WarnAt: 0.7},
			},
			{
				Asteroids: 5, AsteroidSpeed: 7, BreakCount: 2, FragmentsPerBreak: 2, Drops: 3,
				Radiation: Radiation{Border: 16, NaturalRate: 0.03, HighRate: 0.6, Limit: 100, WarnAt: 0.7},
			},
			{
				Asteroids: 6, AsteroidSpeed: 8, BreakCount: 2, FragmentsPerBreak: 3, Drops: 3,
				Radiation: Radiation{Border: 20, NaturalRate: 0.04, HighRate: 0.7, Limit: 100, WarnAt: 0.7},
			},
		},
		Growth: Growth{Asteroids: 1, SpeedFactor: 1.1, RadiationFactor: 1.1},
		Weapons: PerWeapon[Weapon]{
			Cannon:       Weapon{Unlimited: true, ReloadTicks: 9, Speed: 50, TTLTicks: 2 * TickRate, Radius: 0.5},
			HighVelocity: Weapon{InitialStock: 8, ReloadTicks: 9, Speed: 100, TTLTicks: TickRate, Radius: 0.5},
			Firework:     Weapon{InitialStock: 3, ReloadTicks: TickRate / 2, Speed: 35, TTLTicks: 3 * TickRate / 4, Radius: 0.8, BlastRadius: 10},
			SuperLaser:   Weapon{InitialStock: 2, ReloadTicks: TickRate, Speed: 50, TTLTicks: TickRate, Radius: 0.5, Burst: 16},
			Mine:         Weapon{InitialStock: 3, ReloadTicks: TickRate / 2, Speed: 2, TTLTicks: 10 * TickRate, Radius: 1, BlastRadius: 12, FireThroughShield: true},
			Shield:       Weapon{InitialStock: 2, MaxStock: 5},
		},
		Mine:   Mine{ArmTicks: TickRate, TriggerRadius: 8},
		Shield: Shield{DurationTicks: 5 * TickRate},
		Supply: Supply{
			IntervalTicks:      15 * TickRate,
			JitterTicks:        10 * TickRate,
			CollectableInTicks: 2 * TickRate,
			LifetimeTicks:      10 * TickRate,
			Radius:             2,
			SafeDistance:       20,
			Stocks: PerWeapon[Range]{
				HighVelocity: Range{Min: 5, Max: 15},
				Firework:     Range{Min: 1, Max: 3},
				SuperLaser:   Range{Min: 1, Max: 2},
				Mine:         Range{Min: 1, Max: 3},
				Shield:       Range{Min: 1, Max: 2},
			},
		},
	}
}
