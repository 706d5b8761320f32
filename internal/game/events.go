package game

import (
	"fmt"

	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventShipDestroyed EventKind = iota
	EventLifeLost
	EventPlayerEliminated
	EventShipRespawned
	EventAsteroidDestroyed
	EventProjectileFired
	EventMineDetonated
	EventShellBurst
	EventShieldRaised
	EventShieldLowered
	EventItemCollected
	EventDropSpawned
	EventDropExpired
	EventRadiationWarning
	EventLevelStarted
	EventLevelCleared
	EventGameOver
)

var eventNames = [...]string{
	EventShipDestroyed:     "ship_destroyed",
	EventLifeLost:          "life_lost",
	EventPlayerEliminated:  "player_eliminated",
	EventShipRespawned:     "ship_respawned",
	EventAsteroidDestroyed: "asteroid_destroyed",
	EventProjectileFired:   "projectile_fired",
	EventMineDetonated:     "mine_detonated",
	EventShellBurst:        "shell_burst",
	EventShieldRaised:      "shield_raised",
	EventShieldLowered:     "shield_lowered",
	EventItemCollected:     "item_collected",
	EventDropSpawned:       "drop_spawned",
	EventDropExpired:       "drop_expired",
	EventRadiationWarning:  "radiation_warning",
	EventLevelStarted:      "level_started",
	EventLevelCleared:      "level_cleared",
	EventGameOver:          "game_over",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Cause explains why a ship was destroyed.
type Cause int

const (
	CauseNone Cause = iota
	CauseAsteroid
	CauseProjectile
	CauseShip
	CauseRadiation
)

func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseAsteroid:
		return "asteroid"
	case CauseProjectile:
		return "projectile"
	case CauseShip:
		return "ship"
	case CauseRadiation:
		return "radiation"
	default:
		return fmt.Sprintf("Cause(%d)", int(c))
	}
}

// Event is emitted by Tick for the presentation layer. Fields not relevant
// to the kind are zero; Player is NoPlayer when no player is involved.
type Event struct {
	Kind      EventKind
	Tick      uint64
	Player    object.PlayerID
	Entity    uint64 // ID of the entity concerned, if any
	Pos       physics.Vec2
	Weapon    object.WeaponKind
	Quantity  int   // Ammunition collected, dropped or projectiles fired
	Tier      int   // Asteroid tier
	Level     int   // Level number for level events
	Cause     Cause // Ship destruction cause
	Completed bool  // Game over after clearing the last level
}

func (s *Session) emit(ev Event) {
	ev.Tick = s.tick
	s.events = append(s.events, ev)
}
