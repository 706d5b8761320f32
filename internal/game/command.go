package game

import (
	"fmt"

	"github.com/tomz197/radroids/internal/object"
)

// CommandKind is an abstract player action decoded upstream from input.
type CommandKind int

const (
	Thrust       CommandKind = iota // Accelerate this tick
	RotateLeft                      // Turn counter-clockwise this tick
	RotateRight                     // Turn clockwise this tick
	Fire                            // Fire the selected weapon
	FireWeapon                      // Fire Command.Weapon
	SwitchWeapon                    // Select Command.Weapon
	RaiseShield                     // Raise the shield
)

func (k CommandKind) String() string {
	switch k {
	case Thrust:
		return "thrust"
	case RotateLeft:
		return "rotate_left"
	case RotateRight:
		return "rotate_right"
	case Fire:
		return "fire"
	case FireWeapon:
		return "fire_weapon"
	case SwitchWeapon:
		return "switch_weapon"
	case RaiseShield:
		return "shield"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is one player action. Weapon is used by FireWeapon and SwitchWeapon.
type Command struct {
	Kind   CommandKind
	Weapon object.WeaponKind
}

func (c Command) String() string {
	if c.Kind == FireWeapon || c.Kind == SwitchWeapon {
		return c.Kind.String() + ":" + c.Weapon.String()
	}
	return c.Kind.String()
}

// IssueCommand queues cmd for player. Queued commands are applied at the
// start of the next tick; commands for unknown players, eliminated players
// or frozen phases are dropped without error.
func (s *Session) IssueCommand(player PlayerID, cmd Command) {
	if player < 0 || int(player) >= len(s.players) || s.phase == GameOver {
		return
	}
	p := s.players[player]
	if p.Eliminated {
		return
	}
	p.commands = append(p.commands, cmd)
}

func (s *Session) dropCommands() {
	for _, p := range s.players {
		p.commands = p.commands[:0]
	}
}

// applyCommands turns queued commands into control flags and weapon actions.
// Movement commands only last for the tick they are applied in.
func (s *Session) applyCommands() {
	for _, p := range s.players {
		e := p.liveShip()
		if e == nil {
			p.commands = p.commands[:0]
			continue
		}
		sh := e.Ship
		sh.Controls = object.Controls{}
		for _, cmd := range p.commands {
			switch cmd.Kind {
			case Thrust:
				sh.Controls.Thrust = true
			case RotateLeft:
				sh.Controls.RotateLeft = true
			case RotateRight:
				sh.Controls.RotateRight = true
			case Fire:
				s.fire(e, sh.Selected)
			case FireWeapon:
				s.fire(e, cmd.Weapon)
			case SwitchWeapon:
				s.switchWeapon(e, cmd.Weapon)
			case RaiseShield:
				s.raiseShield(e)
			}
		}
		p.commands = p.commands[:0]
	}
}
