// Package input decodes raw terminal bytes into per-player game commands.
package input

import (
	"bufio"
	"time"

	"github.com/tomz197/radroids/internal/game"
	"github.com/tomz197/radroids/internal/object"
)

// keyHoldDuration is how long a key is considered held after its last press.
// Terminals only report key repeats, never releases.
const keyHoldDuration = 30 * time.Millisecond

// MaxPlayers is the number of keyboard layouts.
const MaxPlayers = 2

// Held actions last while the key repeats.
type held int

const (
	heldThrust held = iota
	heldLeft
	heldRight
	heldFire
	heldCount
)

// PlayerInput is one player's input for the current frame.
type PlayerInput struct {
	Thrust bool
	Left   bool
	Right  bool
	Fire   bool

	// Taps only fire on the frame the key arrives.
	NextWeapon bool
	Shield     bool
	Select     object.WeaponKind // Valid only when HasSelect
	HasSelect  bool
}

// Input is the decoded input of one frame.
type Input struct {
	Quit    bool
	Start   bool // Space or Enter this frame
	Closed  bool // The underlying reader is gone
	Players [MaxPlayers]PlayerInput
	Pressed []byte
}

// Merged folds every layout into player one, so a solo player can use
// either side of the keyboard.
func (in Input) Merged() PlayerInput {
	var m PlayerInput
	for _, p := range in.Players {
		m.Thrust = m.Thrust || p.Thrust
		m.Left = m.Left || p.Left
		m.Right = m.Right || p.Right
		m.Fire = m.Fire || p.Fire
		m.NextWeapon = m.NextWeapon || p.NextWeapon
		m.Shield = m.Shield || p.Shield
		if p.HasSelect && !m.HasSelect {
			m.Select, m.HasSelect = p.Select, true
		}
	}
	return m
}

// Commands turns the frame's input into session commands for a player whose
// current state is view.
func (p PlayerInput) Commands(view game.PlayerView) []game.Command {
	var cmds []game.Command
	if p.Thrust {
		cmds = append(cmds, game.Command{Kind: game.Thrust})
	}
	if p.Left {
		cmds = append(cmds, game.Command{Kind: game.RotateLeft})
	}
	if p.Right {
		cmds = append(cmds, game.Command{Kind: game.RotateRight})
	}
	switch {
	case p.HasSelect:
		cmds = append(cmds, game.Command{Kind: game.SwitchWeapon, Weapon: p.Select})
	case p.NextWeapon:
		cmds = append(cmds, game.Command{Kind: game.SwitchWeapon, Weapon: NextWeapon(view)})
	}
	if p.Shield {
		cmds = append(cmds, game.Command{Kind: game.RaiseShield})
	}
	if p.Fire {
		cmds = append(cmds, game.Command{Kind: game.Fire})
	}
	return cmds
}

// NextWeapon returns the firable weapon after the selected one that has
// stock, wrapping around to the cannon.
func NextWeapon(view game.PlayerView) object.WeaponKind {
	for i := 1; i < object.WeaponCount; i++ {
		k := object.WeaponKind((int(view.Selected) + i) % object.WeaponCount)
		if !k.Firable() {
			continue
		}
		if k == object.Cannon || view.Stock[k] > 0 {
			return k
		}
	}
	return view.Selected
}

// Decoder tracks key state across frames for hold detection.
type Decoder struct {
	hold     time.Duration
	lastSeen [MaxPlayers][heldCount]time.Time
}

// NewDecoder returns a decoder using the default hold duration.
func NewDecoder() *Decoder {
	return &Decoder{hold: keyHoldDuration}
}

// Reset forgets all held keys.
func (d *Decoder) Reset() {
	d.lastSeen = [MaxPlayers][heldCount]time.Time{}
}

// Decode parses the bytes received since the last frame.
//
// Player one: W thrust, A/D rotate, Space fire, E next weapon, R or 6 shield,
// 1-5 select a weapon. Player two: arrows or I/J/L, Enter, K or Down fire,
// U next weapon, O shield. Q or Ctrl-C quits.
func (d *Decoder) Decode(buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				d.lastSeen[1][heldThrust] = now
			case 'B':
				d.lastSeen[1][heldFire] = now
			case 'C':
				d.lastSeen[1][heldRight] = now
			case 'D':
				d.lastSeen[1][heldLeft] = now
			}
			i += 2
			continue
		}

		d.apply(&in, b, now)
	}

	for p := range in.Players {
		pl := &in.Players[p]
		pl.Thrust = d.isHeld(p, heldThrust, now)
		pl.Left = d.isHeld(p, heldLeft, now)
		pl.Right = d.isHeld(p, heldRight, now)
		pl.Fire = d.isHeld(p, heldFire, now)
	}
	return in
}

func (d *Decoder) isHeld(player int, h held, now time.Time) bool {
	t := d.lastSeen[player][h]
	return !t.IsZero() && now.Sub(t) < d.hold
}

func (d *Decoder) apply(in *Input, b byte, now time.Time) {
	p1, p2 := &in.Players[0], &in.Players[1]
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'w', 'W':
		d.lastSeen[0][heldThrust] = now
	case 'a', 'A':
		d.lastSeen[0][heldLeft] = now
	case 'd', 'D':
		d.lastSeen[0][heldRight] = now
	case ' ':
		d.lastSeen[0][heldFire] = now
		in.Start = true
	case 'e', 'E':
		p1.NextWeapon = true
	case 'r', 'R', '6':
		p1.Shield = true
	case '1', '2', '3', '4', '5':
		p1.Select, p1.HasSelect = object.WeaponKind(b-'1'), true
	case 'i', 'I':
		d.lastSeen[1][heldThrust] = now
	case 'j', 'J':
		d.lastSeen[1][heldLeft] = now
	case 'l', 'L':
		d.lastSeen[1][heldRight] = now
	case 'k', 'K':
		d.lastSeen[1][heldFire] = now
	case '\r', '\n':
		d.lastSeen[1][heldFire] = now
		in.Start = true
	case 'u', 'U':
		p2.NextWeapon = true
	case 'o', 'O':
		p2.Shield = true
	}
}

// Stream delivers input bytes via a channel filled by a reader goroutine.
type Stream struct {
	ch      chan byte
	closed  bool
	decoder *Decoder
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:      make(chan byte, 128),
		decoder: NewDecoder(),
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Read drains all available bytes without blocking and decodes them.
func (s *Stream) Read() Input {
	var buf []byte
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	in := s.decoder.Decode(buf, time.Now())
	in.Closed = s.closed
	return in
}

// Reset forgets held keys, e.g. when a new game starts.
func (s *Stream) Reset() {
	s.decoder.Reset()
}
