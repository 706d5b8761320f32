// Package client renders server snapshots to a terminal and turns key
// presses into commands for the seats it owns.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/radroids/internal/config"
	"github.com/tomz197/radroids/internal/draw"
	"github.com/tomz197/radroids/internal/game"
	"github.com/tomz197/radroids/internal/input"
	"github.com/tomz197/radroids/internal/loop/server"
)

const (
	targetFrameTime = time.Second / config.TickRate
	messageFrames   = 2 * config.TickRate
	shutdownDisplay = 10 * time.Second
)

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	// IdleTimeout disconnects a client that sent no key for this long.
	// A warning is shown during the last quarter. Zero disables it.
	IdleTimeout time.Duration
	Logger      *log.Logger
}

// Client handles rendering and input for a single connection.
type Client struct {
	srv          server.GameServer
	handle       *server.Handle
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	stream       *input.Stream
	termSizeFunc draw.TermSizeFunc
	log          *log.Logger

	idleTimeout time.Duration
	lastInput   time.Time
	idle        bool

	running      bool
	frame        uint64
	lastGame     int
	message      string
	messageUntil uint64
	shutdownAt   time.Time // Zero unless the server is going down
}

// New creates a client for the seats held by h.
func New(srv server.GameServer, h *server.Handle, r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, srv.Snapshot().Bounds)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		srv:          srv,
		handle:       h,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		stream:       input.StartStream(r),
		termSizeFunc: termSizeFunc,
		log:          logger,
		idleTimeout:  opts.IdleTimeout,
		lastInput:    time.Now(),
		running:      true,
	}
}

// Run drives the client until the user quits, the input closes, the server
// shuts down or ctx is cancelled. The caller removes the handle afterwards.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	for c.running {
		select {
		case <-ctx.Done():
			c.running = false
			continue
		default:
		}

		frameStart := time.Now()
		c.processInput(frameStart)
		c.processServerEvents()
		c.updateScreen()
		if err := c.drawFrame(); err != nil {
			return err
		}
		c.frame++

		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads keys and forwards commands for every owned seat.
func (c *Client) processInput(now time.Time) {
	in := c.stream.Read()
	if in.Closed || in.Quit {
		c.running = false
		return
	}

	if len(in.Pressed) > 0 {
		c.lastInput = now
		c.idle = false
	} else if c.idleTimeout > 0 {
		since := now.Sub(c.lastInput)
		if since > c.idleTimeout {
			c.log.Info("disconnecting idle client", "name", c.handle.Name)
			c.running = false
			return
		}
		c.idle = since > c.idleTimeout*3/4
	}

	if !c.shutdownAt.IsZero() {
		if now.After(c.shutdownAt) {
			c.running = false
		}
		return
	}

	snap := c.srv.Snapshot()
	if snap.Game != c.lastGame {
		c.lastGame = snap.Game
		c.stream.Reset()
	}
	if !snap.Started || snap.Phase == game.GameOver {
		if in.Start {
			c.srv.Start()
		}
		return
	}
	c.sendCommands(in, snap)
}

func (c *Client) sendCommands(in input.Input, snap *server.Snapshot) {
	for i, seat := range c.handle.Seats {
		var pi input.PlayerInput
		switch {
		case len(c.handle.Seats) == 1:
			pi = in.Merged()
		case i < input.MaxPlayers:
			pi = in.Players[i]
		default:
			continue
		}

		var view game.PlayerView
		if int(seat) < len(snap.Players) {
			view = snap.Players[seat]
		}
		if cmds := pi.Commands(view); len(cmds) > 0 {
			c.srv.Send(server.Input{Player: seat, Commands: cmds})
		}
	}
}

// processServerEvents turns server events into on-screen notices.
func (c *Client) processServerEvents() {
	for {
		select {
		case ev, ok := <-c.handle.Events:
			if !ok {
				c.running = false
				return
			}
			switch ev.Type {
			case server.EventServerShutdown:
				if c.shutdownAt.IsZero() {
					c.shutdownAt = time.Now().Add(shutdownDisplay)
				}
			case server.EventGame:
				if msg := c.notice(ev.Game); msg != "" {
					c.message = msg
					c.messageUntil = c.frame + messageFrames
				}
			}
		default:
			return
		}
	}
}

func (c *Client) owns(p game.PlayerID) bool {
	for _, seat := range c.handle.Seats {
		if seat == p {
			return true
		}
	}
	return false
}

// notice returns the message to show for ev, or "" for none.
func (c *Client) notice(ev game.Event) string {
	mine := c.owns(ev.Player)
	who := ev.Player.String()
	switch ev.Kind {
	case game.EventRadiationWarning:
		if mine {
			return who + ": RADIATION WARNING - get back to clean space"
		}
	case game.EventItemCollected:
		if mine {
			return fmt.Sprintf("%s: +%d %s", who, ev.Quantity, ev.Weapon)
		}
	case game.EventShieldLowered:
		if mine {
			return who + ": shield down"
		}
	case game.EventLifeLost:
		if ev.Cause == game.CauseRadiation {
			return who + " succumbed to radiation"
		}
		return who + " lost a ship"
	case game.EventPlayerEliminated:
		return who + " is out"
	case game.EventDropSpawned:
		return "Supply drop incoming"
	}
	return ""
}

// updateScreen handles terminal resize, clamping to the max render resolution.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(termWidth, termHeight)
	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}
