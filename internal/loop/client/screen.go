package client

import (
	"fmt"
	"slices"
	"time"

	"github.com/tomz197/radroids/internal/draw"
	"github.com/tomz197/radroids/internal/loop/server"
)

// drawFrame draws the current frame into the chunk writer and flushes it.
func (c *Client) drawFrame() error {
	cw := c.chunkWriter
	cw.WriteString("\033[H\033[2J")
	c.canvas.Clear()

	width := c.canvas.TerminalWidth()
	height := c.canvas.TerminalHeight()
	snap := c.srv.Snapshot()

	switch {
	case !c.shutdownAt.IsZero():
		c.drawShutdownScreen(width/2, height/2)
	case c.idle:
		c.drawInactivityScreen(width/2, height/2)
	case !snap.Started:
		c.drawTitleScreen(snap, width/2, height/2)
	default:
		draw.DrawScene(c.canvas, draw.Scene{
			Bounds:    snap.Bounds,
			Radiation: snap.Radiation,
			Entities:  slices.Values(snap.Entities),
			Frame:     c.frame,
		})
		if err := c.canvas.Render(cw); err != nil {
			return err
		}

		msg := ""
		if c.frame < c.messageUntil {
			msg = c.message
		}
		draw.DrawHUD(cw, width, height, draw.HUD{
			Phase:     snap.Phase,
			Level:     snap.Level,
			Countdown: snap.Countdown,
			Limit:     snap.Radiation.Limit,
			Players:   snap.Players,
			Completed: snap.Completed,
			Message:   msg,
		})
	}

	if err := c.canvas.RenderBorder(cw); err != nil {
		return err
	}
	return cw.Flush()
}

// drawTitleScreen is shown until the first game starts.
func (c *Client) drawTitleScreen(snap *server.Snapshot, centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-6, "R A D R O I D S")
	cw.WriteCentered(centerX, centerY-4, "~ asteroids in a radioactive belt ~")

	if snap.Free > 0 {
		cw.WriteCentered(centerX, centerY-1, fmt.Sprintf("Waiting for %d more player(s)...", snap.Free))
	} else {
		cw.WriteCentered(centerX, centerY-1, "Press SPACE to start")
	}

	controls := []string{
		"W / Up . . . . . . . Thrust",
		"A D / < > . . . . .  Rotate",
		"SPACE / ENTER . . . . Shoot",
		"1-5 / E / U . . . .  Weapon",
		"R / O  . . . . . . . Shield",
		"Q  . . . . . . . . . . Quit",
	}
	for i, line := range controls {
		cw.WriteCentered(centerX, centerY+2+i, line)
	}
}

// drawInactivityScreen warns before an idle client is disconnected.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")
	left := c.idleTimeout - time.Since(c.lastInput)
	cw.WriteCentered(centerX, centerY, fmt.Sprintf("You will be disconnected in %d seconds.", int(left.Seconds())+1))
	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen tells the player the server is going away.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	cw.WriteCentered(centerX, centerY-1, "Please reconnect in a moment.")
	left := time.Until(c.shutdownAt)
	cw.WriteCentered(centerX, centerY+1, fmt.Sprintf("Disconnecting in %d seconds...", int(left.Seconds())+1))
	cw.WriteCentered(centerX, centerY+3, "Press Q to disconnect now")
}
