package draw

import (
	"fmt"
	"strings"

	"github.com/tomz197/radroids/internal/config"
	"github.com/tomz197/radroids/internal/game"
	"github.com/tomz197/radroids/internal/object"
)

// HUD is the text overlay drawn on top of the canvas.
type HUD struct {
	Phase     game.Phase
	Level     int
	Countdown int
	Limit     float64 // Radiation exposure limit
	Players   []game.PlayerView
	Completed bool   // Game over after the last level
	Message   string // Transient notice, empty for none
}

// weaponTags are the short labels shown in the stock line.
var weaponTags = [object.WeaponCount]string{
	object.Cannon:       "CN",
	object.HighVelocity: "HV",
	object.Firework:     "FW",
	object.SuperLaser:   "SL",
	object.Mine:         "MN",
	object.Shield:       "SH",
}

const barWidth = 10

// DrawHUD writes the HUD for a width x height render area.
func DrawHUD(cw *ChunkWriter, width, height int, h HUD) {
	for i, p := range h.Players {
		lines := playerLines(p, h.Limit)
		for row, line := range lines {
			if i == 0 {
				cw.WriteAt(2, 1+row, line)
			} else {
				cw.WriteAt(max(width-len([]rune(line)), 1), 1+row, line)
			}
		}
	}

	cw.WriteCentered(width/2, 1, fmt.Sprintf("LEVEL %d", h.Level))

	centerRow := height / 2
	switch h.Phase {
	case game.LevelStarting:
		cw.WriteCentered(width/2, centerRow-1, fmt.Sprintf("L E V E L  %d", h.Level))
		cw.WriteCentered(width/2, centerRow+1, fmt.Sprintf("%d", countdownSeconds(h.Countdown)))
	case game.LevelClear:
		cw.WriteCentered(width/2, centerRow, "LEVEL CLEAR")
	case game.GameOver:
		title := "G A M E  O V E R"
		if h.Completed {
			title = "A L L  C L E A R"
		}
		cw.WriteCentered(width/2, centerRow-2, title)
		cw.WriteCentered(width/2, centerRow, resultLine(h.Players))
		cw.WriteCentered(width/2, centerRow+2, "Press SPACE to play again, Q to quit")
	}

	if h.Message != "" {
		cw.WriteCentered(width/2, height-1, h.Message)
	}
}

func playerLines(p game.PlayerView, limit float64) []string {
	head := fmt.Sprintf("%s  Score: %d  Lives: %d", p.ID, p.Score, p.Lives)
	switch {
	case p.Eliminated:
		return []string{head, "OUT"}
	case !p.InPlay:
		return []string{head, fmt.Sprintf("Respawn in %d", countdownSeconds(p.RespawnIn))}
	}

	var stock strings.Builder
	for _, k := range object.Weapons() {
		if k > 0 {
			stock.WriteByte(' ')
		}
		tag := weaponTags[k]
		if k == p.Selected {
			tag = ">" + tag
		}
		if k == object.Cannon {
			stock.WriteString(tag)
			continue
		}
		fmt.Fprintf(&stock, "%s:%d", tag, p.Stock[k])
	}
	rad := "RAD " + Bar(p.Exposure, limit, barWidth)
	if p.Shield > 0 {
		rad += fmt.Sprintf("  SHIELD %d", countdownSeconds(p.Shield))
	}
	return []string{head, stock.String(), rad}
}

func resultLine(players []game.PlayerView) string {
	if len(players) == 1 {
		return fmt.Sprintf("Final score: %d", players[0].Score)
	}
	parts := make([]string, len(players))
	for i, p := range players {
		parts[i] = fmt.Sprintf("%s %d", p.ID, p.Score)
	}
	return strings.Join(parts, "  vs  ")
}

// Bar renders value/limit as a fixed-width gauge.
func Bar(value, limit float64, width int) string {
	filled := 0
	if limit > 0 {
		filled = int(value / limit * float64(width))
	}
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// countdownSeconds rounds a tick count up to whole seconds.
func countdownSeconds(ticks int) int {
	return (ticks + config.TickRate - 1) / config.TickRate
}
