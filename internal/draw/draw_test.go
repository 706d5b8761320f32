package draw

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/tomz197/radroids/internal/config"
	"github.com/tomz197/radroids/internal/game"
	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

var world = physics.Bounds{Width: 120, Height: 80}

func TestCanvasScalesWorldToPixels(t *testing.T) {
	// 60x20 cells give 60x40 pixels: half a pixel per world unit on both axes.
	c := NewCanvas(60, 20, world)
	c.Dot(physics.V(10, 10))
	if !c.Lit(physics.V(10, 10)) {
		t.Fatal("dot not set")
	}
	if c.Lit(physics.V(50, 50)) {
		t.Fatal("unrelated pixel set")
	}
	c.Clear()
	if c.Lit(physics.V(10, 10)) {
		t.Fatal("Clear left a pixel set")
	}
}

func TestDrawLineCoversEndpoints(t *testing.T) {
	c := NewCanvas(120, 40, world)
	a, b := physics.V(10, 10), physics.V(100, 60)
	c.DrawLine(a, b)
	for _, p := range []physics.Vec2{a, b, physics.V(55, 35)} {
		if !c.Lit(p) {
			t.Errorf("point %v not on line", p)
		}
	}
}

func TestFilledPolygonFillsInterior(t *testing.T) {
	c := NewCanvas(120, 40, world)
	square := []physics.Vec2{physics.V(20, 20), physics.V(40, 20), physics.V(40, 40), physics.V(20, 40)}
	c.DrawPolygon(square, false)
	if c.Lit(physics.V(30, 30)) {
		t.Fatal("outline filled the interior")
	}
	c.DrawPolygon(square, true)
	if !c.Lit(physics.V(30, 30)) {
		t.Fatal("interior not filled")
	}
}

func TestRenderUsesHalfBlocks(t *testing.T) {
	c := NewCanvas(4, 2, physics.Bounds{Width: 4, Height: 4})
	c.SetOffset(2, 1)
	c.Dot(physics.V(0, 0)) // top half of cell (1,1)
	c.Dot(physics.V(1, 0)) // cell (2,1), both halves
	c.Dot(physics.V(1, 1))

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"\033[2;3H▀", "\033[2;4H█"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output %q missing %q", out, want)
		}
	}
	if strings.Count(out, "\033[") != 2 {
		t.Errorf("empty cells were rendered: %q", out)
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h                 int
		rw, rh, offC, offRow int
	}{
		{80, 24, 80, 24, 0, 0},
		{MaxTermWidth + 20, MaxTermHeight + 10, MaxTermWidth, MaxTermHeight, 10, 5},
		{MaxTermWidth + 1, 30, MaxTermWidth, 30, 0, 0},
	}
	for _, tt := range tests {
		rw, rh, oc, or := ClampTermSize(tt.w, tt.h)
		if rw != tt.rw || rh != tt.rh || oc != tt.offC || or != tt.offRow {
			t.Errorf("ClampTermSize(%d, %d) = %d, %d, %d, %d", tt.w, tt.h, rw, rh, oc, or)
		}
	}
}

func TestChunkWriterAppliesOffset(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 3, 2)
	cw.WriteAt(1, 1, "hi")
	if buf.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\033[3;4Hhi" {
		t.Fatalf("got %q", got)
	}
}

func TestWrapCopies(t *testing.T) {
	if got := wrapCopies(physics.V(60, 40), 5, world); len(got) != 1 {
		t.Fatalf("interior object copied: %v", got)
	}
	got := wrapCopies(physics.V(2, 78), 5, world)
	want := []physics.Vec2{physics.V(2, 78), physics.V(122, 78), physics.V(2, -2), physics.V(122, -2)}
	if !slices.Equal(got, want) {
		t.Fatalf("corner copies = %v, want %v", got, want)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		value, limit float64
		want         string
	}{
		{0, 100, "[----]"},
		{50, 100, "[##--]"},
		{150, 100, "[####]"},
		{10, 0, "[----]"},
	}
	for _, tt := range tests {
		if got := Bar(tt.value, tt.limit, 4); got != tt.want {
			t.Errorf("Bar(%v, %v) = %q, want %q", tt.value, tt.limit, got, tt.want)
		}
	}
}

func TestDrawHUD(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 0, 0)
	var stock [object.WeaponCount]int
	stock[object.Mine] = 3
	DrawHUD(cw, 120, 40, HUD{
		Phase: game.GameOver,
		Level: 2,
		Limit: 100,
		Players: []game.PlayerView{
			{ID: 0, Lives: 2, Score: 150, InPlay: true, Selected: object.Mine, Stock: stock, Exposure: 50},
			{ID: 1, Score: 90, Eliminated: true},
		},
	})
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"P1  Score: 150  Lives: 2", ">MN:3", "RAD [#####-----]", "OUT", "G A M E  O V E R", "P1 150  vs  P2 90"} {
		if !strings.Contains(out, want) {
			t.Errorf("HUD missing %q", want)
		}
	}
}

func TestDrawSceneFromSession(t *testing.T) {
	s, err := game.NewSession(config.Default(), game.Options{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	c := NewCanvas(120, 40, s.Bounds())
	DrawScene(c, Scene{Bounds: s.Bounds(), Radiation: s.Radiation(), Entities: s.Entities()})

	var ship game.EntityView
	for v := range s.Entities() {
		if v.Kind == object.KindShip {
			ship = v
		}
	}
	if !c.Lit(ship.Pos) {
		t.Fatalf("ship at %v not drawn", ship.Pos)
	}
}
