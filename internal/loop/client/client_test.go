package client

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/radroids/internal/config"
	"github.com/tomz197/radroids/internal/game"
	"github.com/tomz197/radroids/internal/input"
	"github.com/tomz197/radroids/internal/loop/server"
	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

type fakeServer struct {
	snap   *server.Snapshot
	sent   []server.Input
	starts int
}

func (f *fakeServer) Snapshot() *server.Snapshot { return f.snap }
func (f *fakeServer) Send(in server.Input)       { f.sent = append(f.sent, in) }
func (f *fakeServer) Start()                     { f.starts++ }

func fixedSize() (int, int, error) { return 120, 40, nil }

func newTestClient(t *testing.T, srv *fakeServer, seats ...game.PlayerID) (*Client, *bytes.Buffer) {
	t.Helper()
	h := &server.Handle{Name: "ann", Seats: seats, Events: make(chan server.ClientEvent, 8)}
	var out bytes.Buffer
	c := New(srv, h, bufio.NewReader(strings.NewReader("")), &out, Options{TermSizeFunc: fixedSize})
	return c, &out
}

func playingSnapshot() *server.Snapshot {
	cfg := config.Default()
	return &server.Snapshot{
		Started:   true,
		Game:      1,
		Phase:     game.Active,
		Level:     1,
		Bounds:    cfg.Bounds(),
		Radiation: cfg.Levels[0].Radiation,
		Entities: []game.EntityView{
			{ID: 1, Kind: object.KindShip, Pos: physics.V(30, 40), Radius: 2, Owner: 0},
			{ID: 2, Kind: object.KindShip, Pos: physics.V(90, 40), Radius: 2, Owner: 1},
		},
		Players: []game.PlayerView{{ID: 0, Lives: 3, Score: 70, InPlay: true}, {ID: 1, Lives: 2, InPlay: true}},
	}
}

func TestSoloSeatTakesEitherLayout(t *testing.T) {
	srv := &fakeServer{snap: playingSnapshot()}
	c, _ := newTestClient(t, srv, 1)

	var in input.Input
	in.Players[0].Thrust = true
	in.Players[1].Fire = true
	c.sendCommands(in, srv.snap)

	if len(srv.sent) != 1 || srv.sent[0].Player != 1 {
		t.Fatalf("sent = %+v", srv.sent)
	}
	want := []game.Command{{Kind: game.Thrust}, {Kind: game.Fire}}
	if got := srv.sent[0].Commands; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("commands = %v, want %v", got, want)
	}
}

func TestSharedTerminalSplitsLayouts(t *testing.T) {
	srv := &fakeServer{snap: playingSnapshot()}
	c, _ := newTestClient(t, srv, 0, 1)

	var in input.Input
	in.Players[0].Left = true
	in.Players[1].Right = true
	c.sendCommands(in, srv.snap)

	if len(srv.sent) != 2 {
		t.Fatalf("sent = %+v", srv.sent)
	}
	if srv.sent[0].Player != 0 || srv.sent[0].Commands[0].Kind != game.RotateLeft {
		t.Errorf("player one got %+v", srv.sent[0])
	}
	if srv.sent[1].Player != 1 || srv.sent[1].Commands[0].Kind != game.RotateRight {
		t.Errorf("player two got %+v", srv.sent[1])
	}
}

func TestNoticeFiltersOtherPlayers(t *testing.T) {
	c, _ := newTestClient(t, &fakeServer{snap: playingSnapshot()}, 0)

	if msg := c.notice(game.Event{Kind: game.EventRadiationWarning, Player: 0}); !strings.Contains(msg, "RADIATION") {
		t.Errorf("own warning = %q", msg)
	}
	if msg := c.notice(game.Event{Kind: game.EventRadiationWarning, Player: 1}); msg != "" {
		t.Errorf("other player's warning shown: %q", msg)
	}
	if msg := c.notice(game.Event{Kind: game.EventItemCollected, Player: 0, Weapon: object.Mine, Quantity: 2}); msg != "P1: +2 mine" {
		t.Errorf("pickup = %q", msg)
	}
	if msg := c.notice(game.Event{Kind: game.EventPlayerEliminated, Player: 1}); msg != "P2 is out" {
		t.Errorf("elimination = %q", msg)
	}
	if msg := c.notice(game.Event{Kind: game.EventProjectileFired, Player: 0}); msg != "" {
		t.Errorf("fire produced a notice: %q", msg)
	}
}

func TestServerEventsSetMessageAndShutdown(t *testing.T) {
	c, _ := newTestClient(t, &fakeServer{snap: playingSnapshot()}, 0)
	c.handle.Events <- server.ClientEvent{Type: server.EventGame, Game: game.Event{Kind: game.EventDropSpawned}}
	c.handle.Events <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()

	if c.message != "Supply drop incoming" || c.messageUntil <= c.frame {
		t.Errorf("message = %q until %d", c.message, c.messageUntil)
	}
	if c.shutdownAt.IsZero() {
		t.Error("shutdown not scheduled")
	}

	close(c.handle.Events)
	c.processServerEvents()
	if c.running {
		t.Error("client kept running after its handle closed")
	}
}

func TestDrawFramePlaying(t *testing.T) {
	c, out := newTestClient(t, &fakeServer{snap: playingSnapshot()}, 0)
	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, want := range []string{"P1  Score: 70  Lives: 3", "P2  Score: 0  Lives: 2", "LEVEL 1"} {
		if !strings.Contains(s, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestDrawFrameWaiting(t *testing.T) {
	srv := &fakeServer{snap: &server.Snapshot{Free: 1, Bounds: config.Default().Bounds()}}
	c, out := newTestClient(t, srv, 0)
	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Waiting for 1 more player(s)") {
		t.Fatal("waiting screen not drawn")
	}
}

func TestDrawFrameTitle(t *testing.T) {
	srv := &fakeServer{snap: &server.Snapshot{Bounds: config.Default().Bounds()}}
	c, out := newTestClient(t, srv, 0, 1)
	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Press SPACE to start") {
		t.Fatal("title screen not drawn")
	}
}

func TestRunEndsWhenInputCloses(t *testing.T) {
	c, out := newTestClient(t, &fakeServer{snap: playingSnapshot()}, 0)

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after EOF")
	}
	if !strings.HasSuffix(out.String(), "\033[H\033[2J\033[?25h") {
		t.Error("screen not cleared and cursor not restored on exit")
	}
}

func TestStartFromGameOver(t *testing.T) {
	snap := playingSnapshot()
	snap.Phase = game.GameOver
	srv := &fakeServer{snap: snap}
	c, _ := newTestClient(t, srv, 0)
	c.lastGame = snap.Game

	// A pipe keeps the input open while the Start tap is delivered.
	pr, pw := io.Pipe()
	defer pw.Close()
	c.stream = input.StartStream(bufio.NewReader(pr))
	go pw.Write([]byte(" "))
	deadline := time.Now().Add(time.Second)
	for srv.starts == 0 && c.running && time.Now().Before(deadline) {
		c.processInput(time.Now())
		time.Sleep(time.Millisecond)
	}
	if srv.starts != 1 {
		t.Fatalf("starts = %d", srv.starts)
	}
	if len(srv.sent) != 0 {
		t.Fatalf("commands sent during game over: %+v", srv.sent)
	}
}
