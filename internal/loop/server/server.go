// Package server hosts a game session on its own goroutine and shares it
// with render clients through immutable snapshots.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/radroids/internal/config"
	"github.com/tomz197/radroids/internal/game"
	"github.com/tomz197/radroids/internal/physics"
)

// ErrFull is returned by Join when not enough seats are free.
var ErrFull = errors.New("server full")

// GameServer is the interface clients use to talk to a server.
type GameServer interface {
	Snapshot() *Snapshot
	Send(in Input)
	Start()
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// Handle is a client's membership in a server. A handle may own several
// seats when players share one terminal.
type Handle struct {
	Name   string
	Seats  []game.PlayerID
	Events chan ClientEvent // Closed when the handle leaves
}

// Input carries one player's commands for the next tick.
type Input struct {
	Player   game.PlayerID
	Commands []game.Command
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventGame ClientEventType = iota
	EventServerShutdown
)

// ClientEvent is sent from the server to a client.
type ClientEvent struct {
	Type ClientEventType
	Game game.Event // For EventGame
}

// Snapshot is an immutable view of the server state after a tick.
type Snapshot struct {
	Started   bool // A session is running
	Free      int  // Seats still open
	Game      int  // Incremented on every new session
	Tick      uint64
	Phase     game.Phase
	Level     int
	Countdown int
	Completed bool
	Bounds    physics.Bounds
	Radiation config.Radiation
	Entities  []game.EntityView
	Players   []game.PlayerView
}

// Options configures a server.
type Options struct {
	Logger *log.Logger
	// Seed for the first session; later sessions use Seed+n.
	Seed uint64
}

// Server manages one session and the clients seated in it.
type Server struct {
	cfg  config.Config
	log  *log.Logger
	seed uint64

	session   *game.Session
	games     int
	completed bool
	tick      uint64
	starting  bool // A start was requested and waits for open seats

	snapshot atomic.Pointer[Snapshot]
	inputCh  chan Input
	startCh  chan struct{}

	mu    sync.RWMutex // Guards seats
	seats []*Handle    // Indexed by player ID, nil when open
}

// New validates cfg and creates a server with cfg.Players seats.
func New(cfg config.Config, opts Options) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		cfg:     cfg,
		log:     logger,
		seed:    opts.Seed,
		inputCh: make(chan Input, 256),
		startCh: make(chan struct{}, 1),
		seats:   make([]*Handle, cfg.Players),
	}
	s.snapshot.Store(&Snapshot{Free: cfg.Players, Bounds: cfg.Bounds()})
	return s, nil
}

// Run ticks the server at the fixed tick rate until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		s.step()

		elapsed := time.Since(frameStart)
		if elapsed < config.TickTime {
			time.Sleep(config.TickTime - elapsed)
		}
	}
}

// step advances the server by one tick.
func (s *Server) step() {
	s.tick++
	s.processStart()
	if s.starting && s.freeSeats() == 0 {
		s.startSession()
	}
	if s.session != nil {
		s.collectInputs()
		s.broadcast(s.session.Tick(config.TickTime))
	} else {
		s.drainInputs()
	}
	s.createSnapshot()
}

func (s *Server) startSession() {
	seed := s.seed + uint64(s.games)
	sess, err := game.NewSession(s.cfg, game.Options{Logger: s.log, Seed: seed})
	if err != nil {
		// The config was validated in New.
		s.log.Error("failed to start session", "err", err)
		return
	}
	s.session = sess
	s.games++
	s.completed = false
	s.starting = false
	s.log.Info("game started", "game", s.games, "seed", seed, "players", s.cfg.Players)
}

// processStart accepts a start request when no game is in progress.
func (s *Server) processStart() {
	select {
	case <-s.startCh:
	default:
		return
	}
	if s.session == nil || s.session.Phase() == game.GameOver {
		s.starting = true
	}
}

func (s *Server) collectInputs() {
	for {
		select {
		case in := <-s.inputCh:
			for _, cmd := range in.Commands {
				s.session.IssueCommand(in.Player, cmd)
			}
		default:
			return
		}
	}
}

func (s *Server) drainInputs() {
	for {
		select {
		case <-s.inputCh:
		default:
			return
		}
	}
}

// broadcast logs the tick's events and forwards them to every client.
func (s *Server) broadcast(events []game.Event) {
	if len(events) == 0 {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ev := range events {
		logEvent(s.log, ev)
		if ev.Kind == game.EventGameOver {
			s.completed = ev.Completed
		}
		for _, h := range s.handles() {
			select {
			case h.Events <- ClientEvent{Type: EventGame, Game: ev}:
			default:
				// Client is not keeping up; it still sees the snapshot.
			}
		}
	}
}

func logEvent(l *log.Logger, ev game.Event) {
	switch ev.Kind {
	case game.EventLevelCleared, game.EventPlayerEliminated, game.EventGameOver:
		l.Info(ev.Kind.String(), "tick", ev.Tick, "player", ev.Player, "level", ev.Level)
	case game.EventProjectileFired, game.EventAsteroidDestroyed:
		// Too frequent for the log.
	default:
		l.Debug(ev.Kind.String(), "tick", ev.Tick, "player", ev.Player, "entity", ev.Entity)
	}
}

// handles returns the distinct seated handles. Must be called with mu held.
func (s *Server) handles() []*Handle {
	var hs []*Handle
	for _, h := range s.seats {
		if h != nil && !slices.Contains(hs, h) {
			hs = append(hs, h)
		}
	}
	return hs
}

func (s *Server) freeSeats() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, h := range s.seats {
		if h == nil {
			n++
		}
	}
	return n
}

func (s *Server) createSnapshot() {
	snap := &Snapshot{
		Free:   s.freeSeats(),
		Game:   s.games,
		Tick:   s.tick,
		Bounds: s.cfg.Bounds(),
	}
	if sess := s.session; sess != nil {
		snap.Started = true
		snap.Phase = sess.Phase()
		snap.Level = sess.Level()
		snap.Countdown = sess.Countdown()
		snap.Completed = s.completed
		snap.Radiation = sess.Radiation()
		snap.Entities = slices.Collect(sess.Entities())
		snap.Players = sess.Players()
	}
	s.snapshot.Store(snap)
}

// Join seats a client in n open seats.
func (s *Server) Join(name string, n int) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var open []game.PlayerID
	for i, h := range s.seats {
		if h == nil {
			open = append(open, game.PlayerID(i))
		}
	}
	if n < 1 || len(open) < n {
		return nil, ErrFull
	}

	h := &Handle{Name: name, Seats: open[:n], Events: make(chan ClientEvent, 64)}
	for _, id := range h.Seats {
		s.seats[id] = h
	}
	s.log.Info("client joined", "name", name, "seats", h.Seats)
	return h, nil
}

// Leave frees the handle's seats and closes its event channel.
func (s *Server) Leave(h *Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	left := false
	for i, owner := range s.seats {
		if owner == h {
			s.seats[i] = nil
			left = true
		}
	}
	if left {
		close(h.Events)
		s.log.Info("client left", "name", h.Name)
	}
}

// Empty reports whether no client is seated.
func (s *Server) Empty() bool {
	return s.freeSeats() == len(s.seats)
}

// Snapshot returns the state after the latest tick.
func (s *Server) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Send queues commands for the next tick. Input is dropped when the queue is full.
func (s *Server) Send(in Input) {
	select {
	case s.inputCh <- in:
	default:
	}
}

// Start asks for a new session. It is ignored while a game is in progress;
// otherwise the session begins on the first tick with every seat taken.
func (s *Server) Start() {
	select {
	case s.startCh <- struct{}{}:
	default:
	}
}

// Shutdown notifies all clients and waits for them to leave, up to timeout.
// The caller should cancel the Run context afterwards.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, h := range s.handles() {
		select {
		case h.Events <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for !s.Empty() {
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
