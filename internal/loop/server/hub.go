package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomz197/radroids/internal/config"
)

// Hub gives every client its own server with all seats, so players on one
// terminal share a session and separate clients never do. It keeps track of
// the running servers for shutdown.
type Hub struct {
	ctx  context.Context
	cfg  config.Config
	opts Options

	mu      sync.Mutex
	rooms   map[*Server]context.CancelFunc
	created uint64
}

// NewHub validates cfg and returns a hub whose servers run until ctx is done.
func NewHub(ctx context.Context, cfg config.Config, opts Options) (*Hub, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Hub{ctx: ctx, cfg: cfg, opts: opts, rooms: make(map[*Server]context.CancelFunc)}, nil
}

// Open starts a server for name and seats it in every seat.
func (hb *Hub) Open(name string) (*Server, *Handle, error) {
	hb.mu.Lock()
	defer hb.mu.Unlock()

	opts := hb.opts
	// Spread seeds so concurrent servers do not replay the same game.
	opts.Seed = hb.opts.Seed + hb.created<<32
	srv, err := New(hb.cfg, opts)
	if err != nil {
		return nil, nil, err
	}
	h, err := srv.Join(name, hb.cfg.Players)
	if err != nil {
		return nil, nil, err
	}
	hb.created++

	ctx, cancel := context.WithCancel(hb.ctx)
	hb.rooms[srv] = cancel
	go srv.Run(ctx)
	return srv, h, nil
}

// Close removes h from srv and stops the server.
func (hb *Hub) Close(srv *Server, h *Handle) {
	hb.mu.Lock()
	defer hb.mu.Unlock()

	srv.Leave(h)
	if cancel, ok := hb.rooms[srv]; ok {
		cancel()
		delete(hb.rooms, srv)
	}
}

// Rooms returns the number of running servers.
func (hb *Hub) Rooms() int {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	return len(hb.rooms)
}

// Shutdown notifies every client and waits for them to leave, up to timeout.
func (hb *Hub) Shutdown(timeout time.Duration) {
	hb.mu.Lock()
	servers := make([]*Server, 0, len(hb.rooms))
	for srv := range hb.rooms {
		servers = append(servers, srv)
	}
	hb.mu.Unlock()

	var wg sync.WaitGroup
	for _, srv := range servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			srv.Shutdown(timeout)
		}()
	}
	wg.Wait()
}
