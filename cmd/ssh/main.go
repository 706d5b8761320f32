package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/radroids/internal/config"
	"github.com/tomz197/radroids/internal/draw"
	"github.com/tomz197/radroids/internal/loop/client"
	"github.com/tomz197/radroids/internal/loop/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	idleTimeout        = 2 * time.Minute
)

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	log.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "players", cfg.Players)

	gameCtx, cancelGames := context.WithCancel(context.Background())
	hub, err := server.NewHub(gameCtx, cfg, server.Options{
		Logger: log.Default().WithPrefix("game"),
		Seed:   uint64(time.Now().UnixNano()),
	})
	if err != nil {
		log.Fatal("failed to create game hub", "err", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(gameCtx, hub),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-done
	log.Info("Shutting down server...")

	// Let connected players see the notice before their games stop.
	hub.Shutdown(15 * time.Second)
	cancelGames()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", "err", err)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if path := config.GetEnv("RADROIDS_CONFIG", ""); path != "" {
		var err error
		if cfg, err = config.LoadFile(path, cfg); err != nil {
			return cfg, err
		}
	}
	players, err := config.GetEnvInt("RADROIDS_PLAYERS", cfg.Players)
	if err != nil {
		return cfg, err
	}
	cfg.Players = players
	return cfg, cfg.Validate()
}

// gameMiddleware opens a game for each SSH session and runs a client for it.
// Every seat of the game is played from that session's keyboard.
func gameMiddleware(ctx context.Context, hub *server.Hub) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			log.Info("New game session", "user", sess.User(), "term", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			srv, h, err := hub.Open(sess.User())
			if err != nil {
				fmt.Fprintf(sess, "Error: %v\n", err)
				return
			}
			defer hub.Close(srv, h)

			c := client.New(srv, h, bufio.NewReader(sess), sess, client.Options{
				TermSizeFunc: sizeTracker.getSize,
				IdleTimeout:  idleTimeout,
				Logger:       log.Default().WithPrefix(sess.User()),
			})
			if err := c.Run(ctx); err != nil {
				log.Error("Game error", "user", sess.User(), "err", err)
			}

			log.Info("Session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
