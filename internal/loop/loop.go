// Package loop runs a local game: a server ticking the session and a client
// drawing it, both attached to the same terminal.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/radroids/internal/config"
	"github.com/tomz197/radroids/internal/draw"
	"github.com/tomz197/radroids/internal/loop/client"
	"github.com/tomz197/radroids/internal/loop/server"
)

// Options configures a local game.
type Options struct {
	Seed         uint64
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc
}

// Run plays cfg on one terminal, every seat controlled from the keyboard,
// until the player quits or ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, r *bufio.Reader, w io.Writer, opts Options) error {
	srv, err := server.New(cfg, server.Options{Logger: opts.Logger, Seed: opts.Seed})
	if err != nil {
		return err
	}
	h, err := srv.Join("local", cfg.Players)
	if err != nil {
		return err
	}
	defer srv.Leave(h)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go srv.Run(ctx)

	c := client.New(srv, h, r, w, client.Options{
		TermSizeFunc: opts.TermSizeFunc,
		Logger:       opts.Logger,
	})
	return c.Run(ctx)
}
