package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/radroids/internal/config"
	"github.com/tomz197/radroids/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "radroids: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	seed, err := config.GetEnvInt("RADROIDS_SEED", int(time.Now().UnixNano()))
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs only go to a file.
	logger := log.New(io.Discard)
	if path := config.GetEnv("RADROIDS_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Level: log.DebugLevel})
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.Run(ctx, cfg, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Seed:   uint64(seed),
		Logger: logger,
	})
}

// loadConfig applies RADROIDS_CONFIG and RADROIDS_PLAYERS over the defaults.
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
	return cfg, nil
}
