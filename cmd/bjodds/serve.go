package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/lox/bjodds/cmd/bjodds/shared"
	"github.com/lox/bjodds/internal/server"
	"golang.org/x/sync/errgroup"
)

// ServeCmd runs the HTTP and WebSocket front end
type ServeCmd struct {
	Addr string `short:"a" help:"Server address to bind to (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	logger, err := shared.SetupLogger(os.Stderr, cfg.Server.LogLevel)
	if err != nil {
		return err
	}

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	s := server.NewServer(addr, logger, server.WithPulse(cfg.Pulse()))

	logger.Info("Starting Blackjack Probability Analyzer",
		"addr", addr,
		"pulse", cfg.Pulse(),
		"log_level", cfg.Server.LogLevel)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	g2, gctx := errgroup.WithContext(ctx)

	g2.Go(func() error {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g2.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return g2.Wait()
}
