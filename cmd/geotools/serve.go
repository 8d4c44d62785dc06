package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tingold/orb-geotools/internal/server"
)

// ServeCommand runs the HTTP server.
type ServeCommand struct {
	Addr   string `short:"a" long:"addr"   env:"LISTEN_ADDRESS" description:"Address to listen on" default:"0.0.0.0"`
	Port   int    `short:"p" long:"port"   env:"LISTEN_PORT"    description:"Port to listen on"    default:"8080"`
	Static string `long:"static"           env:"STATIC_DIR"     description:"Directory of static files served for unmatched paths"`
}

func (c *ServeCommand) Execute([]string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, c.Static)
	if err != nil {
		return err
	}

	listenAddr := fmt.Sprintf("%s:%d", c.Addr, c.Port)
	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	log.Info().
		Str("addr", listenAddr).
		Str("static", c.Static).
		Msg("Web server started")

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("Web server stopped")
	return nil
}
