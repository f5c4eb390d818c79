package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lightcycle/config"
	"lightcycle/network"
	"lightcycle/room"
)

func main() {
	config.InitConfig()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	rooms := room.NewManager(room.Options{TickHz: cfg.TickHz, Logger: logger})
	defer rooms.Shutdown()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           network.NewServer(rooms, cfg.Rules(), cfg.Viewport(), logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("Server started", "addr", cfg.Addr, "tickHz", cfg.TickHz)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("ListenAndServe", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
