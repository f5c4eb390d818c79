package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"lightcycle/config"
	"lightcycle/game"
	"lightcycle/room"
	"lightcycle/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lightcycle: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.InitConfig()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// stdout belongs to the terminal UI
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if path, err := config.GetEnvVariable("LIGHTCYCLE_LOG_FILE"); err == nil {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel}))
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	scr := tui.New(s, cfg.CellSize)

	r := room.New(room.Options{
		Rules:    cfg.Rules(),
		Viewport: scr.Viewport(),
		TickHz:   cfg.TickHz,
		Logger:   logger,
	})
	go r.Run()

	reply := make(chan room.JoinResult, 1)
	r.Send(room.Join{Viewer: scr, Reply: reply})
	res := <-reply
	scr.Events(r.Send, res.ViewerID)

	statusReply := make(chan room.MatchStatus, 1)
	var st room.MatchStatus
	if r.Send(room.Status{Reply: statusReply}) {
		select {
		case st = <-statusReply:
		case <-time.After(time.Second):
		}
	}
	r.Stop()
	s.Fini()

	fmt.Printf("ticks: %d\n", st.Tick)
	if st.Phase == game.PhaseOver {
		fmt.Printf("last match: %s lost (%s)\n", st.Outcome.Loser, st.Outcome.Cause)
	}
	return nil
}
