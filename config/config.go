package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"lightcycle/game"
	"lightcycle/protocol"
)

var ErrEmptyKey = errors.New("input param empty")

type Config struct {
	Addr     string
	TickHz   int
	Players  int
	Speed    float64
	CellSize float64
	Width    float64
	Height   float64
	LogLevel slog.Level
}

// InitConfig loads .env files into the environment. Missing files are fine;
// the process environment and the defaults still apply.
func InitConfig(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("no environment file loaded", "error", err)
		return
	}
	slog.Info("Successfully loaded environment variables")
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", ErrEmptyKey
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}

	return b, nil
}

// Load reads the LIGHTCYCLE_* variables on top of the defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:     ":42069",
		TickHz:   protocol.SimTickHz,
		Players:  1,
		Speed:    game.DefaultSpeed,
		CellSize: game.DefaultCellSize,
		Width:    game.DefaultWidth,
		Height:   game.DefaultHeight,
		LogLevel: slog.LevelInfo,
	}

	if v, err := GetEnvVariable("LIGHTCYCLE_ADDR"); err == nil {
		cfg.Addr = v
	}
	ints := map[string]*int{
		"LIGHTCYCLE_TICK_HZ": &cfg.TickHz,
		"LIGHTCYCLE_PLAYERS": &cfg.Players,
	}
	for key, dst := range ints {
		v, err := GetEnvVariable(key)
		if err != nil {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s: want a positive integer, got %q", key, v)
		}
		*dst = n
	}
	floats := map[string]*float64{
		"LIGHTCYCLE_SPEED":     &cfg.Speed,
		"LIGHTCYCLE_CELL_SIZE": &cfg.CellSize,
		"LIGHTCYCLE_WIDTH":     &cfg.Width,
		"LIGHTCYCLE_HEIGHT":    &cfg.Height,
	}
	for key, dst := range floats {
		v, err := GetEnvVariable(key)
		if err != nil {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("%s: want a positive number, got %q", key, v)
		}
		*dst = f
	}
	if cfg.Players > game.MaxPlayers {
		return Config{}, fmt.Errorf("LIGHTCYCLE_PLAYERS: at most %d players, got %d", game.MaxPlayers, cfg.Players)
	}
	if v, err := GetEnvVariable("LOG_LEVEL"); err == nil {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}
	return cfg, nil
}

func (c Config) Rules() game.Rules {
	return game.Rules{Players: c.Players, Speed: c.Speed, CellSize: c.CellSize}
}

func (c Config) Viewport() game.Viewport {
	return game.Viewport{Width: c.Width, Height: c.Height}
}

// NewLogger builds the process logger the way every binary here logs: text
// to stdout at the configured level.
func (c Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: c.LogLevel}))
}
