package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/config"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/deckapi"
)

// Globals are the flags shared by every command. Set flags override the config
// file and environment.
type Globals struct {
	Config   string `short:"c" default:"blackjack.hcl" help:"Path to HCL configuration file"`
	EnvFile  string `default:".env" help:"dotenv file loaded before the config"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	DeckAPI  string `name:"deck-api" help:"Card-supply service URL (overrides config)"`
	Seed     int64  `help:"RNG seed, 0 for random (overrides config)"`
}

func (g *Globals) loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(g.EnvFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.DeckAPI != "" {
		cfg.DeckAPI.URL = g.DeckAPI
	}
	if g.Seed != 0 {
		cfg.Game.Seed = g.Seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger logs to the configured file, or to fallback when none is set. The
// returned closer must be called on exit.
func newLogger(cfg *config.Config, fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closer := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closer = func() {
			if err := f.Close(); err != nil {
				log.Error("Failed to close log file", "error", err)
			}
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           cfg.LogLevel(),
	})
	return logger, closer, nil
}

// newRemote returns the card-supply client, or nil when the shoe is local.
func newRemote(cfg *config.Config, logger *log.Logger) (deck.Remote, error) {
	if cfg.DeckAPI.URL == "" {
		return nil, nil
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	return deckapi.NewClient(cfg.DeckAPI.URL, timeout, logger), nil
}
