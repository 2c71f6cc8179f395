package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/blackjackforbots/internal/bot"
	"github.com/lox/blackjackforbots/internal/display"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/simulator"
)

// SimulateCmd runs the configured bots against each other without a human
type SimulateCmd struct {
	Rounds   int `help:"Rounds per table (overrides config)"`
	Tables   int `help:"Independent tables run in parallel (overrides config)"`
	Decks    int `help:"Minimum decks per shoe (overrides config)"`
	Progress int `default:"0" help:"Log progress every N rounds per table, 0 disables"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Rounds > 0 {
		cfg.Game.Rounds = c.Rounds
	}
	if c.Tables > 0 {
		cfg.Game.Tables = c.Tables
	}
	if c.Decks > 0 {
		cfg.Game.Decks = c.Decks
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	registry := bot.Default()
	if err := cfg.ValidateStrategies(registry.Has); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	var seats []simulator.Seat
	for _, p := range cfg.Bots() {
		seats = append(seats, simulator.Seat{Name: p.Name, Strategy: p.Strategy})
	}
	if len(seats) == 0 {
		return errors.New("no bots configured: add player blocks with a strategy")
	}

	remote, err := newRemote(cfg, logger)
	if err != nil {
		return err
	}

	sim, err := simulator.New(simulator.Config{
		Rules:         cfg.Rules(),
		Seats:         seats,
		Rounds:        cfg.Game.Rounds,
		Tables:        cfg.Game.Tables,
		Decks:         cfg.Game.Decks,
		Shuffle:       cfg.ShuffleEnabled(),
		Seed:          cfg.Game.Seed,
		Registry:      registry,
		Remote:        remote,
		ProgressEvery: c.Progress,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	renderer := display.NewRenderer(os.Stdout)
	renderer.Message("RESULTS: %d rounds over %d tables in %s (%.0f rounds/sec, seed %d)",
		result.Rounds(), len(result.Tables), result.Elapsed.Round(time.Millisecond), result.RoundsPerSecond(), result.Seed)
	for _, t := range result.Tables {
		if t.Outcome != game.Completed {
			renderer.Message("  table %d stopped after %d rounds: %s", t.Table, t.Rounds, t.Outcome)
		}
	}
	renderer.ShowStandings(result.Standings)
	return nil
}
