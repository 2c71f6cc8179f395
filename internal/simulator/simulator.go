// Package simulator runs tournaments of automated players: many rounds on one or
// more independent tables, with per-player balance histories.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjackforbots/internal/bot"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/randutil"
	"github.com/lox/blackjackforbots/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Seat is an automated player and the strategy it plays
type Seat struct {
	Name     string
	Strategy string
}

// Config holds configuration for running simulations. Decks is the smallest
// shoe a table plays with: shoes are never refilled, so each table's shoe grows
// to cover Rounds for every seat.
type Config struct {
	Rules   game.Rules
	Seats   []Seat
	Rounds  int
	Tables  int
	Decks   int
	Shuffle bool
	Seed    int64

	// Registry builds policies by strategy name. Defaults to bot.Default().
	Registry *bot.Registry
	// Remote is an optional card-supply service shared by every table.
	Remote deck.Remote
	// ProgressEvery logs progress after this many rounds per table, 0 disables.
	ProgressEvery int

	Clock  quartz.Clock
	Logger *log.Logger
}

// TableResult is how one table finished
type TableResult struct {
	Table   int
	Seed    int64
	Decks   int
	Rounds  int
	Outcome game.Outcome // Completed when every requested round was played
	Tracker *statistics.Tracker
}

// Result is the outcome of a whole run
type Result struct {
	Seed      int64
	Tables    []TableResult
	Standings []statistics.Standing
	Elapsed   time.Duration
}

// Rounds returns the completed rounds over all tables
func (r *Result) Rounds() int {
	total := 0
	for _, t := range r.Tables {
		total += t.Rounds
	}
	return total
}

// RoundsPerSecond returns throughput, or 0 when no time was measured
func (r *Result) RoundsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Rounds()) / r.Elapsed.Seconds()
}

// Simulator runs blackjack tournaments
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if err := config.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if len(config.Seats) == 0 {
		return nil, errors.New("at least one seat is required")
	}
	if config.Rounds < 1 {
		return nil, errors.New("rounds must be positive")
	}
	if config.Tables == 0 {
		config.Tables = 1
	}
	if config.Decks == 0 {
		config.Decks = 1
	}
	if config.Registry == nil {
		config.Registry = bot.Default()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	config.Seed = randutil.Resolve(config.Seed)

	seen := make(map[string]bool, len(config.Seats))
	for _, seat := range config.Seats {
		if seen[seat.Name] {
			return nil, fmt.Errorf("duplicate seat %q", seat.Name)
		}
		seen[seat.Name] = true
		if !config.Registry.Has(seat.Strategy) {
			return nil, fmt.Errorf("seat %s: unknown strategy %q", seat.Name, seat.Strategy)
		}
	}

	return &Simulator{config: config, logger: config.Logger.WithPrefix("simulator")}, nil
}

// Seed returns the resolved base seed, for replaying a run
func (s *Simulator) Seed() int64 {
	return s.config.Seed
}

// Run plays every table to completion. Tables run concurrently; the first error
// cancels the rest.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	start := s.config.Clock.Now()
	s.logger.Info("Starting simulation",
		"tables", s.config.Tables,
		"rounds", s.config.Rounds,
		"seats", len(s.config.Seats),
		"seed", s.config.Seed)

	results := make([]TableResult, s.config.Tables)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.config.Tables; i++ {
		g.Go(func() error {
			res, err := s.runTable(ctx, i)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	trackers := make([]*statistics.Tracker, len(results))
	for i := range results {
		trackers[i] = results[i].Tracker
	}

	result := &Result{
		Seed:      s.config.Seed,
		Tables:    results,
		Standings: statistics.Combine(trackers...),
		Elapsed:   s.config.Clock.Since(start),
	}
	s.logger.Info("Simulation complete",
		"rounds", result.Rounds(),
		"elapsed", result.Elapsed,
		"roundsPerSec", fmt.Sprintf("%.1f", result.RoundsPerSecond()))
	return result, nil
}

func (s *Simulator) runTable(ctx context.Context, idx int) (*TableResult, error) {
	cfg := s.config
	seed := cfg.Seed + int64(idx)
	logger := s.logger.With("table", idx)

	supplyOpts := []deck.Option{
		deck.WithRNG(randutil.New(seed)),
		deck.WithLogger(logger),
	}
	if cfg.Remote != nil {
		supplyOpts = append(supplyOpts, deck.WithRemote(cfg.Remote))
	}
	decks := max(cfg.Decks, deck.DecksFor(cfg.Rounds, len(cfg.Seats)))
	supply := deck.NewSupply(decks, cfg.Shuffle, supplyOpts...)
	logger.Debug("Shoe ready", "decks", decks, "cards", supply.Remaining())

	players := make([]*game.Player, 0, len(cfg.Seats))
	names := make([]string, 0, len(cfg.Seats))
	for i, seat := range cfg.Seats {
		policy, err := cfg.Registry.New(seat.Strategy, randutil.New(randutil.Derive(seed, i+1)), logger)
		if err != nil {
			return nil, err
		}
		players = append(players, game.NewPlayer(seat.Name, cfg.Rules.StartCoins, policy))
		names = append(names, seat.Name)
	}

	engine, err := game.NewEngine(cfg.Rules, supply, players,
		game.WithRNG(randutil.New(randutil.Derive(seed, 0))),
		game.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	tracker := statistics.NewTracker(cfg.Rules, names)
	result := &TableResult{Table: idx, Seed: seed, Decks: decks, Outcome: game.Completed, Tracker: tracker}

	for r := 0; r < cfg.Rounds; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		round := engine.PlayRound()
		tracker.Record(round)
		if round.Outcome != game.Completed {
			logger.Info("Table finished early", "outcome", round.Outcome, "rounds", tracker.Rounds())
			result.Outcome = round.Outcome
			break
		}
		if cfg.ProgressEvery > 0 && round.Round%cfg.ProgressEvery == 0 {
			logger.Info("Progress", "round", round.Round, "remaining", engine.Remaining())
		}
	}
	result.Rounds = tracker.Rounds()
	return result, nil
}
