package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/bot"
	"github.com/lox/blackjackforbots/internal/config"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/display"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/randutil"
	"github.com/lox/blackjackforbots/internal/statistics"
)

// PlayCmd runs an interactive game in the terminal
type PlayCmd struct {
	Rounds int  `help:"Stop after this many rounds, 0 plays until nobody can pay"`
	Quick  bool `help:"Skip the setup questions and seat the players from the config"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	registry := bot.Default()
	if err := cfg.ValidateStrategies(registry.Has); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// The table owns stdout, so logs only go to a file or stderr.
	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	renderer := display.NewRenderer(os.Stdout)
	console := display.NewConsole(os.Stdin, renderer)

	setup, err := c.setup(cfg, console)
	if err != nil {
		return err
	}

	seed := randutil.Resolve(cfg.Game.Seed)
	logger.Info("Starting game", "decks", setup.Decks, "humans", len(setup.Humans), "bots", setup.Bots, "seed", seed)

	players, err := seatPlayers(cfg, setup, console, registry, seed, logger)
	if err != nil {
		return err
	}

	remote, err := newRemote(cfg, logger)
	if err != nil {
		return err
	}
	supplyOpts := []deck.Option{deck.WithRNG(randutil.New(seed)), deck.WithLogger(logger)}
	if remote != nil {
		supplyOpts = append(supplyOpts, deck.WithRemote(remote))
	}
	supply := deck.NewSupply(shoeDecks(setup.Decks, c.Rounds, len(players)), cfg.ShuffleEnabled(), supplyOpts...)

	engine, err := game.NewEngine(cfg.Rules(), supply, players,
		game.WithDisplay(renderer),
		game.WithRNG(randutil.New(randutil.Derive(seed, 0))),
		game.WithLogger(logger))
	if err != nil {
		return err
	}

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	tracker := statistics.NewTracker(cfg.Rules(), names)

	for c.Rounds == 0 || engine.Round() < c.Rounds {
		res := engine.PlayRound()
		tracker.Record(res)
		renderer.ShowRound(res)
		if res.Outcome != game.Completed {
			break
		}
		if console.Closed() {
			renderer.Message("Input closed, leaving the table")
			break
		}
	}

	renderer.Message("\nRESULTS after %d rounds (seed %d)", tracker.Rounds(), seed)
	renderer.ShowStandings(tracker.Standings())
	return nil
}

func (c *PlayCmd) setup(cfg *config.Config, console *display.Console) (display.Setup, error) {
	if c.Quick {
		s := display.Setup{Decks: cfg.Game.Decks, Bots: len(cfg.Bots())}
		for _, p := range cfg.Players {
			if p.Human {
				s.Humans = append(s.Humans, p.Name)
			}
		}
		return s, nil
	}

	s, err := console.AskSetup(config.DefaultMaxDecks, cfg.Game.Decks)
	if errors.Is(err, display.ErrNoInput) {
		return s, errors.New("setup needs answers on stdin, or use --quick")
	}
	return s, err
}

// shoeDecks grows the chosen shoe so a fixed number of rounds cannot run it dry.
// Open-ended games keep the chosen size and end when the shoe is empty.
func shoeDecks(chosen, rounds, seats int) int {
	if rounds <= 0 {
		return chosen
	}
	return max(chosen, deck.DecksFor(rounds, seats))
}

// seatPlayers seats the humans first, then the bots. Bots take their names and
// strategies from the configured players in order and are called "Bot #n"
// beyond that.
func seatPlayers(cfg *config.Config, setup display.Setup, console *display.Console, registry *bot.Registry, seed int64, logger *log.Logger) ([]*game.Player, error) {
	start := cfg.Rules().StartCoins
	var players []*game.Player
	seen := make(map[string]bool)

	for _, name := range setup.Humans {
		if seen[name] {
			return nil, fmt.Errorf("duplicate player name %q", name)
		}
		seen[name] = true
		players = append(players, game.NewPlayer(name, start, console.HumanPolicy()))
	}

	configured := cfg.Bots()
	for i := 0; i < setup.Bots; i++ {
		name, strategy := fmt.Sprintf("Bot #%d", i+1), config.DefaultStrategy
		if i < len(configured) {
			name, strategy = configured[i].Name, configured[i].Strategy
		}
		if seen[name] {
			name = fmt.Sprintf("%s (%d)", name, i+1)
		}
		seen[name] = true

		policy, err := registry.New(strategy, randutil.New(randutil.Derive(seed, i+1)), logger)
		if err != nil {
			return nil, err
		}
		players = append(players, game.NewPlayer(name, start, policy))
	}

	if len(players) == 0 {
		return nil, errors.New("nobody to play: seat at least one human or bot")
	}
	return players, nil
}
