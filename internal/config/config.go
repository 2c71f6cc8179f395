// Package config loads the table configuration from an HCL file and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"github.com/lox/blackjackforbots/internal/game"
)

// Environment variables that override the file.
const (
	EnvDeckAPIURL = "BLACKJACK_DECK_API_URL"
	EnvLogLevel   = "BLACKJACK_LOG_LEVEL"
	EnvSeed       = "BLACKJACK_SEED"
)

const (
	DefaultDecks    = 1
	DefaultMaxDecks = 8
	DefaultRounds   = 1000
	DefaultStrategy = "basic"
	DefaultTimeout  = 5 * time.Second
	DefaultLogLevel = "info"
)

// Config is the complete table configuration
type Config struct {
	Game    GameSettings
	DeckAPI DeckAPISettings
	Log     LogSettings
	Players []PlayerConfig
}

// GameSettings holds the table stakes and shoe
type GameSettings struct {
	StartCoins         int   `hcl:"start_coins,optional"`
	Ante               int   `hcl:"ante,optional"`
	MaxIllegalAttempts int   `hcl:"max_illegal_attempts,optional"`
	Decks              int   `hcl:"decks,optional"`
	Shuffle            *bool `hcl:"shuffle,optional"`
	Seed               int64 `hcl:"seed,optional"`
	Rounds             int   `hcl:"rounds,optional"`
	Tables             int   `hcl:"tables,optional"`
}

// DeckAPISettings points at a remote card-supply service. An empty URL keeps the
// shoe local.
type DeckAPISettings struct {
	URL     string `hcl:"url,optional"`
	Timeout string `hcl:"timeout,optional"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// PlayerConfig seats one player
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
	Human    bool   `hcl:"human,optional"`
}

// fileConfig mirrors Config with optional blocks.
type fileConfig struct {
	Game    *GameSettings    `hcl:"game,block"`
	DeckAPI *DeckAPISettings `hcl:"deck_api,block"`
	Log     *LogSettings     `hcl:"log,block"`
	Players []PlayerConfig   `hcl:"player,block"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{
		Players: []PlayerConfig{
			{Name: "alice", Strategy: "basic"},
			{Name: "bob", Strategy: "counter"},
			{Name: "carol", Strategy: "mimic"},
		},
	}
	c.applyDefaults()
	return c
}

// Load reads filename. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c := &Config{Players: fc.Players}
	if fc.Game != nil {
		c.Game = *fc.Game
	}
	if fc.DeckAPI != nil {
		c.DeckAPI = *fc.DeckAPI
	}
	if fc.Log != nil {
		c.Log = *fc.Log
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	rules := game.DefaultRules()
	if c.Game.StartCoins == 0 {
		c.Game.StartCoins = rules.StartCoins
	}
	if c.Game.Ante == 0 {
		c.Game.Ante = rules.Ante
	}
	if c.Game.MaxIllegalAttempts == 0 {
		c.Game.MaxIllegalAttempts = rules.MaxIllegalAttempts
	}
	if c.Game.Decks == 0 {
		c.Game.Decks = DefaultDecks
	}
	if c.Game.Shuffle == nil {
		shuffle := true
		c.Game.Shuffle = &shuffle
	}
	if c.Game.Rounds == 0 {
		c.Game.Rounds = DefaultRounds
	}
	if c.Game.Tables == 0 {
		c.Game.Tables = 1
	}
	if c.DeckAPI.Timeout == "" {
		c.DeckAPI.Timeout = DefaultTimeout.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	for i := range c.Players {
		if c.Players[i].Strategy == "" && !c.Players[i].Human {
			c.Players[i].Strategy = DefaultStrategy
		}
	}
}

// LoadDotEnv loads variables from a .env file into the process environment. A
// missing file is not an error.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, f := range filenames {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDeckAPIURL); ok {
		c.DeckAPI.URL = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid seed %q", EnvSeed, v)
		}
		c.Game.Seed = seed
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if c.Game.Decks < 1 || c.Game.Decks > DefaultMaxDecks {
		return fmt.Errorf("game: decks must be between 1 and %d", DefaultMaxDecks)
	}
	if c.Game.Rounds < 1 {
		return fmt.Errorf("game: rounds must be positive")
	}
	if c.Game.Tables < 1 {
		return fmt.Errorf("game: tables must be positive")
	}
	if _, err := c.Timeout(); err != nil {
		return fmt.Errorf("deck_api: %w", err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// ValidateStrategies checks every automated player names a known strategy
func (c *Config) ValidateStrategies(known func(string) bool) error {
	for _, p := range c.Players {
		if p.Human {
			continue
		}
		if !known(p.Strategy) {
			return fmt.Errorf("player %s: invalid strategy %s", p.Name, p.Strategy)
		}
	}
	return nil
}

// Rules returns the stakes for the engine
func (c *Config) Rules() game.Rules {
	return game.Rules{
		StartCoins:         c.Game.StartCoins,
		Ante:               c.Game.Ante,
		MaxIllegalAttempts: c.Game.MaxIllegalAttempts,
	}
}

// ShuffleEnabled reports whether the shoe is shuffled before the first deal
func (c *Config) ShuffleEnabled() bool {
	return c.Game.Shuffle == nil || *c.Game.Shuffle
}

// Timeout parses the remote request timeout
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.DeckAPI.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.DeckAPI.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive")
	}
	return d, nil
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Bots returns the automated players
func (c *Config) Bots() []PlayerConfig {
	var bots []PlayerConfig
	for _, p := range c.Players {
		if !p.Human {
			bots = append(bots, p)
		}
	}
	return bots
}
