// Package bot provides automated players and the registry used to build them by
// name.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/game"
)

// Factory builds a fresh policy. Every seat gets its own instance.
type Factory func(rng *rand.Rand, logger *log.Logger) game.Policy

// Registry maps strategy names to factories
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Default returns a registry holding every built-in strategy.
func Default() *Registry {
	r := NewRegistry()
	r.Register("stand", func(*rand.Rand, *log.Logger) game.Policy { return NewStandBot() })
	r.Register("mimic", func(_ *rand.Rand, logger *log.Logger) game.Policy { return NewMimicBot(logger) })
	r.Register("random", func(rng *rand.Rand, logger *log.Logger) game.Policy { return NewRandBot(rng, logger) })
	r.Register("basic", func(_ *rand.Rand, logger *log.Logger) game.Policy { return NewBasicBot(logger) })
	r.Register("counter", func(_ *rand.Rand, logger *log.Logger) game.Policy { return NewCounterBot(logger) })
	return r
}

// Register adds or replaces a strategy
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// New builds the named strategy
func (r *Registry) New(name string, rng *rand.Rand, logger *log.Logger) (game.Policy, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, r.Names())
	}
	return f(rng, logger.WithPrefix(name)), nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered strategy names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
