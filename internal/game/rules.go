package game

import "fmt"

// Rules are the fixed table stakes for a game. They never change once an Engine
// has been built.
type Rules struct {
	// StartCoins is the balance each player is seated with.
	StartCoins int
	// Ante is the buy-in per round, and the cost of a split or double down. It
	// is even so that a surrender refunds exactly half.
	Ante int
	// MaxIllegalAttempts is how many rejected requests in a row a hand tolerates
	// before it is stood automatically.
	MaxIllegalAttempts int
}

// DefaultRules returns the stakes used when nothing is configured
func DefaultRules() Rules {
	return Rules{
		StartCoins:         1000,
		Ante:               10,
		MaxIllegalAttempts: 3,
	}
}

// Validate checks the rules are playable
func (r Rules) Validate() error {
	if r.Ante <= 0 {
		return fmt.Errorf("ante must be > 0, got %d", r.Ante)
	}
	if r.Ante%2 != 0 {
		return fmt.Errorf("ante must be even so a surrender refunds exactly half, got %d", r.Ante)
	}
	if r.StartCoins < 0 {
		return fmt.Errorf("start coins must be >= 0, got %d", r.StartCoins)
	}
	if r.MaxIllegalAttempts <= 0 {
		return fmt.Errorf("max illegal attempts must be > 0, got %d", r.MaxIllegalAttempts)
	}
	return nil
}
