package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/game"
)

// RandBot picks a uniformly random legal action
type RandBot struct {
	game.NopHooks
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(v game.View) (game.Decision, error) {
	if len(v.Legal) == 0 {
		return game.Decision{Action: game.Stand, Reasoning: "rand-bot no legal actions"}, nil
	}
	action := v.Legal[r.rng.IntN(len(v.Legal))]
	r.logger.Debug("Random action", "legal", len(v.Legal), "action", action)
	return game.Decision{Action: action, Reasoning: "rand-bot random action"}, nil
}
