package bot

import "github.com/lox/blackjackforbots/internal/game"

// StandBot never takes another card
type StandBot struct {
	game.NopHooks
}

// NewStandBot creates a new StandBot instance
func NewStandBot() *StandBot {
	return &StandBot{}
}

func (s *StandBot) Decide(game.View) (game.Decision, error) {
	return game.Decision{Action: game.Stand, Reasoning: "stand-bot standing"}, nil
}
