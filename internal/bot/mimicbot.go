package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/game"
)

// MimicBot plays its hand by the house rule: hit on 16 or less and on soft 17.
type MimicBot struct {
	game.NopHooks
	logger *log.Logger
}

// NewMimicBot creates a new MimicBot instance
func NewMimicBot(logger *log.Logger) *MimicBot {
	return &MimicBot{logger: logger}
}

func (m *MimicBot) Decide(v game.View) (game.Decision, error) {
	hit := game.DealerShouldHit(game.NewHand(v.Hand.Cards...))
	m.logger.Debug("Mimicking dealer", "score", v.Hand.Score, "soft", v.Hand.Soft, "hit", hit)
	if hit {
		return game.Decision{Action: game.Hit, Reasoning: "mimic-bot hitting like the dealer"}, nil
	}
	return game.Decision{Action: game.Stand, Reasoning: "mimic-bot standing like the dealer"}, nil
}
