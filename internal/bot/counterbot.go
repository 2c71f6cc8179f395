package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/game"
)

// CounterBot plays the basic chart and keeps a Hi-Lo running count of every
// visible card, deviating from the chart when the true count favours it.
type CounterBot struct {
	running int
	rounds  int
	logger  *log.Logger
}

// NewCounterBot creates a new CounterBot instance
func NewCounterBot(logger *log.Logger) *CounterBot {
	return &CounterBot{logger: logger}
}

// hiLo is the tag a card adds to the running count.
func hiLo(c deck.Card) int {
	switch {
	case c.Rank >= deck.Two && c.Rank <= deck.Six:
		return 1
	case c.Rank >= deck.Ten:
		return -1
	}
	return 0
}

func (c *CounterBot) OnCardDrawn(card deck.Card) {
	c.running += hiLo(card)
}

func (c *CounterBot) OnRoundEnd() {
	c.rounds++
	c.logger.Debug("Round over", "rounds", c.rounds, "running", c.running)
}

// RunningCount returns the Hi-Lo count of every card seen so far
func (c *CounterBot) RunningCount() int {
	return c.running
}

// TrueCount is the running count per remaining deck, floored toward zero.
func (c *CounterBot) TrueCount(remaining int) int {
	decks := remaining / deck.CardsPerDeck
	if decks < 1 {
		decks = 1
	}
	return c.running / decks
}

func (c *CounterBot) Decide(v game.View) (game.Decision, error) {
	tc := c.TrueCount(v.Remaining)
	up := upValue(v.DealerUp)
	score := v.Hand.Score

	if !v.Hand.Soft && len(v.Hand.Cards) >= 2 {
		switch {
		case score == 16 && up == 10 && tc >= 0:
			return stand("count %d: stand 16 against 10", tc), nil
		case score == 15 && up == 10 && tc >= 4:
			return stand("count %d: stand 15 against 10", tc), nil
		case score == 12 && up == 3 && tc >= 2:
			return stand("count %d: stand 12 against 3", tc), nil
		case score == 12 && up == 2 && tc >= 3:
			return stand("count %d: stand 12 against 2", tc), nil
		case score == 10 && up >= 10 && tc >= 4 && v.CanTake(game.DoubleDown):
			return game.Decision{Action: game.DoubleDown, Reasoning: "count favours doubling 10"}, nil
		}
	}

	d := basicStrategy(v)
	c.logger.Debug("Counting decision", "running", c.running, "true", tc, "action", d.Action)
	return d, nil
}
