package bot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/game"
)

// BasicBot plays the textbook multi-deck chart for a dealer who hits soft 17.
type BasicBot struct {
	game.NopHooks
	logger *log.Logger
}

// NewBasicBot creates a new BasicBot instance
func NewBasicBot(logger *log.Logger) *BasicBot {
	return &BasicBot{logger: logger}
}

func (b *BasicBot) Decide(v game.View) (game.Decision, error) {
	d := basicStrategy(v)
	b.logger.Debug("Chart decision", "hand", v.Hand.Score, "soft", v.Hand.Soft, "up", v.DealerUp, "action", d.Action)
	return d, nil
}

// upValue is the dealer up card counted the way the chart reads it, ace high.
func upValue(c deck.Card) int {
	if c.IsAce() {
		return 11
	}
	return c.Rank.Points()
}

func between(n, lo, hi int) bool {
	return n >= lo && n <= hi
}

func basicStrategy(v game.View) game.Decision {
	up := upValue(v.DealerUp)
	score := v.Hand.Score
	cards := v.Hand.Cards

	if len(cards) == 2 && cards[0].Rank == cards[1].Rank && v.CanTake(game.Split) {
		if splitPair(cards[0].Rank.Points(), up) {
			return game.Decision{Action: game.Split, Reasoning: fmt.Sprintf("chart splits %s%s against %d", cards[0].Rank, cards[1].Rank, up)}
		}
	}

	if v.CanTake(game.Surrender) && !v.Hand.Soft {
		if (score == 16 && up >= 9) || (score == 15 && up == 10) {
			return game.Decision{Action: game.Surrender, Reasoning: fmt.Sprintf("chart surrenders hard %d against %d", score, up)}
		}
	}

	if v.Hand.Soft {
		return softTotal(v, score, up)
	}
	return hardTotal(v, score, up)
}

// splitPair takes the pair's card points, so aces arrive as 1.
func splitPair(points, up int) bool {
	switch points {
	case 1, 8:
		return true
	case 2, 3, 7:
		return between(up, 2, 7)
	case 6:
		return between(up, 2, 6)
	case 9:
		return between(up, 2, 6) || up == 8 || up == 9
	case 4:
		return up == 5 || up == 6
	}
	return false
}

func softTotal(v game.View, score, up int) game.Decision {
	switch {
	case score >= 19:
		return stand("chart stands on soft %d", score)
	case score == 18:
		if between(up, 3, 6) {
			return doubleOr(v, game.Stand, "chart doubles soft 18 against %d", up)
		}
		if up <= 8 {
			return stand("chart stands on soft 18 against %d", up)
		}
		return hit("chart hits soft 18 against %d", up)
	case score == 17:
		if between(up, 3, 6) {
			return doubleOr(v, game.Hit, "chart doubles soft 17 against %d", up)
		}
	case score >= 15:
		if between(up, 4, 6) {
			return doubleOr(v, game.Hit, "chart doubles soft %d against %d", score, up)
		}
	default:
		if up == 5 || up == 6 {
			return doubleOr(v, game.Hit, "chart doubles soft %d against %d", score, up)
		}
	}
	return hit("chart hits soft %d against %d", score, up)
}

func hardTotal(v game.View, score, up int) game.Decision {
	switch {
	case score >= 17:
		return stand("chart stands on hard %d", score)
	case score >= 13:
		if up <= 6 {
			return stand("chart stands on %d against %d", score, up)
		}
	case score == 12:
		if between(up, 4, 6) {
			return stand("chart stands on 12 against %d", up)
		}
	case score == 11:
		return doubleOr(v, game.Hit, "chart doubles 11 against %d", up)
	case score == 10:
		if up <= 9 {
			return doubleOr(v, game.Hit, "chart doubles 10 against %d", up)
		}
	case score == 9:
		if between(up, 3, 6) {
			return doubleOr(v, game.Hit, "chart doubles 9 against %d", up)
		}
	}
	return hit("chart hits %d against %d", score, up)
}

func doubleOr(v game.View, fallback game.Action, format string, args ...any) game.Decision {
	if v.CanTake(game.DoubleDown) {
		return game.Decision{Action: game.DoubleDown, Reasoning: fmt.Sprintf(format, args...)}
	}
	return game.Decision{Action: fallback, Reasoning: fmt.Sprintf(format, args...) + ", cannot double"}
}

func hit(format string, args ...any) game.Decision {
	return game.Decision{Action: game.Hit, Reasoning: fmt.Sprintf(format, args...)}
}

func stand(format string, args ...any) game.Decision {
	return game.Decision{Action: game.Stand, Reasoning: fmt.Sprintf(format, args...)}
}
