package statistics

import (
	"sort"

	"github.com/lox/blackjackforbots/internal/game"
)

// History is one player's record over a game
type History struct {
	Name string
	// Balances starts with the seated balance and gains one entry per
	// completed round.
	Balances []int
	// LastEligibleRound is the last completed round after which the player
	// could still pay the ante, 0 if none.
	LastEligibleRound int
	Stats             Statistics
}

// Balance returns the latest recorded balance
func (h *History) Balance() int {
	if len(h.Balances) == 0 {
		return 0
	}
	return h.Balances[len(h.Balances)-1]
}

// Net returns the change from the seated balance
func (h *History) Net() int {
	if len(h.Balances) == 0 {
		return 0
	}
	return h.Balance() - h.Balances[0]
}

// Peak returns the highest recorded balance
func (h *History) Peak() int {
	peak := 0
	for i, b := range h.Balances {
		if i == 0 || b > peak {
			peak = b
		}
	}
	return peak
}

// Tracker records round results for one table
type Tracker struct {
	ante    int
	rounds  int
	order   []string
	players map[string]*History
}

// NewTracker starts a history for each player at startCoins
func NewTracker(rules game.Rules, names []string) *Tracker {
	t := &Tracker{
		ante:    rules.Ante,
		order:   append([]string(nil), names...),
		players: make(map[string]*History, len(names)),
	}
	for _, name := range names {
		t.players[name] = &History{Name: name, Balances: []int{rules.StartCoins}}
	}
	return t
}

// Record adds a round. Only completed rounds change the histories.
func (t *Tracker) Record(result *game.RoundResult) {
	if result == nil || result.Outcome != game.Completed {
		return
	}
	t.rounds++

	hands := make(map[string][]game.HandResult)
	for _, h := range result.Hands {
		hands[h.Player] = append(hands[h.Player], h)
	}
	dealt := make(map[string]bool, len(result.Order))
	for _, name := range result.Order {
		dealt[name] = true
	}

	for _, name := range t.order {
		h := t.players[name]
		balance, ok := result.Balances[name]
		if !ok {
			balance = h.Balance()
		}
		prev := h.Balance()
		h.Balances = append(h.Balances, balance)
		if balance >= t.ante {
			h.LastEligibleRound = result.Round
		}
		if dealt[name] {
			h.Stats.Add(balance-prev, t.ante, hands[name])
		}
	}
}

// Rounds returns the number of completed rounds recorded
func (t *Tracker) Rounds() int {
	return t.rounds
}

// History returns the record for name, or nil
func (t *Tracker) History(name string) *History {
	return t.players[name]
}

// Names returns the tracked players in seating order
func (t *Tracker) Names() []string {
	return append([]string(nil), t.order...)
}

// Standing is one line of the final table
type Standing struct {
	Name              string
	Balance           int
	Net               int
	LastEligibleRound int
	Stats             *Statistics
}

// Standings returns every player sorted by balance, highest first. Ties keep
// seating order.
func (t *Tracker) Standings() []Standing {
	return Combine(t)
}

// Combine merges trackers from independent tables. Balances and nets are summed
// per player name and LastEligibleRound is the latest across tables.
func Combine(trackers ...*Tracker) []Standing {
	var order []string
	byName := make(map[string]*Standing)

	for _, t := range trackers {
		for _, name := range t.order {
			h := t.players[name]
			s, ok := byName[name]
			if !ok {
				s = &Standing{Name: name, Stats: &Statistics{}}
				byName[name] = s
				order = append(order, name)
			}
			s.Balance += h.Balance()
			s.Net += h.Net()
			if h.LastEligibleRound > s.LastEligibleRound {
				s.LastEligibleRound = h.LastEligibleRound
			}
			s.Stats.Merge(&h.Stats)
		}
	}

	standings := make([]Standing, 0, len(order))
	for _, name := range order {
		standings = append(standings, *byName[name])
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Balance > standings[j].Balance
	})
	return standings
}
