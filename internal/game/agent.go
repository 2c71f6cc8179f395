package game

import "github.com/lox/blackjackforbots/internal/deck"

// Decision is a policy's requested action with a human-readable reason
type Decision struct {
	Action    Action
	Reasoning string
}

// HandView is a read-only copy of a hand. Hidden cards carry no rank or suit.
type HandView struct {
	Owner       string
	Index       int
	Cards       []deck.Card
	Score       int
	Soft        bool
	DoubledDown bool
	Surrendered bool
	FromSplit   bool
}

// View is everything a policy may look at when deciding for one hand. It is
// built fresh for every decision and shares no memory with the table.
type View struct {
	Player    string
	Coins     int
	Ante      int
	Hand      HandView
	Legal     []Action
	Others    []HandView // every other hand in play, including the player's own splits
	DealerUp  deck.Card
	Dealer    []deck.Card // dealer cards with the hole card masked
	Remaining int
}

// CanTake reports whether a is among the legal actions.
func (v View) CanTake(a Action) bool {
	for _, l := range v.Legal {
		if l == a {
			return true
		}
	}
	return false
}

// Policy decides actions for a player's hands. Human and automated players
// implement the same contract.
type Policy interface {
	// Decide returns the next action for v.Hand. An error makes the hand stand.
	Decide(v View) (Decision, error)
	// OnCardDrawn is called for every card that becomes visible at the table.
	OnCardDrawn(c deck.Card)
	// OnRoundEnd is called once per round after settlement.
	OnRoundEnd()
}

// NopHooks can be embedded by policies that ignore card and round notifications.
type NopHooks struct{}

func (NopHooks) OnCardDrawn(deck.Card) {}
func (NopHooks) OnRoundEnd()           {}

func viewOf(owner string, idx int, h *Hand) HandView {
	visible := visibleHand(h)
	return HandView{
		Owner:       owner,
		Index:       idx,
		Cards:       maskCards(h.Cards),
		Score:       visible.Score(),
		Soft:        visible.IsSoft(),
		DoubledDown: h.DoubledDown,
		Surrendered: h.Surrendered,
		FromSplit:   h.FromSplit,
	}
}

func maskCards(cards []deck.Card) []deck.Card {
	out := make([]deck.Card, len(cards))
	for i, c := range cards {
		if c.FaceDown {
			out[i] = deck.Card{FaceDown: true}
			continue
		}
		out[i] = c
	}
	return out
}

// visibleHand returns a hand of only the face-up cards of h.
func visibleHand(h *Hand) *Hand {
	visible := NewHand()
	for _, c := range h.Cards {
		if !c.FaceDown {
			visible.Add(c)
		}
	}
	return visible
}
