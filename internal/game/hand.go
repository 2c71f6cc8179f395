package game

import (
	"errors"
	"strings"

	"github.com/lox/blackjackforbots/internal/deck"
)

// Blackjack is the best possible score.
const Blackjack = 21

// Hand is one betting position: the cards dealt to it plus what has been done
// with it this round. Scores are always derived from the current cards.
type Hand struct {
	Cards       []deck.Card
	DoubledDown bool
	Surrendered bool
	// FromSplit marks both hands that came out of a split.
	FromSplit bool

	decisions int
}

// NewHand creates a hand holding cards
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{Cards: make([]deck.Card, 0, 4)}
	h.Cards = append(h.Cards, cards...)
	return h
}

// Add appends a card to the hand
func (h *Hand) Add(c deck.Card) {
	h.Cards = append(h.Cards, c)
}

func (h *Hand) hardScore() (total, aces int) {
	for _, c := range h.Cards {
		total += c.Rank.Points()
		if c.IsAce() {
			aces++
		}
	}
	return total, aces
}

// Score returns the best total for the hand. Each ace starts at 1 and is promoted
// to 11 while that keeps the total at or under 21.
func (h *Hand) Score() int {
	score, aces := h.hardScore()
	for i := 0; i < aces; i++ {
		if score+10 <= Blackjack {
			score += 10
		}
	}
	return score
}

// IsSoft reports whether an ace is currently being counted as 11.
func (h *Hand) IsSoft() bool {
	hard, aces := h.hardScore()
	return aces > 0 && hard+10 <= Blackjack
}

// IsBlackjack reports a two card 21
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && h.Score() == Blackjack
}

// IsBust reports a score over 21
func (h *Hand) IsBust() bool {
	return h.Score() > Blackjack
}

// CanSplit reports whether the hand is exactly two cards of the same rank.
func (h *Hand) CanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// Split moves the second card into a new hand. Both hands are marked FromSplit.
func (h *Hand) Split() (*Hand, error) {
	if !h.CanSplit() {
		return nil, errors.New("hand cannot be split")
	}
	last := h.Cards[len(h.Cards)-1]
	h.Cards = h.Cards[:len(h.Cards)-1]
	h.FromSplit = true
	split := NewHand(last)
	split.FromSplit = true
	return split, nil
}

// IsFresh reports whether no decision has been applied to the hand yet.
func (h *Hand) IsFresh() bool {
	return h.decisions == 0
}

// Clone returns a deep copy of the hand.
func (h *Hand) Clone() *Hand {
	c := *h
	c.Cards = append([]deck.Card(nil), h.Cards...)
	return &c
}

// String renders the cards, e.g. "A♠ K♥".
func (h *Hand) String() string {
	parts := make([]string, 0, len(h.Cards))
	for _, c := range h.Cards {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}
