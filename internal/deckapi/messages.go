// Package deckapi speaks the card-supply service protocol: a client used by
// deck.Supply as its remote, and an in-memory server implementing the same
// endpoints.
//
//	GET /new?deck_count=N[&shuffle]  -> {deck_id, remaining, shuffled}
//	GET /{id}/draw?count=1           -> {cards: [{value, suit, code}], remaining}
//	GET /{id}/shuffle                -> {shuffled, remaining}
package deckapi

import (
	"fmt"

	"github.com/lox/blackjackforbots/internal/deck"
)

// NewDeckResponse is returned by GET /new
type NewDeckResponse struct {
	Success   bool   `json:"success"`
	DeckID    string `json:"deck_id"`
	Remaining int    `json:"remaining"`
	Shuffled  bool   `json:"shuffled"`
}

// DrawResponse is returned by GET /{id}/draw
type DrawResponse struct {
	Success   bool       `json:"success"`
	DeckID    string     `json:"deck_id"`
	Cards     []WireCard `json:"cards"`
	Remaining int        `json:"remaining"`
}

// ShuffleResponse is returned by GET /{id}/shuffle
type ShuffleResponse struct {
	Success   bool   `json:"success"`
	DeckID    string `json:"deck_id"`
	Shuffled  bool   `json:"shuffled"`
	Remaining int    `json:"remaining"`
}

// ErrorResponse is returned with any non-2xx status
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WireCard is a card as it appears on the wire
type WireCard struct {
	Value string `json:"value"`
	Suit  string `json:"suit"`
	Code  string `json:"code"`
}

// WireCardFromDeck converts a card to its wire form
func WireCardFromDeck(c deck.Card) WireCard {
	return WireCard{Value: c.Rank.Name(), Suit: c.Suit.Name(), Code: c.Code()}
}

// ToDeck converts a wire card back into a face-up deck.Card
func (w WireCard) ToDeck() (deck.Card, error) {
	rank, err := deck.ParseValue(w.Value)
	if err != nil {
		return deck.Card{}, err
	}
	suit, err := deck.ParseSuit(w.Suit)
	if err != nil {
		return deck.Card{}, err
	}
	c := deck.NewCard(rank, suit)
	if w.Code != "" && w.Code != c.Code() {
		return deck.Card{}, fmt.Errorf("card code %q does not match %s of %s", w.Code, w.Value, w.Suit)
	}
	return c, nil
}
