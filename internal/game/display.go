package game

import "github.com/lox/blackjackforbots/internal/deck"

// PlayerView is a read-only copy of a seat for rendering
type PlayerView struct {
	Name   string
	Coins  int
	InPlay bool
	Hands  []HandView
}

// TableView is what a Display is asked to render. The dealer's hole card is
// masked until the dealer's turn.
type TableView struct {
	Round       int
	Players     []PlayerView
	Dealer      []deck.Card
	DealerScore int
	// ActivePlayer and ActiveHand identify the hand being decided; ActivePlayer
	// is empty during the dealer's turn.
	ActivePlayer string
	ActiveHand   int
	Remaining    int
}

// Display is the presentation boundary. The engine calls ShowTable whenever the
// table changes in a way a viewer should see.
type Display interface {
	ShowTable(v TableView)
}

// NopDisplay discards every update
type NopDisplay struct{}

func (NopDisplay) ShowTable(TableView) {}
