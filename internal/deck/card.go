package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Diamonds
	Hearts
	Clubs
)

// Suits lists every suit in the order a fresh deck is built.
var Suits = []Suit{Spades, Diamonds, Hearts, Clubs}

// String returns the symbol for the suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Name returns the upper-case suit name used on the wire ("SPADES").
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "SPADES"
	case Diamonds:
		return "DIAMONDS"
	case Hearts:
		return "HEARTS"
	case Clubs:
		return "CLUBS"
	default:
		return "UNKNOWN"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank from Two to Ace.
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// String returns the single character used in card codes. Ten is "0", matching
// the card-supply service.
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + int(r)))
	case r == Ten:
		return "0"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Name returns the wire value of the rank ("2".."10", "JACK", ..., "ACE").
func (r Rank) Name() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprint(int(r))
	case r == Jack:
		return "JACK"
	case r == Queen:
		return "QUEEN"
	case r == King:
		return "KING"
	case r == Ace:
		return "ACE"
	default:
		return "UNKNOWN"
	}
}

// Points returns the hard blackjack value of the rank. Aces count 1 here; the
// soft promotion happens when a whole hand is scored.
func (r Rank) Points() int {
	switch {
	case r == Ace:
		return 1
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// Card represents a playing card. FaceDown only affects how the card is shown.
type Card struct {
	Rank     Rank
	Suit     Suit
	FaceDown bool
}

// NewCard creates a new face-up card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Equal reports whether two cards have the same rank and suit.
func (c Card) Equal(o Card) bool {
	return c.Rank == o.Rank && c.Suit == o.Suit
}

// Code returns the two character code, e.g. "AS" or "0H".
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Name()[:1]
}

// String returns the display form of the card (e.g. "A♠"), or "??" when hidden.
func (c Card) String() string {
	if c.FaceDown {
		return "??"
	}
	return c.Rank.String() + c.Suit.String()
}

// Revealed returns a face-up copy of the card.
func (c Card) Revealed() Card {
	c.FaceDown = false
	return c
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseValue converts a wire value such as "10" or "QUEEN" into a Rank.
func ParseValue(v string) (Rank, error) {
	v = strings.ToUpper(strings.TrimSpace(v))
	for _, r := range Ranks {
		if r.Name() == v {
			return r, nil
		}
	}
	return 0, fmt.Errorf("invalid card value %q", v)
}

// ParseSuit converts a wire suit such as "HEARTS" into a Suit.
func ParseSuit(s string) (Suit, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, suit := range Suits {
		if suit.Name() == s {
			return suit, nil
		}
	}
	return 0, fmt.Errorf("invalid card suit %q", s)
}

// ParseCards parses concatenated two character codes like "AsKh0d". Ten may be
// written as "T" or "0". Parsing is case insensitive.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length %d", len(s))
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		rank, err := parseRankChar(s[i])
		if err != nil {
			return nil, err
		}
		suit, err := parseSuitChar(s[i+1])
		if err != nil {
			return nil, err
		}
		cards = append(cards, NewCard(rank, suit))
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on invalid input.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRankChar(b byte) (Rank, error) {
	switch b {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't', '0':
		return Ten, nil
	}
	if b >= '2' && b <= '9' {
		return Rank(b - '0'), nil
	}
	return 0, fmt.Errorf("invalid rank %q", b)
}

func parseSuitChar(b byte) (Suit, error) {
	switch b {
	case 'S', 's':
		return Spades, nil
	case 'D', 'd':
		return Diamonds, nil
	case 'H', 'h':
		return Hearts, nil
	case 'C', 'c':
		return Clubs, nil
	}
	return 0, fmt.Errorf("invalid suit %q", b)
}
