package game

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/randutil"
)

// stackedSupply deals cards in exactly the order given.
type stackedSupply struct {
	cards []deck.Card
	draws int
}

func stack(codes string) *stackedSupply {
	return &stackedSupply{cards: deck.MustParseCards(codes)}
}

func (s *stackedSupply) Draw(faceDown bool) (deck.Card, bool) {
	if len(s.cards) == 0 {
		return deck.Card{}, false
	}
	c := s.cards[0]
	s.cards = s.cards[1:]
	s.draws++
	c.FaceDown = faceDown
	return c, true
}

func (s *stackedSupply) Remaining() int { return len(s.cards) }

// scriptedPolicy plays a fixed list of actions, then stands.
type scriptedPolicy struct {
	actions   []Action
	err       error
	views     []View
	drawn     []deck.Card
	roundEnds int
}

func script(actions ...Action) *scriptedPolicy {
	return &scriptedPolicy{actions: actions}
}

func (s *scriptedPolicy) Decide(v View) (Decision, error) {
	s.views = append(s.views, v)
	if s.err != nil {
		return Decision{}, s.err
	}
	if len(s.actions) == 0 {
		return Decision{Action: Stand, Reasoning: "script exhausted"}, nil
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return Decision{Action: a, Reasoning: "scripted"}, nil
}

func (s *scriptedPolicy) OnCardDrawn(c deck.Card) { s.drawn = append(s.drawn, c) }
func (s *scriptedPolicy) OnRoundEnd()             { s.roundEnds++ }

var errPolicy = errors.New("policy unavailable")

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func testRules() Rules {
	return Rules{StartCoins: 100, Ante: 10, MaxIllegalAttempts: 3}
}

func newTestEngine(supply CardSupply, players ...*Player) *Engine {
	e, err := NewEngine(testRules(), supply, players, WithRNG(randutil.New(1)), WithLogger(quietLogger()))
	if err != nil {
		panic(err)
	}
	return e
}

func hand(codes string) *Hand {
	return NewHand(deck.MustParseCards(codes)...)
}
