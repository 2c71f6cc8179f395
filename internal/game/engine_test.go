package game

import (
	"testing"

	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cards are dealt player, dealer up card, player, dealer hole card, then in the
// order hands ask for them, then to the dealer.

func TestRoundSettlementScenarios(t *testing.T) {
	tests := []struct {
		name    string
		cards   string
		actions []Action
		coins   int
		result  Result
	}{
		{
			name:   "blackjack pays three antes",
			cards:  "Ks9hAs8d",
			coins:  100 - 10 + 30,
			result: BlackjackWin,
		},
		{
			name:   "20 against dealer bust pays two antes",
			cards:  "Ks6hQd0c9s",
			coins:  100 - 10 + 20,
			result: Win,
		},
		{
			name:   "push returns the stake",
			cards:  "Ks0h8d8c",
			coins:  100,
			result: Push,
		},
		{
			name:   "dealer wins keeps the ante",
			cards:  "Ks0h7d9c",
			coins:  90,
			result: Lose,
		},
		{
			name:    "player bust loses even if dealer busts",
			cards:   "Ks6h6d0c0s9s",
			actions: []Action{Hit},
			coins:   90,
			result:  Lose,
		},
		{
			name:    "double down pays four antes",
			cards:   "5s0h6d7c9s",
			actions: []Action{DoubleDown},
			coins:   100 - 20 + 40,
			result:  Win,
		},
		{
			name:    "surrender refunds half",
			cards:   "Ks0h6d9c",
			actions: []Action{Surrender},
			coins:   95,
			result:  Surrendered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := script(tt.actions...)
			p := NewPlayer("Alice", 100, policy)
			e := newTestEngine(stack(tt.cards), p)

			r := e.PlayRound()
			require.Equal(t, Completed, r.Outcome)
			require.Len(t, r.Hands, 1)
			assert.Equal(t, tt.result, r.Hands[0].Result)
			assert.Equal(t, tt.coins, p.Coins)
			assert.Equal(t, tt.coins, r.Balances["Alice"])
			assert.Equal(t, 1, policy.roundEnds)
		})
	}
}

func TestRoundSplitPlaysBothHands(t *testing.T) {
	// 7s 7d split; replacements 3h then 4h; hand one hits 0d, hand two hits 9s.
	policy := script(Split, Hit, Stand, Hit, Stand)
	p := NewPlayer("Alice", 100, policy)
	e := newTestEngine(stack("7s0h7d8c3h4h0d9s"), p)

	r := e.PlayRound()
	require.Equal(t, Completed, r.Outcome)
	require.Len(t, r.Hands, 2)

	assert.Equal(t, deck.MustParseCards("7s3h0d"), r.Hands[0].Cards)
	assert.Equal(t, deck.MustParseCards("7d4h9s"), r.Hands[1].Cards)
	assert.Equal(t, 20, r.Hands[0].Score)
	assert.Equal(t, 20, r.Hands[1].Score)
	assert.Equal(t, 18, r.DealerScore)

	// Two antes in, two wins of two antes each.
	assert.Equal(t, 100-20+40, p.Coins)
}

func TestRoundSplitHandsGetTwoCards(t *testing.T) {
	policy := script(Split)
	p := NewPlayer("Alice", 100, policy)
	e := newTestEngine(stack("7s0h7d8c3h4h"), p)

	r := e.PlayRound()
	require.Len(t, r.Hands, 2)
	for _, h := range r.Hands {
		assert.Len(t, h.Cards, 2)
	}

	// The first decision after the split sees the refilled first hand.
	require.GreaterOrEqual(t, len(policy.views), 2)
	after := policy.views[1]
	assert.Equal(t, 0, after.Hand.Index)
	assert.Len(t, after.Hand.Cards, 2)
	assert.True(t, after.Hand.FromSplit)
	require.Len(t, after.Others, 1)
	assert.Equal(t, deck.MustParseCards("7d4h"), after.Others[0].Cards)
}

func TestRoundIllegalSplitChangesNothing(t *testing.T) {
	policy := script(Split, Stand)
	p := NewPlayer("Alice", 100, policy)
	e := newTestEngine(stack("7s0h8d9c"), p)

	r := e.PlayRound()
	require.Len(t, r.Hands, 1)
	assert.Equal(t, deck.MustParseCards("7s8d"), r.Hands[0].Cards)
	assert.Len(t, policy.views, 2, "turn continues after a rejected split")
	assert.Equal(t, 90, p.Coins)
}

func TestRoundDoubleOnThreeCardsRejected(t *testing.T) {
	policy := script(Hit, DoubleDown, Stand)
	p := NewPlayer("Alice", 100, policy)
	e := newTestEngine(stack("2s0h3d9c4s"), p)

	r := e.PlayRound()
	require.Len(t, r.Hands, 1)
	assert.False(t, r.Hands[0].DoubledDown)
	assert.Len(t, r.Hands[0].Cards, 3)
	assert.NotContains(t, policy.views[1].Legal, DoubleDown)
	assert.Len(t, policy.views, 3)
	assert.Equal(t, 90, p.Coins)
}

func TestRoundDoubleNeedsBalance(t *testing.T) {
	policy := script(DoubleDown, Stand)
	p := NewPlayer("Alice", 10, policy)
	e := newTestEngine(stack("5s0h6d7c9s"), p)

	r := e.PlayRound()
	require.Len(t, r.Hands, 1)
	assert.False(t, r.Hands[0].DoubledDown)
	assert.NotContains(t, policy.views[0].Legal, DoubleDown)
	assert.GreaterOrEqual(t, p.Coins, 0)
}

func TestRoundSurrenderOnlyFirstDecision(t *testing.T) {
	policy := script(Hit, Surrender, Stand)
	p := NewPlayer("Alice", 100, policy)
	e := newTestEngine(stack("2s0h3d9c4s"), p)

	r := e.PlayRound()
	require.Len(t, r.Hands, 1)
	assert.NotEqual(t, Surrendered, r.Hands[0].Result)
	assert.Contains(t, policy.views[0].Legal, Surrender)
	assert.NotContains(t, policy.views[1].Legal, Surrender)
}

func TestRoundUnrecognizedActionStands(t *testing.T) {
	policy := script(Action(99))
	p := NewPlayer("Alice", 100, policy)
	e := newTestEngine(stack("Ks0h8d7c"), p)

	r := e.PlayRound()
	require.Equal(t, Completed, r.Outcome)
	assert.Len(t, policy.views, 1)
	assert.Equal(t, 18, r.Hands[0].Score)
	assert.Equal(t, Win, r.Hands[0].Result)
}

func TestRoundPolicyErrorStands(t *testing.T) {
	policy := script()
	policy.err = errPolicy
	p := NewPlayer("Alice", 100, policy)
	e := newTestEngine(stack("Ks0h8d7c"), p)

	r := e.PlayRound()
	require.Equal(t, Completed, r.Outcome)
	assert.Len(t, policy.views, 1)
	assert.Len(t, r.Hands[0].Cards, 2)
}

func TestRoundRepeatedIllegalActionsStand(t *testing.T) {
	policy := script(Split, Split, Split, Split, Split)
	p := NewPlayer("Alice", 100, policy)
	e := newTestEngine(stack("Ks0h8d7c"), p)

	r := e.PlayRound()
	require.Equal(t, Completed, r.Outcome)
	assert.Len(t, policy.views, testRules().MaxIllegalAttempts)
	assert.Len(t, r.Hands[0].Cards, 2)
}

func TestRoundGameOverWhenNobodyCanPay(t *testing.T) {
	supply := stack("Ks0h8d7c")
	a := NewPlayer("Alice", 9, script())
	b := NewPlayer("Bob", 0, script())
	e := newTestEngine(supply, a, b)

	r := e.PlayRound()
	assert.Equal(t, GameOver, r.Outcome)
	assert.Zero(t, supply.draws, "nothing dealt")
	assert.Zero(t, e.Round())
	assert.Equal(t, 9, a.Coins)
}

func TestRoundExcludesBrokePlayers(t *testing.T) {
	rich := script()
	broke := script()
	a := NewPlayer("Alice", 100, rich)
	b := NewPlayer("Bob", 5, broke)
	e := newTestEngine(stack("Ks0h8d7c"), a, b)

	r := e.PlayRound()
	require.Equal(t, Completed, r.Outcome)
	assert.Equal(t, []string{"Alice"}, r.Order)
	assert.Equal(t, []string{"Bob"}, r.Excluded)
	assert.Empty(t, broke.views)
	assert.Equal(t, 5, b.Coins)
	assert.Equal(t, 1, broke.roundEnds, "every policy hears the round end")
}

func TestRoundVoidedWhenSupplyRunsOut(t *testing.T) {
	t.Run("during the deal", func(t *testing.T) {
		policy := script()
		p := NewPlayer("Alice", 100, policy)
		e := newTestEngine(stack("Ks9h"), p)

		r := e.PlayRound()
		assert.Equal(t, Voided, r.Outcome)
		assert.Equal(t, 100, p.Coins)
		assert.Equal(t, 1, policy.roundEnds)
	})

	t.Run("during a double down", func(t *testing.T) {
		p := NewPlayer("Alice", 100, script(DoubleDown))
		e := newTestEngine(stack("5s0h6d7c"), p)

		r := e.PlayRound()
		assert.Equal(t, Voided, r.Outcome)
		assert.Equal(t, 100, p.Coins, "ante and double fee refunded")
		assert.Empty(t, r.Hands)
	})

	t.Run("during the dealer turn", func(t *testing.T) {
		p := NewPlayer("Alice", 100, script())
		e := newTestEngine(stack("Ks6hQd0c"), p)

		r := e.PlayRound()
		assert.Equal(t, Voided, r.Outcome)
		assert.Equal(t, 100, p.Coins)
	})
}

func TestRoundHidesDealerHoleCard(t *testing.T) {
	policy := script(Stand)
	p := NewPlayer("Alice", 100, policy)
	e := newTestEngine(stack("Ks9h8dAc"), p)

	r := e.PlayRound()
	require.Len(t, policy.views, 1)
	v := policy.views[0]

	assert.Equal(t, deck.NewCard(deck.Nine, deck.Hearts), v.DealerUp)
	require.Len(t, v.Dealer, 2)
	assert.Equal(t, deck.Card{FaceDown: true}, v.Dealer[1])
	assert.Equal(t, 0, v.Remaining)

	// The hole card is announced only when revealed.
	require.Len(t, policy.drawn, 4)
	assert.Equal(t, deck.NewCard(deck.Ace, deck.Clubs), policy.drawn[3])
	assert.Equal(t, 20, r.DealerScore)
}

func TestRoundNotifiesEveryCard(t *testing.T) {
	a := script(Hit, Stand)
	b := script(Stand)
	pa := NewPlayer("Alice", 100, a)
	pb := NewPlayer("Bob", 100, b)
	// Both players receive identical ranks so play order does not matter.
	supply := stack("2s2h9c3s3h0d4s5s")
	e := newTestEngine(supply, pa, pb)

	r := e.PlayRound()
	require.Equal(t, Completed, r.Outcome)
	assert.Len(t, a.drawn, supply.draws)
	assert.Len(t, b.drawn, supply.draws)
	assert.Equal(t, 1, a.roundEnds)
	assert.Equal(t, 1, b.roundEnds)

	// Each player sees the other's hand while deciding.
	for _, v := range append(a.views, b.views...) {
		require.Len(t, v.Others, 1)
		assert.NotEqual(t, v.Player, v.Others[0].Owner)
	}
}

func TestRoundCountersAndReset(t *testing.T) {
	p := NewPlayer("Alice", 100, script())
	e := newTestEngine(stack("Ks0h8d7cKs0h8d7c"), p)

	e.PlayRound()
	assert.Nil(t, p.Hands, "hands are discarded after settlement")
	e.PlayRound()
	assert.Equal(t, 2, e.Round())
	assert.Equal(t, 0, e.Remaining())
}

func TestNewEngineValidates(t *testing.T) {
	_, err := NewEngine(Rules{Ante: 0, MaxIllegalAttempts: 1}, stack(""), nil)
	assert.Error(t, err)

	_, err = NewEngine(testRules(), nil, nil)
	assert.Error(t, err)

	_, err = NewEngine(testRules(), stack(""), []*Player{NewPlayer("x", 10, nil)})
	assert.Error(t, err)

	_, err = NewEngine(testRules(), stack(""), []*Player{
		NewPlayer("Alice", 100, script()),
		NewPlayer("Alice", 50, script()),
	})
	assert.ErrorContains(t, err, "duplicate player name")
}

// panicPolicy blows up on every decision.
type panicPolicy struct {
	NopHooks
	calls int
}

func (p *panicPolicy) Decide(View) (Decision, error) {
	p.calls++
	panic("strategy bug")
}

func TestRoundPolicyPanicStands(t *testing.T) {
	policy := &panicPolicy{}
	p := NewPlayer("Alice", 100, policy)
	e := newTestEngine(stack("Ks0h8d7c"), p)

	var r *RoundResult
	require.NotPanics(t, func() { r = e.PlayRound() })
	require.Equal(t, Completed, r.Outcome)
	assert.Equal(t, 1, policy.calls)
	require.Len(t, r.Hands, 1)
	assert.Len(t, r.Hands[0].Cards, 2)
	assert.Equal(t, Win, r.Hands[0].Result, "18 stands and beats the dealer's 17")
}
