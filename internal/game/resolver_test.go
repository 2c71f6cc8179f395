package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverLegalActions(t *testing.T) {
	e := newTestEngine(stack(""))
	r := e.resolver

	tests := []struct {
		name  string
		hand  *Hand
		coins int
		want  []Action
	}{
		{"fresh pair", hand("8s8h"), 50, []Action{Hit, Stand, DoubleDown, Split, Surrender}},
		{"fresh non pair", hand("8s9h"), 50, []Action{Hit, Stand, DoubleDown, Surrender}},
		{"broke pair", hand("8s8h"), 0, []Action{Hit, Stand, Surrender}},
		{"three cards", hand("2s3h4d"), 50, []Action{Hit, Stand}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("Alice", tt.coins, script())
			assert.Equal(t, tt.want, r.Legal(p, tt.hand))
		})
	}

	t.Run("split hand", func(t *testing.T) {
		h := hand("8s3h")
		h.FromSplit = true
		p := NewPlayer("Alice", 50, script())
		assert.Equal(t, []Action{Hit, Stand}, r.Legal(p, h))
	})
}

func TestResolverApplyRejectsWithoutMutation(t *testing.T) {
	supply := stack("2c")
	e := newTestEngine(supply)
	p := NewPlayer("Alice", 50, script())
	p.Hands = []*Hand{hand("7s8h")}

	done, err := e.resolver.Apply(p, 0, Decision{Action: Split})
	require.ErrorIs(t, err, ErrIllegalAction)
	assert.False(t, done)
	assert.Len(t, p.Hands, 1)
	assert.Len(t, p.Hands[0].Cards, 2)
	assert.Equal(t, 50, p.Coins)
	assert.Zero(t, supply.draws)

	var iae *IllegalActionError
	require.ErrorAs(t, err, &iae)
	assert.Equal(t, Split, iae.Action)
}

func TestResolverApplySplitChargesAnte(t *testing.T) {
	e := newTestEngine(stack("3c4d"))
	p := NewPlayer("Alice", 50, script())
	p.Hands = []*Hand{hand("7s7h")}

	done, err := e.resolver.Apply(p, 0, Decision{Action: Split})
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 40, p.Coins)
	require.Len(t, p.Hands, 2)
	assert.Equal(t, "7♠ 3♣", p.Hands[0].String())
	assert.Equal(t, "7♥ 4♦", p.Hands[1].String())
}

func TestResolverHitBustEndsHand(t *testing.T) {
	e := newTestEngine(stack("Kc"))
	p := NewPlayer("Alice", 50, script())
	p.Hands = []*Hand{hand("0s5h")}

	done, err := e.resolver.Apply(p, 0, Decision{Action: Hit})
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, p.Hands[0].IsBust())
}

func TestResolverHitOnEmptySupply(t *testing.T) {
	e := newTestEngine(stack(""))
	p := NewPlayer("Alice", 50, script())
	p.Hands = []*Hand{hand("0s5h")}

	_, err := e.resolver.Apply(p, 0, Decision{Action: Hit})
	assert.ErrorIs(t, err, ErrSupplyExhausted)
}
