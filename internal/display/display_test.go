package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/statistics"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRenderer() (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRenderer(&buf, termenv.WithProfile(termenv.Ascii)), &buf
}

func TestRenderCards(t *testing.T) {
	r, _ := plainRenderer()
	cards := deck.MustParseCards("AsKh")
	cards = append(cards, deck.Card{FaceDown: true})
	assert.Equal(t, "A♠ K♥ ??", r.Cards(cards))
}

func TestShowTable(t *testing.T) {
	r, buf := plainRenderer()

	r.ShowTable(game.TableView{
		Round:       3,
		Remaining:   41,
		Dealer:      []deck.Card{deck.MustParseCards("Ks")[0], {FaceDown: true}},
		DealerScore: 10,
		Players: []game.PlayerView{
			{Name: "ada", Coins: 990, InPlay: true, Hands: []game.HandView{
				{Owner: "ada", Cards: deck.MustParseCards("As7h"), Score: 18, Soft: true},
			}},
			{Name: "bob", Coins: 980, InPlay: true, Hands: []game.HandView{
				{Owner: "bob", Index: 0, Cards: deck.MustParseCards("8d3c"), Score: 11, FromSplit: true},
				{Owner: "bob", Index: 1, Cards: deck.MustParseCards("8c9s6h"), Score: 23, FromSplit: true},
			}},
			{Name: "cy", Coins: 5},
		},
		ActivePlayer: "bob",
		ActiveHand:   0,
	})

	out := buf.String()
	assert.Contains(t, out, "Round 3")
	assert.Contains(t, out, "41 cards left")
	assert.Contains(t, out, "Dealer  K♠ ??  (10)")
	assert.Contains(t, out, "A♠ 7♥  (18 soft)")
	assert.Contains(t, out, "(23 bust) [split]")
	assert.Contains(t, out, "sitting out")

	var active []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, ">") {
			active = append(active, line)
		}
	}
	require.Len(t, active, 1)
	assert.Contains(t, active[0], "bob")
	assert.Contains(t, active[0], "8♦ 3♣")
}

func TestShowRound(t *testing.T) {
	r, buf := plainRenderer()
	r.ShowRound(&game.RoundResult{
		Round:       1,
		Outcome:     game.Completed,
		Dealer:      deck.MustParseCards("9s8d"),
		DealerScore: 17,
		Hands: []game.HandResult{
			{Player: "ada", Cards: deck.MustParseCards("KhAs"), Score: 21, Result: game.BlackjackWin, Payout: 30},
			{Player: "bob", Cards: deck.MustParseCards("0h6s"), Score: 16, Result: game.Lose},
		},
		Excluded: []string{"cy"},
	})

	out := buf.String()
	assert.Contains(t, out, "Dealer  9♠ 8♦  (17)")
	assert.Contains(t, out, "blackjack  +30")
	assert.Contains(t, out, "lose  +0")
	assert.Contains(t, out, "cy cannot pay the ante")
}

func TestShowRoundTerminalOutcomes(t *testing.T) {
	r, buf := plainRenderer()
	r.ShowRound(&game.RoundResult{Outcome: game.GameOver})
	assert.Contains(t, buf.String(), "Game over")

	buf.Reset()
	r.ShowRound(&game.RoundResult{Round: 7, Outcome: game.Voided})
	assert.Contains(t, buf.String(), "Round 7 voided")
}

func TestShowStandings(t *testing.T) {
	r, buf := plainRenderer()

	ada := &statistics.Statistics{}
	ada.Add(10, 10, []game.HandResult{{Score: 20, Result: game.Win, Payout: 20}})
	r.ShowStandings([]statistics.Standing{
		{Name: "ada", Balance: 1010, Net: 10, LastEligibleRound: 1, Stats: ada},
		{Name: "bob", Balance: 0, Net: -1000, LastEligibleRound: 87, Stats: &statistics.Statistics{}},
	})

	out := buf.String()
	assert.Contains(t, out, "Player")
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "1010")
	assert.Contains(t, out, "+10")
	assert.Contains(t, out, "-1000")
	assert.Contains(t, out, "87")
	assert.Contains(t, out, "100.0")
	assert.Less(t, strings.Index(out, "ada"), strings.Index(out, "bob"))
}

func TestAskSetup(t *testing.T) {
	r, out := plainRenderer()
	c := NewConsole(strings.NewReader("9\n6\n2\n3\nada\n\n"), r)

	setup, err := c.AskSetup(8, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, setup.Decks)
	assert.Equal(t, []string{"ada", "Player 2"}, setup.Humans)
	assert.Equal(t, 3, setup.Bots)
	assert.Contains(t, out.String(), "Enter a number between 1 and 8")
}

func TestAskIntEOF(t *testing.T) {
	r, _ := plainRenderer()
	c := NewConsole(strings.NewReader(""), r)
	_, err := c.AskInt("How many decks", 1, 8, 1)
	assert.ErrorIs(t, err, ErrNoInput)

	c = NewConsole(strings.NewReader("4"), r)
	n, err := c.AskInt("How many decks", 1, 8, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestHumanPolicy(t *testing.T) {
	r, out := plainRenderer()
	c := NewConsole(strings.NewReader("fold\np\nd\n"), r)
	policy := c.HumanPolicy()

	v := game.View{
		Player:   "ada",
		Hand:     game.HandView{Cards: deck.MustParseCards("6s5d"), Score: 11},
		Legal:    []game.Action{game.Hit, game.Stand, game.DoubleDown, game.Surrender},
		DealerUp: deck.MustParseCards("6h")[0],
	}
	d, err := policy.Decide(v)
	require.NoError(t, err)
	assert.Equal(t, game.DoubleDown, d.Action)

	text := out.String()
	assert.Contains(t, text, "ada hand 1: 6♠ 5♦ (11) vs dealer 6♥")
	assert.Contains(t, text, `unknown action "fold"`)
	assert.Contains(t, text, "Cannot split now")
	assert.Contains(t, text, "Action (hit, stand, double, surrender):")

	_, err = policy.Decide(v)
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestConsoleClosed(t *testing.T) {
	r, _ := plainRenderer()
	c := NewConsole(strings.NewReader("ada\n"), r)
	_, err := c.AskName(1)
	require.NoError(t, err)
	assert.False(t, c.Closed())

	name, err := c.AskName(2)
	assert.ErrorIs(t, err, ErrNoInput)
	assert.Empty(t, name)
	assert.True(t, c.Closed())
}
