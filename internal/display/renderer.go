// Package display is the terminal side of the game: it renders the table,
// asks for setup parameters and reads a human player's actions.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/statistics"
	"github.com/muesli/termenv"
)

// Renderer draws table state to a terminal. It implements game.Display.
type Renderer struct {
	out    io.Writer
	styles Styles
}

var _ game.Display = (*Renderer)(nil)

// NewRenderer creates a renderer writing to out. Options select the color
// profile, e.g. termenv.WithProfile(termenv.Ascii) for plain text.
func NewRenderer(out io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{
		out:    out,
		styles: NewStyles(lipgloss.NewRenderer(out, opts...)),
	}
}

// Styles returns the palette in use
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Card renders a single card, masked when face down
func (r *Renderer) Card(c deck.Card) string {
	switch {
	case c.FaceDown:
		return r.styles.HiddenCard.Render("??")
	case c.Suit.IsRed():
		return r.styles.RedCard.Render(c.String())
	default:
		return r.styles.BlackCard.Render(c.String())
	}
}

// Cards renders cards separated by spaces
func (r *Renderer) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.Card(c)
	}
	return strings.Join(parts, " ")
}

func scoreLabel(score int, soft bool) string {
	switch {
	case score > game.Blackjack:
		return fmt.Sprintf("%d bust", score)
	case soft:
		return fmt.Sprintf("%d soft", score)
	default:
		return strconv.Itoa(score)
	}
}

// ShowTable renders the whole table
func (r *Renderer) ShowTable(v game.TableView) {
	var b strings.Builder

	header := fmt.Sprintf("Round %d", v.Round)
	b.WriteString(r.styles.Header.Render(header))
	b.WriteString(r.styles.Muted.Render(fmt.Sprintf("  %d cards left", v.Remaining)))
	b.WriteString("\n")

	dealer := r.styles.Dealer.Render("Dealer")
	if len(v.Dealer) == 0 {
		fmt.Fprintf(&b, "%s\n", dealer)
	} else {
		fmt.Fprintf(&b, "%s  %s  (%d)\n", dealer, r.Cards(v.Dealer), v.DealerScore)
	}

	for _, p := range v.Players {
		name := fmt.Sprintf("%-12s %6d", p.Name, p.Coins)
		if !p.InPlay {
			fmt.Fprintf(&b, "  %s  %s\n", r.styles.Muted.Render(name), r.styles.Muted.Render("sitting out"))
			continue
		}
		for i, h := range p.Hands {
			marker := " "
			style := r.styles.Player
			if p.Name == v.ActivePlayer && i == v.ActiveHand {
				marker = ">"
				style = r.styles.Active
			}
			label := name
			if i > 0 {
				label = strings.Repeat(" ", len(name))
			}
			fmt.Fprintf(&b, "%s %s  %s  (%s)%s\n",
				marker, style.Render(label), r.Cards(h.Cards), scoreLabel(h.Score, h.Soft), handFlags(h))
		}
	}

	_, _ = io.WriteString(r.out, b.String())
}

func handFlags(h game.HandView) string {
	var flags []string
	if h.DoubledDown {
		flags = append(flags, "doubled")
	}
	if h.Surrendered {
		flags = append(flags, "surrendered")
	}
	if h.FromSplit {
		flags = append(flags, "split")
	}
	if len(flags) == 0 {
		return ""
	}
	return " [" + strings.Join(flags, ", ") + "]"
}

// ShowRound renders the settlement of a round
func (r *Renderer) ShowRound(res *game.RoundResult) {
	var b strings.Builder

	switch res.Outcome {
	case game.GameOver:
		b.WriteString(r.styles.Warning.Render("Game over: nobody can pay the ante"))
		b.WriteString("\n")
		_, _ = io.WriteString(r.out, b.String())
		return
	case game.Voided:
		b.WriteString(r.styles.Error.Render(fmt.Sprintf("Round %d voided: the shoe ran out, stakes returned", res.Round)))
		b.WriteString("\n")
		_, _ = io.WriteString(r.out, b.String())
		return
	}

	fmt.Fprintf(&b, "%s  %s  (%d)\n", r.styles.Dealer.Render("Dealer"), r.Cards(res.Dealer), res.DealerScore)
	for _, h := range res.Hands {
		outcome := h.Result.String()
		switch h.Result {
		case game.Win, game.BlackjackWin:
			outcome = r.styles.Success.Render(outcome)
		case game.Lose:
			outcome = r.styles.Error.Render(outcome)
		default:
			outcome = r.styles.Warning.Render(outcome)
		}
		fmt.Fprintf(&b, "  %-12s %s  (%d)  %s  +%d\n", h.Player, r.Cards(h.Cards), h.Score, outcome, h.Payout)
	}
	for _, name := range res.Excluded {
		fmt.Fprintf(&b, "  %s\n", r.styles.Muted.Render(name+" cannot pay the ante"))
	}
	_, _ = io.WriteString(r.out, b.String())
}

// ShowStandings renders the final standings as a table
func (r *Renderer) ShowStandings(standings []statistics.Standing) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Player", "Balance", "Net", "Last round", "Rounds", "Mean/round", "Win %").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Dealer
			}
			return r.styles.Player
		})

	for i, s := range standings {
		t.Row(
			strconv.Itoa(i+1),
			s.Name,
			strconv.Itoa(s.Balance),
			fmt.Sprintf("%+d", s.Net),
			strconv.Itoa(s.LastEligibleRound),
			strconv.Itoa(s.Stats.Rounds),
			fmt.Sprintf("%.2f", s.Stats.Mean()),
			fmt.Sprintf("%.1f", s.Stats.WinRate()*100),
		)
	}

	_, _ = io.WriteString(r.out, t.Render()+"\n")
}

// Message writes a plain status line
func (r *Renderer) Message(format string, args ...any) {
	_, _ = io.WriteString(r.out, fmt.Sprintf(format, args...)+"\n")
}
