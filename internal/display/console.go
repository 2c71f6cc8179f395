package display

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/blackjackforbots/internal/game"
)

// ErrNoInput is returned when the input stream ends before an answer is read.
var ErrNoInput = errors.New("no more input")

// Setup is what the table needs to know before the first deal
type Setup struct {
	Decks  int
	Humans []string
	Bots   int
}

// Console reads answers and actions from a line-oriented input and renders to
// the same terminal.
type Console struct {
	in       *bufio.Reader
	renderer *Renderer
	closed   bool
}

// NewConsole creates a console reading from in and drawing with renderer
func NewConsole(in io.Reader, renderer *Renderer) *Console {
	return &Console{in: bufio.NewReader(in), renderer: renderer}
}

func (c *Console) readLine(prompt string) (string, error) {
	c.renderer.Message("%s", c.renderer.styles.Prompt.Render(prompt))
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		c.closed = true
		if line == "" {
			return "", ErrNoInput
		}
	}
	return strings.TrimSpace(line), nil
}

// Closed reports whether the input has ended
func (c *Console) Closed() bool {
	return c.closed
}

// AskInt asks for a number in [lo, hi]. An empty answer takes def.
func (c *Console) AskInt(prompt string, lo, hi, def int) (int, error) {
	for {
		line, err := c.readLine(fmt.Sprintf("%s [%d-%d, default %d]:", prompt, lo, hi, def))
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < lo || n > hi {
			c.renderer.Message("%s", c.renderer.styles.Error.Render(fmt.Sprintf("Enter a number between %d and %d", lo, hi)))
			continue
		}
		return n, nil
	}
}

// AskName asks for the name of the i-th human player. An empty answer takes
// "Player i".
func (c *Console) AskName(i int) (string, error) {
	line, err := c.readLine(fmt.Sprintf("Name of player %d:", i))
	if err != nil {
		return "", err
	}
	if line == "" {
		return fmt.Sprintf("Player %d", i), nil
	}
	return line, nil
}

// AskSetup runs the setup questions: deck count, human count, bot count and
// each human's name.
func (c *Console) AskSetup(maxDecks, defaultDecks int) (Setup, error) {
	var s Setup
	var err error

	if s.Decks, err = c.AskInt("How many decks", 1, maxDecks, defaultDecks); err != nil {
		return s, err
	}
	humans, err := c.AskInt("How many human players", 0, 7, 1)
	if err != nil {
		return s, err
	}
	if s.Bots, err = c.AskInt("How many bots", 0, 7, 2); err != nil {
		return s, err
	}
	for i := 1; i <= humans; i++ {
		name, err := c.AskName(i)
		if err != nil {
			return s, err
		}
		s.Humans = append(s.Humans, name)
	}
	return s, nil
}

// HumanPolicy returns a policy that asks this console for every decision.
func (c *Console) HumanPolicy() *HumanPolicy {
	return &HumanPolicy{console: c}
}

// HumanPolicy lets a person play a seat from the terminal
type HumanPolicy struct {
	game.NopHooks
	console *Console
}

var _ game.Policy = (*HumanPolicy)(nil)

func (h *HumanPolicy) Decide(v game.View) (game.Decision, error) {
	r := h.console.renderer
	names := make([]string, len(v.Legal))
	for i, a := range v.Legal {
		names[i] = a.String()
	}

	r.Message("%s hand %d: %s (%s) vs dealer %s",
		v.Player, v.Hand.Index+1, r.Cards(v.Hand.Cards), scoreLabel(v.Hand.Score, v.Hand.Soft), r.Card(v.DealerUp))

	for {
		line, err := h.console.readLine(fmt.Sprintf("Action (%s):", strings.Join(names, ", ")))
		if err != nil {
			return game.Decision{}, err
		}
		action, err := game.ParseAction(line)
		if err != nil {
			r.Message("%s", r.styles.Error.Render(err.Error()))
			continue
		}
		if !v.CanTake(action) {
			r.Message("%s", r.styles.Error.Render(fmt.Sprintf("Cannot %s now", action)))
			continue
		}
		return game.Decision{Action: action, Reasoning: "typed by " + v.Player}, nil
	}
}
