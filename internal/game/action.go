package game

import (
	"fmt"
	"strings"
)

// Action is a move a player can request for one of their hands
type Action int

const (
	Hit Action = iota + 1
	Stand
	DoubleDown
	Split
	Surrender
)

// Actions lists every recognised action in menu order.
var Actions = []Action{Hit, Stand, DoubleDown, Split, Surrender}

func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case DoubleDown:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Valid reports whether a is one of the recognised actions.
func (a Action) Valid() bool {
	return a >= Hit && a <= Surrender
}

// ParseAction accepts the action name or its single-letter shortcut
// (h, s, d, p, r).
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "hit":
		return Hit, nil
	case "s", "stand":
		return Stand, nil
	case "d", "double", "double_down", "doubledown":
		return DoubleDown, nil
	case "p", "split":
		return Split, nil
	case "r", "surrender":
		return Surrender, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}
