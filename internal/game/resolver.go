package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// table is the part of the engine the resolver needs while a hand is played.
type table interface {
	// deal draws a face-up card into h, or returns ErrSupplyExhausted.
	deal(h *Hand) error
	view(p *Player, idx int, legal []Action) View
	show(p *Player, idx int)
}

// Resolver runs the turn loop for a single hand: ask the owner's policy for an
// action, check it is legal, apply it, and repeat until the hand is finished.
type Resolver struct {
	rules  Rules
	table  table
	logger *log.Logger
}

func newResolver(rules Rules, t table, logger *log.Logger) *Resolver {
	return &Resolver{
		rules:  rules,
		table:  t,
		logger: logger.WithPrefix("resolver"),
	}
}

// PlayHand plays p.Hands[idx] to completion. The only error it returns is
// ErrSupplyExhausted; illegal requests and policy failures are absorbed here.
func (r *Resolver) PlayHand(p *Player, idx int) error {
	h := p.Hands[idx]
	rejected := 0

	for !h.IsBust() {
		legal := r.Legal(p, h)
		r.table.show(p, idx)

		decision, err := r.decide(p, r.table.view(p, idx, legal))
		if err != nil {
			r.logger.Warn("Policy failed, standing", "player", p.Name, "hand", idx, "error", err)
			h.decisions++
			return nil
		}

		done, err := r.Apply(p, idx, decision)
		switch {
		case errors.Is(err, ErrIllegalAction):
			rejected++
			r.logger.Warn("Rejected action", "player", p.Name, "hand", idx, "error", err, "attempt", rejected)
			if rejected >= r.rules.MaxIllegalAttempts {
				r.logger.Warn("Too many illegal actions, standing", "player", p.Name, "hand", idx)
				h.decisions++
				return nil
			}
			continue
		case err != nil:
			return err
		}

		rejected = 0
		r.logger.Debug("Applied action",
			"player", p.Name,
			"hand", idx,
			"action", decision.Action,
			"score", h.Score(),
			"reasoning", decision.Reasoning)
		if done {
			return nil
		}
	}
	return nil
}

// decide asks the policy for a decision. A panicking policy is reported as an
// error so the hand stands instead of the process dying.
func (r *Resolver) decide(p *Player, v View) (d Decision, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("policy panicked: %v", rec)
		}
	}()
	return p.Policy.Decide(v)
}

// Apply performs a single decision on p.Hands[idx]. done reports whether the hand
// is finished. A rejected action returns an error matching ErrIllegalAction and
// leaves the hand and balance untouched.
func (r *Resolver) Apply(p *Player, idx int, d Decision) (done bool, err error) {
	h := p.Hands[idx]

	switch d.Action {
	case Hit:
		h.decisions++
		if err := r.table.deal(h); err != nil {
			return true, err
		}
		return h.IsBust(), nil

	case Stand:
		h.decisions++
		return true, nil

	case DoubleDown:
		if err := r.checkDouble(p, h); err != nil {
			return false, err
		}
		if err := p.Pay(r.rules.Ante); err != nil {
			return false, illegal(DoubleDown, err.Error())
		}
		h.decisions++
		h.DoubledDown = true
		if err := r.table.deal(h); err != nil {
			return true, err
		}
		return true, nil

	case Split:
		if err := r.checkSplit(p, h); err != nil {
			return false, err
		}
		if err := p.Pay(r.rules.Ante); err != nil {
			return false, illegal(Split, err.Error())
		}
		split, err := p.SplitHand(idx)
		if err != nil {
			return false, illegal(Split, err.Error())
		}
		h.decisions++
		if err := r.table.deal(h); err != nil {
			return true, err
		}
		if err := r.table.deal(split); err != nil {
			return true, err
		}
		return false, nil

	case Surrender:
		if err := r.checkSurrender(h); err != nil {
			return false, err
		}
		h.decisions++
		h.Surrendered = true
		return true, nil

	default:
		r.logger.Warn("Unrecognized action, standing", "player", p.Name, "hand", idx, "action", d.Action)
		h.decisions++
		return true, nil
	}
}

// Legal returns the actions Apply would accept for h right now.
func (r *Resolver) Legal(p *Player, h *Hand) []Action {
	legal := []Action{Hit, Stand}
	if r.checkDouble(p, h) == nil {
		legal = append(legal, DoubleDown)
	}
	if r.checkSplit(p, h) == nil {
		legal = append(legal, Split)
	}
	if r.checkSurrender(h) == nil {
		legal = append(legal, Surrender)
	}
	return legal
}

func (r *Resolver) checkDouble(p *Player, h *Hand) error {
	switch {
	case len(h.Cards) != 2:
		return illegal(DoubleDown, "hand must hold exactly two cards")
	case h.FromSplit:
		return illegal(DoubleDown, "split hands cannot double down")
	case h.DoubledDown:
		return illegal(DoubleDown, "hand already doubled")
	case !p.CanAfford(r.rules.Ante):
		return illegal(DoubleDown, "insufficient balance")
	}
	return nil
}

func (r *Resolver) checkSplit(p *Player, h *Hand) error {
	switch {
	case !h.CanSplit():
		return illegal(Split, "hand is not a pair")
	case !p.CanAfford(r.rules.Ante):
		return illegal(Split, "insufficient balance")
	}
	return nil
}

func (r *Resolver) checkSurrender(h *Hand) error {
	if len(h.Cards) != 2 || !h.IsFresh() || h.FromSplit {
		return illegal(Surrender, "only allowed as the first decision on a dealt hand")
	}
	return nil
}
