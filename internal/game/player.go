package game

import "fmt"

// Player is a seat at the table. Hands are rebuilt every round; Coins carry over.
type Player struct {
	Name   string
	Coins  int
	Hands  []*Hand
	Policy Policy
}

// NewPlayer seats a player with a starting balance and a decision policy
func NewPlayer(name string, coins int, policy Policy) *Player {
	return &Player{Name: name, Coins: coins, Policy: policy}
}

// CanAfford reports whether the balance covers amount
func (p *Player) CanAfford(amount int) bool {
	return p.Coins >= amount
}

// JoinTable gives the player a single empty hand for a new round.
func (p *Player) JoinTable() {
	p.Hands = []*Hand{NewHand()}
}

// Pay deducts amount from the balance, refusing to go negative.
func (p *Player) Pay(amount int) error {
	if !p.CanAfford(amount) {
		return fmt.Errorf("%s has %d, needs %d: %w", p.Name, p.Coins, amount, ErrInsufficientBalance)
	}
	p.Coins -= amount
	return nil
}

// SplitHand splits the hand at idx and appends the new hand after the player's
// existing hands, so it is played once the earlier ones are finished.
func (p *Player) SplitHand(idx int) (*Hand, error) {
	if idx < 0 || idx >= len(p.Hands) {
		return nil, fmt.Errorf("hand %d out of range", idx)
	}
	split, err := p.Hands[idx].Split()
	if err != nil {
		return nil, err
	}
	p.Hands = append(p.Hands, split)
	return split, nil
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%d)", p.Name, p.Coins)
}
