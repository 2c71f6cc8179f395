package game

// Result is how a hand finished against the dealer
type Result int

const (
	Lose Result = iota
	Push
	Win
	BlackjackWin
	Surrendered
)

func (r Result) String() string {
	switch r {
	case Lose:
		return "lose"
	case Push:
		return "push"
	case Win:
		return "win"
	case BlackjackWin:
		return "blackjack"
	case Surrendered:
		return "surrender"
	default:
		return "unknown"
	}
}

// Settle compares a finished hand with the dealer's and returns the result and
// the coins to credit back to the player. The ante (and any double down) has
// already been taken, so a payout includes the returned stake.
//
//	surrender            ante/2 (Rules keep the ante even)
//	two card 21          3 x ante
//	win                  2 x ante, 4 x ante when doubled
//	push                 ante, 2 x ante when doubled
//	lose                 0
func Settle(h, dealer *Hand, ante int) (Result, int) {
	score := h.Score()
	house := dealer.Score()
	stake := ante
	if h.DoubledDown {
		stake = 2 * ante
	}

	switch {
	case h.Surrendered:
		return Surrendered, ante / 2
	case h.IsBlackjack():
		return BlackjackWin, 3 * ante
	case score <= Blackjack && (house > Blackjack || score > house):
		return Win, 2 * stake
	case score <= Blackjack && score == house:
		return Push, stake
	default:
		return Lose, 0
	}
}
