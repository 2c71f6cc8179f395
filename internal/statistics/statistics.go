package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjackforbots/internal/game"
)

// Statistics accumulates one player's per-round net results in chips
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Every round's net, for median/percentile calculation

	// Hand outcomes, split hands counted separately
	Hands       int
	Wins        int
	Blackjacks  int
	Pushes      int
	Losses      int
	Surrenders  int
	Busts       int
	DoubleDowns int
	SplitHands  int

	Staked int // Chips put in: antes plus split and double down fees
	Paid   int // Chips returned by settlement
}

// Mean returns the mean net chips per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of the per-round net
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add records one round the player was dealt into. net is the balance change
// over the round and hands are the player's settled hands.
func (s *Statistics) Add(net int, ante int, hands []game.HandResult) {
	v := float64(net)
	s.Rounds++
	s.SumNet += v
	s.SumNet2 += v * v
	s.Values = append(s.Values, v)

	// One ante to sit down, one more per split and per double down.
	stake := ante
	if len(hands) > 1 {
		stake += (len(hands) - 1) * ante
		s.SplitHands += len(hands)
	}
	for _, h := range hands {
		s.Hands++
		s.Paid += h.Payout
		if h.DoubledDown {
			s.DoubleDowns++
			stake += ante
		}
		if h.Score > game.Blackjack {
			s.Busts++
		}
		switch h.Result {
		case game.Win:
			s.Wins++
		case game.BlackjackWin:
			s.Blackjacks++
		case game.Push:
			s.Pushes++
		case game.Lose:
			s.Losses++
		case game.Surrendered:
			s.Surrenders++
		}
	}
	s.Staked += stake
}

// SumNetInt returns the total net in whole chips
func (s *Statistics) SumNetInt() int {
	return int(math.Round(s.SumNet))
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Hands += other.Hands
	s.Wins += other.Wins
	s.Blackjacks += other.Blackjacks
	s.Pushes += other.Pushes
	s.Losses += other.Losses
	s.Surrenders += other.Surrenders
	s.Busts += other.Busts
	s.DoubleDowns += other.DoubleDowns
	s.SplitHands += other.SplitHands
	s.Staked += other.Staked
	s.Paid += other.Paid
}

// Median returns the median per-round net
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the share of hands that won, blackjacks included
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins+s.Blackjacks) / float64(s.Hands)
}

// IsLedgerBalanced checks chips in minus chips out equals the recorded net
func (s *Statistics) IsLedgerBalanced() bool {
	return s.Paid-s.Staked == s.SumNetInt()
}

// Validate checks the counters agree with each other
func (s *Statistics) Validate() error {
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	outcomes := s.Wins + s.Blackjacks + s.Pushes + s.Losses + s.Surrenders
	if outcomes != s.Hands {
		return fmt.Errorf("hand outcomes (%d) do not match hands count (%d)", outcomes, s.Hands)
	}

	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: staked=%d paid=%d net=%d", s.Staked, s.Paid, s.SumNetInt())
	}
	return nil
}
