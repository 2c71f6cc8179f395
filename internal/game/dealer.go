package game

// DealerShouldHit is the house rule: draw on 16 or less and on soft 17, stand
// on everything else.
func DealerShouldHit(h *Hand) bool {
	score := h.Score()
	return score <= 16 || (score == 17 && h.IsSoft())
}
