package scoring

// HalfScorePosition is the offset at which a single-term match scores half
// of a match at offset 0.
const HalfScorePosition = 5

// ScoreTerm maps one occurrence offset to a score in (0, 1] using a rational
// decay: K/(K+position) with K = HalfScorePosition. A match at offset 0
// scores exactly 1.0; the score is strictly decreasing in the offset and
// approaches 0 for late matches. NotFoundPosition scores 0.
func ScoreTerm(position int) float64 {
	if position == NotFoundPosition {
		return 0.0
	}
	return float64(HalfScorePosition) / float64(HalfScorePosition+position)
}
