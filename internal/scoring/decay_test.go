package scoring

import (
	"testing"
)

func TestScoreTerm(t *testing.T) {
	t.Run("match at start scores exactly 1.0", func(t *testing.T) {
		if got := ScoreTerm(0); got != 1.0 {
			t.Errorf("ScoreTerm(0) = %f, want 1.0", got)
		}
	})

	t.Run("half-score offset scores exactly 0.5", func(t *testing.T) {
		if got := ScoreTerm(HalfScorePosition); got != 0.5 {
			t.Errorf("ScoreTerm(%d) = %f, want 0.5", HalfScorePosition, got)
		}
	})

	t.Run("not found scores 0", func(t *testing.T) {
		if got := ScoreTerm(NotFoundPosition); got != 0.0 {
			t.Errorf("ScoreTerm(NotFoundPosition) = %f, want 0", got)
		}
	})

	t.Run("strictly decreasing and bounded to (0,1]", func(t *testing.T) {
		prev := ScoreTerm(0)
		for pos := 1; pos <= 1000; pos++ {
			score := ScoreTerm(pos)
			if score <= 0 || score > 1 {
				t.Fatalf("ScoreTerm(%d) = %f, want value in (0,1]", pos, score)
			}
			if score >= prev {
				t.Fatalf("ScoreTerm(%d) = %f not below ScoreTerm(%d) = %f", pos, score, pos-1, prev)
			}
			prev = score
		}
	})
}
