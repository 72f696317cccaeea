package scoring

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRank(t *testing.T) {
	t.Run("zero for contiguous in-order run from the start", func(t *testing.T) {
		for n := 1; n <= 6; n++ {
			positions := make([]int, n)
			for i := range positions {
				positions[i] = i
			}
			if got := Rank(positions); got != 0 {
				t.Errorf("Rank(%v) = %f, want 0", positions, got)
			}
		}
	})

	t.Run("contiguous run starting at c costs exactly c", func(t *testing.T) {
		// The relative deviations all cancel; what remains is the
		// start-offset penalty.
		for _, c := range []int{1, 3, 10} {
			positions := []int{c, c + 1, c + 2}
			if got := Rank(positions); !almostEqual(got, float64(c)) {
				t.Errorf("Rank(%v) = %f, want %d", positions, got, c)
			}
		}
	})

	t.Run("uniform shift raises the rank by exactly the shift", func(t *testing.T) {
		base := []int{0, 2, 3, 7}
		baseRank := Rank(base)
		for _, k := range []int{1, 5, 20} {
			shifted := make([]int, len(base))
			for i, pos := range base {
				shifted[i] = pos + k
			}
			if got := Rank(shifted); !almostEqual(got, baseRank+float64(k)) {
				t.Errorf("Rank(%v) = %f, want %f", shifted, got, baseRank+float64(k))
			}
		}
	})

	t.Run("swapped neighbors are penalized", func(t *testing.T) {
		// [1,0]: means coincide, each element deviates by 1.
		if got := Rank([]int{1, 0}); !almostEqual(got, 2.0) {
			t.Errorf("Rank([1,0]) = %f, want 2", got)
		}
	})

	t.Run("gaps are penalized", func(t *testing.T) {
		// [0,2]: mean off by 0.5 plus 0.5 deviation per element.
		if got := Rank([]int{0, 2}); !almostEqual(got, 1.5) {
			t.Errorf("Rank([0,2]) = %f, want 1.5", got)
		}
	})

	t.Run("single late match", func(t *testing.T) {
		if got := Rank([]int{10}); !almostEqual(got, 10.0) {
			t.Errorf("Rank([10]) = %f, want 10", got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := Rank(nil); got != 0 {
			t.Errorf("Rank(nil) = %f, want 0", got)
		}
	})
}

func TestRankWordLists(t *testing.T) {
	words := []string{"the", "quick", "brown", "fox"}

	t.Run("perfect prefix alignment scores 1.0", func(t *testing.T) {
		got := RankWordLists(words, []string{"the", "quick", "brown"})
		if !almostEqual(got, 1.0) {
			t.Errorf("RankWordLists = %f, want 1.0", got)
		}
	})

	t.Run("single term found mid-document", func(t *testing.T) {
		// position 2, base 25*2=50 -> (50-2)/50.
		got := RankWordLists(words, []string{"brown"})
		if !almostEqual(got, 0.96) {
			t.Errorf("RankWordLists = %f, want 0.96", got)
		}
	})

	t.Run("absent term contributes position -1", func(t *testing.T) {
		got := RankWordLists(words, []string{"zebra"})
		if !almostEqual(got, 0.98) {
			t.Errorf("RankWordLists = %f, want 0.98", got)
		}
	})

	t.Run("reversed order scores below in-order", func(t *testing.T) {
		inOrder := RankWordLists(words, []string{"quick", "brown"})
		reversed := RankWordLists(words, []string{"brown", "quick"})
		if reversed >= inOrder {
			t.Errorf("reversed (%f) should score below in-order (%f)", reversed, inOrder)
		}
	})

	t.Run("empty terms", func(t *testing.T) {
		if got := RankWordLists(words, nil); got != 0 {
			t.Errorf("RankWordLists(words, nil) = %f, want 0", got)
		}
	})
}
