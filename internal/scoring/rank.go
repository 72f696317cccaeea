package scoring

import "math"

// Rank measures how far a sequence of found positions deviates from the
// ideal contiguous in-order run 0,1,...,n-1. Lower is better; 0 means the
// matches start at offset 0 and follow each other without gaps.
//
// The value is the absolute difference between the mean of the observed
// positions and the mean of the ideal sequence (a penalty for starting late)
// plus, for each index, the L1 distance between the position's offset from
// its sequence mean and the index's offset from the ideal mean (a penalty
// for out-of-order or irregularly spaced matches).
func Rank(positions []int) float64 {
	n := len(positions)
	if n == 0 {
		return 0.0
	}

	sum := 0
	for _, pos := range positions {
		sum += pos
	}
	averageSubject := float64(sum) / float64(n)
	averageTerms := float64(n-1) / 2.0 // average(0..n-1)

	rank := math.Abs(averageSubject - averageTerms)
	for i, pos := range positions {
		relativeSubject := float64(pos) - averageSubject
		relativeTerm := float64(i) - averageTerms
		rank += math.Abs(relativeTerm - relativeSubject)
	}
	return rank
}

// RankWordLists is the standalone form of the rank formula over two word
// lists: the document's words and the query's words in query order. It is a
// calibration utility independent of the index layer, normalized with
// base = 25*(n+1) and without the prefix boost. Query words absent from the
// document contribute position -1, matching indexOf semantics.
func RankWordLists(words, terms []string) float64 {
	if len(terms) == 0 {
		return 0.0
	}

	positions := make([]int, 0, len(terms))
	sum := 0
	for _, term := range terms {
		pos := indexOf(words, term)
		positions = append(positions, pos)
		sum += pos
	}

	averageSubject := float64(sum) / float64(len(terms))
	averageTerms := float64(len(terms)-1) / 2.0

	rank := math.Abs(averageSubject - averageTerms)
	for i, pos := range positions {
		relativeSubject := float64(pos) - averageSubject
		relativeTerm := float64(i) - averageTerms
		rank += math.Abs(relativeTerm - relativeSubject)
	}

	base := float64(25 * (len(terms) + 1))
	return (base - rank) / base
}

func indexOf(words []string, term string) int {
	for i, word := range words {
		if word == term {
			return i
		}
	}
	return -1
}
