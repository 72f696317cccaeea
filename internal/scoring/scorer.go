package scoring

import (
	"github.com/posmatch/go-position-scorer/model"
)

// scoreBase normalizes the multi-term rank into a score around 1.0.
const scoreBase = 50.0

// Scorer computes the position-match score for one (query, document) pair.
// Instances are scoped to a single index segment and hold no per-document
// state, so a Scorer is safe to share across sequential evaluations.
type Scorer struct {
	lookup           *Lookup
	clampNonNegative bool
}

// NewScorer creates a Scorer over the given lookup. When clampNonNegative is
// set the multi-term score is floored at 0; otherwise a rank exceeding the
// normalization base produces a negative score, matching the historical
// behavior.
func NewScorer(lookup *Lookup, clampNonNegative bool) *Scorer {
	return &Scorer{lookup: lookup, clampNonNegative: clampNonNegative}
}

// Score computes the relevance of the document for the query's term groups.
//
// A query of one group with one surface form scores through the single-term
// decay. Anything else builds the position trace (first occurrence of each
// candidate term, deduplicated, discovery-ordered) and scores
// (base-rank)/base plus the gated prefix boost: +1.0 when the first traced
// position is 0, then +0.5 when the second is 1, then +0.25 when the third
// is 2.
func (s *Scorer) Score(docID uint32, groups []model.TermGroup) float64 {
	if len(groups) == 1 && len(groups[0].Terms) == 1 {
		return ScoreTerm(s.lookup.Position(docID, groups[0].Terms[0]))
	}

	positions := s.tracePositions(docID, groups)
	if len(positions) == 0 {
		// No computable rank without matches; also guards the division
		// inside Rank's mean.
		return 0.0
	}

	totalScore := (scoreBase - Rank(positions)) / scoreBase

	boost := 0.0
	if positions[0] == 0 {
		boost += 1.0
		if len(positions) > 1 && positions[1] == 1 {
			boost += 0.5
			if len(positions) > 2 && positions[2] == 2 {
				boost += 0.25
			}
		}
	}

	score := totalScore + boost
	if s.clampNonNegative && score < 0 {
		score = 0.0
	}
	return score
}

// tracePositions scans the term groups in query order and collects the
// distinct found positions in discovery order. Within a group the candidate
// surface forms are visited in canonical lexical order so the trace is
// deterministic; a group with several forms occurring at different offsets
// contributes each distinct offset.
func (s *Scorer) tracePositions(docID uint32, groups []model.TermGroup) []int {
	positions := make([]int, 0, len(groups))
	seen := make(map[int]struct{})

	for _, group := range groups {
		for _, term := range group.SortedTerms() {
			pos := s.lookup.Position(docID, term)
			if pos == NotFoundPosition {
				continue
			}
			if _, dup := seen[pos]; dup {
				continue
			}
			seen[pos] = struct{}{}
			positions = append(positions, pos)
		}
	}
	return positions
}
