package scoring

import (
	"fmt"

	"github.com/posmatch/go-position-scorer/model"
)

// Explanation is a human-readable breakdown of a score contribution.
type Explanation struct {
	Value   float64       `json:"value"`
	Match   bool          `json:"match"`
	Message string        `json:"message"`
	Details []Explanation `json:"details,omitempty"`
}

// Explain produces a per-term breakdown for the document: every distinct
// term appearing anywhere in the query, regardless of group structure or
// query order, is looked up and scored through the single-term decay, and
// the per-term values are summed.
//
// This is an independent diagnostic path. For multi-group queries the live
// score uses the ordering-rank formula instead, so the explanation total
// generally does not equal Score's result; explanations are approximate
// per-term summaries, not score reconciliations.
func (s *Scorer) Explain(docID uint32, groups []model.TermGroup) Explanation {
	terms := model.FlattenTerms(groups)

	details := make([]Explanation, 0, len(terms))
	totalScore := 0.0
	for _, term := range terms {
		termExplanation := s.explainTerm(docID, term)
		details = append(details, termExplanation)
		totalScore += termExplanation.Value
	}

	return Explanation{
		Value:   totalScore,
		Match:   totalScore > 0,
		Message: fmt.Sprintf("score(doc=%d), sum of:", docID),
		Details: details,
	}
}

func (s *Scorer) explainTerm(docID uint32, term model.Term) Explanation {
	position := s.lookup.Position(docID, term)
	if position == NotFoundPosition {
		return Explanation{
			Value:   0,
			Match:   false,
			Message: fmt.Sprintf("no matching terms for field=%s, term=%s", term.Field, term.Text),
		}
	}

	termScore := ScoreTerm(position)
	formula := fmt.Sprintf("%d/(%d+%d)", HalfScorePosition, HalfScorePosition, position)
	return Explanation{
		Value:   termScore,
		Match:   true,
		Message: fmt.Sprintf("score(field=%s, term=%s, pos=%d, func=%s)", term.Field, term.Text, position, formula),
	}
}
