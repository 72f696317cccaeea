package model

import "sort"

// Term is a single indexed surface form: a field name plus the token text.
type Term struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

// TermGroup holds the interchangeable surface forms (inflections, synonyms)
// of one query word. The set of terms within a group carries no defined
// order; groups themselves are ordered by the word's position in the query.
type TermGroup struct {
	Terms []Term `json:"terms"`
}

// SortedTerms returns the group's terms in canonical lexical order
// (field, then text). Group membership is a set, so callers that need a
// deterministic iteration order use this instead of ranging over Terms.
func (g TermGroup) SortedTerms() []Term {
	terms := make([]Term, len(g.Terms))
	copy(terms, g.Terms)
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Field != terms[j].Field {
			return terms[i].Field < terms[j].Field
		}
		return terms[i].Text < terms[j].Text
	})
	return terms
}

// FlattenTerms collects the distinct terms appearing anywhere in the given
// groups, ignoring query order and group structure. The result is sorted by
// field then text so repeated calls over the same query are deterministic.
func FlattenTerms(groups []TermGroup) []Term {
	seen := make(map[Term]struct{})
	flat := make([]Term, 0)
	for _, group := range groups {
		for _, term := range group.Terms {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			flat = append(flat, term)
		}
	}
	sort.Slice(flat, func(i, j int) bool {
		if flat[i].Field != flat[j].Field {
			return flat[i].Field < flat[j].Field
		}
		return flat[i].Text < flat[j].Text
	})
	return flat
}
