package search

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/posmatch/go-position-scorer/config"
	"github.com/posmatch/go-position-scorer/index"
	internalErrors "github.com/posmatch/go-position-scorer/internal/errors"
	"github.com/posmatch/go-position-scorer/internal/scoring"
	"github.com/posmatch/go-position-scorer/model"
	"github.com/posmatch/go-position-scorer/services"
	"github.com/posmatch/go-position-scorer/store"
)

const defaultPageSize = 10

// Service drives per-document scoring for a single index: it gathers the
// candidate documents for a query's term groups, walks them through the
// iterator surface, scores each one, and returns the ranked page.
// It fulfills the services.Searcher and services.Explainer interfaces.
type Service struct {
	termVectors   *index.TermVectorIndex
	documentStore *store.DocumentStore
	settings      *config.IndexSettings
	scorer        *scoring.Scorer
}

// NewService creates a new search Service.
func NewService(termVectors *index.TermVectorIndex, docStore *store.DocumentStore, settings *config.IndexSettings, logger *slog.Logger) (*Service, error) {
	if termVectors == nil {
		return nil, fmt.Errorf("term vector index cannot be nil")
	}
	if docStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}

	lookup := scoring.NewLookup(termVectors, logger)
	return &Service{
		termVectors:   termVectors,
		documentStore: docStore,
		settings:      settings,
		scorer:        scoring.NewScorer(lookup, settings.ClampNonNegative),
	}, nil
}

// Search scores every candidate document for the query's term groups and
// returns them ranked by score, highest first.
func (s *Service) Search(query services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()

	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	groups := s.resolveFields(query.Groups)
	queryUUID := uuid.New().String()

	if len(groups) == 0 {
		return services.SearchResult{Hits: []services.HitResult{}, Total: 0, Page: page, PageSize: pageSize, Took: time.Since(startTime).Milliseconds(), QueryId: queryUUID}, nil
	}

	s.termVectors.Mu.RLock()
	candidates := s.candidateDocIDs(groups)
	s.termVectors.Mu.RUnlock()

	hits := make([]services.HitResult, 0, len(candidates))

	// The candidate set may be empty; the iterator surface still hands the
	// loop a well-formed, immediately exhausted iterator.
	it := scoring.EnsureIterator(s.matchIterator(candidates))
	for docID := it.Next(); docID != scoring.NoMoreDocs; docID = it.Next() {
		internalID := uint32(docID)

		s.documentStore.Mu.RLock()
		doc, found := s.documentStore.Docs[internalID]
		s.documentStore.Mu.RUnlock()
		if !found {
			continue
		}

		hits = append(hits, services.HitResult{
			Document: doc,
			Score:    s.scorer.Score(internalID, groups),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	totalHits := len(hits)
	startIndex := (page - 1) * pageSize
	endIndex := startIndex + pageSize
	var paginatedHits []services.HitResult
	if startIndex < totalHits {
		if endIndex > totalHits {
			endIndex = totalHits
		}
		paginatedHits = hits[startIndex:endIndex]
	} else {
		paginatedHits = []services.HitResult{}
	}

	return services.SearchResult{
		Hits:     paginatedHits,
		Total:    totalHits,
		Page:     page,
		PageSize: pageSize,
		Took:     time.Since(startTime).Milliseconds(),
		QueryId:  queryUUID,
	}, nil
}

// Explain returns the per-term score breakdown for one document.
func (s *Service) Explain(documentID string, groups []model.TermGroup) (scoring.Explanation, error) {
	s.documentStore.Mu.RLock()
	internalID, exists := s.documentStore.ExternalIDtoInternalID[documentID]
	s.documentStore.Mu.RUnlock()
	if !exists {
		return scoring.Explanation{}, internalErrors.NewDocumentNotFoundError(documentID, s.settings.Name)
	}

	return s.scorer.Explain(internalID, s.resolveFields(groups)), nil
}

// resolveFields fills in the index's default field on terms that name none
// and drops groups left without terms.
func (s *Service) resolveFields(groups []model.TermGroup) []model.TermGroup {
	resolved := make([]model.TermGroup, 0, len(groups))
	for _, group := range groups {
		terms := make([]model.Term, 0, len(group.Terms))
		for _, term := range group.Terms {
			if term.Text == "" {
				continue
			}
			if term.Field == "" {
				term.Field = s.settings.DefaultField
			}
			terms = append(terms, term)
		}
		if len(terms) > 0 {
			resolved = append(resolved, model.TermGroup{Terms: terms})
		}
	}
	return resolved
}

// candidateDocIDs returns the sorted internal IDs of documents containing at
// least one of the query's terms in its field. The caller must hold the term
// vector read lock.
func (s *Service) candidateDocIDs(groups []model.TermGroup) []int {
	matched := make(map[int]struct{})
	for docID, docVectors := range s.termVectors.Docs {
		for _, group := range groups {
			for _, term := range group.Terms {
				fieldVectors, ok := docVectors[term.Field]
				if !ok {
					continue
				}
				if _, ok := fieldVectors[term.Text]; ok {
					matched[int(docID)] = struct{}{}
				}
			}
		}
	}

	candidates := make([]int, 0, len(matched))
	for docID := range matched {
		candidates = append(candidates, docID)
	}
	sort.Ints(candidates)
	return candidates
}

// matchIterator wraps the candidate set in the per-document iteration
// surface, or returns nil when there is nothing to iterate.
func (s *Service) matchIterator(candidates []int) scoring.DocIterator {
	if len(candidates) == 0 {
		return nil
	}
	return scoring.NewSliceIterator(candidates)
}
