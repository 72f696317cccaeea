package services

import (
	"github.com/posmatch/go-position-scorer/config"
	"github.com/posmatch/go-position-scorer/internal/scoring"
	"github.com/posmatch/go-position-scorer/model"
)

// SearchQuery carries an ordered sequence of term groups: each group holds
// the interchangeable surface forms of one query word, and the groups follow
// the user's word order. Query parsing into groups happens upstream.
type SearchQuery struct {
	Groups   []model.TermGroup `json:"groups"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// HitResult represents a single document in the search results.
type HitResult struct {
	Document model.Document `json:"document"`
	Score    float64        `json:"score"`
}

// SearchResult is the paginated response of a search.
type SearchResult struct {
	Hits     []HitResult `json:"hits"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Took     int64       `json:"took"`     // milliseconds
	QueryId  string      `json:"query_id"` // unique UUID for this search query
}

// Indexer defines operations for adding data to an index
type Indexer interface {
	AddDocuments(docs []model.Document) error
	DeleteAllDocuments() error
	DeleteDocument(docID string) error
}

// Searcher defines operations for querying an index
type Searcher interface {
	Search(query SearchQuery) (SearchResult, error)
}

// Explainer produces per-term score breakdowns for diagnostics
type Explainer interface {
	Explain(documentID string, groups []model.TermGroup) (scoring.Explanation, error)
}

// IndexManager manages the lifecycle of indices
type IndexManager interface {
	CreateIndex(settings config.IndexSettings) error
	GetIndex(name string) (IndexAccessor, error)
	GetIndexSettings(name string) (config.IndexSettings, error)
	UpdateIndexSettings(name string, settings config.IndexSettings) error
	DeleteIndex(name string) error
	ListIndexes() []string
	PersistIndexData(indexName string) error
}

// IndexAccessor combines the per-index operations.
type IndexAccessor interface {
	Indexer
	Searcher
	Explainer
	Settings() config.IndexSettings
}
