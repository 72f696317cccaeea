package engine

import (
	"fmt"
	"log/slog"

	"github.com/posmatch/go-position-scorer/config"
	"github.com/posmatch/go-position-scorer/index"
	"github.com/posmatch/go-position-scorer/internal/indexing"
	"github.com/posmatch/go-position-scorer/internal/scoring"
	"github.com/posmatch/go-position-scorer/internal/search"
	"github.com/posmatch/go-position-scorer/model"
	"github.com/posmatch/go-position-scorer/services"
	"github.com/posmatch/go-position-scorer/store"
)

// IndexInstance holds all components and services for a single scored index.
// It implements the services.IndexAccessor interface.
type IndexInstance struct {
	settings      *config.IndexSettings
	TermVectors   *index.TermVectorIndex
	DocumentStore *store.DocumentStore
	indexer       *indexing.Service
	searcher      *search.Service
}

// NewIndexInstance creates and initializes a new IndexInstance.
func NewIndexInstance(settings config.IndexSettings, logger *slog.Logger) (*IndexInstance, error) {
	if settings.Name == "" {
		return nil, fmt.Errorf("index name cannot be empty in settings")
	}

	docStore := &store.DocumentStore{
		Docs:                   make(map[uint32]model.Document),
		ExternalIDtoInternalID: make(map[string]uint32),
		NextID:                 0,
	}

	termVectors := &index.TermVectorIndex{
		Docs:     make(map[uint32]index.DocumentVectors),
		Settings: &settings,
	}

	indexerService, err := indexing.NewService(termVectors, docStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer service: %w", err)
	}

	searchService, err := search.NewService(termVectors, docStore, &settings, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &IndexInstance{
		settings:      &settings,
		TermVectors:   termVectors,
		DocumentStore: docStore,
		indexer:       indexerService,
		searcher:      searchService,
	}, nil
}

// newLoadedIndexInstance assembles an IndexInstance around components that
// were restored from disk rather than freshly created.
func newLoadedIndexInstance(settings *config.IndexSettings, termVectors *index.TermVectorIndex, docStore *store.DocumentStore, logger *slog.Logger) (*IndexInstance, error) {
	indexerService, err := indexing.NewService(termVectors, docStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer service: %w", err)
	}

	searchService, err := search.NewService(termVectors, docStore, settings, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &IndexInstance{
		settings:      settings,
		TermVectors:   termVectors,
		DocumentStore: docStore,
		indexer:       indexerService,
		searcher:      searchService,
	}, nil
}

// AddDocuments delegates to the underlying Indexer service.
func (i *IndexInstance) AddDocuments(docs []model.Document) error {
	if i.indexer == nil {
		return fmt.Errorf("indexer service not initialized for index '%s'", i.settings.Name)
	}
	return i.indexer.AddDocuments(docs)
}

// DeleteAllDocuments delegates to the underlying Indexer service.
func (i *IndexInstance) DeleteAllDocuments() error {
	if i.indexer == nil {
		return fmt.Errorf("indexer service not initialized for index '%s'", i.settings.Name)
	}
	return i.indexer.DeleteAllDocuments()
}

// DeleteDocument delegates to the underlying Indexer service.
func (i *IndexInstance) DeleteDocument(docID string) error {
	if i.indexer == nil {
		return fmt.Errorf("indexer service not initialized for index '%s'", i.settings.Name)
	}
	return i.indexer.DeleteDocument(docID)
}

// Search delegates to the underlying Searcher service.
func (i *IndexInstance) Search(query services.SearchQuery) (services.SearchResult, error) {
	if i.searcher == nil {
		return services.SearchResult{}, fmt.Errorf("search service not initialized for index '%s'", i.settings.Name)
	}
	return i.searcher.Search(query)
}

// Explain delegates to the underlying Searcher service.
func (i *IndexInstance) Explain(documentID string, groups []model.TermGroup) (scoring.Explanation, error) {
	if i.searcher == nil {
		return scoring.Explanation{}, fmt.Errorf("search service not initialized for index '%s'", i.settings.Name)
	}
	return i.searcher.Explain(documentID, groups)
}

// Settings returns the configuration settings for this index.
func (i *IndexInstance) Settings() config.IndexSettings {
	return *i.settings
}

// setSearcher allows swapping the searcher after a settings update.
func (i *IndexInstance) setSearcher(searcher *search.Service) {
	i.searcher = searcher
}
