// Package testing provides shared helpers for tests that exercise a full
// engine: index setup, a canned document corpus, and table-driven search
// runners.
package testing

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posmatch/go-position-scorer/config"
	"github.com/posmatch/go-position-scorer/internal/engine"
	"github.com/posmatch/go-position-scorer/model"
	"github.com/posmatch/go-position-scorer/services"
)

// CreateTestEngine creates an engine over a temporary data directory with
// logging discarded.
func CreateTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return engine.NewEngine(t.TempDir(), logger)
}

// CreateTestIndex creates a test index with default settings.
func CreateTestIndex(t *testing.T, eng *engine.Engine, indexName string) config.IndexSettings {
	t.Helper()
	settings := config.IndexSettings{
		Name:                indexName,
		PositionalFields:    []string{"title", "content"},
		NonPositionalFields: []string{"category"},
	}

	err := eng.CreateIndex(settings)
	require.NoError(t, err, "Failed to create test index")

	created, err := eng.GetIndexSettings(indexName)
	require.NoError(t, err, "Failed to read back test index settings")
	return created
}

// AddTestDocuments adds a small movie corpus to an index.
func AddTestDocuments(t *testing.T, eng *engine.Engine, indexName string) []model.Document {
	t.Helper()
	indexAccessor, err := eng.GetIndex(indexName)
	require.NoError(t, err, "Failed to get index accessor")

	docs := []model.Document{
		{
			"documentID": "doc1",
			"title":      "the matrix reloaded",
			"content":    "a computer programmer discovers reality is a simulation",
			"category":   "movie",
		},
		{
			"documentID": "doc2",
			"title":      "inception",
			"content":    "a thief enters dreams to steal secrets",
			"category":   "movie",
		},
		{
			"documentID": "doc3",
			"title":      "interstellar voyage",
			"content":    "astronauts travel through a wormhole to save humanity",
			"category":   "movie",
		},
	}

	err = indexAccessor.AddDocuments(docs)
	require.NoError(t, err, "Failed to add test documents")

	return docs
}

// QueryGroups builds one single-term group per word, preserving word order.
func QueryGroups(field string, words ...string) []model.TermGroup {
	groups := make([]model.TermGroup, 0, len(words))
	for _, word := range words {
		groups = append(groups, model.TermGroup{
			Terms: []model.Term{{Field: field, Text: word}},
		})
	}
	return groups
}

// SearchTestCase represents a test case for search operations
type SearchTestCase struct {
	Name          string
	Query         services.SearchQuery
	ExpectedCount int
	ExpectedFirst string // Expected first result document ID
	ValidateFunc  func(t *testing.T, results *services.SearchResult)
}

// RunSearchTests runs a suite of search tests against an index
func RunSearchTests(t *testing.T, indexAccessor services.IndexAccessor, tests []SearchTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			results, err := indexAccessor.Search(tt.Query)
			require.NoError(t, err, "Search should not fail")

			assert.Equal(t, tt.ExpectedCount, results.Total, "Result count should match")

			if tt.ExpectedFirst != "" && len(results.Hits) > 0 {
				firstDocID, exists := results.Hits[0].Document.GetDocumentID()
				require.True(t, exists, "First result should have document ID")
				assert.Equal(t, tt.ExpectedFirst, firstDocID, "First result should match expected")
			}

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, &results)
			}
		})
	}
}
