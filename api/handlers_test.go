package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/posmatch/go-position-scorer/config"
	"github.com/posmatch/go-position-scorer/internal/engine"
	"github.com/posmatch/go-position-scorer/internal/scoring"
	"github.com/posmatch/go-position-scorer/model"
	"github.com/posmatch/go-position-scorer/services"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.NewEngine(t.TempDir(), logger)
	router := gin.New()
	SetupRoutes(router, eng, logger)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createMoviesIndex(t *testing.T, router *gin.Engine) {
	t.Helper()
	settings := config.IndexSettings{
		Name:                "movies",
		PositionalFields:    []string{"title", "overview"},
		NonPositionalFields: []string{"category"},
	}
	if w := doJSON(t, router, "POST", "/indexes", settings); w.Code != http.StatusCreated {
		t.Fatalf("Failed to create index: status %d, body %s", w.Code, w.Body.String())
	}
}

func addMovieDocuments(t *testing.T, router *gin.Engine) {
	t.Helper()
	docs := []map[string]interface{}{
		{"documentID": "m1", "title": "the quick brown fox", "category": "animals"},
		{"documentID": "m2", "title": "a lazy dog sleeping near brown leaves", "category": "animals"},
		{"documentID": "m3", "title": "space adventures", "category": "scifi"},
	}
	if w := doJSON(t, router, "PUT", "/indexes/movies/documents", docs); w.Code != http.StatusOK {
		t.Fatalf("Failed to add documents: status %d, body %s", w.Code, w.Body.String())
	}
}

func TestHealthCheckHandler(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}

func TestCreateIndexHandler(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name: "valid index creation",
			requestBody: config.IndexSettings{
				Name:             "movies",
				PositionalFields: []string{"title"},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate index",
			requestBody: config.IndexSettings{
				Name:             "movies",
				PositionalFields: []string{"title"},
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing index name",
			requestBody: config.IndexSettings{
				PositionalFields: []string{"title"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "field both positional and non-positional",
			requestBody: config.IndexSettings{
				Name:                "bad",
				PositionalFields:    []string{"title"},
				NonPositionalFields: []string{"title"},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, "POST", "/indexes", tt.requestBody)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestIndexLifecycleHandlers(t *testing.T) {
	router := setupTestRouter(t)
	createMoviesIndex(t, router)

	w := doJSON(t, router, "GET", "/indexes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 listing indexes, got %d", w.Code)
	}
	var listResp struct {
		Indexes []string `json:"indexes"`
		Total   int      `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}
	if listResp.Total != 1 || len(listResp.Indexes) != 1 || listResp.Indexes[0] != "movies" {
		t.Errorf("Expected single index 'movies', got %+v", listResp)
	}

	w = doJSON(t, router, "GET", "/indexes/movies", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 getting index, got %d", w.Code)
	}
	var settings config.IndexSettings
	if err := json.Unmarshal(w.Body.Bytes(), &settings); err != nil {
		t.Fatalf("Failed to decode settings: %v", err)
	}
	if settings.DefaultField != "title" {
		t.Errorf("Expected default field 'title', got %q", settings.DefaultField)
	}

	updated := settings
	updated.ClampNonNegative = true
	if w = doJSON(t, router, "PATCH", "/indexes/movies/settings", updated); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 updating settings, got %d: %s", w.Code, w.Body.String())
	}

	if w = doJSON(t, router, "DELETE", "/indexes/movies", nil); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 deleting index, got %d", w.Code)
	}
	if w = doJSON(t, router, "GET", "/indexes/movies", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestAddDocumentsHandlerValidation(t *testing.T) {
	router := setupTestRouter(t)
	createMoviesIndex(t, router)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "single document object",
			requestBody:    map[string]interface{}{"documentID": "solo", "title": "one"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing documentID",
			requestBody:    []map[string]interface{}{{"title": "no id"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "numeric documentID",
			requestBody:    []map[string]interface{}{{"documentID": 42, "title": "bad id"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "whitespace documentID",
			requestBody:    []map[string]interface{}{{"documentID": "   ", "title": "blank id"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty array",
			requestBody:    []map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, "PUT", "/indexes/movies/documents", tt.requestBody)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	t.Run("unknown index", func(t *testing.T) {
		w := doJSON(t, router, "PUT", "/indexes/missing/documents", map[string]interface{}{"documentID": "x"})
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404 for unknown index, got %d", w.Code)
		}
	})
}

func TestDocumentHandlers(t *testing.T) {
	router := setupTestRouter(t)
	createMoviesIndex(t, router)
	addMovieDocuments(t, router)

	w := doJSON(t, router, "GET", "/indexes/movies/documents/m2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 getting document, got %d", w.Code)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("Failed to decode document: %v", err)
	}
	if doc["title"] != "a lazy dog sleeping near brown leaves" {
		t.Errorf("Unexpected document returned: %v", doc)
	}

	w = doJSON(t, router, "GET", "/indexes/movies/documents?page=1&page_size=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 listing documents, got %d", w.Code)
	}
	var listResp struct {
		Total    int                      `json:"total"`
		Pages    int                      `json:"pages"`
		Docs     []map[string]interface{} `json:"documents"`
		PageSize int                      `json:"page_size"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("Failed to decode document list: %v", err)
	}
	if listResp.Total != 3 || listResp.Pages != 2 || len(listResp.Docs) != 2 {
		t.Errorf("Unexpected pagination: total=%d pages=%d returned=%d", listResp.Total, listResp.Pages, len(listResp.Docs))
	}

	if w = doJSON(t, router, "DELETE", "/indexes/movies/documents/m3", nil); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 deleting document, got %d: %s", w.Code, w.Body.String())
	}
	if w = doJSON(t, router, "GET", "/indexes/movies/documents/m3", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after document delete, got %d", w.Code)
	}
	if w = doJSON(t, router, "DELETE", "/indexes/movies/documents/m3", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 deleting missing document, got %d", w.Code)
	}

	if w = doJSON(t, router, "DELETE", "/indexes/movies/documents", nil); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 deleting all documents, got %d", w.Code)
	}
	w = doJSON(t, router, "GET", "/indexes/movies/documents", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("Failed to decode document list: %v", err)
	}
	if listResp.Total != 0 {
		t.Errorf("Expected empty store after delete all, got total=%d", listResp.Total)
	}
}

func TestSearchHandler(t *testing.T) {
	router := setupTestRouter(t)
	createMoviesIndex(t, router)
	addMovieDocuments(t, router)

	// Plain query string against the default field. m1 traces [2,3] for a
	// rank of 2 (0.96); m2 only matches "brown" at position 5 for a rank
	// of 5 (0.90), so m1 must rank first.
	w := doJSON(t, router, "POST", "/indexes/movies/_search", SearchRequest{Query: "brown fox"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 searching, got %d: %s", w.Code, w.Body.String())
	}
	var result services.SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode search result: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("Expected 2 hits, got %d", result.Total)
	}
	if got := result.Hits[0].Document["documentID"]; got != "m1" {
		t.Errorf("Expected m1 ranked first, got %v", got)
	}
	if result.Hits[0].Score <= result.Hits[1].Score {
		t.Errorf("Expected strictly decreasing scores, got %f then %f",
			result.Hits[0].Score, result.Hits[1].Score)
	}
	if result.QueryId == "" {
		t.Error("Expected a non-empty query_id")
	}

	// Explicit term groups with a synonym form.
	groups := []struct {
		q    SearchRequest
		hits int
	}{
		{SearchRequest{Groups: searchGroups("title", [][]string{{"sleeping", "dozing"}})}, 1},
		{SearchRequest{Groups: searchGroups("title", [][]string{{"unknownword"}})}, 0},
	}
	for _, g := range groups {
		w = doJSON(t, router, "POST", "/indexes/movies/_search", g.q)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to decode search result: %v", err)
		}
		if result.Total != g.hits {
			t.Errorf("Expected %d hits, got %d", g.hits, result.Total)
		}
	}

	// Empty group is rejected.
	w = doJSON(t, router, "POST", "/indexes/movies/_search", map[string]interface{}{
		"groups": []map[string]interface{}{{"terms": []interface{}{}}},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty term group, got %d", w.Code)
	}

	w = doJSON(t, router, "POST", "/indexes/missing/_search", SearchRequest{Query: "fox"})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown index, got %d", w.Code)
	}
}

func TestExplainHandler(t *testing.T) {
	router := setupTestRouter(t)
	createMoviesIndex(t, router)
	addMovieDocuments(t, router)

	w := doJSON(t, router, "POST", "/indexes/movies/_explain", ExplainRequest{
		DocumentID: "m1",
		Query:      "quick fox",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 explaining, got %d: %s", w.Code, w.Body.String())
	}
	var explanation scoring.Explanation
	if err := json.Unmarshal(w.Body.Bytes(), &explanation); err != nil {
		t.Fatalf("Failed to decode explanation: %v", err)
	}
	if !explanation.Match {
		t.Error("Expected a matching explanation")
	}
	// quick at position 1 (5/6) plus fox at position 3 (5/8).
	expected := 5.0/6.0 + 5.0/8.0
	if diff := explanation.Value - expected; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected explanation value %f, got %f", expected, explanation.Value)
	}
	if len(explanation.Details) != 2 {
		t.Errorf("Expected 2 detail entries, got %d", len(explanation.Details))
	}

	w = doJSON(t, router, "POST", "/indexes/movies/_explain", ExplainRequest{
		DocumentID: "ghost",
		Query:      "fox",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown document, got %d", w.Code)
	}

	w = doJSON(t, router, "POST", "/indexes/movies/_explain", ExplainRequest{Query: "fox"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing document_id, got %d", w.Code)
	}
}

func searchGroups(field string, words [][]string) []model.TermGroup {
	groups := make([]model.TermGroup, 0, len(words))
	for _, forms := range words {
		terms := make([]model.Term, 0, len(forms))
		for _, form := range forms {
			terms = append(terms, model.Term{Field: field, Text: form})
		}
		groups = append(groups, model.TermGroup{Terms: terms})
	}
	return groups
}
