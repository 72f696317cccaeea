package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/posmatch/go-position-scorer/internal/errors"
	"github.com/posmatch/go-position-scorer/internal/tokenizer"
	"github.com/posmatch/go-position-scorer/model"
	"github.com/posmatch/go-position-scorer/services"
)

// SearchRequest defines the structure for search queries.
//
// Groups carry the query as ordered term groups, one group per query word,
// each group listing that word's interchangeable surface forms. As a
// convenience, a plain Query string may be sent instead: it is tokenized
// and each token becomes a single-term group against Field (or the index's
// default field when Field is empty).
type SearchRequest struct {
	Query    string            `json:"query,omitempty"`
	Field    string            `json:"field,omitempty"`
	Groups   []model.TermGroup `json:"groups,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ExplainRequest asks for the per-term score breakdown of one document.
type ExplainRequest struct {
	DocumentID string            `json:"document_id"`
	Query      string            `json:"query,omitempty"`
	Field      string            `json:"field,omitempty"`
	Groups     []model.TermGroup `json:"groups,omitempty"`
}

// resolveGroups turns the request's query form into term groups. Explicit
// groups win; otherwise the query string is tokenized into one single-term
// group per token, preserving word order.
func resolveGroups(groups []model.TermGroup, query, field string) []model.TermGroup {
	if len(groups) > 0 {
		return groups
	}
	tokens := tokenizer.Tokenize(query)
	resolved := make([]model.TermGroup, 0, len(tokens))
	for _, token := range tokens {
		resolved = append(resolved, model.TermGroup{
			Terms: []model.Term{{Field: field, Text: token}},
		})
	}
	return resolved
}

// SearchHandler handles search requests to an index.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	if result := ValidateIndexName(indexName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		if errors.Is(err, internalErrors.ErrIndexNotFound) {
			SendIndexNotFoundError(c, indexName)
			return
		}
		SendInternalError(c, "get index", err)
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Invalid request body: "+err.Error())
		return
	}

	groups := resolveGroups(req.Groups, req.Query, req.Field)
	if result := ValidateTermGroups(groups); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	results, err := indexAccessor.Search(services.SearchQuery{
		Groups:   groups,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		SendSearchError(c, indexName, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// ExplainHandler returns the score breakdown for a single document.
// Request Body: ExplainRequest
func (api *API) ExplainHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	if result := ValidateIndexName(indexName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		if errors.Is(err, internalErrors.ErrIndexNotFound) {
			SendIndexNotFoundError(c, indexName)
			return
		}
		SendInternalError(c, "get index", err)
		return
	}

	var req ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Invalid request body: "+err.Error())
		return
	}

	if result := ValidateDocumentID(req.DocumentID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	groups := resolveGroups(req.Groups, req.Query, req.Field)
	if result := ValidateTermGroups(groups); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	explanation, err := indexAccessor.Explain(req.DocumentID, groups)
	if err != nil {
		if errors.Is(err, internalErrors.ErrDocumentNotFound) {
			SendDocumentNotFoundError(c, req.DocumentID, indexName)
			return
		}
		SendSearchError(c, indexName, err)
		return
	}

	c.JSON(http.StatusOK, explanation)
}
