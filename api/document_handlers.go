package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/posmatch/go-position-scorer/internal/engine"
	internalErrors "github.com/posmatch/go-position-scorer/internal/errors"
	"github.com/posmatch/go-position-scorer/model"
)

const maxDocumentPageSize = 100

// AddDocumentsHandler handles adding/updating documents in an index.
// Accepts a single document object or an array of documents; every document
// must carry a non-empty string 'documentID'.
func (api *API) AddDocumentsHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}

	var rawData interface{}
	if err := c.ShouldBindJSON(&rawData); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	var docs []model.Document
	if dataSlice, isSlice := rawData.([]interface{}); isSlice {
		docs = make([]model.Document, len(dataSlice))
		for i, item := range dataSlice {
			docMap, isMap := item.(map[string]interface{})
			if !isMap {
				SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
					fmt.Sprintf("Document at index %d is not a valid object", i))
				return
			}
			docs[i] = docMap
		}
	} else if docMap, isMap := rawData.(map[string]interface{}); isMap {
		docs = []model.Document{docMap}
	} else {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
			"Invalid request body. Expecting a document object or an array of documents")
		return
	}

	if len(docs) == 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "No documents provided")
		return
	}

	for i := range docs {
		docMap := docs[i]

		idVal, idExists := docMap["documentID"]
		if !idExists {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
				fmt.Sprintf("Document at index %d must have a 'documentID' field", i))
			return
		}

		idString, isString := idVal.(string)
		if !isString {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
				fmt.Sprintf("Document at index %d has documentID with unexpected type: %T (expected string)", i, idVal))
			return
		}
		if strings.TrimSpace(idString) == "" {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
				fmt.Sprintf("Document at index %d has empty or whitespace-only documentID", i))
			return
		}
		docMap["documentID"] = strings.TrimSpace(idString)
	}

	if err := indexAccessor.AddDocuments(docs); err != nil {
		SendIndexingError(c, "add documents", err)
		return
	}

	if err := api.engine.PersistIndexData(indexName); err != nil {
		api.logger.Error("documents indexed but persistence failed", "index", indexName, "error", err)
		SendPersistenceError(c, indexName, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d document(s) added/updated in index '%s'", len(docs), indexName)})
}

// DocumentListRequest defines the structure for document listing requests
type DocumentListRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// GetDocumentsHandler lists documents in an index with pagination.
func (api *API) GetDocumentsHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}

	var req DocumentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Invalid query parameters: "+err.Error())
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > maxDocumentPageSize {
		req.PageSize = maxDocumentPageSize
	}

	documents := []model.Document{}
	totalCount := 0

	if instance, ok := indexAccessor.(*engine.IndexInstance); ok {
		instance.DocumentStore.Mu.RLock()
		totalCount = len(instance.DocumentStore.Docs)

		startIndex := (req.Page - 1) * req.PageSize
		endIndex := startIndex + req.PageSize

		i := 0
		for _, doc := range instance.DocumentStore.Docs {
			if i >= startIndex && i < endIndex {
				documents = append(documents, doc)
			}
			i++
			if i >= endIndex {
				break
			}
		}
		instance.DocumentStore.Mu.RUnlock()
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"total":     totalCount,
		"page":      req.Page,
		"page_size": req.PageSize,
		"pages":     (totalCount + req.PageSize - 1) / req.PageSize,
	})
}

// GetDocumentHandler retrieves a specific document by ID.
func (api *API) GetDocumentHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	documentId := c.Param("documentId")

	if result := ValidateDocumentID(documentId); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}

	var document model.Document
	found := false

	if instance, ok := indexAccessor.(*engine.IndexInstance); ok {
		instance.DocumentStore.Mu.RLock()
		if internalID, exists := instance.DocumentStore.ExternalIDtoInternalID[documentId]; exists {
			document, found = instance.DocumentStore.Docs[internalID]
		}
		instance.DocumentStore.Mu.RUnlock()
	}

	if !found {
		SendDocumentNotFoundError(c, documentId, indexName)
		return
	}

	c.JSON(http.StatusOK, document)
}

// DeleteDocumentHandler deletes a specific document by ID.
func (api *API) DeleteDocumentHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	documentId := c.Param("documentId")

	if result := ValidateDocumentID(documentId); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}

	if err := indexAccessor.DeleteDocument(documentId); err != nil {
		if errors.Is(err, internalErrors.ErrDocumentNotFound) {
			SendDocumentNotFoundError(c, documentId, indexName)
			return
		}
		SendIndexingError(c, "delete document", err)
		return
	}

	if err := api.engine.PersistIndexData(indexName); err != nil {
		api.logger.Error("document deleted but persistence failed", "index", indexName, "error", err)
		SendPersistenceError(c, indexName, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document '" + documentId + "' deleted from index '" + indexName + "'"})
}

// DeleteAllDocumentsHandler deletes all documents from an index.
func (api *API) DeleteAllDocumentsHandler(c *gin.Context) {
	indexName := c.Param("indexName")
	indexAccessor, err := api.engine.GetIndex(indexName)
	if err != nil {
		SendIndexNotFoundError(c, indexName)
		return
	}

	if err := indexAccessor.DeleteAllDocuments(); err != nil {
		SendIndexingError(c, "delete all documents", err)
		return
	}

	if err := api.engine.PersistIndexData(indexName); err != nil {
		api.logger.Error("documents deleted but persistence failed", "index", indexName, "error", err)
		SendPersistenceError(c, indexName, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All documents deleted from index '" + indexName + "'"})
}
