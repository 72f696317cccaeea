// Package api provides the HTTP surface of the scoring engine.
package api

import (
	"fmt"
	"strings"

	"github.com/posmatch/go-position-scorer/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateIndexName validates an index name parameter
func ValidateIndexName(indexName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if indexName == "" {
		result.AddError("indexName", "Index name is required")
		return result
	}

	if strings.TrimSpace(indexName) != indexName {
		result.AddError("indexName", "Index name cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateDocumentID validates a document ID
func ValidateDocumentID(documentID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if documentID == "" {
		result.AddError("documentID", "Document ID is required")
		return result
	}

	if strings.TrimSpace(documentID) != documentID {
		result.AddError("documentID", "Document ID cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateTermGroups checks that every group carries at least one term and
// that no term has empty text.
func ValidateTermGroups(groups []model.TermGroup) *ValidationResult {
	result := &ValidationResult{Valid: true}

	for i, group := range groups {
		if len(group.Terms) == 0 {
			result.AddError(fmt.Sprintf("groups[%d]", i), "Term group must contain at least one term")
			continue
		}
		for j, term := range group.Terms {
			if strings.TrimSpace(term.Text) == "" {
				result.AddError(fmt.Sprintf("groups[%d].terms[%d]", i, j), "Term text cannot be empty")
			}
		}
	}

	return result
}
