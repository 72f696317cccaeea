package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"index not found", NewIndexNotFoundError("products"), ErrIndexNotFound},
		{"index already exists", NewIndexAlreadyExistsError("products"), ErrIndexAlreadyExists},
		{"document not found", NewDocumentNotFoundError("doc1", "products"), ErrDocumentNotFound},
		{"positions unsupported", NewPositionsUnsupportedError("tags"), ErrPositionsUnsupported},
		{"validation", NewValidationError("name", "cannot be empty"), ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestWrappedSentinelMatching(t *testing.T) {
	wrapped := fmt.Errorf("looking up positions: %w", NewPositionsUnsupportedError("tags"))
	if !errors.Is(wrapped, ErrPositionsUnsupported) {
		t.Error("wrapped PositionsUnsupportedError should match ErrPositionsUnsupported")
	}
}

func TestErrorMessages(t *testing.T) {
	err := NewDocumentNotFoundError("doc1", "products")
	want := "document with ID 'doc1' not found in index 'products'"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := NewDocumentNotFoundError("doc1")
	want = "document with ID 'doc1' not found"
	if bare.Error() != want {
		t.Errorf("Error() = %q, want %q", bare.Error(), want)
	}
}
