package indexing

import (
	"fmt"
	"strings"

	"github.com/posmatch/go-position-scorer/index"
	internalErrors "github.com/posmatch/go-position-scorer/internal/errors"
	"github.com/posmatch/go-position-scorer/internal/tokenizer"
	"github.com/posmatch/go-position-scorer/model"
	"github.com/posmatch/go-position-scorer/store"
)

// Service builds and maintains the term vectors for a single index.
// It fulfills the services.Indexer interface.
type Service struct {
	termVectors   *index.TermVectorIndex
	documentStore *store.DocumentStore
	// settings are accessible via termVectors.Settings
}

// NewService creates a new indexing Service.
// It assumes termVectors.Settings is not nil.
func NewService(termVectors *index.TermVectorIndex, documentStore *store.DocumentStore) (*Service, error) {
	if termVectors == nil {
		return nil, fmt.Errorf("term vector index cannot be nil")
	}
	if documentStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if termVectors.Settings == nil {
		return nil, fmt.Errorf("term vector index settings cannot be nil")
	}
	if termVectors.Docs == nil {
		termVectors.Docs = make(map[uint32]index.DocumentVectors)
	}
	if documentStore.Docs == nil {
		documentStore.Docs = make(map[uint32]model.Document)
	}
	if documentStore.ExternalIDtoInternalID == nil {
		documentStore.ExternalIDtoInternalID = make(map[string]uint32)
	}
	return &Service{
		termVectors:   termVectors,
		documentStore: documentStore,
	}, nil
}

// AddDocuments adds a batch of documents, storing each and extracting its
// term vectors. This satisfies the services.Indexer interface.
func (s *Service) AddDocuments(docs []model.Document) error {
	s.documentStore.Mu.Lock()
	s.termVectors.Mu.Lock()
	defer s.documentStore.Mu.Unlock()
	defer s.termVectors.Mu.Unlock()

	for _, doc := range docs {
		if err := s.addSingleDocumentUnsafe(doc); err != nil {
			return err
		}
	}
	return nil
}

// addSingleDocumentUnsafe stores one document and rebuilds its vectors.
// The caller must hold both write locks.
func (s *Service) addSingleDocumentUnsafe(doc model.Document) error {
	docIDValue, docIDExists := doc["documentID"]
	var docIDStr string
	if docIDExists {
		switch v := docIDValue.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("document documentID cannot be empty or whitespace-only")
			}
			docIDStr = strings.TrimSpace(v)
		default:
			return fmt.Errorf("document documentID has an invalid type, expected string")
		}
	} else {
		return fmt.Errorf("document documentID not found; documentID must be provided with key 'documentID'")
	}

	internalID, exists := s.documentStore.ExternalIDtoInternalID[docIDStr]
	if !exists {
		internalID = s.documentStore.NextID
		s.documentStore.NextID++
		s.documentStore.ExternalIDtoInternalID[docIDStr] = internalID
	}

	s.documentStore.Docs[internalID] = doc
	s.termVectors.Docs[internalID] = s.buildVectors(doc)
	return nil
}

// buildVectors extracts per-field term vectors from the document. Positional
// fields record each token's zero-based offset; non-positional fields record
// the token with a nil offset slice, which later position lookups surface as
// unsupported.
func (s *Service) buildVectors(doc model.Document) index.DocumentVectors {
	settings := s.termVectors.Settings
	vectors := make(index.DocumentVectors)

	for _, fieldName := range settings.PositionalFields {
		tokens := fieldTokens(doc, fieldName)
		if tokens == nil {
			continue
		}
		fieldVectors := make(index.FieldVectors)
		for offset, token := range tokens {
			fieldVectors[token] = append(fieldVectors[token], offset)
		}
		vectors[fieldName] = fieldVectors
	}

	for _, fieldName := range settings.NonPositionalFields {
		tokens := fieldTokens(doc, fieldName)
		if tokens == nil {
			continue
		}
		fieldVectors := make(index.FieldVectors)
		for _, token := range tokens {
			fieldVectors[token] = nil
		}
		vectors[fieldName] = fieldVectors
	}

	return vectors
}

// fieldTokens extracts the token stream for one field, or nil when the field
// is absent or not text.
func fieldTokens(doc model.Document, fieldName string) []string {
	fieldValue, ok := doc[fieldName]
	if !ok {
		return nil
	}

	var textContent string
	switch v := fieldValue.(type) {
	case string:
		textContent = v
	case []string:
		textContent = strings.Join(v, " ")
	case []interface{}:
		var parts []string
		for _, item := range v {
			if strItem, isStr := item.(string); isStr {
				parts = append(parts, strItem)
			}
		}
		textContent = strings.Join(parts, " ")
	default:
		return nil
	}

	if textContent == "" {
		return nil
	}
	return tokenizer.Tokenize(textContent)
}

// DeleteAllDocuments removes every document and its vectors.
// This satisfies the services.Indexer interface.
func (s *Service) DeleteAllDocuments() error {
	s.documentStore.Mu.Lock()
	s.termVectors.Mu.Lock()
	defer s.documentStore.Mu.Unlock()
	defer s.termVectors.Mu.Unlock()

	s.documentStore.Docs = make(map[uint32]model.Document)
	s.documentStore.ExternalIDtoInternalID = make(map[string]uint32)
	s.documentStore.NextID = 0
	s.termVectors.Docs = make(map[uint32]index.DocumentVectors)
	return nil
}

// DeleteDocument removes one document by its external ID.
// This satisfies the services.Indexer interface.
func (s *Service) DeleteDocument(docID string) error {
	s.documentStore.Mu.Lock()
	s.termVectors.Mu.Lock()
	defer s.documentStore.Mu.Unlock()
	defer s.termVectors.Mu.Unlock()

	internalID, exists := s.documentStore.ExternalIDtoInternalID[docID]
	if !exists {
		return internalErrors.NewDocumentNotFoundError(docID, s.termVectors.Settings.Name)
	}

	delete(s.documentStore.Docs, internalID)
	delete(s.documentStore.ExternalIDtoInternalID, docID)
	delete(s.termVectors.Docs, internalID)
	return nil
}
