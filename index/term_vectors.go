package index

import (
	"bytes"
	"encoding/gob"
	"sync"

	"github.com/posmatch/go-position-scorer/config"
	internalErrors "github.com/posmatch/go-position-scorer/internal/errors"
)

// FieldVectors maps a term to its sorted occurrence offsets within one
// field of one document. Fields indexed without positional data store a nil
// offset slice for each term they contain.
type FieldVectors map[string][]int

// DocumentVectors maps a field name to that field's term vectors for one document.
type DocumentVectors map[string]FieldVectors

// TermVectorIndex holds the per-document term vectors for a single index.
// It is the position collaborator the scoring core reads from.
type TermVectorIndex struct {
	Mu       sync.RWMutex
	Docs     map[uint32]DocumentVectors
	Settings *config.IndexSettings // Reference to settings for this index
}

// Positions returns the occurrence offsets of term within the given field of
// the given document. A missing document, field or term yields an empty
// slice and no error. A field whose vectors carry no offsets yields
// ErrPositionsUnsupported.
func (tvi *TermVectorIndex) Positions(docID uint32, field, term string) ([]int, error) {
	tvi.Mu.RLock()
	defer tvi.Mu.RUnlock()

	docVectors, ok := tvi.Docs[docID]
	if !ok {
		return nil, nil
	}
	fieldVectors, ok := docVectors[field]
	if !ok {
		return nil, nil
	}
	offsets, ok := fieldVectors[term]
	if !ok {
		return nil, nil
	}
	if offsets == nil {
		// Term is indexed but its field stores no offsets.
		return nil, internalErrors.NewPositionsUnsupportedError(field)
	}
	return offsets, nil
}

// gobTermVectorData is a helper struct for Gob encoding/decoding TermVectorIndex data.
// It excludes the mutex.
type gobTermVectorData struct {
	Docs     map[uint32]DocumentVectors
	Settings *config.IndexSettings
}

// GobEncode implements the gob.GobEncoder interface for TermVectorIndex.
func (tvi *TermVectorIndex) GobEncode() ([]byte, error) {
	tvi.Mu.RLock() // Ensure consistent data during encoding
	defer tvi.Mu.RUnlock()

	dataToEncode := gobTermVectorData{
		Docs:     tvi.Docs,
		Settings: tvi.Settings,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for TermVectorIndex.
func (tvi *TermVectorIndex) GobDecode(data []byte) error {
	decodedData := gobTermVectorData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return err
	}

	tvi.Mu.Lock() // Ensure exclusive access during decoding
	defer tvi.Mu.Unlock()

	tvi.Docs = decodedData.Docs
	tvi.Settings = decodedData.Settings

	// Ensure maps are initialized if they were nil after decoding (e.g. from an empty file)
	if tvi.Docs == nil {
		tvi.Docs = make(map[uint32]DocumentVectors)
	}

	return nil
}
