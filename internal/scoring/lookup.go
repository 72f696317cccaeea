// Package scoring implements the position-match relevance score: it rewards
// documents whose matches sit close to the start of the scored field and
// whose relative ordering mirrors the word order of the query.
package scoring

import (
	"errors"
	"log/slog"

	internalErrors "github.com/posmatch/go-position-scorer/internal/errors"
	"github.com/posmatch/go-position-scorer/model"
)

// NotFoundPosition is the sentinel returned when a term has no usable
// occurrence offset in the scored field.
const NotFoundPosition = -1

// PositionSource supplies per-document occurrence offsets. The term-vector
// index implements it; tests substitute in-memory fakes.
type PositionSource interface {
	// Positions returns the ordered occurrence offsets of term within field
	// for the given document, an empty slice when there is no positional
	// data, or an error when the lookup cannot be served.
	Positions(docID uint32, field, term string) ([]int, error)
}

// Lookup resolves a term's first occurrence offset and absorbs every lookup
// failure: a single term's missing position must never abort the evaluation
// of a document or a query, so the worst outcome is NotFoundPosition.
type Lookup struct {
	source PositionSource
	logger *slog.Logger
}

// NewLookup creates a Lookup over the given source. A nil logger falls back
// to slog.Default.
func NewLookup(source PositionSource, logger *slog.Logger) *Lookup {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lookup{source: source, logger: logger}
}

// Position returns the zero-based offset of the term's first occurrence in
// its field for the given document, or NotFoundPosition when the term is
// absent, the field carries no positional data, or the source fails.
func (l *Lookup) Position(docID uint32, term model.Term) int {
	offsets, err := l.source.Positions(docID, term.Field, term.Text)
	if err != nil {
		if errors.Is(err, internalErrors.ErrPositionsUnsupported) {
			l.logger.Warn("positions unsupported, treating term as not found",
				"field", term.Field, "term", term.Text)
		} else {
			l.logger.Error("position lookup failed, treating term as not found",
				"field", term.Field, "term", term.Text, "error", err)
		}
		return NotFoundPosition
	}
	if len(offsets) == 0 {
		return NotFoundPosition
	}
	return offsets[0]
}
