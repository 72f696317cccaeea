package scoring

import "math"

// NoMoreDocs is returned by Next and Advance once an iterator is exhausted.
const NoMoreDocs = math.MaxInt32

// DocIterator is the per-document iteration surface the query driver
// consumes: current document, advance, skip-to and a cost estimate.
// Document IDs are ints so -1 can mean "not started".
type DocIterator interface {
	// DocID returns the current document, -1 before iteration starts, or
	// NoMoreDocs once exhausted.
	DocID() int
	// Next advances to the next document and returns it, or NoMoreDocs.
	Next() int
	// Advance moves to the first document at or beyond target and returns
	// it, or NoMoreDocs.
	Advance(target int) int
	// Cost estimates the number of documents the iterator will visit.
	Cost() int64
}

// EnsureIterator shields callers from an absent iterator: a nil underlying
// match set comes back as a well-formed empty iterator instead.
func EnsureIterator(it DocIterator) DocIterator {
	if it == nil {
		return &emptyIterator{docID: -1}
	}
	return it
}

// emptyIterator iterates over nothing.
type emptyIterator struct {
	docID int
}

func (e *emptyIterator) DocID() int { return e.docID }

func (e *emptyIterator) Next() int {
	e.docID = NoMoreDocs
	return e.docID
}

func (e *emptyIterator) Advance(_ int) int {
	e.docID = NoMoreDocs
	return e.docID
}

func (e *emptyIterator) Cost() int64 { return 0 }

// SliceIterator iterates over a sorted slice of document IDs.
type SliceIterator struct {
	docIDs []int
	cursor int
	docID  int
}

// NewSliceIterator creates an iterator over docIDs, which must be sorted
// ascending.
func NewSliceIterator(docIDs []int) *SliceIterator {
	return &SliceIterator{docIDs: docIDs, cursor: -1, docID: -1}
}

func (s *SliceIterator) DocID() int { return s.docID }

func (s *SliceIterator) Next() int {
	s.cursor++
	if s.cursor >= len(s.docIDs) {
		s.docID = NoMoreDocs
	} else {
		s.docID = s.docIDs[s.cursor]
	}
	return s.docID
}

func (s *SliceIterator) Advance(target int) int {
	for s.Next() != NoMoreDocs {
		if s.docID >= target {
			break
		}
	}
	return s.docID
}

func (s *SliceIterator) Cost() int64 { return int64(len(s.docIDs)) }
