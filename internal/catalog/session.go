package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/deniswachira/bookstore-ui/internal/bookapi"
)

// Field names a book attribute addressable by an edit session.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldYear   Field = "year"
)

var (
	// ErrNoSession reports an edit against a book that is not in edit mode.
	ErrNoSession = errors.New("no active edit session")
	// ErrInvalidYear reports year input that does not parse as an integer.
	ErrInvalidYear = errors.New("year must be a whole number")
	// ErrUnknownField reports a field name outside the editable set.
	ErrUnknownField = errors.New("unknown field")
)

// Sessions tracks in-progress edits as patch overlays keyed by book id. A
// book is in edit mode exactly while it has an entry here; committing or
// cancelling removes it. Confirmed records are never touched by this type,
// so discarding a session loses nothing but the unsaved edits.
type Sessions struct {
	open map[int64]bookapi.Patch
}

// NewSessions returns a tracker with no open sessions.
func NewSessions() *Sessions {
	return &Sessions{open: make(map[int64]bookapi.Patch)}
}

// Begin opens an edit session for the book with an empty patch. Beginning a
// book that is already in edit mode keeps its accumulated patch.
func (s *Sessions) Begin(id int64) {
	if _, ok := s.open[id]; !ok {
		s.open[id] = bookapi.Patch{}
	}
}

// Restore re-opens a session preloaded with a patch. It is used after a
// failed save so the user's edits survive the round trip.
func (s *Sessions) Restore(id int64, patch bookapi.Patch) {
	s.open[id] = patch
}

// SetField records one field edit in the book's open session. Title and
// author are stored verbatim. Year must parse as an integer and is not
// stored when it does not, leaving any previous year edit in place; a blank
// year withdraws the pending year edit so the confirmed value stands.
func (s *Sessions) SetField(id int64, field Field, raw string) error {
	patch, ok := s.open[id]
	if !ok {
		return fmt.Errorf("set %s on book %d: %w", field, id, ErrNoSession)
	}
	switch field {
	case FieldTitle:
		v := raw
		patch.Title = &v
	case FieldAuthor:
		v := raw
		patch.Author = &v
	case FieldYear:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			patch.Year = nil
			break
		}
		v, err := strconv.Atoi(trimmed)
		if err != nil {
			return fmt.Errorf("set year on book %d to %q: %w", id, raw, ErrInvalidYear)
		}
		patch.Year = &v
	default:
		return fmt.Errorf("set %q on book %d: %w", field, id, ErrUnknownField)
	}
	s.open[id] = patch
	return nil
}

// Commit closes the session and returns the accumulated patch for dispatch.
func (s *Sessions) Commit(id int64) (bookapi.Patch, error) {
	patch, ok := s.open[id]
	if !ok {
		return bookapi.Patch{}, fmt.Errorf("commit book %d: %w", id, ErrNoSession)
	}
	delete(s.open, id)
	return patch, nil
}

// Cancel closes the session and discards its patch. Cancelling a book that
// is not in edit mode is a no-op.
func (s *Sessions) Cancel(id int64) {
	delete(s.open, id)
}

// IsEditing reports whether the book has an open session.
func (s *Sessions) IsEditing(id int64) bool {
	_, ok := s.open[id]
	return ok
}

// PatchFor returns the live patch for the book; ok is false when the book is
// not in edit mode.
func (s *Sessions) PatchFor(id int64) (bookapi.Patch, bool) {
	patch, ok := s.open[id]
	return patch, ok
}

// Len reports the number of open sessions.
func (s *Sessions) Len() int {
	return len(s.open)
}

// Prune closes every session whose book id the keep func rejects and returns
// the ids that were closed. It runs after a full list refresh so sessions do
// not outlive their records.
func (s *Sessions) Prune(keep func(int64) bool) []int64 {
	var pruned []int64
	for id := range s.open {
		if !keep(id) {
			delete(s.open, id)
			pruned = append(pruned, id)
		}
	}
	return pruned
}
