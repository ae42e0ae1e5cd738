package catalog

import (
	"strings"

	"github.com/deniswachira/bookstore-ui/internal/bookapi"
)

// Row is one displayable record: the confirmed book plus its edit state.
// Display carries the values to render, the confirmed fields with the live
// patch merged on top; Book keeps the confirmed values untouched.
type Row struct {
	Book    bookapi.Book
	Display bookapi.Book
	Editing bool
}

// Projection is one page of the collection after filtering, pagination, and
// edit overlay. It is a value derived from its inputs and shares no state
// with them.
type Projection struct {
	Rows       []Row
	Page       int // 1-based page the rows belong to
	TotalPages int // always at least 1, even for an empty collection
	Matching   int // records that pass the search filter
	Total      int // records in the collection
}

// Project derives the visible page from the confirmed records, the open edit
// sessions, and the list controls. It is pure: inputs are not mutated and
// identical inputs yield identical output. The search matches titles case
// insensitively; an empty search matches everything. page is expected to be
// clamped to [1, TotalPages] already, out-of-range values yield empty rows
// rather than a panic.
func Project(books []bookapi.Book, sessions *Sessions, search string, page, size int) Projection {
	if size < 1 {
		size = 1
	}
	if page < 1 {
		page = 1
	}

	matching := books
	if needle := strings.ToLower(search); needle != "" {
		matching = make([]bookapi.Book, 0, len(books))
		for _, b := range books {
			if strings.Contains(strings.ToLower(b.Title), needle) {
				matching = append(matching, b)
			}
		}
	}

	totalPages := (len(matching) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * size
	if start > len(matching) {
		start = len(matching)
	}
	end := start + size
	if end > len(matching) {
		end = len(matching)
	}

	rows := make([]Row, 0, end-start)
	for _, b := range matching[start:end] {
		row := Row{Book: b, Display: b}
		if sessions != nil {
			if patch, ok := sessions.PatchFor(b.ID); ok {
				row.Display = patch.Merge(b)
				row.Editing = true
			}
		}
		rows = append(rows, row)
	}

	return Projection{
		Rows:       rows,
		Page:       page,
		TotalPages: totalPages,
		Matching:   len(matching),
		Total:      len(books),
	}
}

// PageOf returns the 1-based page the book lands on under the given search
// filter, or 0 when the book is absent or filtered out. It applies the same
// title match as Project.
func PageOf(books []bookapi.Book, search string, id int64, size int) int {
	if size < 1 {
		size = 1
	}
	needle := strings.ToLower(search)
	idx := -1
	matched := 0
	for _, b := range books {
		if needle != "" && !strings.Contains(strings.ToLower(b.Title), needle) {
			continue
		}
		if b.ID == id {
			idx = matched
		}
		matched++
	}
	if idx < 0 {
		return 0
	}
	return idx/size + 1
}
