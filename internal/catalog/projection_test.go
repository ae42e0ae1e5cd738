package catalog

import (
	"fmt"
	"testing"

	"github.com/deniswachira/bookstore-ui/internal/bookapi"
)

func TestProjectFiltersTitlesCaseInsensitively(t *testing.T) {
	t.Parallel()

	books := []bookapi.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Year: 1965},
		{ID: 2, Title: "It", Author: "Stephen King", Year: 1986},
	}

	proj := Project(books, nil, "it", 1, 5)
	if proj.Matching != 1 || len(proj.Rows) != 1 || proj.Rows[0].Book.ID != 2 {
		t.Fatalf("search %q rows = %#v, want only It", "it", proj.Rows)
	}
	if proj.Total != 2 {
		t.Fatalf("Total = %d, want full collection size", proj.Total)
	}

	proj = Project(books, nil, "IT", 1, 5)
	if proj.Matching != 1 || proj.Rows[0].Book.ID != 2 {
		t.Fatalf("search %q matching = %d, want case insensitive match", "IT", proj.Matching)
	}

	proj = Project(books, nil, "", 1, 5)
	if proj.Matching != 2 {
		t.Fatalf("empty search matching = %d, want all records", proj.Matching)
	}

	proj = Project(books, nil, "zzz", 1, 5)
	if proj.Matching != 0 || len(proj.Rows) != 0 || proj.TotalPages != 1 {
		t.Fatalf("no-match projection = %#v, want empty rows one page", proj)
	}
}

func TestProjectPaginates(t *testing.T) {
	t.Parallel()

	books := make([]bookapi.Book, 0, 7)
	for i := 1; i <= 7; i++ {
		books = append(books, bookapi.Book{ID: int64(i), Title: fmt.Sprintf("Book %d", i)})
	}

	proj := Project(books, nil, "", 1, 5)
	if proj.TotalPages != 2 || len(proj.Rows) != 5 {
		t.Fatalf("page 1 = %d rows of %d pages, want 5 rows of 2 pages", len(proj.Rows), proj.TotalPages)
	}
	if proj.Rows[0].Book.ID != 1 || proj.Rows[4].Book.ID != 5 {
		t.Fatalf("page 1 ids = %v..%v, want 1..5", proj.Rows[0].Book.ID, proj.Rows[4].Book.ID)
	}

	proj = Project(books, nil, "", 2, 5)
	if len(proj.Rows) != 2 || proj.Rows[0].Book.ID != 6 {
		t.Fatalf("page 2 rows = %#v, want books 6 and 7", proj.Rows)
	}

	// exact multiple does not grow an empty trailing page
	proj = Project(books[:5], nil, "", 1, 5)
	if proj.TotalPages != 1 {
		t.Fatalf("TotalPages = %d, want 1 for exactly one page of records", proj.TotalPages)
	}
}

func TestProjectEmptyCollection(t *testing.T) {
	t.Parallel()

	proj := Project(nil, nil, "", 1, 5)
	if proj.TotalPages != 1 || len(proj.Rows) != 0 || proj.Total != 0 {
		t.Fatalf("empty projection = %#v, want one empty page", proj)
	}
}

func TestProjectOutOfRangePage(t *testing.T) {
	t.Parallel()

	books := []bookapi.Book{{ID: 1, Title: "Dune"}}
	proj := Project(books, nil, "", 9, 5)
	if len(proj.Rows) != 0 {
		t.Fatalf("rows = %#v, want none past the last page", proj.Rows)
	}
	if proj.TotalPages != 1 {
		t.Fatalf("TotalPages = %d, want 1", proj.TotalPages)
	}
}

func TestProjectMergesEditOverlay(t *testing.T) {
	t.Parallel()

	books := []bookapi.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Year: 1965},
		{ID: 2, Title: "Im", Author: "Stephen King", Year: 1987},
	}
	sessions := NewSessions()
	sessions.Begin(2)
	if err := sessions.SetField(2, FieldTitle, "It"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if err := sessions.SetField(2, FieldYear, "1986"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}

	proj := Project(books, sessions, "", 1, 5)
	row := proj.Rows[1]
	if !row.Editing {
		t.Fatalf("row.Editing = false, want edit session flagged")
	}
	if row.Display.Title != "It" || row.Display.Year != 1986 {
		t.Fatalf("Display = %#v, want patch merged", row.Display)
	}
	if row.Display.Author != "Stephen King" {
		t.Fatalf("Display.Author = %q, want untouched field from record", row.Display.Author)
	}
	if row.Book.Title != "Im" || row.Book.Year != 1987 {
		t.Fatalf("Book = %#v, want confirmed values untouched", row.Book)
	}
	if books[1].Title != "Im" {
		t.Fatalf("input books mutated: %#v", books[1])
	}

	if other := proj.Rows[0]; other.Editing || other.Display != other.Book {
		t.Fatalf("row without session = %#v, want display equal to record", other)
	}
}

func TestProjectFiltersOnConfirmedTitle(t *testing.T) {
	t.Parallel()

	books := []bookapi.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", Year: 1965}}
	sessions := NewSessions()
	sessions.Begin(1)
	_ = sessions.SetField(1, FieldTitle, "Changed")

	// the unsaved title does not move the record out of search results
	proj := Project(books, sessions, "dune", 1, 5)
	if proj.Matching != 1 || len(proj.Rows) != 1 {
		t.Fatalf("matching = %d, want filter on confirmed title", proj.Matching)
	}
	if proj.Rows[0].Display.Title != "Changed" {
		t.Fatalf("Display.Title = %q, want live edit shown", proj.Rows[0].Display.Title)
	}
}
