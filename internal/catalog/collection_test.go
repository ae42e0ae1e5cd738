package catalog

import (
	"errors"
	"testing"

	"github.com/deniswachira/bookstore-ui/internal/bookapi"
)

func testBooks() []bookapi.Book {
	return []bookapi.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Year: 1965},
		{ID: 2, Title: "It", Author: "Stephen King", Year: 1986},
		{ID: 3, Title: "Neuromancer", Author: "William Gibson", Year: 1984},
	}
}

func TestCollectionReplaceAll(t *testing.T) {
	t.Parallel()

	c := NewCollection()
	if err := c.Apply(ReplaceAll{Books: testBooks()}); err != nil {
		t.Fatalf("Apply(ReplaceAll) returned warning: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	got, ok := c.Get(2)
	if !ok || got.Title != "It" {
		t.Fatalf("Get(2) = %#v %v, want It", got, ok)
	}

	// a later replace swaps everything, including removals
	if err := c.Apply(ReplaceAll{Books: testBooks()[:1]}); err != nil {
		t.Fatalf("Apply(ReplaceAll) returned warning: %v", err)
	}
	if c.Len() != 1 || c.Has(2) {
		t.Fatalf("collection = %#v, want only book 1", c.Books())
	}
}

func TestCollectionReplaceAllDropsRepeatedIDs(t *testing.T) {
	t.Parallel()

	c := NewCollection()
	books := []bookapi.Book{
		{ID: 1, Title: "Dune"},
		{ID: 1, Title: "Dune Messiah"},
		{ID: 2, Title: "It"},
	}
	err := c.Apply(ReplaceAll{Books: books})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Apply warning = %v, want ErrDuplicateID", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	got, _ := c.Get(1)
	if got.Title != "Dune" {
		t.Fatalf("Get(1).Title = %q, want first occurrence kept", got.Title)
	}
}

func TestCollectionAdd(t *testing.T) {
	t.Parallel()

	c := NewCollection()
	if err := c.Apply(Add{Book: bookapi.Book{ID: 1, Title: "Dune"}}); err != nil {
		t.Fatalf("Apply(Add) returned warning: %v", err)
	}
	err := c.Apply(Add{Book: bookapi.Book{ID: 1, Title: "Dune again"}})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Apply warning = %v, want ErrDuplicateID", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want duplicate add ignored", c.Len())
	}
	got, _ := c.Get(1)
	if got.Title != "Dune" {
		t.Fatalf("Get(1).Title = %q, want original record kept", got.Title)
	}
}

func TestCollectionUpdate(t *testing.T) {
	t.Parallel()

	c := NewCollection()
	_ = c.Apply(ReplaceAll{Books: testBooks()})

	if err := c.Apply(Update{Book: bookapi.Book{ID: 2, Title: "It", Author: "Stephen King", Year: 1987}}); err != nil {
		t.Fatalf("Apply(Update) returned warning: %v", err)
	}
	got, _ := c.Get(2)
	if got.Year != 1987 {
		t.Fatalf("Get(2).Year = %d, want 1987", got.Year)
	}

	err := c.Apply(Update{Book: bookapi.Book{ID: 99, Title: "Ghost"}})
	if !errors.Is(err, ErrUnknownID) {
		t.Fatalf("Apply warning = %v, want ErrUnknownID", err)
	}
	if c.Has(99) {
		t.Fatalf("unknown update inserted a record")
	}
}

func TestCollectionRemoveReindexes(t *testing.T) {
	t.Parallel()

	c := NewCollection()
	_ = c.Apply(ReplaceAll{Books: testBooks()})

	if err := c.Apply(Remove{ID: 2}); err != nil {
		t.Fatalf("Apply(Remove) returned warning: %v", err)
	}
	if c.Len() != 2 || c.Has(2) {
		t.Fatalf("collection = %#v, want book 2 gone", c.Books())
	}
	// records after the removed one must still resolve by id
	got, ok := c.Get(3)
	if !ok || got.Title != "Neuromancer" {
		t.Fatalf("Get(3) = %#v %v, want Neuromancer", got, ok)
	}
	books := c.Books()
	if books[0].ID != 1 || books[1].ID != 3 {
		t.Fatalf("order = %v, want insertion order preserved", books)
	}

	err := c.Apply(Remove{ID: 2})
	if !errors.Is(err, ErrUnknownID) {
		t.Fatalf("repeat remove warning = %v, want ErrUnknownID", err)
	}
}

func TestCollectionBooksReturnsCopy(t *testing.T) {
	t.Parallel()

	c := NewCollection()
	_ = c.Apply(ReplaceAll{Books: testBooks()})

	snapshot := c.Books()
	snapshot[0].Title = "mutated"

	got, _ := c.Get(1)
	if got.Title != "Dune" {
		t.Fatalf("Get(1).Title = %q, want Dune after snapshot mutation", got.Title)
	}
}
