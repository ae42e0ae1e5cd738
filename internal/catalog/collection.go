package catalog

import (
	"errors"
	"fmt"

	"github.com/deniswachira/bookstore-ui/internal/bookapi"
)

// Desync warnings reported by Apply. They mean a mutation's assumptions
// disagreed with what the collection holds; callers log them and move on,
// the collection is consistent either way.
var (
	ErrDuplicateID = errors.New("duplicate book id")
	ErrUnknownID   = errors.New("unknown book id")
)

// Mutation is one confirmed change to fold into the collection. The variants
// below are the only implementations; Apply dispatches on the concrete type.
type Mutation interface {
	isMutation()
}

// ReplaceAll swaps in a full list fetched from the store.
type ReplaceAll struct {
	Books []bookapi.Book
}

// Add appends one record confirmed by a successful create.
type Add struct {
	Book bookapi.Book
}

// Update replaces the stored record that shares the book's id.
type Update struct {
	Book bookapi.Book
}

// Remove drops the record with the given id.
type Remove struct {
	ID int64
}

func (ReplaceAll) isMutation() {}
func (Add) isMutation()        {}
func (Update) isMutation()     {}
func (Remove) isMutation()     {}

// Collection holds the last state confirmed by the remote store: an
// insertion-ordered list of books with unique ids. It is owned by the update
// loop and deliberately carries no lock; concurrent readers must go through
// the owning goroutine.
type Collection struct {
	books []bookapi.Book
	index map[int64]int // book id to position in books
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{index: make(map[int64]int)}
}

// Apply folds one mutation into the collection. A non-nil error is always a
// desync warning wrapping ErrDuplicateID or ErrUnknownID, never a failure:
// the collection is left consistent and callers may ignore it beyond logging.
func (c *Collection) Apply(m Mutation) error {
	switch m := m.(type) {
	case ReplaceAll:
		return c.replaceAll(m.Books)
	case Add:
		return c.add(m.Book)
	case Update:
		return c.update(m.Book)
	case Remove:
		return c.remove(m.ID)
	default:
		return fmt.Errorf("unhandled mutation %T", m)
	}
}

func (c *Collection) replaceAll(books []bookapi.Book) error {
	next := make([]bookapi.Book, 0, len(books))
	index := make(map[int64]int, len(books))
	dropped := 0
	for _, b := range books {
		if _, ok := index[b.ID]; ok {
			// first occurrence wins, repeats are server-side noise
			dropped++
			continue
		}
		index[b.ID] = len(next)
		next = append(next, b)
	}
	c.books = next
	c.index = index
	if dropped > 0 {
		return fmt.Errorf("replace dropped %d repeated records: %w", dropped, ErrDuplicateID)
	}
	return nil
}

func (c *Collection) add(b bookapi.Book) error {
	if _, ok := c.index[b.ID]; ok {
		return fmt.Errorf("add book %d: %w", b.ID, ErrDuplicateID)
	}
	c.index[b.ID] = len(c.books)
	c.books = append(c.books, b)
	return nil
}

func (c *Collection) update(b bookapi.Book) error {
	pos, ok := c.index[b.ID]
	if !ok {
		return fmt.Errorf("update book %d: %w", b.ID, ErrUnknownID)
	}
	c.books[pos] = b
	return nil
}

func (c *Collection) remove(id int64) error {
	pos, ok := c.index[id]
	if !ok {
		return fmt.Errorf("remove book %d: %w", id, ErrUnknownID)
	}
	c.books = append(c.books[:pos], c.books[pos+1:]...)
	delete(c.index, id)
	for i := pos; i < len(c.books); i++ {
		c.index[c.books[i].ID] = i
	}
	return nil
}

// Len reports the number of records.
func (c *Collection) Len() int {
	return len(c.books)
}

// Has reports whether a record with the given id exists.
func (c *Collection) Has(id int64) bool {
	_, ok := c.index[id]
	return ok
}

// Get returns the record with the given id.
func (c *Collection) Get(id int64) (bookapi.Book, bool) {
	pos, ok := c.index[id]
	if !ok {
		return bookapi.Book{}, false
	}
	return c.books[pos], true
}

// Books returns the records in insertion order. The slice is a copy; callers
// may keep or modify it freely.
func (c *Collection) Books() []bookapi.Book {
	out := make([]bookapi.Book, len(c.books))
	copy(out, c.books)
	return out
}
