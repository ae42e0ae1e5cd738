package reconcile

import (
	"github.com/deniswachira/bookstore-ui/internal/bookapi"
)

// OpKind identifies one of the four remote catalog operations.
type OpKind int

const (
	OpLoad OpKind = iota
	OpCreate
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpLoad:
		return "load"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Reserved serialization keys for operations that do not target a record.
// Record ids from the store are positive, so these never collide.
const (
	keyLoad   int64 = -1
	keyCreate int64 = -2
)

// Op describes one dispatched remote operation. The engine hands it out from
// a Begin call; the caller executes the matching client request and returns
// the Op inside an Outcome. Seq orders operations per key so late responses
// from superseded requests can be recognized.
type Op struct {
	Kind   OpKind
	BookID int64 // zero for load and create
	Seq    uint64
	Draft  bookapi.Draft // create payload
	Patch  bookapi.Patch // update payload
}

func (o Op) key() int64 {
	switch o.Kind {
	case OpLoad:
		return keyLoad
	case OpCreate:
		return keyCreate
	default:
		return o.BookID
	}
}

// Outcome is the finished remote call for an Op, exactly one of the payload
// fields set according to the kind.
type Outcome struct {
	Op      Op
	Books   []bookapi.Book // load result
	Created bookapi.Book   // create result
	Err     error
}

// Result reports what Resolve did with an outcome.
type Result struct {
	Op      Op
	Stale   bool           // discarded because a newer op owns the key
	Err     error          // remote failure, nil when the op succeeded
	Warning error          // desync warning from folding into the collection
	Created bookapi.Book   // the stored record on create success
	Listed  int            // record count on load success
}
