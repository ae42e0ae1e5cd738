// Package catalog holds the client-side model of the book collection.
//
// # Overview
//
// This package implements the local mirror of the remote book store: the
// confirmed records, the in-progress edit sessions layered over them, and
// the pure projection that turns both into one displayable page. It contains
// no I/O; everything here is plain data transformation that the
// reconciliation engine drives.
//
// # Architecture
//
// Three pieces combine into what the screen shows:
//
//	┌─────────────┐    ┌──────────────┐    ┌─────────────┐
//	│ Collection  │    │   Sessions   │    │    View     │
//	│ (confirmed  │    │ (unsaved     │    │ (search +   │
//	│  records)   │    │  patches)    │    │  page)      │
//	└──────┬──────┘    └──────┬───────┘    └──────┬──────┘
//	       │                  │                   │
//	       └──────────────────┼───────────────────┘
//	                          ↓
//	                      Project()
//	                          ↓
//	                   Projection (rows)
//
// The Collection changes only when the remote store confirms an operation.
// Sessions accumulate edits locally and never touch confirmed records; a
// cancelled session simply evaporates. Project merges the two on the fly, so
// edit mode costs nothing to enter or leave.
//
// # Mutations
//
// The Collection is modified exclusively through Apply and its closed set of
// mutation types: ReplaceAll, Add, Update, Remove. Each corresponds to one
// confirmed remote outcome. Apply never fails; when a mutation's assumptions
// do not hold (adding an id that exists, removing one that does not) it
// repairs what it can and returns a warning wrapping ErrDuplicateID or
// ErrUnknownID for the caller to log.
//
// # Edit Sessions
//
// A session is a sparse patch keyed by book id:
//
//	sessions.Begin(2)
//	sessions.SetField(2, catalog.FieldTitle, "It")     // stored
//	sessions.SetField(2, catalog.FieldYear, "abc")     // rejected, patch keeps no year
//	patch, _ := sessions.Commit(2)                     // session closed, patch dispatched
//
// Only fields the user actually touched appear in the patch, so a commit
// sends a minimal update. Year input must parse as an integer before it is
// stored; rejected input leaves the patch untouched rather than poisoning
// it. Restore re-opens a session with a previously committed patch, which is
// how edits survive a failed save.
//
// # Projection
//
// Project(books, sessions, search, page, size) filters titles case
// insensitively, paginates the matches, and merges each row's live patch
// over its confirmed values. TotalPages is never below 1 so "page 1 of 1"
// renders even for an empty collection. Callers clamp the page against
// TotalPages after the collection shrinks; out-of-range pages yield empty
// rows rather than a panic.
//
// # Concurrency Model
//
// Nothing in this package locks. All types are owned by the single update
// goroutine of the UI loop; remote calls happen elsewhere and come back as
// messages on that same loop. Collection.Books returns a copy, so snapshots
// handed to other goroutines are safe.
//
// # Design Rationale
//
// This package intentionally avoids:
//   - Mutexes (single-goroutine ownership makes them dead weight)
//   - Edit state on the records themselves (sessions are an overlay)
//   - Incremental projection caching (recomputing a page is cheap)
//
// Keeping sessions out of the Collection means a full list refresh can
// replace every record without touching unsaved edits, and a failed save
// can restore them without rewinding confirmed state.
package catalog
