// Package ui implements the Bubble Tea terminal interface for the book
// catalog.
//
// # Layout
//
// The screen is a fixed vertical stack: a status header, a command bar, the
// title search line, the book table in a titled box, and a one-line status
// strip at the bottom. Help, the activity log, and the add form render as
// overlays on top of the stack.
//
//	┌ header:   bookstore  http://...  Books: 12  synced 14:32:05 ┐
//	│ command bar: a:Add  e:Edit  d:Delete  /:Search  ...         │
//	│ search:   Press / to filter titles                          │
//	│ ┌─────────────────────── Books ────────────────────────┐    │
//	│ │   ID    TITLE            AUTHOR           YEAR       │    │
//	│ │   #1    Dune             Frank Herbert    1965       │    │
//	│ │ ✎ #2    It (annotated)   Stephen King     1986       │    │
//	│ │                                                      │    │
//	│ │ Page 1/3 · 12 books                                  │    │
//	│ └──────────────────────────────────────────────────────┘    │
//	└ status:   saved #2                                          ┘
//
// # Input Model
//
// Exactly one area owns the keyboard at a time: the list, the search field,
// the add modal, or the inline row editor. Keys are matched against the
// bindings in keyMap; anything unmatched in an input mode falls through to
// the focused text input.
//
// Editing happens in place. The selected row swaps its cells for three text
// inputs, and every keystroke that changes a field is pushed into the
// record's edit session, so the unsaved state survives refreshes that arrive
// mid-edit.
//
// # Operation Flow
//
// The model never talks to the network in Update. Actions register an
// operation with the reconcile engine, receive an Op, and hand it to
// performCmd, which runs the HTTP call on Bubble Tea's command pool and
// returns an opResolvedMsg. Update feeds that outcome back into the engine
// and reflects the result in the status line. Stale outcomes are dropped by
// the engine and leave the view untouched.
package ui
