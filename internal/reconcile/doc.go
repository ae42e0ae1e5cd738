// Package reconcile keeps the local catalog mirror consistent with a remote
// store it can only reach over an unreliable network.
//
// # Overview
//
// Every remote operation flows through the Engine twice: a Begin call
// registers it and hands back an Op before anything touches the network, and
// Resolve folds the finished call's Outcome back into local state. Between
// the two, the caller is free to run the actual request wherever it likes;
// the engine itself never performs I/O.
//
//	BeginUpdate(id) ──→ Op ──→ client.Update(...) ──→ Outcome ──→ Resolve
//	     │                                                          │
//	     └── commits the edit session                               └── folds
//	                                                                    into the
//	                                                                    collection
//
// # Ordering
//
// Operations are serialized per slot: one slot per record id plus one each
// for load and create. A slot with an unresolved operation rejects new
// submissions with ErrOpInFlight, with one exception: a delete may supersede
// a pending update on the same record, because destroying the record makes
// the outcome of the update irrelevant.
//
// Each issued Op carries a per-slot sequence number. Resolve compares an
// outcome's sequence against the slot's current one and discards mismatches
// as stale. This is what keeps a slow update response from resurrecting a
// record whose delete already confirmed.
//
// # Failure Rules
//
// Failures never corrupt local state, they only stop it from advancing:
//
//   - load failure: keep whatever the mirror holds, surface the error
//   - create failure: nothing was added, the draft goes back to the form
//   - update failure: re-open the edit session with the committed patch,
//     the user's edits survive the round trip
//   - delete failure: the record stays visible
//
// # View State
//
// The engine also owns the list controls (title search and current page) so
// that every path that shrinks the collection runs through the same page
// clamp. Projection recomputes the visible page on demand; it is cheap and
// has no cache to invalidate.
package reconcile
