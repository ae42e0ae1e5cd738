// Package app is the composition root for the bookstore UI.
//
// # Overview
//
// This package wires together configuration, logging, the remote API client,
// the reconciliation engine, and the terminal UI. It contains no behavior of
// its own beyond initialization order and shutdown semantics.
//
// # Boot Sequence
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      TOML file + environment overrides
//	       ├─────> logging.New()      file sink + in-memory ring
//	       ├─────> bookapi.NewClient() HTTP client for the book API
//	       ├─────> prefs.Load()       persisted theme choice
//	       ├─────> reconcile.New()    engine owning catalog state
//	       └─────> ui.Run()           Bubble Tea program (blocks)
//
// The UI issues the initial catalog load itself, so Run never performs a
// pre-flight availability check: an unreachable API is a state the interface
// renders, not a startup failure. Background refresh, when enabled, also
// lives inside the UI loop as a tick command, which keeps every remote call
// on the engine's single dispatch path.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - unreadable or invalid configuration
//   - log sink cannot be created
//   - API base URL cannot be parsed
//
// Everything after boot is recoverable and surfaces through the UI status
// line and activity log instead. Context cancellation (SIGINT, SIGTERM)
// shuts the program down and is reported as a clean exit.
package app
