// Package bookapi provides an HTTP client for the bookstore catalog API.
//
// # Overview
//
// This package defines the API client for communicating with the remote book
// store. It handles HTTP communication, JSON serialization, payload
// validation, and type-safe representation of catalog records.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Book, Draft, and Patch payloads plus validation
//   - errors.go: Sentinel and typed errors shared with callers
//
// # Client Usage
//
// Create a client using the API bind address from configuration:
//
//	client, err := bookapi.NewClient("127.0.0.1:8017")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	// Fetch the full catalog
//	books, err := client.List(ctx)
//	if err != nil {
//		log.Printf("list failed: %v", err)
//	}
//
//	// Store a new record
//	book, err := client.Create(ctx, bookapi.Draft{Title: "Dune", Author: "Frank Herbert", Year: 1965})
//
// # API Endpoints
//
// The client covers the four catalog operations:
//
//   - GET /api/books: full list of records
//   - POST /api/books: store a draft, response echoes the record with its id
//   - PATCH /api/books/{id}: partial update, omitted fields keep their values
//   - DELETE /api/books/{id}: remove a record
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Pass through a client-side rate limiter before hitting the wire
//   - Set Accept and User-Agent headers plus a fresh X-Request-ID per call
//   - Have a 5-second timeout on top of whatever deadline the context carries
//   - Return wrapped errors with context about what failed
//
// # Error Handling
//
// Failed responses surface as *StatusError carrying the HTTP status, the
// server's error message when the body held one, and the request id for
// correlation. Status 404 additionally matches the ErrNotFound sentinel:
//
//	if errors.Is(err, bookapi.ErrNotFound) {
//		// the record is already gone
//	}
//
// Transport-level failures (connection refused, timeout, malformed JSON)
// are wrapped with descriptive context using fmt.Errorf.
//
// # Validation
//
// Draft and Patch validate themselves before dispatch. A Draft needs a title
// and an author; a Patch may be sparse but set fields must not be blank.
// Violations surface as *ValidationError naming the offending field, so the
// UI can point at the input instead of printing a request failure.
package bookapi
