package reconcile

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/deniswachira/bookstore-ui/internal/bookapi"
	"github.com/deniswachira/bookstore-ui/internal/catalog"
)

var (
	// ErrOpInFlight rejects a submission while the same slot already has an
	// unresolved operation.
	ErrOpInFlight = errors.New("operation already in flight")
	// ErrNoChanges reports a committed edit session whose patch was empty;
	// the session is closed and nothing needs to be sent.
	ErrNoChanges = errors.New("no changes to save")
)

// Engine owns the local mirror and applies the reconciliation rules: every
// remote operation is registered here before dispatch and folded back in
// through Resolve. Operations are serialized per record (plus one slot each
// for load and create) and tagged with a sequence number; an outcome whose
// sequence is no longer current is discarded as stale.
//
// The engine performs no I/O and must only be used from the update
// goroutine. Begin methods hand out an Op; the caller runs the matching
// client request elsewhere and feeds the Outcome back into Resolve.
type Engine struct {
	books    *catalog.Collection
	sessions *catalog.Sessions
	view     catalog.View
	log      *zap.Logger

	pending map[int64]Op
	seq     map[int64]uint64

	loaded   bool
	loadErr  error
	lastSync time.Time
}

// New returns an engine with an empty collection.
func New(log *zap.Logger, pageSize int) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		books:    catalog.NewCollection(),
		sessions: catalog.NewSessions(),
		view:     catalog.NewView(pageSize),
		log:      log.Named("engine"),
		pending:  make(map[int64]Op),
		seq:      make(map[int64]uint64),
	}
}

// BeginLoad registers a full list fetch. Only one may be in flight.
func (e *Engine) BeginLoad() (Op, error) {
	if _, ok := e.pending[keyLoad]; ok {
		return Op{}, fmt.Errorf("load: %w", ErrOpInFlight)
	}
	return e.issue(Op{Kind: OpLoad}), nil
}

// BeginCreate validates the draft and registers a create. The draft travels
// inside the Op so a failure can surface it back to the form untouched.
func (e *Engine) BeginCreate(draft bookapi.Draft) (Op, error) {
	if _, ok := e.pending[keyCreate]; ok {
		return Op{}, fmt.Errorf("create: %w", ErrOpInFlight)
	}
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return Op{}, err
	}
	return e.issue(Op{Kind: OpCreate, Draft: draft}), nil
}

// BeginEdit opens an edit session for the record. The record must exist in
// the local mirror.
func (e *Engine) BeginEdit(id int64) error {
	if !e.books.Has(id) {
		return fmt.Errorf("edit book %d: %w", id, catalog.ErrUnknownID)
	}
	e.sessions.Begin(id)
	return nil
}

// SetField records one field edit in the record's open session.
func (e *Engine) SetField(id int64, field catalog.Field, raw string) error {
	return e.sessions.SetField(id, field, raw)
}

// CancelEdit closes the record's session and discards its edits.
func (e *Engine) CancelEdit(id int64) {
	e.sessions.Cancel(id)
}

// IsEditing reports whether the record has an open edit session.
func (e *Engine) IsEditing(id int64) bool {
	return e.sessions.IsEditing(id)
}

// BeginUpdate commits the record's edit session and registers the update.
// A patch that fails validation leaves the session open for correction.
// An empty patch closes the session and returns ErrNoChanges; there is
// nothing worth a round trip.
func (e *Engine) BeginUpdate(id int64) (Op, error) {
	patch, ok := e.sessions.PatchFor(id)
	if !ok {
		return Op{}, fmt.Errorf("update book %d: %w", id, catalog.ErrNoSession)
	}
	if _, busy := e.pending[id]; busy {
		return Op{}, fmt.Errorf("update book %d: %w", id, ErrOpInFlight)
	}
	patch = patch.Normalize()
	if err := patch.Validate(); err != nil {
		return Op{}, err
	}
	if patch.IsEmpty() {
		e.sessions.Cancel(id)
		return Op{}, fmt.Errorf("update book %d: %w", id, ErrNoChanges)
	}
	if _, err := e.sessions.Commit(id); err != nil {
		return Op{}, err
	}
	return e.issue(Op{Kind: OpUpdate, BookID: id, Patch: patch}), nil
}

// BeginDelete registers a delete for the record. A pending update on the
// same record is superseded: the delete takes a newer sequence number, so
// the update's eventual outcome resolves as stale. A pending delete or
// create cannot be doubled up.
func (e *Engine) BeginDelete(id int64) (Op, error) {
	if prev, busy := e.pending[id]; busy && prev.Kind != OpUpdate {
		return Op{}, fmt.Errorf("delete book %d: %w", id, ErrOpInFlight)
	}
	return e.issue(Op{Kind: OpDelete, BookID: id}), nil
}

func (e *Engine) issue(op Op) Op {
	key := op.key()
	e.seq[key]++
	op.Seq = e.seq[key]
	e.pending[key] = op
	e.log.Debug("dispatch",
		zap.Stringer("op", op.Kind),
		zap.Int64("book_id", op.BookID),
		zap.Uint64("seq", op.Seq),
	)
	return op
}

// Resolve folds one finished remote call into the local mirror. Outcomes
// from superseded operations are discarded without touching any state.
func (e *Engine) Resolve(out Outcome) Result {
	key := out.Op.key()
	if out.Op.Seq != e.seq[key] {
		e.log.Warn("stale response discarded",
			zap.Stringer("op", out.Op.Kind),
			zap.Int64("book_id", out.Op.BookID),
			zap.Uint64("seq", out.Op.Seq),
			zap.Uint64("current_seq", e.seq[key]),
		)
		return Result{Op: out.Op, Stale: true}
	}
	delete(e.pending, key)

	switch out.Op.Kind {
	case OpLoad:
		return e.resolveLoad(out)
	case OpCreate:
		return e.resolveCreate(out)
	case OpUpdate:
		return e.resolveUpdate(out)
	case OpDelete:
		return e.resolveDelete(out)
	default:
		return Result{Op: out.Op, Err: fmt.Errorf("unhandled op kind %v", out.Op.Kind)}
	}
}

func (e *Engine) resolveLoad(out Outcome) Result {
	if out.Err != nil {
		e.loadErr = out.Err
		e.log.Error("load failed", errorFields(out.Err)...)
		return Result{Op: out.Op, Err: out.Err}
	}
	warning := e.books.Apply(catalog.ReplaceAll{Books: out.Books})
	e.warn(warning)
	for _, id := range e.sessions.Prune(e.books.Has) {
		e.log.Warn("edit session dropped, record gone from store", zap.Int64("book_id", id))
	}
	e.loaded = true
	e.loadErr = nil
	e.lastSync = time.Now()
	e.log.Info("catalog loaded", zap.Int("books", e.books.Len()))
	return Result{Op: out.Op, Warning: warning, Listed: e.books.Len()}
}

func (e *Engine) resolveCreate(out Outcome) Result {
	if out.Err != nil {
		e.log.Error("create failed", errorFields(out.Err)...)
		return Result{Op: out.Op, Err: out.Err}
	}
	warning := e.books.Apply(catalog.Add{Book: out.Created})
	e.warn(warning)
	e.log.Info("book created",
		zap.Int64("book_id", out.Created.ID),
		zap.String("title", out.Created.Title),
	)
	return Result{Op: out.Op, Warning: warning, Created: out.Created}
}

func (e *Engine) resolveUpdate(out Outcome) Result {
	id := out.Op.BookID
	if out.Err != nil {
		// hand the patch back so the user's edits survive the failure
		e.sessions.Restore(id, out.Op.Patch)
		e.log.Error("update failed, edits kept",
			append(errorFields(out.Err), zap.Int64("book_id", id))...)
		return Result{Op: out.Op, Err: out.Err}
	}
	current, ok := e.books.Get(id)
	if !ok {
		warning := fmt.Errorf("update book %d confirmed: %w", id, catalog.ErrUnknownID)
		e.warn(warning)
		return Result{Op: out.Op, Warning: warning}
	}
	warning := e.books.Apply(catalog.Update{Book: out.Op.Patch.Merge(current)})
	e.warn(warning)
	e.log.Info("book updated", zap.Int64("book_id", id))
	return Result{Op: out.Op, Warning: warning}
}

func (e *Engine) resolveDelete(out Outcome) Result {
	id := out.Op.BookID
	if out.Err != nil {
		e.log.Error("delete failed",
			append(errorFields(out.Err), zap.Int64("book_id", id))...)
		return Result{Op: out.Op, Err: out.Err}
	}
	warning := e.books.Apply(catalog.Remove{ID: id})
	e.warn(warning)
	if e.sessions.IsEditing(id) {
		e.sessions.Cancel(id)
		e.log.Warn("edit session dropped, record deleted", zap.Int64("book_id", id))
	}
	e.log.Info("book deleted", zap.Int64("book_id", id))
	return Result{Op: out.Op, Warning: warning}
}

func (e *Engine) warn(warning error) {
	if warning != nil {
		e.log.Warn("collection desync", zap.Error(warning))
	}
}

// errorFields attaches the request id to failure logs when the error came
// from the API, so entries line up with server-side logs.
func errorFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}
	var statusErr *bookapi.StatusError
	if errors.As(err, &statusErr) && statusErr.RequestID != "" {
		fields = append(fields, zap.String("request_id", statusErr.RequestID))
	}
	return fields
}

// Projection computes the current page, pulling the view back inside the
// valid page range first when the collection shrank under it.
func (e *Engine) Projection() catalog.Projection {
	books := e.books.Books()
	proj := catalog.Project(books, e.sessions, e.view.Search(), e.view.Page(), e.view.Size())
	if proj.Page > proj.TotalPages {
		e.view.Clamp(proj.TotalPages)
		proj = catalog.Project(books, e.sessions, e.view.Search(), e.view.Page(), e.view.Size())
	}
	return proj
}

// PageOf returns the 1-based page a record lands on under the active filter,
// or 0 when it is absent or filtered out.
func (e *Engine) PageOf(id int64) int {
	return catalog.PageOf(e.books.Books(), e.view.Search(), id, e.view.Size())
}

// SetSearch replaces the title filter and reports whether it changed.
func (e *Engine) SetSearch(search string) bool {
	return e.view.SetSearch(search)
}

// Search returns the active title filter.
func (e *Engine) Search() string {
	return e.view.Search()
}

// SetPage moves the view to the given 1-based page.
func (e *Engine) SetPage(page int) {
	e.view.SetPage(page)
}

// Page returns the 1-based current page.
func (e *Engine) Page() int {
	return e.view.Page()
}

// PageSize returns the configured page length.
func (e *Engine) PageSize() int {
	return e.view.Size()
}

// Loaded reports whether at least one list fetch has succeeded.
func (e *Engine) Loaded() bool {
	return e.loaded
}

// LoadErr returns the most recent list failure, nil after a success.
func (e *Engine) LoadErr() error {
	return e.loadErr
}

// LastSync returns when the last successful list fetch finished.
func (e *Engine) LastSync() time.Time {
	return e.lastSync
}

// Pending reports whether the record has an unresolved operation.
func (e *Engine) Pending(id int64) bool {
	_, ok := e.pending[id]
	return ok
}

// LoadPending reports whether a list fetch is unresolved.
func (e *Engine) LoadPending() bool {
	_, ok := e.pending[keyLoad]
	return ok
}

// CreatePending reports whether a create is unresolved.
func (e *Engine) CreatePending() bool {
	_, ok := e.pending[keyCreate]
	return ok
}

// InFlight reports the number of unresolved operations.
func (e *Engine) InFlight() int {
	return len(e.pending)
}
