// Package ui provides the Bubble Tea terminal interface for the bookstore.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/deniswachira/bookstore-ui/internal/bookapi"
	"github.com/deniswachira/bookstore-ui/internal/catalog"
	"github.com/deniswachira/bookstore-ui/internal/logging"
	"github.com/deniswachira/bookstore-ui/internal/prefs"
	"github.com/deniswachira/bookstore-ui/internal/reconcile"
)

// focusArea identifies which element receives keyboard input.
type focusArea int

const (
	focusList focusArea = iota
	focusSearch
	focusAdd
	focusEdit
)

// overlayKind identifies the active full-screen overlay.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlayActivity
)

// statusLevel colors the status line message.
type statusLevel int

const (
	statusInfo statusLevel = iota
	statusSuccess
	statusWarn
	statusError
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Client       bookapi.Store
	Engine       *reconcile.Engine
	Log          *zap.Logger
	Ring         *logging.Ring
	BaseURL      string
	ThemeName    string
	PrefsPath    string
	RefreshEvery time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	client       bookapi.Store
	engine       *reconcile.Engine
	log          *zap.Logger
	ring         *logging.Ring
	baseURL      string
	prefsPath    string
	refreshEvery time.Duration

	// UI state
	keys    keyMap
	theme   Theme
	width   int
	height  int
	ready   bool
	focus   focusArea
	overlay overlayKind

	// List state
	selectedID int64

	// Search state
	searchInput textinput.Model

	// Form state, shared by the add modal and the inline row editor
	form   bookForm
	editID int64

	// Activity overlay
	activityViewport viewport.Model

	// Status line
	statusText  string
	statusLevel statusLevel
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Placeholder = "title contains..."
	search.CharLimit = 80
	search.Prompt = ""

	return Model{
		client:       opts.Client,
		engine:       opts.Engine,
		log:          log.Named("ui"),
		ring:         opts.Ring,
		baseURL:      opts.BaseURL,
		prefsPath:    prefsPath,
		refreshEvery: opts.RefreshEvery,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(themeName),
		searchInput:  search,
		form:         newBookForm(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if op, err := m.engine.BeginLoad(); err == nil {
		cmds = append(cmds, performCmd(m.client, op))
	}
	if m.refreshEvery > 0 {
		cmds = append(cmds, tickCmd(m.refreshEvery))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initActivityViewport()
		}
		m.ready = true
		m.layoutInputs()
		m.updateActivityViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case opResolvedMsg:
		return m.handleOutcome(msg.outcome)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.overlay {
	case overlayHelp:
		return m.renderHelp()
	case overlayActivity:
		return m.renderActivity()
	}

	if m.focus == focusAdd {
		return m.renderAddModal()
	}

	return m.renderMain()
}

// handleKey routes keyboard input to the active overlay or focus area.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.overlay == overlayHelp {
		// Any key closes help
		m.overlay = overlayNone
		return m, nil
	}
	if m.overlay == overlayActivity {
		return m.handleActivityKey(msg)
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusAdd:
		return m.handleAddKey(msg)
	case focusEdit:
		return m.handleEditKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// handleListKey processes keyboard input while the book list has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.Activity):
		m.overlay = overlayActivity
		m.updateActivityViewport()
		m.activityViewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.beginLoad()

	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		m.searchInput.SetValue(m.engine.Search())
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Add):
		return m.openAdd()

	case key.Matches(msg, m.keys.Edit):
		return m.openEdit()

	case key.Matches(msg, m.keys.Delete):
		return m.beginDelete()

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selectEdge(false)
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.selectEdge(true)
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.changePage(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.changePage(1)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.engine.Search() != "" {
			m.engine.SetSearch("")
			m.searchInput.SetValue("")
			m.syncSelection()
		}
		return m, nil
	}

	return m, nil
}

// handleSearchKey processes keyboard input while the search field has focus.
// The filter applies live on every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.engine.SetSearch("")
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.focus = focusList
		m.syncSelection()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.searchInput.Blur()
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.engine.SetSearch(m.searchInput.Value()) {
		m.syncSelection()
	}
	return m, cmd
}

// handleAddKey processes keyboard input while the add modal is open.
func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.focus = focusList
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.submitAdd()

	case key.Matches(msg, m.keys.NextField):
		return m, m.form.CycleFocus(1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.CycleFocus(-1)
	}

	return m, m.form.Update(msg)
}

// handleEditKey processes keyboard input while a row is in edit mode. Every
// keystroke lands in the edit session so the row reflects the live patch.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.engine.CancelEdit(m.editID)
		m.focus = focusList
		m.setStatus(statusInfo, fmt.Sprintf("discarded edits to #%d", m.editID))
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.submitEdit()

	case key.Matches(msg, m.keys.NextField):
		return m, m.form.CycleFocus(1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.CycleFocus(-1)
	}

	// Only keystrokes that change the text touch the patch; cursor movement
	// must not mark a field as edited.
	before := m.form.FocusedValue()
	cmd := m.form.Update(msg)
	after := m.form.FocusedValue()
	if after != before {
		field := m.form.Focused()
		if err := m.engine.SetField(m.editID, field.catalogField(), after); err != nil {
			m.setStatus(statusWarn, reasonText(err))
		}
	}
	return m, cmd
}

// handleActivityKey processes keyboard input while the activity overlay is open.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape),
		key.Matches(msg, m.keys.Activity),
		key.Matches(msg, m.keys.Quit):
		m.overlay = overlayNone
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.activityViewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.activityViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.activityViewport, cmd = m.activityViewport.Update(msg)
	return m, cmd
}

// handleTick refreshes the catalog on the polling interval.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.refreshEvery <= 0 {
		return m, nil
	}
	cmds := []tea.Cmd{tickCmd(m.refreshEvery)}
	if op, err := m.engine.BeginLoad(); err == nil {
		cmds = append(cmds, performCmd(m.client, op))
	}
	return m, tea.Batch(cmds...)
}

// Actions

func (m Model) beginLoad() (tea.Model, tea.Cmd) {
	op, err := m.engine.BeginLoad()
	if err != nil {
		m.setStatus(statusWarn, "refresh already in flight")
		return m, nil
	}
	m.setStatus(statusInfo, "refreshing...")
	return m, performCmd(m.client, op)
}

func (m Model) openAdd() (tea.Model, tea.Cmd) {
	if m.engine.CreatePending() {
		m.setStatus(statusWarn, "an add is already in flight")
		return m, nil
	}
	// Values persist across open/close so an unsaved draft is not lost.
	m.focus = focusAdd
	return m, m.form.FocusField(fieldTitle)
}

func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	title, author, yearText := m.form.Values()
	year := 0
	if yearText != "" {
		parsed, err := strconv.Atoi(yearText)
		if err != nil {
			m.setStatus(statusWarn, "year must be a whole number")
			return m, nil
		}
		year = parsed
	}

	op, err := m.engine.BeginCreate(bookapi.Draft{Title: title, Author: author, Year: year})
	if err != nil {
		m.setStatus(statusWarn, reasonText(err))
		return m, nil
	}
	m.setStatus(statusInfo, fmt.Sprintf("adding %q...", truncate(title, 40)))
	return m, performCmd(m.client, op)
}

func (m Model) openEdit() (tea.Model, tea.Cmd) {
	row := m.selectedRow()
	if row == nil {
		m.setStatus(statusWarn, "no book selected")
		return m, nil
	}
	if m.engine.Pending(row.Book.ID) {
		m.setStatus(statusWarn, fmt.Sprintf("#%d has an operation in flight", row.Book.ID))
		return m, nil
	}

	if err := m.engine.BeginEdit(row.Book.ID); err != nil {
		m.setStatus(statusWarn, reasonText(err))
		return m, nil
	}
	m.editID = row.Book.ID
	m.focus = focusEdit

	// Prefill from the display values so a restored patch shows through.
	m.form.SetValues(row.Display.Title, row.Display.Author, yearText(row.Display.Year))
	m.layoutInputs()
	return m, m.form.FocusField(fieldTitle)
}

func (m Model) submitEdit() (tea.Model, tea.Cmd) {
	_, _, yearText := m.form.Values()
	if yearText != "" {
		if _, err := strconv.Atoi(yearText); err != nil {
			m.setStatus(statusWarn, "year must be a whole number")
			return m, nil
		}
	}

	op, err := m.engine.BeginUpdate(m.editID)
	switch {
	case errors.Is(err, reconcile.ErrNoChanges):
		m.focus = focusList
		m.setStatus(statusInfo, "no changes to save")
		return m, nil
	case err != nil:
		m.setStatus(statusWarn, reasonText(err))
		return m, nil
	}

	m.focus = focusList
	m.setStatus(statusInfo, fmt.Sprintf("saving #%d...", op.BookID))
	return m, performCmd(m.client, op)
}

func (m Model) beginDelete() (tea.Model, tea.Cmd) {
	row := m.selectedRow()
	if row == nil {
		m.setStatus(statusWarn, "no book selected")
		return m, nil
	}

	op, err := m.engine.BeginDelete(row.Book.ID)
	if err != nil {
		m.setStatus(statusWarn, reasonText(err))
		return m, nil
	}
	m.setStatus(statusInfo, fmt.Sprintf("deleting #%d...", op.BookID))
	return m, performCmd(m.client, op)
}

// handleOutcome folds a finished API call into the engine and reflects the
// result in the status line and selection.
func (m Model) handleOutcome(out reconcile.Outcome) (tea.Model, tea.Cmd) {
	res := m.engine.Resolve(out)
	if res.Stale {
		return m, nil
	}

	switch res.Op.Kind {
	case reconcile.OpLoad:
		if res.Err != nil {
			m.setStatus(statusError, "refresh failed: "+reasonText(res.Err))
			return m, nil
		}
		m.setStatus(statusInfo, fmt.Sprintf("synced %s", pluralize(res.Listed, "book")))
		// The refresh may have pruned the session under an open editor.
		if m.focus == focusEdit && !m.engine.IsEditing(m.editID) {
			m.focus = focusList
			m.setStatus(statusWarn, fmt.Sprintf("#%d disappeared from the catalog, edits discarded", m.editID))
		}
		m.syncSelection()

	case reconcile.OpCreate:
		if res.Err != nil {
			m.setStatus(statusError, "add failed: "+reasonText(res.Err))
			return m, nil
		}
		m.setStatus(statusSuccess, fmt.Sprintf("added %q as #%d", truncate(res.Created.Title, 40), res.Created.ID))
		m.form.Reset()
		if m.focus == focusAdd {
			m.focus = focusList
		}
		m.selectedID = res.Created.ID
		if page := m.engine.PageOf(res.Created.ID); page > 0 {
			m.engine.SetPage(page)
		}

	case reconcile.OpUpdate:
		if res.Err != nil {
			m.setStatus(statusError, fmt.Sprintf("save failed for #%d: %s (edits kept)", res.Op.BookID, reasonText(res.Err)))
			return m, nil
		}
		m.setStatus(statusSuccess, fmt.Sprintf("saved #%d", res.Op.BookID))

	case reconcile.OpDelete:
		if res.Err != nil {
			m.setStatus(statusError, fmt.Sprintf("delete failed for #%d: %s", res.Op.BookID, reasonText(res.Err)))
			return m, nil
		}
		m.setStatus(statusInfo, fmt.Sprintf("deleted #%d", res.Op.BookID))
		m.syncSelection()
	}

	// Desync warnings outrank routine success messages.
	if res.Warning != nil {
		m.setStatus(statusWarn, res.Warning.Error())
	}

	return m, nil
}

// Selection

// selectedRow returns the row for the selected book on the current page.
func (m Model) selectedRow() *catalog.Row {
	rows := m.engine.Projection().Rows
	for i := range rows {
		if rows[i].Book.ID == m.selectedID {
			return &rows[i]
		}
	}
	if len(rows) > 0 {
		return &rows[0]
	}
	return nil
}

func (m *Model) moveSelection(delta int) {
	rows := m.engine.Projection().Rows
	if len(rows) == 0 {
		return
	}
	idx := 0
	for i := range rows {
		if rows[i].Book.ID == m.selectedID {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(rows)-1 {
		idx = len(rows) - 1
	}
	m.selectedID = rows[idx].Book.ID
}

func (m *Model) selectEdge(last bool) {
	rows := m.engine.Projection().Rows
	if len(rows) == 0 {
		return
	}
	if last {
		m.selectedID = rows[len(rows)-1].Book.ID
		return
	}
	m.selectedID = rows[0].Book.ID
}

func (m *Model) changePage(delta int) {
	p := m.engine.Projection()
	target := p.Page + delta
	if target < 1 || target > p.TotalPages {
		return
	}
	m.engine.SetPage(target)
	m.selectEdge(false)
}

// syncSelection keeps the selection on the same book when possible and falls
// back to the first visible row after the data shifted under it.
func (m *Model) syncSelection() {
	rows := m.engine.Projection().Rows
	if len(rows) == 0 {
		m.selectedID = 0
		return
	}
	for i := range rows {
		if rows[i].Book.ID == m.selectedID {
			return
		}
	}
	m.selectedID = rows[0].Book.ID
}

// Status line

func (m *Model) setStatus(level statusLevel, text string) {
	m.statusLevel = level
	m.statusText = text
}

// reasonText renders an operation error for the status line.
func reasonText(err error) string {
	if err == nil {
		return ""
	}
	var vErr *bookapi.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	var sErr *bookapi.StatusError
	switch {
	case errors.Is(err, bookapi.ErrNotFound):
		return "not found on the server"
	case errors.As(err, &sErr):
		if sErr.Message != "" {
			return truncate(sErr.Message, 60)
		}
		return fmt.Sprintf("server error (status %d)", sErr.Code)
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	}
	return truncate(err.Error(), 80)
}

// Layout

// layoutInputs resizes the text inputs to the current terminal geometry.
func (m *Model) layoutInputs() {
	m.searchInput.Width = maxInt(m.width-30, 16)
	if m.focus == focusEdit {
		cols := bookColumns(m.width - 4)
		m.form.SetWidths(cols.title-1, cols.author-1, cols.year-1)
	} else {
		m.form.SetWidths(40, 30, 6)
	}
}

// Run starts the Bubble Tea program and blocks until it exits. Cancelling
// opts.Context shuts the program down.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	return err
}
