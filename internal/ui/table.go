package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/deniswachira/bookstore-ui/internal/catalog"
)

// bookCols holds the table column widths for a given inner width. Columns are
// separated by single spaces; the title flexes and the author takes roughly
// a third of the slack.
type bookCols struct {
	marker int
	id     int
	title  int
	author int
	year   int
}

func bookColumns(width int) bookCols {
	cols := bookCols{marker: 2, id: 5, year: 6}
	rest := width - cols.marker - cols.id - cols.year - 3 // three column gaps
	if rest < 20 {
		rest = 20
	}
	cols.author = rest * 2 / 5
	cols.title = rest - cols.author
	return cols
}

// yearText renders a publication year, blank for the zero value.
func yearText(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

// padCell pads an already-styled cell to its column width with background-
// colored spaces. lipgloss.Width measures the visible width under the ANSI
// codes.
func padCell(rendered string, width int, bg BgStyle) string {
	gap := width - lipgloss.Width(rendered)
	if gap <= 0 {
		return rendered
	}
	return rendered + bg.Spaces(gap)
}

// renderBooks renders the catalog table inside a titled box.
func (m Model) renderBooks() string {
	p := m.engine.Projection()

	title := "Books"
	if m.engine.Search() != "" {
		title = fmt.Sprintf("Books · %d of %d match", p.Matching, p.Total)
	}

	boxHeight := m.height - 4 // header, command bar, search line, status line
	innerWidth := m.width - 2
	innerHeight := boxHeight - 2

	content := m.renderBookTable(p, innerWidth, innerHeight)
	focused := m.focus == focusList || m.focus == focusEdit
	return m.renderTitledBox(title, content, m.width, boxHeight, focused)
}

// renderBookTable renders the rows for the current page, or the matching
// empty state.
func (m Model) renderBookTable(p catalog.Projection, width, height int) string {
	bgColor := m.theme.SurfaceAlt
	if m.focus == focusList || m.focus == focusEdit {
		bgColor = m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	if msg := m.emptyStateLines(p, styles); msg != nil {
		lines := []string{""}
		lines = append(lines, msg...)
		return strings.Join(lines, "\n")
	}

	cols := bookColumns(width)
	var lines []string

	// Column header
	header := bg.Spaces(cols.marker) +
		bg.Render(padRight("ID", cols.id), styles.FaintText) + bg.Space() +
		bg.Render(padRight("TITLE", cols.title), styles.FaintText) + bg.Space() +
		bg.Render(padRight("AUTHOR", cols.author), styles.FaintText) + bg.Space() +
		bg.Render(padRight("YEAR", cols.year), styles.FaintText)
	lines = append(lines, header)

	for _, row := range p.Rows {
		if m.focus == focusEdit && row.Book.ID == m.editID {
			lines = append(lines, m.renderEditRow(row, cols))
			continue
		}
		lines = append(lines, m.formatBookRow(row, cols, bgColor))
	}

	// Push the pagination line to the bottom of the box.
	for len(lines) < height-1 {
		lines = append(lines, "")
	}

	pageLine := fmt.Sprintf("Page %d/%d · %s", p.Page, p.TotalPages, pluralize(p.Total, "book"))
	if m.engine.Search() != "" {
		pageLine += fmt.Sprintf(" · %d matching", p.Matching)
	}
	lines = append(lines, bg.Space()+bg.Render(pageLine, styles.MutedText))

	return strings.Join(lines, "\n")
}

// emptyStateLines returns the lines to show instead of rows, or nil when
// there are rows to render.
func (m Model) emptyStateLines(p catalog.Projection, styles Styles) []string {
	pad := " "
	switch {
	case !m.engine.Loaded() && m.engine.LoadErr() != nil:
		return []string{
			pad + styles.DangerText.Render("Cannot reach the bookstore API."),
			pad + styles.MutedText.Render(reasonText(m.engine.LoadErr())),
			"",
			pad + styles.MutedText.Render("Press r to retry."),
		}
	case !m.engine.Loaded():
		return []string{pad + styles.MutedText.Render("Loading catalog...")}
	case p.Total == 0:
		return []string{
			pad + styles.Text.Render("The catalog is empty."),
			"",
			pad + styles.MutedText.Render("Press a to add the first book."),
		}
	case p.Matching == 0:
		return []string{
			pad + styles.Text.Render(fmt.Sprintf("No titles match %q.", m.engine.Search())),
			"",
			pad + styles.MutedText.Render("Press esc to clear the search."),
		}
	}
	return nil
}

// formatBookRow formats one display row with selection and marker styling.
func (m Model) formatBookRow(row catalog.Row, cols bookCols, paneBg string) string {
	selected := row.Book.ID == m.selectedID

	rowBg := paneBg
	if selected {
		rowBg = m.theme.SelectionBg
	}
	bg := NewBgStyle(rowBg)

	var markerStr string
	var markerStyle lipgloss.Style
	switch {
	case row.Editing:
		markerStr = "✎"
		markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	case m.engine.Pending(row.Book.ID):
		markerStr = "…"
		markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Info))
	}

	var idStyle, textStyle, yearStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle, textStyle, yearStyle = selText, selText, selText
	} else {
		styles := m.theme.Styles()
		idStyle = styles.MutedText
		textStyle = styles.Text
		yearStyle = styles.MutedText
		if row.Editing {
			textStyle = styles.WarningText
		}
	}

	content := padCell(bg.Render(markerStr, markerStyle), cols.marker, bg) +
		bg.Render(padRight(fmt.Sprintf("#%d", row.Book.ID), cols.id), idStyle) + bg.Space() +
		bg.Render(padRight(truncate(row.Display.Title, cols.title), cols.title), textStyle) + bg.Space() +
		bg.Render(padRight(truncate(row.Display.Author, cols.author), cols.author), textStyle) + bg.Space() +
		bg.Render(padRight(yearText(row.Display.Year), cols.year), yearStyle)

	return content
}

// renderEditRow renders the selected row as three inline inputs.
func (m Model) renderEditRow(row catalog.Row, cols bookCols) string {
	bg := NewBgStyle(m.theme.SelectionBg)
	styles := m.theme.Styles()
	marker := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Bold(true)

	return padCell(bg.Render("✎", marker), cols.marker, bg) +
		bg.Render(padRight(fmt.Sprintf("#%d", row.Book.ID), cols.id), styles.MutedText) + bg.Space() +
		padCell(m.form.FieldView(fieldTitle), cols.title, bg) + bg.Space() +
		padCell(m.form.FieldView(fieldAuthor), cols.author, bg) + bg.Space() +
		padCell(m.form.FieldView(fieldYear), cols.year, bg)
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	// Build the top border with embedded title
	innerWidth := width - 2
	titleLen := lipgloss.Width(title)
	leftPad := maxInt((innerWidth-titleLen-2)/2, 0)
	rightPad := maxInt(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	var paddedLines []string
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}
