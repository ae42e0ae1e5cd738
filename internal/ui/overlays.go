package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"j/k", "Move down/up"},
				{"g/G", "First/last row"},
				{"n/p", "Next/previous page"},
			},
		},
		{
			title: "Catalog",
			items: []helpItem{
				{"a", "Add a book"},
				{"e/enter", "Edit selected book"},
				{"d", "Delete selected book"},
				{"/", "Search titles"},
				{"r", "Refresh from server"},
			},
		},
		{
			title: "Editing",
			items: []helpItem{
				{"tab", "Next field"},
				{"enter", "Save"},
				{"esc", "Discard"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"l", "Activity log"},
				{"T", "Cycle theme"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	title := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(12)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}

// renderAddModal renders the add-book form as a centered modal.
func (m Model) renderAddModal() string {
	styles := m.theme.Styles()

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Add Book"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Title and author are required."))
	b.WriteString("\n\n")

	for _, field := range []formField{fieldTitle, fieldAuthor, fieldYear} {
		label := padRight(field.label()+":", 8)
		if m.form.Focused() == field {
			label = styles.AccentText.Render(label)
		} else {
			label = styles.MutedText.Render(label)
		}
		b.WriteString(label)
		b.WriteString(m.form.FieldView(field))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.FaintText.Render("enter: save · tab: next field · esc: cancel"))
	if m.statusText != "" && m.statusLevel == statusWarn {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render(m.statusText))
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(56)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// Activity overlay

func (m *Model) initActivityViewport() {
	m.activityViewport = viewport.New(maxInt(m.width-4, 10), maxInt(m.height-4, 3))
	m.activityViewport.Style = lipgloss.NewStyle()
}

// updateActivityViewport refreshes the overlay dimensions and content.
func (m *Model) updateActivityViewport() {
	if m.activityViewport.Width == 0 {
		m.initActivityViewport()
	}
	m.activityViewport.Width = maxInt(m.width-4, 10)
	m.activityViewport.Height = maxInt(m.height-4, 3)
	m.activityViewport.SetContent(m.renderActivityContent())
}

// renderActivityContent formats the ring buffer entries, oldest first.
func (m Model) renderActivityContent() string {
	styles := m.theme.Styles()

	if m.ring == nil {
		return styles.MutedText.Render("Activity capture is not configured.")
	}
	entries := m.ring.Entries()
	if len(entries) == 0 {
		return styles.MutedText.Render("Nothing logged yet.")
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.FaintText.Render(e.Time.Format("15:04:05")))
		b.WriteString(" ")
		b.WriteString(levelStyle(e.Level, styles).Render(padRight(e.Level.CapitalString(), 5)))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(e.Message))
		if e.Fields != "" {
			b.WriteString(" ")
			b.WriteString(styles.MutedText.Render(e.Fields))
		}
	}
	return b.String()
}

// levelStyle returns the text style for a log level.
func levelStyle(level zapcore.Level, styles Styles) lipgloss.Style {
	switch level {
	case zapcore.DebugLevel:
		return styles.FaintText
	case zapcore.InfoLevel:
		return styles.SuccessText
	case zapcore.WarnLevel:
		return styles.WarningText
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return styles.DangerText
	default:
		return styles.InfoText
	}
}

// renderActivity renders the activity overlay with the captured log lines.
func (m Model) renderActivity() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	box := m.renderTitledBox("Activity", m.activityViewport.View(), m.width, m.height-1, true)

	hint := bg.Render("j/k", styles.AccentText) + bg.Sep(":") + bg.Render("Scroll", styles.MutedText) +
		bg.Spaces(2) +
		bg.Render("g/G", styles.AccentText) + bg.Sep(":") + bg.Render("Top/Bottom", styles.MutedText) +
		bg.Spaces(2) +
		bg.Render("esc", styles.AccentText) + bg.Sep(":") + bg.Render("Close", styles.MutedText)

	return box + "\n" + styles.Header.Width(m.width).Render(hint)
}
