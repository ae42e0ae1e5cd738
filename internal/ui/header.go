package ui

import (
	"fmt"
	"strings"
	"time"
)

// renderMain renders the full UI: header, command bar, search line, table,
// status line.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderSearchLine())
	b.WriteString("\n")
	b.WriteString(m.renderBooks())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())

	return b.String()
}

// renderHeader renders the status bar with connection and catalog state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var parts []string

	parts = append(parts, bg.Render("bookstore", styles.Logo))

	if m.baseURL != "" {
		parts = append(parts, bg.Render(truncate(m.baseURL, 40), styles.FaintText))
	}

	switch {
	case !m.engine.Loaded() && m.engine.LoadErr() != nil:
		parts = append(parts,
			bg.Render("API "+classifyConnectionError(m.engine.LoadErr()), styles.DangerText.Bold(true)),
			bg.Render("Retrying...", styles.WarningText.Bold(true)),
		)
	case !m.engine.Loaded():
		parts = append(parts, bg.Render("Connecting...", styles.WarningText.Bold(true)))
	default:
		p := m.engine.Projection()
		parts = append(parts,
			bg.Render("Books:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", p.Total), styles.Text),
		)
		if label := syncLabel(m.engine.LastSync(), time.Now()); label != "" {
			parts = append(parts, bg.Render(label, styles.MutedText))
		}
		// A failed refresh after a good load means the data on screen is old.
		if m.engine.LoadErr() != nil {
			parts = append(parts,
				bg.Render("STALE", styles.DangerText.Bold(true))+bg.Space()+
					bg.Render(truncate(reasonText(m.engine.LoadErr()), 50), styles.DangerText),
			)
		}
	}

	if n := m.engine.InFlight(); n > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d in flight", n), styles.InfoText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// syncLabel formats the last successful sync time with a relative hint.
func syncLabel(last, now time.Time) string {
	if last.IsZero() {
		return ""
	}
	label := "synced " + last.Format("15:04:05")
	since := now.Sub(last)
	switch {
	case since < time.Minute:
		return label + " (now)"
	case since < time.Hour:
		return label + fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		return label + fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return label
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints for the focused area.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.focus {
	case focusSearch:
		commands = []cmd{
			{"enter", "Apply"},
			{"esc", "Clear"},
		}
	case focusEdit:
		commands = []cmd{
			{"tab", "Next field"},
			{"enter", "Save"},
			{"esc", "Discard"},
		}
	default: // focusList
		commands = []cmd{
			{"a", "Add"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"/", "Search"},
			{"r", "Refresh"},
			{"n/p", "Page"},
			{"l", "Activity"},
			{"?", "Help"},
			{"q", "Quit"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderSearchLine renders the title filter state under the command bar.
func (m Model) renderSearchLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var content string
	switch {
	case m.focus == focusSearch:
		content = bg.Render("Search:", styles.AccentText) + bg.Space() + m.searchInput.View()
	case m.engine.Search() != "":
		content = bg.Render("Search:", styles.MutedText) + bg.Space() +
			bg.Render("/"+m.engine.Search(), styles.AccentText) + bg.Spaces(2) +
			bg.Render("(/ edits, esc clears)", styles.FaintText)
	default:
		content = bg.Render("Press / to filter titles", styles.FaintText)
	}

	return styles.Header.Width(m.width).Render(content)
}

// renderStatusLine renders the outcome of the most recent action.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.statusText == "" {
		return styles.Header.Width(m.width).Render(bg.Render("Ready", styles.FaintText))
	}

	var style = styles.MutedText
	switch m.statusLevel {
	case statusSuccess:
		style = styles.SuccessText
	case statusWarn:
		style = styles.WarningText
	case statusError:
		style = styles.DangerText
	}

	return styles.Header.Width(m.width).Render(bg.Render(truncate(m.statusText, m.width-4), style))
}
