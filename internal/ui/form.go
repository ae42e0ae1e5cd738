package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deniswachira/bookstore-ui/internal/catalog"
)

// formField indexes the book inputs in edit order.
type formField int

const (
	fieldTitle formField = iota
	fieldAuthor
	fieldYear
	fieldCount
)

// catalogField maps a form field to the session field it edits.
func (f formField) catalogField() catalog.Field {
	switch f {
	case fieldAuthor:
		return catalog.FieldAuthor
	case fieldYear:
		return catalog.FieldYear
	default:
		return catalog.FieldTitle
	}
}

func (f formField) label() string {
	switch f {
	case fieldAuthor:
		return "Author"
	case fieldYear:
		return "Year"
	default:
		return "Title"
	}
}

// bookForm bundles the three book inputs shared by the add modal and the
// inline row editor. It owns focus cycling; validation and persistence stay
// with the caller.
type bookForm struct {
	inputs [fieldCount]textinput.Model
	focus  formField
}

func newBookForm() bookForm {
	title := textinput.New()
	title.Placeholder = "Book title"
	title.CharLimit = 120
	title.Width = 40
	title.Prompt = ""

	author := textinput.New()
	author.Placeholder = "Author"
	author.CharLimit = 80
	author.Width = 30
	author.Prompt = ""

	year := textinput.New()
	year.Placeholder = "Year"
	year.CharLimit = 5
	year.Width = 6
	year.Prompt = ""

	f := bookForm{}
	f.inputs[fieldTitle] = title
	f.inputs[fieldAuthor] = author
	f.inputs[fieldYear] = year
	f.FocusField(fieldTitle)
	return f
}

// Reset clears all inputs and focuses the title field.
func (f *bookForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.FocusField(fieldTitle)
}

// SetValues prefills the inputs, cursor at the end of each.
func (f *bookForm) SetValues(title, author, year string) {
	f.inputs[fieldTitle].SetValue(title)
	f.inputs[fieldAuthor].SetValue(author)
	f.inputs[fieldYear].SetValue(year)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
}

// Values returns the trimmed input texts.
func (f *bookForm) Values() (title, author, year string) {
	title = strings.TrimSpace(f.inputs[fieldTitle].Value())
	author = strings.TrimSpace(f.inputs[fieldAuthor].Value())
	year = strings.TrimSpace(f.inputs[fieldYear].Value())
	return title, author, year
}

// Focused returns the field currently receiving input.
func (f *bookForm) Focused() formField {
	return f.focus
}

// FocusedValue returns the raw text of the focused field.
func (f *bookForm) FocusedValue() string {
	return f.inputs[f.focus].Value()
}

// FocusField moves focus to one field and blurs the rest.
func (f *bookForm) FocusField(field formField) tea.Cmd {
	f.focus = field
	var cmd tea.Cmd
	for i := range f.inputs {
		if formField(i) == field {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// CycleFocus moves focus forward or backward through the fields.
func (f *bookForm) CycleFocus(delta int) tea.Cmd {
	next := (int(f.focus) + delta + int(fieldCount)) % int(fieldCount)
	return f.FocusField(formField(next))
}

// Update routes a message to the focused input.
func (f *bookForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// SetWidths resizes the visible window of each input.
func (f *bookForm) SetWidths(title, author, year int) {
	f.inputs[fieldTitle].Width = maxInt(title, 4)
	f.inputs[fieldAuthor].Width = maxInt(author, 4)
	f.inputs[fieldYear].Width = maxInt(year, 4)
}

// FieldView returns the rendered input for one field.
func (f *bookForm) FieldView(field formField) string {
	return f.inputs[field].View()
}
