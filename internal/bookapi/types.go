package bookapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Book is one catalog record as the remote store returns it. The id is
// assigned by the store on create and never changes afterwards.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// Draft is an unsaved book headed for create. It carries no id; the store
// assigns one and echoes the full record back.
type Draft struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Year   int    `json:"year"`
}

// Patch is a partial update for an existing book. Nil fields are left out of
// the request body and keep their stored values.
type Patch struct {
	Title  *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Author *string `json:"author,omitempty" validate:"omitempty,min=1"`
	Year   *int    `json:"year,omitempty"`
}

// Normalize trims edge whitespace from the text fields so a value of spaces
// fails the blank check instead of slipping past it.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Author = strings.TrimSpace(d.Author)
	return d
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Year == nil
}

// Normalize trims edge whitespace from the set text fields.
func (p Patch) Normalize() Patch {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		p.Title = &t
	}
	if p.Author != nil {
		a := strings.TrimSpace(*p.Author)
		p.Author = &a
	}
	return p
}

// Merge returns b with the patch's set fields applied on top.
func (p Patch) Merge(b Book) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Year != nil {
		b.Year = *p.Year
	}
	return b
}

// use a single Validate instance; it caches struct metadata
var validate = validator.New()

// Validate reports whether the draft is complete enough to send.
func (d Draft) Validate() error {
	if err := validate.Struct(d); err != nil {
		return asValidationError(err)
	}
	return nil
}

// Validate reports whether the patch is safe to send. An empty patch is
// valid; fields that are set must not be blank.
func (p Patch) Validate() error {
	if err := validate.Struct(p); err != nil {
		return asValidationError(err)
	}
	return nil
}

// ValidationError names the first field that blocks a draft or patch from
// being sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func asValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate payload: %w", err)
	}
	fe := fieldErrs[0]
	reason := "is invalid"
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "min":
		reason = "must not be blank"
	}
	return &ValidationError{Field: strings.ToLower(fe.Field()), Reason: reason}
}
