// Package story contains the story record collected from the user
// and sent to the webhook.
package story

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ErrEmptyField is returned when a required field is empty after trimming.
var ErrEmptyField = errors.New("field cannot be empty")

// Record is a story to be published.
type Record struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl"`
}

// Field describes a single required field of the Record.
type Field struct {
	Key    string // JSON key
	Label  string // human-readable name, used in errors and summary
	Prompt string

	get func(Record) string
	set func(*Record, string)
}

// Get returns the value of the field in the record.
func (f Field) Get(r Record) string { return f.get(r) }

// Set sets the value of the field in the record.
func (f Field) Set(r *Record, v string) { f.set(r, v) }

// Fields lists the record fields in the order they are prompted.
var Fields = []Field{
	{
		Key:    "title",
		Label:  "Title",
		Prompt: "📝 Enter story title: ",
		get:    func(r Record) string { return r.Title },
		set:    func(r *Record, v string) { r.Title = v },
	},
	{
		Key:    "excerpt",
		Label:  "Excerpt",
		Prompt: "📄 Enter story excerpt: ",
		get:    func(r Record) string { return r.Excerpt },
		set:    func(r *Record, v string) { r.Excerpt = v },
	},
	{
		Key:    "url",
		Label:  "URL",
		Prompt: "🔗 Enter story URL: ",
		get:    func(r Record) string { return r.URL },
		set:    func(r *Record, v string) { r.URL = v },
	},
	{
		Key:    "imageUrl",
		Label:  "Image URL",
		Prompt: "🖼️  Enter image URL: ",
		get:    func(r Record) string { return r.ImageURL },
		set:    func(r *Record, v string) { r.ImageURL = v },
	},
}

// Validate checks that every field is non-empty after trimming.
func (r Record) Validate() error {
	empty, found := lo.Find(Fields, func(f Field) bool {
		return strings.TrimSpace(f.Get(r)) == ""
	})
	if found {
		return &FieldError{Field: empty}
	}
	return nil
}

// FieldError reports an invalid field.
type FieldError struct {
	Field Field
}

// Error returns a message in form "<Label> cannot be empty".
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s cannot be empty", e.Field.Label)
}

// Unwrap returns ErrEmptyField.
func (e *FieldError) Unwrap() error { return ErrEmptyField }
