// Package contactform drives the WebDriverUniversity "Contact Us" form through
// Playwright and checks how the page reacts.
package contactform

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Field is the placeholder text of one contact form input.
type Field string

const (
	FirstName    Field = "First Name"
	LastName     Field = "Last Name"
	EmailAddress Field = "Email Address"
	Comments     Field = "Comments"
)

// Sample values that make a valid submission.
const (
	SampleFirstName    = "John"
	SampleLastName     = "Doe"
	SampleEmailAddress = "john_doe@mail.com"
	SampleComments     = "Just a test"
)

var canonicalFields = []Field{FirstName, LastName, EmailAddress, Comments}

// CanonicalFields returns the four form fields in page order.
func CanonicalFields() []Field {
	return slices.Clone(canonicalFields)
}

// Valid reports whether f is one of the four form fields.
func (f Field) Valid() bool {
	return slices.Contains(canonicalFields, f)
}

// Slug is the lower_snake form of the label, used in scenario names.
func (f Field) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(f)), " ", "_")
}

// FieldSet maps form fields to the text typed into them. Its keys are always a
// subset of the canonical fields and iteration follows page order.
type FieldSet struct {
	values map[Field]string
}

// NewFieldSet returns a set with all four fields holding the sample values.
// Every call returns an independent set.
func NewFieldSet() *FieldSet {
	return &FieldSet{values: map[Field]string{
		FirstName:    SampleFirstName,
		LastName:     SampleLastName,
		EmailAddress: SampleEmailAddress,
		Comments:     SampleComments,
	}}
}

// Set stores value for f, overriding any previous value.
func (s *FieldSet) Set(f Field, value string) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	if s.values == nil {
		s.values = make(map[Field]string, len(canonicalFields))
	}
	s.values[f] = value
	return nil
}

// Delete removes f from the set. Deleting an absent field is a no-op.
func (s *FieldSet) Delete(f Field) {
	delete(s.values, f)
}

// Get returns the value stored for f.
func (s *FieldSet) Get(f Field) (string, bool) {
	v, ok := s.values[f]
	return v, ok
}

// Has reports whether f is present.
func (s *FieldSet) Has(f Field) bool {
	_, ok := s.values[f]
	return ok
}

// Len returns the number of fields present.
func (s *FieldSet) Len() int {
	return len(s.values)
}

// Fields returns the present fields in page order.
func (s *FieldSet) Fields() []Field {
	fields := make([]Field, 0, len(s.values))
	for f := range s.All() {
		fields = append(fields, f)
	}
	return fields
}

// All yields the present fields and their values in page order.
func (s *FieldSet) All() iter.Seq2[Field, string] {
	return func(yield func(Field, string) bool) {
		for _, f := range canonicalFields {
			v, ok := s.values[f]
			if !ok {
				continue
			}
			if !yield(f, v) {
				return
			}
		}
	}
}
