package validator

import (
	"errors"
	"sort"
	"strings"
)

// FieldErrors collects validation failures keyed by field path
// (json names, array indices included). All rule violations for a
// payload are gathered before being returned so callers can surface
// every problem at once. Invalid input is a result, not a panic.
type FieldErrors map[string][]string

func NewFieldErrors() FieldErrors {
	return make(FieldErrors)
}

// Add appends a message for the given field path
func (f FieldErrors) Add(path string, message string) {
	f[path] = append(f[path], message)
}

// Merge folds another set of field errors into this one
func (f FieldErrors) Merge(other FieldErrors) {
	for path, messages := range other {
		f[path] = append(f[path], messages...)
	}
}

// Any reports whether at least one field failed validation
func (f FieldErrors) Any() bool {
	return len(f) > 0
}

// Fields returns the failing field paths in stable order
func (f FieldErrors) Fields() []string {
	fields := make([]string, 0, len(f))
	for path := range f {
		fields = append(fields, path)
	}
	sort.Strings(fields)
	return fields
}

// ToDetails converts the collected errors into the reportable-details
// shape carried on marked validation errors
func (f FieldErrors) ToDetails() map[string]any {
	details := make(map[string]any, len(f))
	for path, messages := range f {
		details[path] = strings.Join(messages, "; ")
	}
	return details
}

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for _, path := range f.Fields() {
		parts = append(parts, path+": "+strings.Join(f[path], "; "))
	}
	return strings.Join(parts, ", ")
}

func errorsAs(err error, target any) bool {
	return errors.As(err, target)
}
