package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownField is returned by UpdateField for a name that is not
	// one of the registration form's inputs.
	ErrUnknownField = errors.New("unknown form field")

	// ErrNotEditing is returned when a form that has already been
	// submitted is changed or submitted again without a Reset.
	ErrNotEditing = errors.New("form is not in the editing state")

	// ErrSubmitInProgress is returned for any change while a submit is
	// pending. It stands in for the disabled submit button.
	ErrSubmitInProgress = errors.New("form submission is in progress")
)

// CodeRequired marks a required field that was empty or whitespace.
const CodeRequired = "required"

// FieldError is the inline error shown next to one field.
type FieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldErrors maps a field's JSON name to its error.
type FieldErrors map[string]FieldError

// Names returns the failing field names, sorted.
func (fe FieldErrors) Names() []string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (fe FieldErrors) clone() FieldErrors {
	if fe == nil {
		return nil
	}
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		out[k] = v
	}
	return out
}

// ValidationError is returned by Submit when required fields are missing.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, name := range e.Fields.Names() {
		msgs = append(msgs, e.Fields[name].Message)
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// SubmitError is returned by Submit when the submitter fails. The form is
// back in the editing state with its values kept.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit failed: %v", e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
