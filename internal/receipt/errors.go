package receipt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrReceiptNotFound is returned when no receipt is stored under an ID
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrInvalidSubmission is returned when a submitted document does not
	// have the shape of a receipt
	ErrInvalidSubmission = errors.New("invalid receipt")

	// ErrMalformedField is matched by every MalformedFieldError
	ErrMalformedField = errors.New("malformed receipt field")
)

// FieldError describes one field that failed submission validation
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists the fields that made a submission invalid.
// It matches ErrInvalidSubmission with errors.Is.
type ValidationError struct {
	Fields []FieldError
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", ErrInvalidSubmission, e.Err)
		}
		return ErrInvalidSubmission.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Reason))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidSubmission, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSubmission
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// MalformedFieldError reports a stored receipt field that could not be parsed
// into the value needed to score it. Field is the JSON path of the field,
// e.g. "total" or "items[2].price".
type MalformedFieldError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *MalformedFieldError) Is(target error) bool {
	return target == ErrMalformedField
}

func (e *MalformedFieldError) Unwrap() error {
	return e.Err
}
