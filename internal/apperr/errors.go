package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrUnauthorized is returned when no identity is attached to a call.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when an identity does not own the resource or lacks the admin role.
	// It wraps ErrUnauthorized so callers can check either.
	ErrForbidden = fmt.Errorf("%w: access denied", ErrUnauthorized)
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness rule would be broken.
	ErrConflict = errors.New("conflict")
	// ErrInvalidTransition is returned when a status change is not allowed from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError carries field-level messages for input that failed its schema.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

// NewValidation builds a ValidationError with a single message.
func NewValidation(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether the field has at least one message.
func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// AsValidation unwraps a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// HTTPStatus maps a domain error to its HTTP status code.
func HTTPStatus(err error) int {
	if _, ok := AsValidation(err); ok {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Code returns a stable machine-readable code for err.
func Code(err error) string {
	if _, ok := AsValidation(err); ok {
		return "VALIDATION_FAILED"
	}
	switch {
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrInvalidTransition):
		return "INVALID_TRANSITION"
	default:
		return "INTERNAL_ERROR"
	}
}
