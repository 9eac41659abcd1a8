// Package faults defines the registry error taxonomy shared by every domain package.
// Errors carry a kind (not found, validation, conflict, backend), a machine-readable
// code and, for field-level problems, the name of the offending field.
package faults

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error for status mapping.
type Kind int

// Error kinds.
const (
	KindBackend Kind = iota
	KindNotFound
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "backend"
	}
}

// Status returns the HTTP status associated with the kind.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified registry error.
// Field is empty for errors that do not concern a single field.
type Error struct {
	Kind    Kind
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same kind and code.
// An empty target code matches any code of the kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

// WithField returns a copy of the error bound to field.
func (e *Error) WithField(field string) *Error {
	c := *e
	c.Field = field
	return &c
}

// Wrap returns a copy of the error carrying cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

// NotFound creates a not-found error.
func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// Validation creates a validation error for field. Pass an empty field for
// errors spanning the whole resource.
func Validation(field, code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Field: field, Message: message}
}

// Conflict creates a conflict error.
func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

// Backend wraps an unexpected persistence or transport failure.
func Backend(format string, args ...any) *Error {
	return &Error{Kind: KindBackend, Code: "backend-failure", Message: "backend failure", Err: fmt.Errorf(format, args...)}
}

// Sentinels for matching on kind alone.
var (
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrValidation = &Error{Kind: KindValidation}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrBackend    = &Error{Kind: KindBackend}
)

// List groups several errors of the same request, typically field validation errors.
type List []*Error

func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the members so errors.Is and errors.As see every entry.
func (l List) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns nil for an empty list, the single member for a list of one
// and the list itself otherwise.
func (l List) Err() error {
	switch len(l) {
	case 0:
		return nil
	case 1:
		return l[0]
	default:
		return l
	}
}

// Status maps any error to an HTTP status. Unclassified errors are backend failures.
func Status(err error) int {
	var l List
	if errors.As(err, &l) && len(l) > 0 {
		return l[0].Kind.Status()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind.Status()
	}
	return http.StatusInternalServerError
}

// Entries flattens err into its classified members.
func Entries(err error) []*Error {
	var l List
	if errors.As(err, &l) {
		return l
	}
	var e *Error
	if errors.As(err, &e) {
		return []*Error{e}
	}
	return nil
}
