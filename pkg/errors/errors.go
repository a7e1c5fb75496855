package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	// KindUnavailable means the gateway could not hand out a connection.
	KindUnavailable
	// KindQuery means a statement, procedure or function call failed.
	KindQuery
	KindUnauthorized
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindQuery:
		return "query"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the kind to an HTTP status. Everything except bad
// credentials is a 500, matching the legacy clients' expectations.
func (e *AppError) StatusCode() int {
	if e.Kind == KindUnauthorized {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Cause returns the wrapped error text, or the message when nothing is wrapped.
func (e *AppError) Cause() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func Unavailable(err error) *AppError {
	return &AppError{Kind: KindUnavailable, Message: "database unavailable", Err: err}
}

func Query(op string, err error) *AppError {
	return &AppError{Kind: KindQuery, Message: op, Err: err}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal server error", Err: err}
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"campo"`
	Message string `json:"mensaje"`
}

// ValidationError carries every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// Validation wraps field errors into an AppError.
func Validation(fields ...FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: "invalid request",
		Err:     &ValidationError{Fields: fields},
	}
}

// KindOf reports the kind of the first AppError in err's chain.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Fields returns the field errors carried by err, if any.
func Fields(err error) []FieldError {
	var verr *ValidationError
	if stderrors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

// As and Is re-export the standard helpers so callers need one import.
func As(err error, target any) bool { return stderrors.As(err, target) }

func Is(err, target error) bool { return stderrors.Is(err, target) }
