// Package apperrors maps domain failures onto HTTP responses.
package apperrors

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"InsightDesk/internal/forecast"
	"InsightDesk/internal/tabular"
)

// ErrorType is the category of an error, used for status mapping and logs.
type ErrorType string

const (
	// TypeValidation indicates invalid input (HTTP 400)
	TypeValidation ErrorType = "validation"
	// TypeTooLarge indicates an upload over the configured limit (HTTP 413)
	TypeTooLarge ErrorType = "too_large"
	// TypeInternal indicates server-side error (HTTP 500)
	TypeInternal ErrorType = "internal"
)

// Error is a structured error with type, message, and context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Validation creates a new validation error.
func Validation(message string, cause error) *Error {
	return &Error{Type: TypeValidation, Message: message, Cause: cause, Context: map[string]any{}}
}

// Internal creates a new internal error.
func Internal(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause, Context: map[string]any{}}
}

// WithContext adds a context field (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Response is the JSON body sent to clients.
type Response struct {
	Error   string         `json:"error"`
	Type    ErrorType      `json:"type"`
	Context map[string]any `json:"context,omitempty"`
}

// ToResponse converts an Error to its JSON shape.
func (e *Error) ToResponse() Response {
	return Response{Error: e.Message, Type: e.Type, Context: e.Context}
}

// From classifies err. Hitting the body limit is TypeTooLarge even when
// wrapped. Domain validation failures become TypeValidation with the offending
// field or column in Context; anything unknown is internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
		return &Error{Type: TypeTooLarge, Message: "upload exceeds the size limit", Cause: err, Context: map[string]any{}}
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var fieldErr *forecast.FieldError
	if errors.As(err, &fieldErr) {
		return Validation(fieldErr.Error(), err).WithContext("field", fieldErr.Field)
	}

	var colErr *tabular.MissingColumnError
	if errors.As(err, &colErr) {
		return Validation(colErr.Error(), err).WithContext("column", colErr.Column)
	}

	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return Validation("malformed CSV: "+parseErr.Err.Error(), err).WithContext("line", parseErr.Line)
	}

	if errors.Is(err, tabular.ErrEmptyFile) {
		return Validation("uploaded file is empty", err)
	}

	return Internal("internal error", err)
}
