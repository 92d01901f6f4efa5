package apperrors

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"InsightDesk/internal/forecast"
	"InsightDesk/internal/tabular"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantType   ErrorType
		wantStatus int
		wantKey    string
		wantValue  any
	}{
		{
			name:       "field error",
			err:        fmt.Errorf("build: %w", &forecast.FieldError{Field: "traffic", Reason: "must be positive"}),
			wantType:   TypeValidation,
			wantStatus: http.StatusBadRequest,
			wantKey:    "field",
			wantValue:  "traffic",
		},
		{
			name:       "missing column",
			err:        &tabular.MissingColumnError{Column: "comment_text"},
			wantType:   TypeValidation,
			wantStatus: http.StatusBadRequest,
			wantKey:    "column",
			wantValue:  "comment_text",
		},
		{
			name:       "empty file",
			err:        tabular.ErrEmptyFile,
			wantType:   TypeValidation,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed csv",
			err:        fmt.Errorf("read row: %w", &csv.ParseError{StartLine: 3, Line: 3, Column: 1, Err: csv.ErrFieldCount}),
			wantType:   TypeValidation,
			wantStatus: http.StatusBadRequest,
			wantKey:    "line",
			wantValue:  3,
		},
		{
			name:       "body limit",
			err:        fmt.Errorf("read row: %w", echo.ErrStatusRequestEntityTooLarge),
			wantType:   TypeTooLarge,
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "body limit behind a validation error",
			err:        Validation("a CSV upload is required", fmt.Errorf("multipart: NextPart: %w", echo.ErrStatusRequestEntityTooLarge)),
			wantType:   TypeTooLarge,
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "unknown",
			err:        errors.New("disk on fire"),
			wantType:   TypeInternal,
			wantStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := From(tt.err)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus())
			assert.ErrorIs(t, got, tt.err)
			if tt.wantKey != "" {
				assert.Equal(t, tt.wantValue, got.Context[tt.wantKey])
			}
		})
	}
}

func TestFrom_PassesThroughStructured(t *testing.T) {
	orig := &Error{Type: TypeTooLarge, Message: "upload too large"}
	assert.Same(t, orig, From(orig))
	assert.Equal(t, http.StatusRequestEntityTooLarge, orig.HTTPStatus())
	assert.Nil(t, From(nil))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "validation: bad", Validation("bad", nil).Error())
	assert.Equal(t, "internal: boom: cause", Internal("boom", errors.New("cause")).Error())

	resp := Validation("bad", nil).WithContext("field", "x").ToResponse()
	assert.Equal(t, "bad", resp.Error)
	assert.Equal(t, "x", resp.Context["field"])
}
