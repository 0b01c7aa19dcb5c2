package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestMarkedErrorsMatchSentinels(t *testing.T) {
	err := NewError("invoice not found").
		WithHint("Invoice 1234567890 does not exist").
		Mark(ErrNotFound)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromErr(err))

	wrapped := fmt.Errorf("failed to get invoice: %w", err)
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromErr(wrapped))
}

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", NewError("bad").Mark(ErrValidation), http.StatusBadRequest},
		{"invalid operation", NewError("bad").Mark(ErrInvalidOperation), http.StatusBadRequest},
		{"already exists", NewError("dup").Mark(ErrAlreadyExists), http.StatusConflict},
		{"database", WithError(errors.New("conn reset")).Mark(ErrDatabase), http.StatusInternalServerError},
		{"unmarked", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, Code(NewError("missing").Mark(ErrNotFound)))
	assert.Equal(t, ErrCodeSystemError, Code(errors.New("boom")))

	// validation is reported even when a database mark is also present
	both := errors.Mark(NewError("bad row").Mark(ErrDatabase), ErrValidation)
	assert.Equal(t, ErrCodeValidation, Code(both))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromErr(both))
}

func TestBuilderKeepsHintsAndDetails(t *testing.T) {
	err := NewErrorf("line item %d invalid", 2).
		WithHint("Quantity must be non negative").
		WithReportableDetails(map[string]any{"index": 2}).
		Mark(ErrValidation)

	assert.Contains(t, errors.GetAllHints(err), "Quantity must be non negative")
	assert.NotEmpty(t, errors.GetAllSafeDetails(err))
	assert.True(t, IsValidation(err))
}
