package validator

import (
	"testing"

	"github.com/cockroachdb/errors"
	ierr "github.com/flexprice/invoicing/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customerRequest struct {
	Email string `json:"email" validate:"required,email"`
	TaxID string `json:"tax_id,omitempty"`
}

func TestValidateRequest(t *testing.T) {
	require.NoError(t, ValidateRequest(customerRequest{Email: "a@b.com"}))

	err := ValidateRequest(customerRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.Contains(t, errors.GetAllHints(err), "Request validation failed")
}

func TestValidatorReportsJSONFieldNames(t *testing.T) {
	err := GetValidator().Struct(customerRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'email'")
}
