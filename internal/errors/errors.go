package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinels used with ErrorBuilder.Mark. Callers match them with errors.Is
// or the Is* helpers below.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrValidation       = errors.New("validation error")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrDatabase         = errors.New("database error")
	ErrSystem           = errors.New("system error")
)

const (
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeDatabase         = "database_error"
)

type classification struct {
	sentinel error
	code     string
	status   int
}

// classifications is checked in order; the first matching mark wins.
var classifications = []classification{
	{ErrValidation, ErrCodeValidation, http.StatusBadRequest},
	{ErrInvalidOperation, ErrCodeInvalidOperation, http.StatusBadRequest},
	{ErrNotFound, ErrCodeNotFound, http.StatusNotFound},
	{ErrAlreadyExists, ErrCodeAlreadyExists, http.StatusConflict},
	{ErrDatabase, ErrCodeDatabase, http.StatusInternalServerError},
	{ErrSystem, ErrCodeSystemError, http.StatusInternalServerError},
}

func classify(err error) classification {
	for _, c := range classifications {
		if errors.Is(err, c.sentinel) {
			return c
		}
	}
	return classification{ErrSystem, ErrCodeSystemError, http.StatusInternalServerError}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsDatabase checks if an error is a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// Code returns the machine readable code of err. Unmarked errors are system errors.
func Code(err error) string {
	return classify(err).code
}

func HTTPStatusFromErr(err error) int {
	return classify(err).status
}
