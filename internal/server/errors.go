package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-analyzer/internal/llm"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrRunNotFound indicates no stored run has the requested ID
type ErrRunNotFound struct {
	RunID string
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run not found: %s", e.RunID)
}

// ErrPersistenceDisabled indicates the server runs without a database
var ErrPersistenceDisabled = errors.New("run persistence is not configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		notFound   *ErrRunNotFound
		credential *llm.CredentialError
		unknown    *llm.UnknownProviderError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &credential), errors.As(err, &unknown):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPersistenceDisabled):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
