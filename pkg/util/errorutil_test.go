package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	err := NewConflict("already finalized", map[string]any{"job_id": "j1"})
	domainErr := ToDomainError(err)
	assert.Equal(t, CodeConflict, domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
	assert.Equal(t, "j1", domainErr.Details["job_id"])
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))
	assert.Equal(t, CodeInternal, domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, "internal server error", domainErr.Message)
}

func TestToDomainErrorUnwrapsWrapped(t *testing.T) {
	inner := NewNotFound("ticket", nil)
	wrapped := fmt.Errorf("loading view: %w", inner)
	domainErr := ToDomainError(wrapped)
	assert.Equal(t, CodeNotFound, domainErr.Code)
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("ticket", nil)))
	assert.True(t, IsConflict(NewConflict("dup", nil)))
	assert.True(t, IsValidation(NewValidationError("bad", nil)))
	assert.False(t, IsNotFound(NewConflict("dup", nil)))
	assert.False(t, IsConflict(errors.New("plain")))
}

func TestIntegrityErrorUnwraps(t *testing.T) {
	cause := errors.New("insert failed")
	err := NewIntegrityError("status transition append failed", cause)
	require.True(t, IsCode(err, CodeIntegrity))
	assert.ErrorIs(t, err, cause)

	domainErr := ToDomainError(err)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
}
