package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("team")
	assert.Equal(t, "team not found", err.Error())
	assert.True(t, errors.Is(err, ErrTeamNotFound))
	assert.False(t, errors.Is(err, ErrEmployeeNotFound))
	assert.True(t, IsNotFound(err))
}

func TestNotFoundErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading directory: %w", ErrTeamNotFound)
	assert.True(t, IsNotFound(wrapped))
	assert.True(t, errors.Is(wrapped, ErrTeamNotFound))
}

func TestAlreadyExistsError(t *testing.T) {
	assert.Equal(t, "team already exists with this name", ErrTeamExists.Error())
	assert.True(t, IsAlreadyExists(ErrTeamExists))
	assert.False(t, IsAlreadyExists(ErrTeamNotFound))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("name", "is required")
	assert.Equal(t, "validation error: name - is required", err.Error())
	assert.True(t, IsValidation(err))

	bare := &ValidationError{Message: "bad payload"}
	assert.Equal(t, "validation error: bad payload", bare.Error())
}

func TestAuthenticationError(t *testing.T) {
	assert.True(t, IsAuthentication(ErrInvalidCredentials))
	assert.False(t, IsAuthentication(ErrTeamNotFound))
}

func TestAPIErrorByStatus(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "team not found"}
	assert.Equal(t, "team not found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, &APIError{StatusCode: 404}))
	assert.False(t, errors.Is(err, &APIError{StatusCode: 409}))

	conflict := &APIError{StatusCode: 409, Message: "already a member"}
	assert.False(t, IsNotFound(conflict))
}

func TestAPIErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("failed to load team members: %w", &APIError{StatusCode: 404, Message: "gone"})
	assert.True(t, IsNotFound(wrapped))

	var apiErr *APIError
	assert.True(t, errors.As(wrapped, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
}
