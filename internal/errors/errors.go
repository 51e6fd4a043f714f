package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "with this name"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// APIError is returned by the portal client when the server answers with a
// non-2xx status. Message carries the server's error text when the response
// envelope had one, otherwise the calling operation's fallback string.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is enables errors.Is() comparison by status code
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// Entity Not Found Errors
var (
	ErrTeamNotFound       = &NotFoundError{Entity: "team"}
	ErrTeamMemberNotFound = &NotFoundError{Entity: "team member"}
	ErrEmployeeNotFound   = &NotFoundError{Entity: "employee"}
	ErrUserNotFound       = &NotFoundError{Entity: "user"}
	ErrAttendanceNotFound = &NotFoundError{Entity: "attendance record"}
)

// Already Exists Errors
var (
	ErrTeamExists       = &AlreadyExistsError{Entity: "team", Context: "with this name"}
	ErrTeamMemberExists = &AlreadyExistsError{Entity: "team member", Context: "for this employee"}
	ErrUserExists       = &AlreadyExistsError{Entity: "user", Context: "with this username"}
	ErrEmployeeExists   = &AlreadyExistsError{Entity: "employee", Context: "with this email"}
)

// Business Logic Errors
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrNotCheckedIn      = errors.New("no check-in recorded today")
	ErrInvalidRole       = errors.New("role must be member or leader")
)

// Authentication Errors
var (
	ErrInvalidCredentials = &AuthenticationError{Message: "invalid username or password"}
	ErrAdminRequired      = &AuthorizationError{Message: "admin privileges required"}
	ErrInactiveEmployee   = &AuthorizationError{Message: "employee not found or inactive"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError or a 404 APIError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
