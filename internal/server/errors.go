package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/extract"
	"github.com/jonathan/job-board/internal/parsing"
	"github.com/jonathan/job-board/internal/schema"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrForbidden indicates the authenticated user's role may not perform the
// operation.
type ErrForbidden struct {
	Role string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("operation not allowed for role: %s", e.Role)
}

// ErrAlreadyApplied indicates the candidate already applied to the job.
type ErrAlreadyApplied struct{}

func (e *ErrAlreadyApplied) Error() string {
	return "you have already applied to this job"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrAlreadyApplied:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrForbidden:
		return http.StatusForbidden
	}

	// Processing pipeline errors carry their own taxonomy.
	var unsupportedErr *extract.UnsupportedTypeError
	var emptyErr *parsing.EmptyDocumentError
	var extractionErr *extract.ExtractionError
	var validationErr *schema.ValidationError
	var apiErr *parsing.APICallError
	switch {
	case errors.As(err, &unsupportedErr), errors.As(err, &emptyErr):
		return http.StatusBadRequest
	case errors.As(err, &extractionErr), errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
