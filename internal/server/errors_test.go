package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/job-board/internal/extract"
	"github.com/jonathan/job-board/internal/parsing"
	"github.com/jonathan/job-board/internal/schema"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"email already exists", &ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{"already applied", &ErrAlreadyApplied{}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "resume_id", Message: "resume not found"}, http.StatusBadRequest},
		{"forbidden", &ErrForbidden{Role: "candidate"}, http.StatusForbidden},
		{"unsupported file type", &extract.UnsupportedTypeError{FileType: "txt"}, http.StatusBadRequest},
		{"empty document", &parsing.EmptyDocumentError{Path: "/tmp/a.pdf"}, http.StatusBadRequest},
		{"extraction failure", &extract.ExtractionError{FileType: "pdf", Message: "corrupt"}, http.StatusUnprocessableEntity},
		{"schema validation", &schema.ValidationError{Message: "missing skills"}, http.StatusUnprocessableEntity},
		{"api call failure", &parsing.APICallError{Message: "quota exhausted"}, http.StatusBadGateway},
		{"wrapped api call failure", fmt.Errorf("processing: %w", &parsing.APICallError{Message: "timeout"}), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrForbidden_Message(t *testing.T) {
	err := &ErrForbidden{Role: "candidate"}
	assert.Contains(t, err.Error(), "candidate")
}
