package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomy(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name    string
		err     error
		kind    error
		status  int
		message string
	}{
		{"auth", Auth("Login required"), ErrAuth, http.StatusUnauthorized, "Login required"},
		{"validation", Validation("No file selected."), ErrValidation, http.StatusBadRequest, "No file selected."},
		{"storage", Storage(cause, "Failed to submit vote."), ErrStorage, http.StatusInternalServerError, "Failed to submit vote."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.kind))
			assert.Equal(t, tt.status, Status(tt.err))
			assert.Equal(t, tt.message, Message(tt.err))
		})
	}
}

func TestStorageWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage(cause, "Failed to submit vote.")

	assert.True(t, errors.Is(err, cause), "underlying fault stays reachable for logs")
	assert.NotContains(t, Message(err), "connection refused", "cause never leaks into responses")
}

func TestUnknownErrorDefaults(t *testing.T) {
	err := errors.New("some unexpected thing")
	assert.Equal(t, http.StatusInternalServerError, Status(err))
	assert.Equal(t, "Something went wrong", Message(err))
}
