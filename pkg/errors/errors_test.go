package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	err := NewAppError(CodeConflict, "already exists", cause)

	assert.Equal(t, "already exists: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid verification code", ErrInvalidOTP.Error())
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", ErrInvalidCredentials)

	assert.Equal(t, CodeInvalidCredentials, CodeOf(wrapped))
	assert.Equal(t, CodeValidation, CodeOf(Validation("name is required", nil)))
	assert.Empty(t, CodeOf(errors.New("plain")))
	assert.Empty(t, CodeOf(nil))
}
