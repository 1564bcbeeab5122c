package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := fmt.Errorf("column missing")
	err := NewInternal(cause)

	assert.Contains(t, err.Error(), "internal server error")
	assert.Contains(t, err.Error(), "column missing")
	assert.Equal(t, cause, err.Unwrap())
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFound("booking", nil)
	assert.Equal(t, "booking not found", err.Message)
	assert.Equal(t, ErrNotFound, err.Code)
}

func TestForbiddenDefaultsMessage(t *testing.T) {
	assert.Equal(t, "permission denied", NewForbidden("").Message)
	assert.Equal(t, "custom", NewForbidden("custom").Message)
}

func TestInvalidTransitionMessage(t *testing.T) {
	err := NewInvalidTransition("completed", "cancelled")
	assert.Equal(t, "cannot change booking status from completed to cancelled", err.Message)
	assert.Equal(t, ErrInvalidTransition, err.Code)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrValidation, CodeOf(NewValidation("bad", nil)))
	assert.Equal(t, ErrConflict, CodeOf(NewConflict("clash", nil)))
	assert.Equal(t, ErrInternal, CodeOf(fmt.Errorf("plain error")))
	assert.Equal(t, ErrInternal, CodeOf(nil))
}

func TestCodeOfWrappedError(t *testing.T) {
	inner := NewNotFound("patient", nil)
	wrapped := fmt.Errorf("loading profile: %w", inner)

	assert.Equal(t, ErrNotFound, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, ErrNotFound))
	assert.False(t, IsCode(wrapped, ErrForbidden))
}
