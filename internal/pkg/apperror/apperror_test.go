package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_UnwrapsToKind(t *testing.T) {
	errTaken := New(ErrConflict, "already checked in today")

	assert.Equal(t, "already checked in today", errTaken.Error())
	assert.ErrorIs(t, errTaken, ErrConflict)
	assert.False(t, errors.Is(errTaken, ErrNotFound))
}

func TestMessage(t *testing.T) {
	errMissing := New(ErrNotFound, "leave request not found")

	wrapped := fmt.Errorf("decide leave: %w", errMissing)
	assert.Equal(t, "leave request not found", Message(wrapped))
	assert.ErrorIs(t, wrapped, ErrNotFound)

	plain := errors.New("connection reset")
	assert.Equal(t, "connection reset", Message(plain))
}
