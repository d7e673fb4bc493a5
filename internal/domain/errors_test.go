package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFound("post", 42)

	assert.Equal(t, "post 42 not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("load: %w", err)))
	assert.False(t, IsNotFound(errors.New("post 42 not found")))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "description", Message: "is required"}
	assert.Equal(t, "validation error on field 'description': is required", err.Error())
	assert.True(t, IsValidation(err))

	bare := &ValidationError{Message: "malformed body"}
	assert.Equal(t, "malformed body", bare.Error())
}

func TestRuleViolation(t *testing.T) {
	err := NewRuleViolation("you will have to wait %d %s", 3, "days")

	assert.Equal(t, "you will have to wait 3 days", err.Error())
	assert.True(t, IsRuleViolation(fmt.Errorf("insert: %w", err)))
	assert.False(t, IsStorage(err))
}

func TestNewStorageError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, NewStorageError("commit", nil))
	})

	t.Run("wraps cause", func(t *testing.T) {
		cause := errors.New("disk I/O error")
		err := NewStorageError("commit", cause)

		assert.True(t, IsStorage(err))
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "storage error during commit: disk I/O error", err.Error())
	})

	t.Run("does not double wrap", func(t *testing.T) {
		inner := NewStorageError("commit", errors.New("boom"))
		outer := NewStorageError("insert post", inner)
		assert.Same(t, inner, outer)
	})
}
