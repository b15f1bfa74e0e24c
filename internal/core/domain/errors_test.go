package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrInvalidThreshold", ErrInvalidThreshold},
		{"ErrNotADirectory", ErrNotADirectory},
		{"ErrIndexExists", ErrIndexExists},
		{"ErrIndexClosed", ErrIndexClosed},
		{"ErrInvalidSettings", ErrInvalidSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrInvalidThreshold tests the message matches the original CLI wording
func TestErrInvalidThreshold(t *testing.T) {
	assert.Equal(t, "threshold must be between 0 and 100", ErrInvalidThreshold.Error())
	assert.False(t, errors.Is(ErrInvalidThreshold, ErrInvalidInput))
}

// TestErrors_Wrapping tests wrapped errors are still recognised
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("open index: %w", ErrIndexExists)

	assert.True(t, errors.Is(wrapped, ErrIndexExists))
	assert.False(t, errors.Is(wrapped, ErrIndexClosed))
	assert.Contains(t, wrapped.Error(), "temporary index already exists")
}
