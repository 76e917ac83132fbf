package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NotFoundHierarchy(t *testing.T) {
	assert.ErrorIs(t, ErrStoreNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrProductNotFound, ErrNotFound)
	assert.NotErrorIs(t, ErrStoreNotFound, ErrProductNotFound)
	assert.Equal(t, "store not found", ErrStoreNotFound.Error())
}

func Test_InvalidArgument(t *testing.T) {
	err := InvalidArgument("malformed id %q", "123")

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, `invalid argument: malformed id "123"`, err.Error())
}

func Test_ValidationError(t *testing.T) {
	err := NewValidationError(map[string]string{"name": "notblank", "location": "notblank"})

	require.Error(t, err)
	assert.ErrorIs(t, fmt.Errorf("create store: %w", err), ErrValidation)
	assert.Equal(t, "validation failed: location: notblank, name: notblank", err.Error())

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 2)
}

func Test_NewValidationError_Empty(t *testing.T) {
	assert.NoError(t, NewValidationError(nil))
	assert.NoError(t, NewValidationError(map[string]string{}))
}
