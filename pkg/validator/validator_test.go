package validator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/totpgate/pkg/validator"
)

type request struct {
	Identity string `json:"identity" validate:"required,max=8"`
	Code     string `json:"code,omitempty" validate:"max=6"`
	Internal string `json:"-"`
	Plain    string `validate:"omitempty,numeric"`
}

func TestV10Validator_Validate(t *testing.T) {
	t.Parallel()
	v := validator.MustNew()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, v.Validate(request{Identity: "alice", Code: "123456"}))
	})

	t.Run("field errors keyed by json name", func(t *testing.T) {
		t.Parallel()
		err := v.Validate(request{Code: strings.Repeat("1", 7), Plain: "x"})
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))

		var ve validator.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Len(t, ve, 3)
		assert.Contains(t, ve, "identity")
		assert.Contains(t, ve, "code")
		assert.Contains(t, ve, "Plain")
		assert.Contains(t, ve["identity"], "required")
		assert.Contains(t, err.Error(), `"identity"`)
	})

	t.Run("non-struct input", func(t *testing.T) {
		t.Parallel()
		err := v.Validate("alice")
		require.Error(t, err)
		assert.False(t, validator.IsValidationError(err))
	})
}

func TestValidationError_Empty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "validation error", validator.ValidationError{}.Error())
}
