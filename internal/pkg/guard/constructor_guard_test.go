package guard_test

import (
	"errors"
	"testing"

	"crowdship/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("constructed_guard_accepts_any_error", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("capacity must be created via NewCapacity")

		// When
		err := g.Validate(expected)

		// Then
		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type rating struct {
		value int
		guard guard.ConstructorGuard
	}
	errRatingNotConstructed := errors.New("rating must be created via newRating")

	newRating := func(v int) (rating, error) {
		if v < 1 || v > 5 {
			return rating{}, errors.New("rating must be between 1 and 5")
		}
		return rating{value: v, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_is_valid", func(t *testing.T) {
		r, err := newRating(4)

		require.NoError(t, err)
		require.NoError(t, r.guard.Validate(errRatingNotConstructed))
		assert.Equal(t, 4, r.value)
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		r, err := newRating(7)

		require.Error(t, err)
		assert.Equal(t, errRatingNotConstructed, r.guard.Validate(errRatingNotConstructed))
	})
}
