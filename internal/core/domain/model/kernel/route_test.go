package kernel_test

import (
	"testing"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteFromCodes(t *testing.T) {
	t.Run("valid route", func(t *testing.T) {
		route, err := kernel.RouteFromCodes("US", "EG")

		require.NoError(t, err)
		require.NoError(t, route.Validate())
		assert.Equal(t, "US", route.From().Code())
		assert.Equal(t, "EG", route.To().Code())
		assert.Equal(t, "US->EG", route.String())
	})

	t.Run("same origin and destination is rejected", func(t *testing.T) {
		_, err := kernel.RouteFromCodes("EG", "eg")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "origin and destination must differ")
	})

	t.Run("both codes are validated", func(t *testing.T) {
		_, err := kernel.RouteFromCodes("", "XX1")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewRoute_ZeroCountries(t *testing.T) {
	_, err := kernel.NewRoute(kernel.Country{}, kernel.Country{})

	require.ErrorIs(t, err, kernel.ErrCountryIsNotConstructed)
}

func TestRoute_ZeroValue(t *testing.T) {
	var route kernel.Route

	assert.Equal(t, kernel.ErrRouteIsNotConstructed, route.Validate())
}
