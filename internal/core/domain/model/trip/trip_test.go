package trip_test

import (
	"testing"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/trip"
	"crowdship/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func route(t *testing.T) kernel.Route {
	t.Helper()
	r, err := kernel.RouteFromCodes("DE", "EG")
	require.NoError(t, err)
	return r
}

func newTrip(t *testing.T, space float64) *trip.Trip {
	t.Helper()
	tr, err := trip.NewTrip(kernel.NewUUID(), kernel.NewUUID(), route(t), now.Add(7*24*time.Hour), space, now)
	require.NoError(t, err)
	return tr
}

func TestNewTrip(t *testing.T) {
	t.Run("creates a trip under review", func(t *testing.T) {
		travelerID := kernel.NewUUID()
		departure := now.Add(72 * time.Hour)

		tr, err := trip.NewTrip(kernel.NewUUID(), travelerID, route(t), departure, 50, now)

		require.NoError(t, err)
		require.NoError(t, tr.Validate())
		assert.True(t, tr.IsOwnedBy(travelerID))
		assert.Equal(t, trip.UnderReview, tr.Status())
		assert.Equal(t, []trip.Status{trip.UnderReview}, tr.History())
		assert.Equal(t, departure, tr.DepartureDate())
		assert.InDelta(t, 50.0, tr.Capacity().Available(), 0.0001)
		assert.Zero(t, tr.Capacity().Consumed())
		assert.Empty(t, tr.ShopperIDs())
		assert.Empty(t, tr.ShipmentIDs())
	})

	t.Run("rejects departure in the past or now", func(t *testing.T) {
		for _, departure := range []time.Time{now, now.Add(-24 * time.Hour)} {
			_, err := trip.NewTrip(kernel.NewUUID(), kernel.NewUUID(), route(t), departure, 10, now)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("rejects space outside 0..100", func(t *testing.T) {
		for _, space := range []float64{-1, 101} {
			_, err := trip.NewTrip(kernel.NewUUID(), kernel.NewUUID(), route(t), now.Add(time.Hour), space, now)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("rejects missing route and identifiers", func(t *testing.T) {
		_, err := trip.NewTrip(kernel.UUID{}, kernel.UUID{}, kernel.Route{}, now.Add(time.Hour), 10, now)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, kernel.ErrRouteIsNotConstructed)
	})
}

func TestTrip_Carry(t *testing.T) {
	t.Run("reserves space and records the shipment", func(t *testing.T) {
		tr := newTrip(t, 50)
		shipmentID, shopperID := kernel.NewUUID(), kernel.NewUUID()

		err := tr.Carry(shipmentID, shopperID, 40)

		require.NoError(t, err)
		assert.InDelta(t, 10.0, tr.Capacity().Available(), 0.0001)
		assert.InDelta(t, 40.0, tr.Capacity().Consumed(), 0.0001)
		assert.Equal(t, trip.OnTravel, tr.Status())
		assert.Equal(t, []kernel.UUID{shipmentID}, tr.ShipmentIDs())
		assert.True(t, tr.HasShopper(shopperID))
	})

	t.Run("second shipment of the same shopper keeps one shopper entry", func(t *testing.T) {
		tr := newTrip(t, 50)
		shopperID := kernel.NewUUID()

		require.NoError(t, tr.Carry(kernel.NewUUID(), shopperID, 10))
		require.NoError(t, tr.Carry(kernel.NewUUID(), shopperID, 10))

		assert.Len(t, tr.ShopperIDs(), 1)
		assert.Len(t, tr.ShipmentIDs(), 2)
		assert.Equal(t, []trip.Status{trip.UnderReview, trip.OnTravel}, tr.History())
	})

	t.Run("overweight leaves the trip unchanged", func(t *testing.T) {
		tr := newTrip(t, 5)

		err := tr.Carry(kernel.NewUUID(), kernel.NewUUID(), 5.5)

		require.ErrorIs(t, err, errs.ErrRuleViolation)
		assert.InDelta(t, 5.0, tr.Capacity().Available(), 0.0001)
		assert.Equal(t, trip.UnderReview, tr.Status())
		assert.Empty(t, tr.ShipmentIDs())
	})

	t.Run("same shipment cannot be carried twice", func(t *testing.T) {
		tr := newTrip(t, 50)
		shipmentID := kernel.NewUUID()
		require.NoError(t, tr.Carry(shipmentID, kernel.NewUUID(), 1))

		err := tr.Carry(shipmentID, kernel.NewUUID(), 1)

		require.ErrorIs(t, err, errs.ErrRuleViolation)
		assert.InDelta(t, 1.0, tr.Capacity().Consumed(), 0.0001)
	})

	t.Run("completed trip cannot carry", func(t *testing.T) {
		tr := newTrip(t, 50)
		require.NoError(t, tr.Carry(kernel.NewUUID(), kernel.NewUUID(), 1))
		require.NoError(t, tr.Complete())

		require.ErrorIs(t, tr.EnsureCanCarry(1), errs.ErrRuleViolation)
	})
}

func TestTrip_Update(t *testing.T) {
	t.Run("updates departure and space", func(t *testing.T) {
		tr := newTrip(t, 50)
		departure := now.Add(10 * 24 * time.Hour)
		space := 80.0

		err := tr.Update(trip.Patch{DepartureDate: &departure, AvailableSpace: &space}, now)

		require.NoError(t, err)
		assert.Equal(t, departure, tr.DepartureDate())
		assert.InDelta(t, 80.0, tr.Capacity().Available(), 0.0001)
	})

	t.Run("invalid patch leaves the trip unchanged", func(t *testing.T) {
		tr := newTrip(t, 50)
		past := now.Add(-time.Hour)
		space := 120.0

		err := tr.Update(trip.Patch{DepartureDate: &past, AvailableSpace: &space}, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.InDelta(t, 50.0, tr.Capacity().Available(), 0.0001)
		assert.Equal(t, now.Add(7*24*time.Hour), tr.DepartureDate())
	})

	t.Run("locked once on travel, completed or cancelled", func(t *testing.T) {
		onTravel := newTrip(t, 50)
		require.NoError(t, onTravel.Carry(kernel.NewUUID(), kernel.NewUUID(), 1))
		completed := newTrip(t, 50)
		require.NoError(t, completed.Carry(kernel.NewUUID(), kernel.NewUUID(), 1))
		require.NoError(t, completed.Complete())
		cancelled := newTrip(t, 50)
		require.NoError(t, cancelled.Cancel())

		space := 10.0
		for _, tr := range []*trip.Trip{onTravel, completed, cancelled} {
			require.ErrorIs(t, tr.Update(trip.Patch{AvailableSpace: &space}, now), trip.ErrTripIsLocked, tr.Status().String())
		}
	})
}

func TestTrip_EnsureDeletable(t *testing.T) {
	tr := newTrip(t, 50)
	require.NoError(t, tr.EnsureDeletable())

	require.NoError(t, tr.Publish())
	require.NoError(t, tr.EnsureDeletable())

	require.NoError(t, tr.Carry(kernel.NewUUID(), kernel.NewUUID(), 5))
	require.ErrorIs(t, tr.EnsureDeletable(), trip.ErrTripNotDeletable)

	require.NoError(t, tr.Complete())
	require.ErrorIs(t, tr.EnsureDeletable(), trip.ErrTripNotDeletable)

	cancelled := newTrip(t, 50)
	require.NoError(t, cancelled.Cancel())
	require.NoError(t, cancelled.EnsureDeletable())
}

func TestTrip_StatusOperations(t *testing.T) {
	t.Run("publish only from under review", func(t *testing.T) {
		tr := newTrip(t, 50)

		require.NoError(t, tr.Publish())
		assert.Equal(t, trip.Publishing, tr.Status())
		require.ErrorIs(t, tr.Publish(), errs.ErrRuleViolation)
	})

	t.Run("complete only on travel", func(t *testing.T) {
		tr := newTrip(t, 50)

		require.ErrorIs(t, tr.Complete(), errs.ErrRuleViolation)
	})

	t.Run("cancel not allowed once on travel", func(t *testing.T) {
		tr := newTrip(t, 50)
		require.NoError(t, tr.Carry(kernel.NewUUID(), kernel.NewUUID(), 5))

		require.ErrorIs(t, tr.Cancel(), errs.ErrRuleViolation)
		assert.Equal(t, trip.OnTravel, tr.Status())
	})
}

func TestTrip_EnsureReviewableBy(t *testing.T) {
	shopperID := kernel.NewUUID()

	t.Run("shopper must be on the trip", func(t *testing.T) {
		tr := newTrip(t, 50)
		require.NoError(t, tr.Carry(kernel.NewUUID(), shopperID, 5))

		require.ErrorIs(t, tr.EnsureReviewableBy(kernel.NewUUID()), errs.ErrAccessDenied)
		require.NoError(t, tr.EnsureReviewableBy(shopperID))
	})

	t.Run("trip must have started", func(t *testing.T) {
		tr, err := trip.RestoreTrip(trip.RestoreParams{
			ID:             kernel.NewUUID(),
			TravelerID:     kernel.NewUUID(),
			Route:          route(t),
			DepartureDate:  now.Add(time.Hour),
			AvailableSpace: 40,
			ConsumedSpace:  10,
			History:        []trip.Status{trip.UnderReview},
			ShopperIDs:     []kernel.UUID{shopperID},
		})
		require.NoError(t, err)

		require.ErrorIs(t, tr.EnsureReviewableBy(shopperID), trip.ErrTripNotReviewable)
	})

	t.Run("attaching the same review twice is a no-op", func(t *testing.T) {
		tr := newTrip(t, 50)
		reviewID := kernel.NewUUID()

		require.NoError(t, tr.AttachReview(reviewID))
		require.NoError(t, tr.AttachReview(reviewID))
		assert.Equal(t, []kernel.UUID{reviewID}, tr.ReviewIDs())
	})
}

func TestRestoreTrip(t *testing.T) {
	t.Run("rejects an inconsistent capacity", func(t *testing.T) {
		_, err := trip.RestoreTrip(trip.RestoreParams{
			ID:             kernel.NewUUID(),
			TravelerID:     kernel.NewUUID(),
			Route:          route(t),
			AvailableSpace: 70,
			ConsumedSpace:  40,
			History:        []trip.Status{trip.UnderReview, trip.OnTravel},
		})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("current status is the last history entry", func(t *testing.T) {
		tr, err := trip.RestoreTrip(trip.RestoreParams{
			ID:             kernel.NewUUID(),
			TravelerID:     kernel.NewUUID(),
			Route:          route(t),
			DepartureDate:  now.Add(-time.Hour),
			AvailableSpace: 30,
			ConsumedSpace:  40,
			History:        []trip.Status{trip.UnderReview, trip.OnTravel},
			Version:        2,
		})

		require.NoError(t, err)
		assert.Equal(t, trip.OnTravel, tr.Status())
		assert.Equal(t, 2, tr.Version())
	})

	t.Run("requires history", func(t *testing.T) {
		_, err := trip.RestoreTrip(trip.RestoreParams{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
