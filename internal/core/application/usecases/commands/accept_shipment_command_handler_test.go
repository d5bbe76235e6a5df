package commands_test

import (
	"errors"
	"testing"
	"time"

	"crowdship/internal/core/application/usecases/commands"
	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/domain/model/trip"
	"crowdship/internal/core/domain/services"
	"crowdship/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	travelerID := kernel.NewUUID()
	sh := newTestShipment(t, kernel.NewUUID(), 40, testNow.Add(10*24*time.Hour))
	tr := newTestTrip(t, travelerID, testNow.Add(5*24*time.Hour), 50)

	cmd, err := commands.NewAcceptShipmentCommand(travelerID, sh.ID(), tr.ID())
	require.NoError(t, err)

	trips := new(MockTripRepository)
	shipments := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(trips).Once(),
		uow.On("ShipmentRepository").Return(shipments).Once(),
		trips.On("GetForUpdate", ctx, tr.ID()).Return(tr, nil).Once(),
		shipments.On("GetForUpdate", ctx, sh.ID()).Return(sh, nil).Once(),
		trips.On("Update", ctx, mock.AnythingOfType("*trip.Trip")).Return(nil).Once(),
		shipments.On("Update", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptShipmentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.InDelta(t, 10, tr.Capacity().Available(), 1e-9)
	assert.InDelta(t, 40, tr.Capacity().Consumed(), 1e-9)
	assert.Equal(t, trip.OnTravel, tr.Status())
	assert.True(t, tr.HasShopper(sh.ShopperID()))
	assert.Equal(t, shipment.AcceptedByTraveler, sh.Status())
	require.NotNil(t, sh.TripID())
	assert.True(t, sh.TripID().IsEqual(tr.ID()))
	trips.AssertExpectations(t)
	shipments.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAcceptShipmentCommandHandler_Handle_TripOfAnotherTraveler(t *testing.T) {
	ctx := t.Context()
	tr := newTestTrip(t, kernel.NewUUID(), testNow.Add(5*24*time.Hour), 50)
	cmd, err := commands.NewAcceptShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), tr.ID())
	require.NoError(t, err)

	trips := new(MockTripRepository)
	shipments := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(trips).Once(),
		uow.On("ShipmentRepository").Return(shipments).Once(),
		trips.On("GetForUpdate", ctx, tr.ID()).Return(tr, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewAcceptShipmentCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessDenied)
	require.ErrorIs(t, err, services.ErrTripNotOwned)
	shipments.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	trips.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAcceptShipmentCommandHandler_Handle_RejectedWithoutWrites(t *testing.T) {
	departure := testNow.Add(5 * 24 * time.Hour)

	tests := []struct {
		name     string
		weight   float64
		delivery time.Time
		space    float64
	}{
		{name: "too heavy for the trip", weight: 30, delivery: departure.Add(24 * time.Hour), space: 20},
		{name: "delivery before departure", weight: 5, delivery: departure.Add(-time.Hour), space: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			travelerID := kernel.NewUUID()
			sh := newTestShipment(t, kernel.NewUUID(), tt.weight, tt.delivery)
			tr := newTestTrip(t, travelerID, departure, tt.space)

			cmd, err := commands.NewAcceptShipmentCommand(travelerID, sh.ID(), tr.ID())
			require.NoError(t, err)

			trips := new(MockTripRepository)
			shipments := new(MockShipmentRepository)
			uow := new(MockUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("TripRepository").Return(trips).Once()
			uow.On("ShipmentRepository").Return(shipments).Once()
			trips.On("GetForUpdate", ctx, tr.ID()).Return(tr, nil).Once()
			shipments.On("GetForUpdate", ctx, sh.ID()).Return(sh, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			factory := new(MockUoWFactory)
			factory.On("Create").Return(uow).Once()

			err = commands.NewAcceptShipmentCommandHandler(factory).Handle(ctx, cmd)

			require.ErrorIs(t, err, errs.ErrRuleViolation)
			assert.Equal(t, shipment.Pending, sh.Status())
			assert.Equal(t, trip.UnderReview, tr.Status())
			assert.InDelta(t, tt.space, tr.Capacity().Available(), 1e-9)
			trips.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			shipments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestAcceptShipmentCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	travelerID := kernel.NewUUID()
	sh := newTestShipment(t, kernel.NewUUID(), 5, testNow.Add(10*24*time.Hour))
	tr := newTestTrip(t, travelerID, testNow.Add(5*24*time.Hour), 50)
	cmd, err := commands.NewAcceptShipmentCommand(travelerID, sh.ID(), tr.ID())
	require.NoError(t, err)

	trips := new(MockTripRepository)
	shipments := new(MockShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TripRepository").Return(trips).Once()
	uow.On("ShipmentRepository").Return(shipments).Once()
	trips.On("GetForUpdate", ctx, tr.ID()).Return(tr, nil).Once()
	shipments.On("GetForUpdate", ctx, sh.ID()).Return(sh, nil).Once()
	trips.On("Update", ctx, tr).Return(errs.NewVersionIsInvalidError("trip")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewAcceptShipmentCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAcceptShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AcceptShipmentCommand{}

	factory := new(MockUoWFactory)
	err := commands.NewAcceptShipmentCommandHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrAcceptShipmentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptShipmentCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAcceptShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	err = commands.NewAcceptShipmentCommandHandler(factory).Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}

func TestNewAcceptShipmentCommand_InvalidIDs(t *testing.T) {
	_, err := commands.NewAcceptShipmentCommand(kernel.UUID{}, kernel.NewUUID(), kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
