package commands_test

import (
	"errors"
	"testing"
	"time"

	"crowdship/internal/core/application/usecases/commands"
	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/trip"
	"crowdship/internal/core/domain/services"
	"crowdship/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateTripCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateTripCommand(kernel.NewUUID(), kernel.NewUUID(), "US", "EG", testNow.Add(48*time.Hour), 40)
	require.NoError(t, err)

	repo := new(MockTripRepository)
	uow := new(MockUoW)
	var added *trip.Trip
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TripRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*trip.Trip")).
			Run(func(args mock.Arguments) { added = args.Get(1).(*trip.Trip) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewCreateTripCommandHandler(factory, fixedClock()).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Equal(t, trip.UnderReview, added.Status())
	assert.InDelta(t, 40, added.Capacity().Available(), 1e-9)
	assert.InDelta(t, 0, added.Capacity().Consumed(), 1e-9)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCreateTripCommandHandler_Handle_RejectsPastDepartureBeforeBegin(t *testing.T) {
	cmd, err := commands.NewCreateTripCommand(kernel.NewUUID(), kernel.NewUUID(), "US", "EG", testNow.Add(-time.Hour), 40)
	require.NoError(t, err)

	factory := new(MockTripUoWFactory)
	err = commands.NewCreateTripCommandHandler(factory, fixedClock()).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestNewCreateTripCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateTripCommand(kernel.NewUUID(), kernel.NewUUID(), "US", "US", testNow, 10)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewCreateTripCommand(kernel.NewUUID(), kernel.NewUUID(), "US", "EG", time.Time{}, 10)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func expectTripChange(t *testing.T, tr *trip.Trip, updated bool) (*MockTripUoWFactory, *MockTripRepository, *MockUoW) {
	t.Helper()
	ctx := t.Context()
	repo := new(MockTripRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TripRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, tr.ID()).Return(tr, nil).Once()
	if updated {
		repo.On("Update", ctx, tr).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTripUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, repo, uow
}

func TestUpdateTripCommandHandler_Handle(t *testing.T) {
	t.Run("updates date and space", func(t *testing.T) {
		travelerID := kernel.NewUUID()
		tr := newTestTrip(t, travelerID, testNow.Add(48*time.Hour), 40)
		date := testNow.Add(72 * time.Hour)
		space := 25.0
		cmd, err := commands.NewUpdateTripCommand(travelerID, tr.ID(), &date, &space)
		require.NoError(t, err)

		factory, repo, uow := expectTripChange(t, tr, true)
		err = commands.NewUpdateTripCommandHandler(factory, fixedClock()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, date, tr.DepartureDate())
		assert.InDelta(t, 25, tr.Capacity().Available(), 1e-9)
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("other traveler is denied", func(t *testing.T) {
		tr := newTestTrip(t, kernel.NewUUID(), testNow.Add(48*time.Hour), 40)
		space := 10.0
		cmd, err := commands.NewUpdateTripCommand(kernel.NewUUID(), tr.ID(), nil, &space)
		require.NoError(t, err)

		factory, repo, _ := expectTripChange(t, tr, false)
		err = commands.NewUpdateTripCommandHandler(factory, fixedClock()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, services.ErrTripNotOwned)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("locked once on travel", func(t *testing.T) {
		travelerID := kernel.NewUUID()
		tr := newTestTrip(t, travelerID, testNow.Add(48*time.Hour), 40)
		require.NoError(t, tr.Carry(kernel.NewUUID(), kernel.NewUUID(), 5))
		space := 10.0
		cmd, err := commands.NewUpdateTripCommand(travelerID, tr.ID(), nil, &space)
		require.NoError(t, err)

		factory, _, _ := expectTripChange(t, tr, false)
		err = commands.NewUpdateTripCommandHandler(factory, fixedClock()).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, trip.ErrTripIsLocked)
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		_, err := commands.NewUpdateTripCommand(kernel.NewUUID(), kernel.NewUUID(), nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestDeleteTripCommandHandler_Handle(t *testing.T) {
	t.Run("deletes a trip under review", func(t *testing.T) {
		ctx := t.Context()
		travelerID := kernel.NewUUID()
		tr := newTestTrip(t, travelerID, testNow.Add(48*time.Hour), 40)
		cmd, err := commands.NewDeleteTripCommand(travelerID, tr.ID())
		require.NoError(t, err)

		repo := new(MockTripRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("TripRepository").Return(repo).Once(),
			repo.On("GetForUpdate", ctx, tr.ID()).Return(tr, nil).Once(),
			repo.On("Delete", ctx, tr.ID()).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockTripUoWFactory)
		factory.On("Create").Return(uow).Once()

		require.NoError(t, commands.NewDeleteTripCommandHandler(factory).Handle(ctx, cmd))
		repo.AssertExpectations(t)
	})

	t.Run("trip on travel cannot be deleted", func(t *testing.T) {
		ctx := t.Context()
		travelerID := kernel.NewUUID()
		tr := newTestTrip(t, travelerID, testNow.Add(48*time.Hour), 40)
		require.NoError(t, tr.Carry(kernel.NewUUID(), kernel.NewUUID(), 5))
		cmd, err := commands.NewDeleteTripCommand(travelerID, tr.ID())
		require.NoError(t, err)

		factory, repo, _ := expectTripChange(t, tr, false)
		err = commands.NewDeleteTripCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, trip.ErrTripNotDeletable)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, err := commands.NewDeleteTripCommand(kernel.NewUUID(), id)
		require.NoError(t, err)

		repo := new(MockTripRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("TripRepository").Return(repo).Once()
		repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("trip", id.String())).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockTripUoWFactory)
		factory.On("Create").Return(uow).Once()

		err = commands.NewDeleteTripCommandHandler(factory).Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestTripTransitionHandlers(t *testing.T) {
	t.Run("complete a trip on travel", func(t *testing.T) {
		travelerID := kernel.NewUUID()
		tr := newTestTrip(t, travelerID, testNow.Add(48*time.Hour), 40)
		require.NoError(t, tr.Carry(kernel.NewUUID(), kernel.NewUUID(), 5))
		cmd, err := commands.NewCompleteTripCommand(travelerID, tr.ID())
		require.NoError(t, err)

		factory, _, _ := expectTripChange(t, tr, true)
		require.NoError(t, commands.NewCompleteTripCommandHandler(factory).Handle(t.Context(), cmd))
		assert.Equal(t, trip.Completed, tr.Status())
	})

	t.Run("cannot complete a trip under review", func(t *testing.T) {
		travelerID := kernel.NewUUID()
		tr := newTestTrip(t, travelerID, testNow.Add(48*time.Hour), 40)
		cmd, err := commands.NewCompleteTripCommand(travelerID, tr.ID())
		require.NoError(t, err)

		factory, _, _ := expectTripChange(t, tr, false)
		err = commands.NewCompleteTripCommandHandler(factory).Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrRuleViolation)
	})

	t.Run("cancel a trip under review", func(t *testing.T) {
		travelerID := kernel.NewUUID()
		tr := newTestTrip(t, travelerID, testNow.Add(48*time.Hour), 40)
		cmd, err := commands.NewCancelTripCommand(travelerID, tr.ID())
		require.NoError(t, err)

		factory, _, _ := expectTripChange(t, tr, true)
		require.NoError(t, commands.NewCancelTripCommandHandler(factory).Handle(t.Context(), cmd))
		assert.Equal(t, trip.Cancelled, tr.Status())
	})

	t.Run("staff publishes any trip", func(t *testing.T) {
		tr := newTestTrip(t, kernel.NewUUID(), testNow.Add(48*time.Hour), 40)
		cmd, err := commands.NewPublishTripCommand(tr.ID())
		require.NoError(t, err)

		factory, _, _ := expectTripChange(t, tr, true)
		require.NoError(t, commands.NewPublishTripCommandHandler(factory).Handle(t.Context(), cmd))
		assert.Equal(t, trip.Publishing, tr.Status())
	})

	t.Run("begin error", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCancelTripCommand(kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, err)

		uow := new(MockUoW)
		factory := new(MockTripUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
		)

		err = commands.NewCancelTripCommandHandler(factory).Handle(ctx, cmd)
		require.EqualError(t, err, "begin error")
	})
}
