package commands

import (
	"errors"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/pkg/guard"
)

var (
	ErrDeleteTripCommandIsNotConstructed = errors.New(
		"DeleteTripCommand must be created via NewDeleteTripCommand constructor",
	)
	ErrCompleteTripCommandIsNotConstructed = errors.New(
		"CompleteTripCommand must be created via NewCompleteTripCommand constructor",
	)
	ErrCancelTripCommandIsNotConstructed = errors.New(
		"CancelTripCommand must be created via NewCancelTripCommand constructor",
	)
	ErrPublishTripCommandIsNotConstructed = errors.New(
		"PublishTripCommand must be created via NewPublishTripCommand constructor",
	)
)

// DeleteTripCommand removes a trip that has not started.
type DeleteTripCommand struct { //nolint:recvcheck //using for validation
	actorTarget
	guard guard.ConstructorGuard
}

func NewDeleteTripCommand(travelerID, tripID kernel.UUID) (DeleteTripCommand, error) {
	at, err := newActorTarget(travelerID, tripID)
	if err != nil {
		return DeleteTripCommand{}, err
	}
	return DeleteTripCommand{actorTarget: at, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteTripCommand) Validate() error {
	return c.guard.Validate(ErrDeleteTripCommandIsNotConstructed)
}

func (c DeleteTripCommand) TravelerID() kernel.UUID { return c.actorID }
func (c DeleteTripCommand) TripID() kernel.UUID     { return c.targetID }

// CompleteTripCommand ends a trip that is on travel.
type CompleteTripCommand struct { //nolint:recvcheck //using for validation
	actorTarget
	guard guard.ConstructorGuard
}

func NewCompleteTripCommand(travelerID, tripID kernel.UUID) (CompleteTripCommand, error) {
	at, err := newActorTarget(travelerID, tripID)
	if err != nil {
		return CompleteTripCommand{}, err
	}
	return CompleteTripCommand{actorTarget: at, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteTripCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTripCommandIsNotConstructed)
}

func (c CompleteTripCommand) TravelerID() kernel.UUID { return c.actorID }
func (c CompleteTripCommand) TripID() kernel.UUID     { return c.targetID }

// CancelTripCommand withdraws a trip before it starts.
type CancelTripCommand struct { //nolint:recvcheck //using for validation
	actorTarget
	guard guard.ConstructorGuard
}

func NewCancelTripCommand(travelerID, tripID kernel.UUID) (CancelTripCommand, error) {
	at, err := newActorTarget(travelerID, tripID)
	if err != nil {
		return CancelTripCommand{}, err
	}
	return CancelTripCommand{actorTarget: at, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelTripCommand) Validate() error {
	return c.guard.Validate(ErrCancelTripCommandIsNotConstructed)
}

func (c CancelTripCommand) TravelerID() kernel.UUID { return c.actorID }
func (c CancelTripCommand) TripID() kernel.UUID     { return c.targetID }

// PublishTripCommand is a staff approval of a trip under review. Role checks happen
// in the transport layer.
type PublishTripCommand struct { //nolint:recvcheck //using for validation
	tripID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewPublishTripCommand(tripID kernel.UUID) (PublishTripCommand, error) {
	if err := tripID.Validate(); err != nil {
		return PublishTripCommand{}, err
	}
	return PublishTripCommand{tripID: tripID, guard: guard.NewConstructorGuard()}, nil
}

func (c PublishTripCommand) Validate() error {
	return c.guard.Validate(ErrPublishTripCommandIsNotConstructed)
}

func (c PublishTripCommand) TripID() kernel.UUID { return c.tripID }
