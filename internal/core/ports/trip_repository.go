package ports

import (
	"context"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/trip"
)

// TripRepository persists trip aggregates.
type TripRepository interface {
	Add(ctx context.Context, aggregate *trip.Trip) error

	// Update writes the aggregate with an optimistic version check.
	Update(ctx context.Context, aggregate *trip.Trip) error

	Delete(ctx context.Context, id kernel.UUID) error

	Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error)

	// GetForUpdate loads the trip and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*trip.Trip, error)

	// FindByTravelerAndShopper returns the traveler's trips that carry shipments of
	// shopperID, oldest first, locked for update.
	FindByTravelerAndShopper(ctx context.Context, travelerID, shopperID kernel.UUID) ([]*trip.Trip, error)
}
