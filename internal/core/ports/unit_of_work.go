package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Aggregates written through its
// repositories are published as events once Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if there is no active transaction or the commit fails.
	Commit(ctx context.Context) error

	// Rollback returns an error if there is no active transaction.
	Rollback(ctx context.Context) error

	ShipmentRepository() ShipmentRepository
	TripRepository() TripRepository
	ReviewRepository() ReviewRepository
	UserRepository() UserRepository
}
