// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"crowdship/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// TripRepoFactory provides access to the trip repository within a transaction.
	TripRepoFactory interface {
		TripRepository() ports.TripRepository
	}

	// ReviewRepoFactory provides access to the review repository within a transaction.
	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	// UserRepoFactory provides access to the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// ShipmentUoW manages transactions for commands that change shipments on behalf
	// of their shopper. The user repository is needed to serialize a shopper's writes.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		UserRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// TripUoW manages transactions for trip-only operations.
	TripUoW interface {
		TxManager
		TripRepoFactory
	}

	// TripUoWFactory creates new trip unit of work instances.
	TripUoWFactory interface {
		Create() TripUoW
	}

	// UserUoW manages transactions for account operations.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	// UserUoWFactory creates new user unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// UoW manages transactions across every aggregate type.
	// Used for commands that coordinate changes between shipments, trips, reviews and users.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   trips := uow.TripRepository()
	//   shipments := uow.ShipmentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ShipmentRepoFactory
		TripRepoFactory
		ReviewRepoFactory
		UserRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Clock returns the current time. A nil Clock reads the wall clock.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
