// Package postgres provides the GORM-based Unit of Work used by every command.
// A unit of work wraps one database transaction; the repositories it hands out run
// inside that transaction and report the aggregates they write back to it.
//
// Once Commit succeeds the tracked shipments and trips are handed to the
// EventPublisher. Publishing happens after the data is durable, so a failed
// publication is logged and never undoes the commit.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.TripRepository().Update(ctx, t); err != nil {
//	    return err
//	}
//	if err := uow.ShipmentRepository().Update(ctx, s); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and is
// otherwise a no-op, which makes the deferred rollback above safe.
package postgres

import (
	"context"
	"log/slog"

	"crowdship/internal/adapters/out/postgres/reviewrepo"
	"crowdship/internal/adapters/out/postgres/shipmentrepo"
	"crowdship/internal/adapters/out/postgres/triprepo"
	"crowdship/internal/adapters/out/postgres/userrepo"
	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/domain/model/trip"
	"crowdship/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates the factory. A nil publisher disables events;
// a nil logger falls back to slog.Default().
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

// Create returns a fresh unit of work with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the aggregates
// changed through its repositories. It is not safe for concurrent use.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]

	return nil
}

// Commit makes the changes durable and then publishes the tracked aggregates.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publish(ctx)
	return nil
}

// Rollback discards the transaction and everything tracked within it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TripRepository() ports.TripRepository {
	return triprepo.NewGormTripRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ReviewRepository() ports.ReviewRepository {
	return reviewrepo.NewGormReviewRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written within this unit of work. A later
// write of the same aggregate replaces the earlier entry.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for i, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) {
			uow.trackedAggregates[i].Aggregate = aggregate
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// conn is the transaction when one is active, the pool otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publish(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)
	if uow.publisher == nil {
		return
	}

	for _, t := range tracked {
		var err error
		switch aggregate := t.Aggregate.(type) {
		case *shipment.Shipment:
			err = uow.publisher.PublishShipmentChanged(ctx, aggregate)
		case *trip.Trip:
			err = uow.publisher.PublishTripChanged(ctx, aggregate)
		default:
			continue
		}
		if err != nil {
			uow.logger.ErrorContext(ctx, "failed to publish change event", "aggregate_id", t.ID.String(), "error", err)
		}
	}
}
