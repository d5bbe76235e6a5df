package triprepo

import (
	"context"
	"errors"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/trip"
	"crowdship/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTripRepository implements ports.TripRepository using GORM.
type GormTripRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTripRepository(db *gorm.DB, tracker aggregateTracker) *GormTripRepository {
	return &GormTripRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTripRepository) Add(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTripRepository) Update(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	values := dto.columns()
	values["version"] = gorm.Expr("version + 1")

	result := r.db.WithContext(ctx).
		Model(&TripDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("trip " + aggregate.ID().String())
	}
	aggregate.IncrementVersion()

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTripRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&TripDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("trip", id.String())
	}
	return nil
}

func (r *GormTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormTripRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormTripRepository) get(db *gorm.DB, id kernel.UUID) (*trip.Trip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TripDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trip", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByTravelerAndShopper matches the shopper against the shopper_ids array.
func (r *GormTripRepository) FindByTravelerAndShopper(
	ctx context.Context,
	travelerID, shopperID kernel.UUID,
) ([]*trip.Trip, error) {
	if err := errors.Join(travelerID.Validate(), shopperID.Validate()); err != nil {
		return nil, err
	}

	var dtos []TripDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("traveler_id = ? AND ? = ANY(shopper_ids)", travelerID.Bytes(), shopperID.String()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	trips := make([]*trip.Trip, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}
