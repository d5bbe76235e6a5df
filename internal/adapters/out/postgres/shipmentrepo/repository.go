package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
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

// Update writes the shipment row guarded by its version and replaces the products.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	values := dto.columns()
	values["version"] = gorm.Expr("version + 1")

	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("shipment " + aggregate.ID().String())
	}
	aggregate.IncrementVersion()

	if err := r.db.WithContext(ctx).Where("shipment_id = ?", dto.ID).Delete(&ProductDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Products) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Products).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Where("shipment_id = ?", id.Bytes()).Delete(&ProductDTO{}).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&ShipmentDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormShipmentRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := db.Scopes(r.withProducts(ctx)).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormShipmentRepository) CountOpenByShopper(ctx context.Context, shopperID kernel.UUID) (int64, error) {
	if err := shopperID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("shopper_id = ? AND status IN ?", shopperID.Bytes(), openStatuses()).
		Count(&count).Error
	return count, err
}

func (r *GormShipmentRepository) FindByShopperAndTraveler(
	ctx context.Context,
	shopperID, travelerID kernel.UUID,
) ([]*shipment.Shipment, error) {
	if err := errors.Join(shopperID.Validate(), travelerID.Validate()); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(r.withProducts(ctx)).
		Where("shopper_id = ? AND traveler_id = ?", shopperID.Bytes(), travelerID.Bytes()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// FindExpired skips rows locked by concurrent writers; they are picked up by a later run.
func (r *GormShipmentRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]*shipment.Shipment, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Scopes(r.withProducts(ctx)).
		Where("status IN ? AND desired_delivery_date <= ?", openStatuses(), now.UTC()).
		Order("desired_delivery_date").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormShipmentRepository) withProducts(ctx context.Context) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload("Products", func(tx *gorm.DB) *gorm.DB {
			return tx.WithContext(ctx).Order("position")
		})
	}
}

func toDomainList(dtos []ShipmentDTO) ([]*shipment.Shipment, error) {
	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}

func openStatuses() []string {
	open := shipment.OpenStatuses()
	out := make([]string, 0, len(open))
	for _, st := range open {
		out = append(out, st.String())
	}
	return out
}
