// Package ports defines the contracts between the application core and its adapters:
// repositories and the unit of work, plus the outbound services (photo storage,
// mail, password hashing, tokens, events) the use cases depend on.
package ports

import (
	"context"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/shipment"
)

// ShipmentRepository persists shipment aggregates.
type ShipmentRepository interface {
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update writes the aggregate if its stored version still equals aggregate.Version();
	// otherwise it returns an errs.VersionIsInvalidError.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	Delete(ctx context.Context, id kernel.UUID) error

	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate loads the shipment and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// CountOpenByShopper counts the shopper's shipments in Pending, UnderReview or Published.
	CountOpenByShopper(ctx context.Context, shopperID kernel.UUID) (int64, error)

	// FindByShopperAndTraveler returns the shipments of shopperID accepted by travelerID,
	// oldest first, locked for update.
	FindByShopperAndTraveler(ctx context.Context, shopperID, travelerID kernel.UUID) ([]*shipment.Shipment, error)

	// FindExpired returns up to limit open shipments whose desired delivery date is not after now.
	FindExpired(ctx context.Context, now time.Time, limit int) ([]*shipment.Shipment, error)
}
