package commands

import (
	"errors"
	"fmt"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand represents a shopper's new purchase request. Photos are
// matched to products by position; the Photo field of each product is ignored and
// filled in with the stored photo URL.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(kernel.NewUUID(), shopperID, products, photos,
//	    "US", "EG", delivery, 60)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID          kernel.UUID
	shopperID           kernel.UUID
	products            []shipment.ProductParams
	photos              []ports.File
	route               kernel.Route
	desiredDeliveryDate time.Time
	rewardPrice         float64

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(
	shipmentID, shopperID kernel.UUID,
	products []shipment.ProductParams,
	photos []ports.File,
	from, to string,
	desiredDeliveryDate time.Time,
	rewardPrice float64,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		shipmentID:          shipmentID,
		shopperID:           shopperID,
		desiredDeliveryDate: desiredDeliveryDate,
		rewardPrice:         rewardPrice,
		guard:               guard.NewConstructorGuard(),
	}

	route, routeErr := kernel.RouteFromCodes(from, to)
	var dateErr error
	if desiredDeliveryDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("desiredDeliveryDate")
	}
	if err := errors.Join(
		shipmentID.Validate(),
		shopperID.Validate(),
		cmd.setProducts(products, photos),
		routeErr,
		dateErr,
	); err != nil {
		return CreateShipmentCommand{}, err
	}
	cmd.route = route

	return cmd, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.UUID        { return c.shipmentID }
func (c CreateShipmentCommand) ShopperID() kernel.UUID         { return c.shopperID }
func (c CreateShipmentCommand) Route() kernel.Route            { return c.route }
func (c CreateShipmentCommand) DesiredDeliveryDate() time.Time { return c.desiredDeliveryDate }
func (c CreateShipmentCommand) RewardPrice() float64           { return c.rewardPrice }

func (c CreateShipmentCommand) Products() []shipment.ProductParams {
	return append([]shipment.ProductParams(nil), c.products...)
}

func (c CreateShipmentCommand) Photos() []ports.File {
	return append([]ports.File(nil), c.photos...)
}

func (c *CreateShipmentCommand) setProducts(products []shipment.ProductParams, photos []ports.File) error {
	if err := validateProductPhotos(products, photos); err != nil {
		return err
	}
	c.products = append([]shipment.ProductParams(nil), products...)
	c.photos = append([]ports.File(nil), photos...)
	return nil
}

// validateProductPhotos requires at least one product and exactly one photo per product.
func validateProductPhotos(products []shipment.ProductParams, photos []ports.File) error {
	if len(products) == 0 {
		return errs.NewValueIsRequiredError("products")
	}
	if len(photos) != len(products) {
		return errs.NewValueIsInvalidErrorWithCause(
			"photos",
			fmt.Errorf("%d photos uploaded for %d products", len(photos), len(products)),
		)
	}
	for i, photo := range photos {
		if photo.Content == nil {
			return errs.NewValueIsRequiredError(fmt.Sprintf("photos[%d]", i))
		}
	}
	return nil
}
