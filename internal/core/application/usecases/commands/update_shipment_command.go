package commands

import (
	"errors"
	"strings"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"
)

var ErrUpdateShipmentCommandIsNotConstructed = errors.New(
	"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
)

// ShipmentPatch lists what a shopper may change on an open shipment. Nil fields are
// left untouched. Products replace the whole list and need one photo each.
type ShipmentPatch struct {
	DesiredDeliveryDate *time.Time
	RewardPrice         *float64
	From                *string
	To                  *string
	Products            []shipment.ProductParams
	Photos              []ports.File
}

func (p ShipmentPatch) isEmpty() bool {
	return p.DesiredDeliveryDate == nil && p.RewardPrice == nil &&
		p.From == nil && p.To == nil && p.Products == nil
}

type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	actorTarget
	patch ShipmentPatch

	guard guard.ConstructorGuard
}

func NewUpdateShipmentCommand(shopperID, shipmentID kernel.UUID, patch ShipmentPatch) (UpdateShipmentCommand, error) {
	at, err := newActorTarget(shopperID, shipmentID)
	if err != nil {
		return UpdateShipmentCommand{}, err
	}
	if patch.isEmpty() {
		return UpdateShipmentCommand{}, errs.NewValueIsRequiredError("at least one updatable field")
	}

	var errList []error
	if patch.DesiredDeliveryDate != nil && patch.DesiredDeliveryDate.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("desiredDeliveryDate"))
	}
	if patch.From != nil && strings.TrimSpace(*patch.From) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("from"))
	}
	if patch.To != nil && strings.TrimSpace(*patch.To) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("to"))
	}
	if patch.Products != nil {
		errList = append(errList, validateProductPhotos(patch.Products, patch.Photos))
	} else if len(patch.Photos) > 0 {
		errList = append(errList, errs.NewValueIsRequiredError("products"))
	}
	if err = errors.Join(errList...); err != nil {
		return UpdateShipmentCommand{}, err
	}

	patch.Products = append([]shipment.ProductParams(nil), patch.Products...)
	patch.Photos = append([]ports.File(nil), patch.Photos...)
	return UpdateShipmentCommand{
		actorTarget: at,
		patch:       patch,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

func (c UpdateShipmentCommand) ShopperID() kernel.UUID  { return c.actorID }
func (c UpdateShipmentCommand) ShipmentID() kernel.UUID { return c.targetID }
func (c UpdateShipmentCommand) Patch() ShipmentPatch    { return c.patch }

// HasProducts reports whether the product list is replaced.
func (c UpdateShipmentCommand) HasProducts() bool { return len(c.patch.Products) > 0 }
