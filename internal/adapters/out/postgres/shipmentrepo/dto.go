// Package shipmentrepo persists the shipment aggregate: one row in "shipments"
// plus one row per product in "shipment_products".
package shipmentrepo

import (
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ShipmentDTO is the row of a shipment. The status column mirrors the last entry
// of StatusHistory so listings can filter on it.
type ShipmentDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ShopperID           uuid.UUID      `gorm:"type:uuid;not null;index"`
	FromCountry         string         `gorm:"type:varchar(2);not null"`
	ToCountry           string         `gorm:"type:varchar(2);not null"`
	DesiredDeliveryDate time.Time      `gorm:"not null;index"`
	RewardPrice         float64        `gorm:"not null"`
	Fees                float64        `gorm:"not null"`
	TotalPrice          float64        `gorm:"not null"`
	TotalWeight         float64        `gorm:"not null"`
	Status              string         `gorm:"type:varchar(32);not null;index"`
	StatusHistory       pq.StringArray `gorm:"type:text[];not null"`
	TripID              *uuid.UUID     `gorm:"type:uuid;index"`
	TravelerID          *uuid.UUID     `gorm:"type:uuid;index"`
	ReviewID            *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt           time.Time      `gorm:"not null"`
	Version             int            `gorm:"not null;default:0"`
	Products            []ProductDTO   `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ProductDTO is one product of a shipment; Position keeps the shopper's order.
type ProductDTO struct {
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"primaryKey;autoIncrement:false"`
	Name       string    `gorm:"type:varchar(50);not null"`
	Quantity   int       `gorm:"not null"`
	Category   string    `gorm:"type:varchar(32);not null"`
	Link       string    `gorm:"not null"`
	Price      float64   `gorm:"not null"`
	Weight     float64   `gorm:"not null"`
	Photo      string    `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "shipment_products"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	id := s.ID().Bytes()

	products := make([]ProductDTO, 0, len(s.Products()))
	for i, p := range s.Products() {
		products = append(products, ProductDTO{
			ShipmentID: id,
			Position:   i,
			Name:       p.Name(),
			Quantity:   p.Quantity(),
			Category:   string(p.Category()),
			Link:       p.Link(),
			Price:      p.Price(),
			Weight:     p.Weight(),
			Photo:      p.Photo(),
		})
	}

	history := make(pq.StringArray, 0, len(s.History()))
	for _, st := range s.History() {
		history = append(history, st.String())
	}

	return ShipmentDTO{
		ID:                  id,
		ShopperID:           s.ShopperID().Bytes(),
		FromCountry:         s.Route().From().Code(),
		ToCountry:           s.Route().To().Code(),
		DesiredDeliveryDate: s.DesiredDeliveryDate().UTC(),
		RewardPrice:         s.RewardPrice(),
		Fees:                s.Fees(),
		TotalPrice:          s.TotalPrice(),
		TotalWeight:         s.TotalWeight(),
		Status:              s.Status().String(),
		StatusHistory:       history,
		TripID:              rawID(s.TripID()),
		TravelerID:          rawID(s.TravelerID()),
		ReviewID:            rawID(s.ReviewID()),
		CreatedAt:           s.CreatedAt().UTC(),
		Version:             s.Version(),
		Products:            products,
	}
}

// columns are the values an update writes; nil links are written as NULL.
func (dto ShipmentDTO) columns() map[string]any {
	return map[string]any{
		"from_country":          dto.FromCountry,
		"to_country":            dto.ToCountry,
		"desired_delivery_date": dto.DesiredDeliveryDate,
		"reward_price":          dto.RewardPrice,
		"fees":                  dto.Fees,
		"total_price":           dto.TotalPrice,
		"total_weight":          dto.TotalWeight,
		"status":                dto.Status,
		"status_history":        dto.StatusHistory,
		"trip_id":               dto.TripID,
		"traveler_id":           dto.TravelerID,
		"review_id":             dto.ReviewID,
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shopperID, err := kernel.UUIDFromBytes(dto.ShopperID[:])
	if err != nil {
		return nil, err
	}
	tripID, err := domainID(dto.TripID)
	if err != nil {
		return nil, err
	}
	travelerID, err := domainID(dto.TravelerID)
	if err != nil {
		return nil, err
	}
	reviewID, err := domainID(dto.ReviewID)
	if err != nil {
		return nil, err
	}

	route, err := kernel.RouteFromCodes(dto.FromCountry, dto.ToCountry)
	if err != nil {
		return nil, err
	}

	products := make([]shipment.Product, 0, len(dto.Products))
	for _, p := range dto.Products {
		product, productErr := shipment.NewProduct(shipment.ProductParams{
			Name:     p.Name,
			Quantity: p.Quantity,
			Category: shipment.Category(p.Category),
			Link:     p.Link,
			Price:    p.Price,
			Weight:   p.Weight,
			Photo:    p.Photo,
		})
		if productErr != nil {
			return nil, productErr
		}
		products = append(products, product)
	}

	history := make([]shipment.Status, 0, len(dto.StatusHistory))
	for _, raw := range dto.StatusHistory {
		st, statusErr := shipment.ParseStatus(raw)
		if statusErr != nil {
			return nil, statusErr
		}
		history = append(history, st)
	}

	return shipment.RestoreShipment(shipment.RestoreParams{
		ID:                  id,
		ShopperID:           shopperID,
		Products:            products,
		Route:               route,
		DesiredDeliveryDate: dto.DesiredDeliveryDate.UTC(),
		RewardPrice:         dto.RewardPrice,
		History:             history,
		TripID:              tripID,
		TravelerID:          travelerID,
		ReviewID:            reviewID,
		CreatedAt:           dto.CreatedAt.UTC(),
		Version:             dto.Version,
	})
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
