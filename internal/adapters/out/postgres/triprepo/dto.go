// Package triprepo persists the trip aggregate in the "trips" table. The status
// history and the shopper, shipment and review sets are Postgres text arrays.
package triprepo

import (
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/trip"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type TripDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TravelerID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	FromCountry    string         `gorm:"type:varchar(2);not null"`
	ToCountry      string         `gorm:"type:varchar(2);not null"`
	DepartureDate  time.Time      `gorm:"not null;index"`
	AvailableSpace float64        `gorm:"not null"`
	ConsumedSpace  float64        `gorm:"not null"`
	Status         string         `gorm:"type:varchar(32);not null;index"`
	StatusHistory  pq.StringArray `gorm:"type:text[];not null"`
	ShopperIDs     pq.StringArray `gorm:"column:shopper_ids;type:text[];not null"`
	ShipmentIDs    pq.StringArray `gorm:"column:shipment_ids;type:text[];not null"`
	ReviewIDs      pq.StringArray `gorm:"column:review_ids;type:text[];not null"`
	CreatedAt      time.Time      `gorm:"not null"`
	Version        int            `gorm:"not null;default:0"`
}

func (TripDTO) TableName() string {
	return "trips"
}

func fromDomain(t *trip.Trip) TripDTO {
	history := make(pq.StringArray, 0, len(t.History()))
	for _, st := range t.History() {
		history = append(history, st.String())
	}

	return TripDTO{
		ID:             t.ID().Bytes(),
		TravelerID:     t.TravelerID().Bytes(),
		FromCountry:    t.Route().From().Code(),
		ToCountry:      t.Route().To().Code(),
		DepartureDate:  t.DepartureDate().UTC(),
		AvailableSpace: t.Capacity().Available(),
		ConsumedSpace:  t.Capacity().Consumed(),
		Status:         t.Status().String(),
		StatusHistory:  history,
		ShopperIDs:     idStrings(t.ShopperIDs()),
		ShipmentIDs:    idStrings(t.ShipmentIDs()),
		ReviewIDs:      idStrings(t.ReviewIDs()),
		CreatedAt:      t.CreatedAt().UTC(),
		Version:        t.Version(),
	}
}

func (dto TripDTO) columns() map[string]any {
	return map[string]any{
		"departure_date":  dto.DepartureDate,
		"available_space": dto.AvailableSpace,
		"consumed_space":  dto.ConsumedSpace,
		"status":          dto.Status,
		"status_history":  dto.StatusHistory,
		"shopper_ids":     dto.ShopperIDs,
		"shipment_ids":    dto.ShipmentIDs,
		"review_ids":      dto.ReviewIDs,
	}
}

func toDomain(dto TripDTO) (*trip.Trip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	travelerID, err := kernel.UUIDFromBytes(dto.TravelerID[:])
	if err != nil {
		return nil, err
	}
	route, err := kernel.RouteFromCodes(dto.FromCountry, dto.ToCountry)
	if err != nil {
		return nil, err
	}

	history := make([]trip.Status, 0, len(dto.StatusHistory))
	for _, raw := range dto.StatusHistory {
		st, statusErr := trip.ParseStatus(raw)
		if statusErr != nil {
			return nil, statusErr
		}
		history = append(history, st)
	}

	shopperIDs, err := domainIDs(dto.ShopperIDs)
	if err != nil {
		return nil, err
	}
	shipmentIDs, err := domainIDs(dto.ShipmentIDs)
	if err != nil {
		return nil, err
	}
	reviewIDs, err := domainIDs(dto.ReviewIDs)
	if err != nil {
		return nil, err
	}

	return trip.RestoreTrip(trip.RestoreParams{
		ID:             id,
		TravelerID:     travelerID,
		Route:          route,
		DepartureDate:  dto.DepartureDate.UTC(),
		AvailableSpace: dto.AvailableSpace,
		ConsumedSpace:  dto.ConsumedSpace,
		History:        history,
		ShopperIDs:     shopperIDs,
		ShipmentIDs:    shipmentIDs,
		ReviewIDs:      reviewIDs,
		CreatedAt:      dto.CreatedAt.UTC(),
		Version:        dto.Version,
	})
}

func idStrings(ids []kernel.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func domainIDs(raw pq.StringArray) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
