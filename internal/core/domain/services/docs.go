// Package services holds domain services whose rules span more than one aggregate.
//
// ShipmentMatcher decides whether a traveler's trip can take a shopper's shipment
// (ownership, open status, delivery date versus departure, available space) and
// applies the match to both aggregates.
package services
