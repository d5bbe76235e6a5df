// Package kafka publishes shipment and trip change events with segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"crowdship/internal/core/domain/model/kernel"
	"crowdship/internal/core/domain/model/shipment"
	"crowdship/internal/core/domain/model/trip"
	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ShipmentChangedEvent is the value of a message on the shipment topic.
type ShipmentChangedEvent struct {
	ShipmentID          string    `json:"shipmentId"`
	ShopperID           string    `json:"shopperId"`
	TravelerID          *string   `json:"travelerId,omitempty"`
	TripID              *string   `json:"tripId,omitempty"`
	From                string    `json:"from"`
	To                  string    `json:"to"`
	Status              string    `json:"status"`
	RewardPrice         float64   `json:"rewardPrice"`
	DesiredDeliveryDate time.Time `json:"desiredDeliveryDate"`
	Version             int       `json:"version"`
	OccurredAt          time.Time `json:"occurredAt"`
}

// TripChangedEvent is the value of a message on the trip topic.
type TripChangedEvent struct {
	TripID         string    `json:"tripId"`
	TravelerID     string    `json:"travelerId"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Status         string    `json:"status"`
	AvailableSpace float64   `json:"availableSpace"`
	ConsumedSpace  float64   `json:"consumedSpace"`
	DepartureDate  time.Time `json:"departureDate"`
	Version        int       `json:"version"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// EventPublisher writes one JSON message per changed aggregate, keyed by the
// aggregate ID so that changes of one aggregate stay ordered within a partition.
type EventPublisher struct {
	shipments MessageWriter
	trips     MessageWriter
	now       func() time.Time
	logger    *slog.Logger
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher connects to the broker at host.
func NewEventPublisher(host, shipmentTopic, tripTopic string, logger *slog.Logger) (*EventPublisher, error) {
	if host == "" {
		return nil, errs.NewValueIsRequiredError("host")
	}
	if shipmentTopic == "" {
		return nil, errs.NewValueIsRequiredError("shipmentTopic")
	}
	if tripTopic == "" {
		return nil, errs.NewValueIsRequiredError("tripTopic")
	}
	return NewEventPublisherWithWriters(newWriter(host, shipmentTopic), newWriter(host, tripTopic), logger), nil
}

// NewEventPublisherWithWriters builds a publisher on top of existing writers.
func NewEventPublisherWithWriters(shipments, trips MessageWriter, logger *slog.Logger) *EventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventPublisher{
		shipments: shipments,
		trips:     trips,
		now:       time.Now,
		logger:    logger.With("component", "kafka_publisher"),
	}
}

func newWriter(host, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(host),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
}

func (p *EventPublisher) PublishShipmentChanged(ctx context.Context, aggregate *shipment.Shipment) error {
	if aggregate == nil {
		return errs.NewValueIsRequiredError("shipment")
	}
	event := ShipmentChangedEvent{
		ShipmentID:          aggregate.ID().String(),
		ShopperID:           aggregate.ShopperID().String(),
		TravelerID:          optionalID(aggregate.TravelerID()),
		TripID:              optionalID(aggregate.TripID()),
		From:                aggregate.Route().From().Code(),
		To:                  aggregate.Route().To().Code(),
		Status:              aggregate.Status().String(),
		RewardPrice:         aggregate.RewardPrice(),
		DesiredDeliveryDate: aggregate.DesiredDeliveryDate().UTC(),
		Version:             aggregate.Version(),
		OccurredAt:          p.now().UTC(),
	}
	return p.write(ctx, p.shipments, event.ShipmentID, event)
}

func (p *EventPublisher) PublishTripChanged(ctx context.Context, aggregate *trip.Trip) error {
	if aggregate == nil {
		return errs.NewValueIsRequiredError("trip")
	}
	event := TripChangedEvent{
		TripID:         aggregate.ID().String(),
		TravelerID:     aggregate.TravelerID().String(),
		From:           aggregate.Route().From().Code(),
		To:             aggregate.Route().To().Code(),
		Status:         aggregate.Status().String(),
		AvailableSpace: aggregate.Capacity().Available(),
		ConsumedSpace:  aggregate.Capacity().Consumed(),
		DepartureDate:  aggregate.DepartureDate().UTC(),
		Version:        aggregate.Version(),
		OccurredAt:     p.now().UTC(),
	}
	return p.write(ctx, p.trips, event.TripID, event)
}

func (p *EventPublisher) write(ctx context.Context, w MessageWriter, key string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", key, err)
	}
	if err = w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("write event %s: %w", key, err)
	}
	p.logger.DebugContext(ctx, "event published", "key", key)
	return nil
}

// Close flushes and closes both writers.
func (p *EventPublisher) Close() error {
	return errors.Join(p.shipments.Close(), p.trips.Close())
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
