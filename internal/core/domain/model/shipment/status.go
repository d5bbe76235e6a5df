package shipment

import (
	"fmt"

	"crowdship/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment.
//
//	Pending ──> UnderReview ──> Published          (admin moderation)
//	   │             │              │
//	   └─────────────┴──────────────┴──> AcceptedByTraveler ──> BookingCompleted
//	   │             │              │                                │
//	   └─────────────┴──────────────┴──> Canceled                    v
//	                                                       DeliveredToTraveler
//	                                                                 │
//	                                   ShopperFeedbackReceived <── DeliveredToShopper
//
// Pending, UnderReview and Published form the open set: an open shipment can still be
// edited, deleted, accepted or expired.
type Status int

const (
	Unknown Status = iota
	Pending
	UnderReview
	Published
	AcceptedByTraveler
	BookingCompleted
	DeliveredToTraveler
	DeliveredToShopper
	ShopperFeedbackReceived
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                 "UNKNOWN",
		Pending:                 "PENDING",
		UnderReview:             "UNDER_REVIEW",
		Published:               "PUBLISHED",
		AcceptedByTraveler:      "ACCEPTED_BY_TRAVELER",
		BookingCompleted:        "BOOKING_COMPLETED",
		DeliveredToTraveler:     "DELIVERED_TO_TRAVELER",
		DeliveredToShopper:      "DELIVERED_TO_SHOPPER",
		ShopperFeedbackReceived: "SHOPPER_FEEDBACK_RECEIVED",
		Canceled:                "CANCELED",
	}
}

// getTransitions lists the allowed next statuses for every status.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing transitions
	return map[Status][]Status{
		Pending:             {UnderReview, AcceptedByTraveler, Canceled},
		UnderReview:         {Published, AcceptedByTraveler, Canceled},
		Published:           {AcceptedByTraveler, Canceled},
		AcceptedByTraveler:  {BookingCompleted},
		BookingCompleted:    {DeliveredToTraveler},
		DeliveredToTraveler: {DeliveredToShopper},
		DeliveredToShopper:  {ShopperFeedbackReceived},
	}
}

// OpenStatuses returns the statuses in which a shipment is still looking for a traveler.
func OpenStatuses() []Status {
	return []Status{Pending, UnderReview, Published}
}

// ParseStatus converts the persisted/wire representation back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a shipment status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Canceled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) IsOpen() bool {
	return s == Pending || s == UnderReview || s == Published
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the transition is allowed from s.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewRuleViolationErrorWithCause(
			"shipment status does not allow this operation",
			fmt.Errorf("%s -> %s is not a valid transition", s, next),
		)
	}
	return next, nil
}
