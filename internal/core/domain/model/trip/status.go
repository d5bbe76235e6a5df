package trip

import (
	"fmt"

	"crowdship/internal/pkg/errs"
)

// Status is the lifecycle state of a trip.
//
//	UnderReview ──> Publishing ──┬──> OnTravel ──> Completed
//	     │              │        │
//	     └──────────────┴────────┴──> Cancelled (before departure only)
//
// A trip moves to OnTravel when its traveler accepts the first shipment; further
// accepts keep it there.
type Status int

const (
	Unknown Status = iota
	UnderReview
	Publishing
	OnTravel
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "UNKNOWN",
		UnderReview: "UNDER_REVIEW",
		Publishing:  "PUBLISHING",
		OnTravel:    "ON_TRAVEL",
		Completed:   "COMPLETED",
		Cancelled:   "CANCELLED",
	}
}

func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing transitions
	return map[Status][]Status{
		UnderReview: {Publishing, OnTravel, Cancelled},
		Publishing:  {OnTravel, Cancelled},
		// Repeat accepts keep a trip OnTravel. The self-transition is allowed but
		// history records only changes of state, so it gains no new ON_TRAVEL entry.
		OnTravel:    {OnTravel, Completed},
	}
}

func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a trip status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
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

// IsLocked reports whether the trip details can no longer be edited.
func (s Status) IsLocked() bool {
	return s == OnTravel || s == Completed || s == Cancelled
}

// IsReviewable reports whether a shopper on the trip may review the traveler.
func (s Status) IsReviewable() bool {
	return s == OnTravel || s == Completed || s == Cancelled
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewRuleViolationErrorWithCause(
			"trip status does not allow this operation",
			fmt.Errorf("%s -> %s is not a valid transition", s, next),
		)
	}
	return next, nil
}
