package trip

import (
	"fmt"
	"math"

	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"
)

const (
	// MinSpace and MaxSpace bound the luggage space of a trip, in kilograms.
	MinSpace = 0.0
	MaxSpace = 100.0

	spaceTolerance = 1e-9
)

var (
	// ErrCapacityIsNotConstructed is returned when validating a zero-value Capacity.
	ErrCapacityIsNotConstructed = errs.NewValueIsRequiredError("capacity must be created via NewCapacity")
	// ErrNotEnoughSpace is returned when a reservation exceeds the available space.
	ErrNotEnoughSpace = errs.NewRuleViolationError("shipment weight exceeds the trip's available space")
)

// Capacity is the luggage ledger of a trip. Available is what travelers still offer,
// consumed is what accepted shipments already take. Both stay within [MinSpace, MaxSpace]
// and their sum never exceeds MaxSpace.
type Capacity struct {
	available float64
	consumed  float64
	guard     guard.ConstructorGuard
}

// NewCapacity creates an empty ledger offering the given space.
func NewCapacity(available float64) (Capacity, error) {
	return RestoreCapacity(available, 0)
}

func RestoreCapacity(available, consumed float64) (Capacity, error) {
	if err := validateSpace("available space", available); err != nil {
		return Capacity{}, err
	}
	if err := validateSpace("consumed space", consumed); err != nil {
		return Capacity{}, err
	}
	if total := available + consumed; total > MaxSpace+spaceTolerance {
		return Capacity{}, errs.NewValueIsOutOfRangeError("total space", total, MinSpace, MaxSpace)
	}

	return Capacity{available: available, consumed: consumed, guard: guard.NewConstructorGuard()}, nil
}

func (c Capacity) Validate() error {
	return c.guard.Validate(ErrCapacityIsNotConstructed)
}

func (c Capacity) Available() float64 { return c.available }
func (c Capacity) Consumed() float64  { return c.consumed }

// CanFit reports whether weight does not exceed the available space. Summed product
// weights carry float error, so an exact fit is accepted within spaceTolerance.
func (c Capacity) CanFit(weight float64) bool {
	return weight > 0 && weight <= c.available+spaceTolerance
}

// Reserve moves weight from available to consumed.
func (c Capacity) Reserve(weight float64) (Capacity, error) {
	if weight <= 0 || math.IsNaN(weight) {
		return Capacity{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not greater than 0", weight))
	}
	if !c.CanFit(weight) {
		return Capacity{}, errs.NewRuleViolationErrorWithCause(
			ErrNotEnoughSpace.Rule,
			fmt.Errorf("%v kg requested, %v kg available", weight, c.available),
		)
	}
	available := c.available - weight
	if available < 0 {
		available = 0
	}
	consumed := math.Min(c.consumed+weight, MaxSpace)
	return RestoreCapacity(available, consumed)
}

// Resize changes the offered space and keeps what has already been consumed.
func (c Capacity) Resize(available float64) (Capacity, error) {
	return RestoreCapacity(available, c.consumed)
}

func validateSpace(param string, v float64) error {
	if math.IsNaN(v) || v < MinSpace || v > MaxSpace {
		return errs.NewValueIsOutOfRangeError(param, v, MinSpace, MaxSpace)
	}
	return nil
}
