package kernel

import (
	"errors"
	"fmt"

	"crowdship/internal/pkg/errs"
	"crowdship/internal/pkg/guard"
)

// ErrRouteIsNotConstructed is returned when validating a zero-value Route.
var ErrRouteIsNotConstructed = errs.NewValueIsRequiredError("route must be created via NewRoute")

// Route is the origin and destination country pair shared by shipments and trips.
// Origin and destination always differ.
type Route struct {
	from  Country
	to    Country
	guard guard.ConstructorGuard
}

func NewRoute(from, to Country) (Route, error) {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return Route{}, err
	}
	if from.IsEqual(to) {
		return Route{}, errs.NewValueIsInvalidErrorWithCause(
			"route",
			fmt.Errorf("origin and destination must differ, both are %s", from),
		)
	}

	return Route{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

// RouteFromCodes parses both country codes and builds a Route.
func RouteFromCodes(from, to string) (Route, error) {
	fromCountry, errFrom := NewCountry(from)
	toCountry, errTo := NewCountry(to)
	if err := errors.Join(errFrom, errTo); err != nil {
		return Route{}, err
	}
	return NewRoute(fromCountry, toCountry)
}

func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r Route) From() Country {
	return r.from
}

func (r Route) To() Country {
	return r.to
}

func (r Route) String() string {
	return fmt.Sprintf("%s->%s", r.from, r.to)
}
