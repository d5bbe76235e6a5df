// Package guard detects value objects and entities that were created as zero values
// instead of through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in domain types. Its zero value reports the owner as
// not constructed; NewConstructorGuard marks it as constructed.
//
//	type Route struct {
//	    from, to Country
//	    guard    guard.ConstructorGuard
//	}
//
//	func (r Route) Validate() error {
//	    return r.guard.Validate(ErrRouteIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
