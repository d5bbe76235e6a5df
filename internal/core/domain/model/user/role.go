package user

import (
	"fmt"

	"crowdship/internal/pkg/errs"
)

// Role grants access to administrative endpoints. Every user can act both as a
// shopper and as a traveler.
type Role string

const (
	RoleUser    Role = "USER"
	RoleAdmin   Role = "ADMIN"
	RoleSupport Role = "SUPPORT"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAdmin, RoleSupport:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// IsStaff reports whether the role may moderate shipments and trips.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSupport
}
