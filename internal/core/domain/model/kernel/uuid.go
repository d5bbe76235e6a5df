package kernel

import (
	"fmt"

	"crowdship/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through one of the constructor functions.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object used by every aggregate (users, shipments,
// trips, reviews). It wraps github.com/google/uuid; the zero value is invalid.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the canonical, braced, urn or hyphen-less UUID forms.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16-byte slice. The nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// ParseID parses an identifier received from a client (path parameter, JSON field).
// Malformed and nil identifiers are reported as ValueIsInvalidError for the given param.
func ParseID(param, s string) (UUID, error) {
	id, err := UUIDFromString(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	if err = id.Validate(); err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID (a 16-byte array copy).
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero (nil) UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// ContainsUUID reports whether id is present in ids.
func ContainsUUID(ids []UUID, id UUID) bool {
	for _, v := range ids {
		if v.IsEqual(id) {
			return true
		}
	}
	return false
}
