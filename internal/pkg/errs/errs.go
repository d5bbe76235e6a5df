package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to exactly one of them so that
// callers (and the HTTP error mapper) can classify failures with errors.Is.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrVersionIsInvalid  = errors.New("version is invalid")
	ErrRuleViolation     = errors.New("business rule violated")
	ErrAccessDenied      = errors.New("access denied")
	ErrUnauthenticated   = errors.New("unauthenticated")
)

// ObjectNotFoundError is returned when an aggregate cannot be found by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(fmt.Sprintf("%s", e.ID)), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(fmt.Sprintf("%s", e.ID)))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a value is present but malformed.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a numeric or ordered value falls outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(fmt.Sprint(e.Value)), e.ParamName, sanitize(fmt.Sprint(e.Min)), sanitize(fmt.Sprint(e.Max)))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError is returned when a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError signals an optimistic concurrency conflict: the row changed
// between read and write.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName), e.Cause)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// RuleViolationError is returned when well-formed input breaks a business rule,
// e.g. a shipment that is too heavy for the trip.
type RuleViolationError struct {
	Rule  string
	Cause error
}

func NewRuleViolationError(rule string) *RuleViolationError {
	return &RuleViolationError{Rule: rule}
}

func NewRuleViolationErrorWithCause(rule string, cause error) *RuleViolationError {
	return &RuleViolationError{Rule: rule, Cause: cause}
}

func (e *RuleViolationError) Error() string {
	return withCause(e.Rule, e.Cause)
}

func (e *RuleViolationError) Unwrap() error {
	return ErrRuleViolation
}

// AccessDeniedError is returned when the caller is authenticated but may not act on
// the resource (wrong owner or role).
type AccessDeniedError struct {
	Resource string
	Cause    error
}

func NewAccessDeniedError(resource string) *AccessDeniedError {
	return &AccessDeniedError{Resource: resource}
}

func NewAccessDeniedErrorWithCause(resource string, cause error) *AccessDeniedError {
	return &AccessDeniedError{Resource: resource, Cause: cause}
}

func (e *AccessDeniedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrAccessDenied, e.Resource), e.Cause)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// UnauthenticatedError is returned when credentials are missing, invalid or expired.
type UnauthenticatedError struct {
	Reason string
	Cause  error
}

func NewUnauthenticatedError(reason string) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason}
}

func NewUnauthenticatedErrorWithCause(reason string, cause error) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason, Cause: cause}
}

func (e *UnauthenticatedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUnauthenticated, e.Reason), e.Cause)
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// sanitize keeps user-provided values on a single line in error messages.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
