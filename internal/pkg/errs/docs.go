// Package errs provides the typed errors shared by the domain, application and
// adapter layers of crowdship.
//
// Every error type pairs a sentinel (ErrValueIsInvalid, ErrObjectNotFound, ...)
// with a struct carrying details. Construct errors with NewXError or
// NewXErrorWithCause; classify them with errors.Is against the sentinel. The HTTP
// adapter maps each sentinel to exactly one status code:
//
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange, ErrRuleViolation: 400
//   - ErrUnauthenticated: 401
//   - ErrAccessDenied: 403
//   - ErrObjectNotFound: 404
//   - ErrVersionIsInvalid: 409
package errs
