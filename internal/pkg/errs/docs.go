// Package errs provides the typed errors shared by the storefront core.
//
// Every type pairs a sentinel (ErrValueIsRequired, ErrConflict, ...) with a
// struct carrying details, constructors with and without a cause, and Unwrap
// so callers classify failures with errors.Is / errors.As. The HTTP adapter
// maps the classes onto status codes:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation
//   - ObjectNotFoundError: unknown product, order or zone
//   - ConflictError: insufficient stock, illegal transition, stale delivery quote
//   - AuthorizationError: missing or invalid operator credential
package errs
