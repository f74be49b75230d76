// Package errs provides the typed errors shared by the ordering service.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrObjectNotFound, ErrConflict, ...)
//   - a struct carrying the details and an optional Cause
//   - constructors with and without a cause
//   - Unwrap returning the sentinel, so callers classify with errors.Is
//
// The families map onto the service error taxonomy:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - conflict: ConflictError, VersionIsInvalidError
//   - authorization: ForbiddenError
//   - external verification: VerificationFailedError
//   - not found: ObjectNotFoundError
package errs
