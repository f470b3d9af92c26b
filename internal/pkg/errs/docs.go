// Package errs provides standardized error types for the delivery platform.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the error taxonomy of the orchestration engine:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: validation
//     failures, always surfaced to the caller, never retried
//   - ObjectNotFoundError: tenant-scoped lookup misses
//   - ConflictError: collisions with existing state, detected transactionally
//   - ServiceUnavailableError: resilience failures (open circuit, exhausted
//     retries, provider timeout), carrying a retryability flag
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach enables exhaustive classification at the boundary
// (HTTP status mapping, retry predicates) without runtime type inspection of
// raw transport errors.
package errs
