// Package errs provides the standardized error types used across the
// procurement service. Every failure a caller can act on is classified by a
// sentinel error and carried by a struct type with details.
//
// Error kinds:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed input (bad enum value, out-of-range priority, empty reference)
//   - ObjectNotFoundError: a referenced order, system, step, or user is absent
//   - ObjectAlreadyExistsError: uniqueness conflict, e.g. duplicate external
//     reference on order creation
//   - PreconditionFailedError: the operation is blocked by current state,
//     e.g. a no-op status transition or completion with incomplete systems
//   - ForbiddenError: a role-gated operation attempted by an unauthorized actor
//
// Each type follows the same pattern: a sentinel variable (e.g.
// ErrObjectNotFound), a struct with detail fields, constructors with and
// without cause, an Error() method, and Unwrap() returning the sentinel so
// errors.Is classification works everywhere, including the HTTP adapter's
// mapping to machine-readable response codes.
package errs
