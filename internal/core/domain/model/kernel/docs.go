// Package kernel provides the core domain primitives shared by every model
// package in the procurement service.
//
// It currently contains a single building block:
//   - UUID: an immutable value object for entity and aggregate identifiers,
//     wrapping github.com/google/uuid with validation and comparison behavior
//
// Kernel types are immutable and safe for concurrent use. They enforce their
// invariants at construction time so domain objects built on top of them are
// always in a valid state.
package kernel
