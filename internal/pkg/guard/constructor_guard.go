// Package guard provides the constructor-guard pattern used by domain objects
// to detect zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller does not
// supply a more specific error for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as having been created through its designated
// constructor. Embedding a ConstructorGuard in a struct lets Validate methods
// distinguish properly constructed values from zero values, so invariants
// enforced in the constructor cannot be skipped by direct struct literals.
//
// Example:
//
//	type Priority struct {
//	    value int
//	    guard guard.ConstructorGuard
//	}
//
//	func NewPriority(v int) (Priority, error) {
//	    if v < 0 || v > 5 {
//	        return Priority{}, errs.NewValueIsOutOfRangeError("priority", v, 0, 5)
//	    }
//	    return Priority{value: v, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p Priority) Validate() error {
//	    return p.guard.Validate(ErrPriorityIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as constructed.
// Call it only from the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed guard. For a zero-value
// guard it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
