package order

import (
	"fmt"

	"procurement/internal/pkg/errs"
)

// Status represents the lifecycle state of a procurement order.
//
// The five statuses match the columns of the operator board:
//
//	ordered ⇄ in_progress ⇄ qa_review ⇄ ready_to_deliver ──> complete
//
// Every non-terminal status may transition to every other non-terminal status
// in either direction; operators move orders backward to reflect rework.
// Transitioning to the current status is rejected as a no-op, which makes
// duplicate client retries visible instead of silently masking them.
// Complete is terminal.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Ordered is the initial status assigned when the upstream commerce
	// system delivers the order.
	Ordered

	// InProgress indicates provisioning work has started.
	InProgress

	// QAReview indicates the order is under quality review.
	QAReview

	// ReadyToDeliver indicates all work is finished and the order awaits
	// handoff to the customer.
	ReadyToDeliver

	// Complete is the terminal status. No further transitions or mutations
	// are permitted.
	Complete
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:  "unknown",
		Ordered:        "ordered",
		InProgress:     "in_progress",
		QAReview:       "qa_review",
		ReadyToDeliver: "ready_to_deliver",
		Complete:       "complete",
	}
}

func getValidStatusStrings() map[string]Status {
	return map[string]Status{
		"ordered":          Ordered,
		"in_progress":      InProgress,
		"qa_review":        QAReview,
		"ready_to_deliver": ReadyToDeliver,
		"complete":         Complete,
	}
}

// StatusFromString parses the wire representation of a status.
// Returns a validation error for anything outside the five canonical values.
func StatusFromString(s string) (Status, error) {
	status, ok := getValidStatusStrings()[s]
	if !ok {
		return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%q is not a valid status", s))
	}
	return status, nil
}

// Validate checks the Status is one of the five canonical values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == UnknownStatus {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer and is
// safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Complete
}

// TransitionTo validates the structural transition rules and returns the new
// status. The aggregate separately gates the transition to Complete on child
// completion, which this value object cannot see.
//
// Rules:
//   - the target must be one of the five canonical values
//   - the target must differ from the current status (no-op is rejected)
//   - nothing leaves the terminal status
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return UnknownStatus, err
	}
	if err := target.Validate(); err != nil {
		return UnknownStatus, err
	}

	if s == target {
		return UnknownStatus, errs.NewPreconditionFailedErrorWithCause(
			"order status",
			fmt.Errorf("order is already %s", s),
		)
	}

	if s.IsTerminal() {
		return UnknownStatus, errs.NewPreconditionFailedErrorWithCause(
			"order status",
			fmt.Errorf("order is %s and cannot change", s),
		)
	}

	return target, nil
}
