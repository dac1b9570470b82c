// Package activity holds the append-only audit trail written alongside every
// order mutation. Entries are created in the same transaction as the change
// they describe and are never updated or deleted.
package activity

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

// Action identifies what kind of mutation an entry records.
type Action int

const (
	UnknownAction Action = iota
	ActionCreate
	ActionStatusChange
	ActionAssign
	ActionPriorityChange
	ActionStepComplete
	ActionStepQACheck
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		UnknownAction:        "unknown",
		ActionCreate:         "create",
		ActionStatusChange:   "status_change",
		ActionAssign:         "assign",
		ActionPriorityChange: "priority_change",
		ActionStepComplete:   "step_complete",
		ActionStepQACheck:    "step_qa_check",
	}
}

// ActionFromString parses a stored action name.
func ActionFromString(s string) (Action, error) {
	for action, name := range getActionStrings() {
		if action != UnknownAction && name == s {
			return action, nil
		}
	}
	return UnknownAction, errs.NewValueIsInvalidError("action: " + s)
}

// Validate returns an error for the zero value.
func (a Action) Validate() error {
	if a == UnknownAction {
		return errs.NewValueIsInvalidError("action")
	}
	if _, ok := getActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidError("action")
	}
	return nil
}

// String returns the stored name of the action.
func (a Action) String() string {
	return getActionStrings()[a]
}

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// NewEntry or RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Entry is one audit record: who did what to which order, and when. Details
// carries action-specific context such as the from/to statuses of a move.
type Entry struct {
	id        kernel.UUID
	orderID   kernel.UUID
	actorID   kernel.UUID
	action    Action
	details   map[string]string
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewEntry creates an audit entry for a mutation that just happened.
func NewEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	actorID kernel.UUID,
	action Action,
	details map[string]string,
	createdAt time.Time,
) (*Entry, error) {
	e := &Entry{
		details:   details,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setActorID(actorID),
		e.setAction(action),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry reconstructs an audit entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	actorID kernel.UUID,
	action Action,
	details map[string]string,
	createdAt time.Time,
) (*Entry, error) {
	return NewEntry(id, orderID, actorID, action, details, createdAt)
}

// Validate ensures the entry was created through a constructor.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID returns the entry identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order the entry belongs to.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// ActorID returns who performed the mutation.
func (e *Entry) ActorID() kernel.UUID {
	return e.actorID
}

// Action returns what kind of mutation was recorded.
func (e *Entry) Action() Action {
	return e.action
}

// Details returns the action-specific context.
func (e *Entry) Details() map[string]string {
	return e.details
}

// CreatedAt returns when the mutation happened.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Entry) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	e.actorID = actorID
	return nil
}

func (e *Entry) setAction(action Action) error {
	if err := action.Validate(); err != nil {
		return err
	}
	e.action = action
	return nil
}
