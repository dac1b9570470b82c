package commands

import (
	"errors"

	"procurement/internal/core/domain/model/actor"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrBulkAssignOrdersCommandIsNotConstructed = errors.New(
	"BulkAssignOrdersCommand must be created via NewBulkAssignOrdersCommand constructor",
)

// BulkAssignOrdersCommand assigns one user to several orders at once.
// The whole batch succeeds or fails together.
type BulkAssignOrdersCommand struct { //nolint:recvcheck //using for validation
	orderIDs   []kernel.UUID
	assigneeID kernel.UUID
	actor      actor.Actor

	guard guard.ConstructorGuard
}

// NewBulkAssignOrdersCommand creates a command to assign a user to every
// order in the batch. The batch must not be empty or contain duplicates.
func NewBulkAssignOrdersCommand(
	orderIDs []kernel.UUID,
	assigneeID kernel.UUID,
	commandActor actor.Actor,
) (BulkAssignOrdersCommand, error) {
	cmd := BulkAssignOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setAssigneeID(assigneeID),
		cmd.setActor(commandActor),
	); err != nil {
		return BulkAssignOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkAssignOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBulkAssignOrdersCommandIsNotConstructed)
}

// OrderIDs returns the orders in the batch.
func (c BulkAssignOrdersCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// AssigneeID returns the user every order is assigned to.
func (c BulkAssignOrdersCommand) AssigneeID() kernel.UUID {
	return c.assigneeID
}

// Actor returns who requested the batch.
func (c BulkAssignOrdersCommand) Actor() actor.Actor {
	return c.actor
}

func (c *BulkAssignOrdersCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("order ids")
	}
	seen := make(map[kernel.UUID]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidError("order ids contain duplicate " + id.String())
		}
		seen[id] = struct{}{}
	}
	c.orderIDs = orderIDs
	return nil
}

func (c *BulkAssignOrdersCommand) setAssigneeID(assigneeID kernel.UUID) error {
	if err := assigneeID.Validate(); err != nil {
		return err
	}
	c.assigneeID = assigneeID
	return nil
}

func (c *BulkAssignOrdersCommand) setActor(commandActor actor.Actor) error {
	if err := commandActor.Validate(); err != nil {
		return err
	}
	c.actor = commandActor
	return nil
}
