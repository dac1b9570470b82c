package commands

import (
	"errors"

	"procurement/internal/core/domain/model/actor"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand represents a request to hand an order to a responsible
// user, or to clear the assignment when no assignee is given. Assignment
// never changes the order's status.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	assigneeID *kernel.UUID
	actor      actor.Actor

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign an order. A nil
// assigneeID unassigns the order.
func NewAssignOrderCommand(
	orderID kernel.UUID,
	assigneeID *kernel.UUID,
	commandActor actor.Actor,
) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAssigneeID(assigneeID),
		cmd.setActor(commandActor),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AssigneeID returns the new assignee, nil to unassign.
func (c AssignOrderCommand) AssigneeID() *kernel.UUID {
	return c.assigneeID
}

// Actor returns who requested the assignment.
func (c AssignOrderCommand) Actor() actor.Actor {
	return c.actor
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignOrderCommand) setAssigneeID(assigneeID *kernel.UUID) error {
	if assigneeID != nil {
		if err := assigneeID.Validate(); err != nil {
			return err
		}
	}
	c.assigneeID = assigneeID
	return nil
}

func (c *AssignOrderCommand) setActor(commandActor actor.Actor) error {
	if err := commandActor.Validate(); err != nil {
		return err
	}
	c.actor = commandActor
	return nil
}
