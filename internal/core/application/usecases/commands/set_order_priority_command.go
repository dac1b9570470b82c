package commands

import (
	"errors"

	"procurement/internal/core/domain/model/actor"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrSetOrderPriorityCommandIsNotConstructed = errors.New(
	"SetOrderPriorityCommand must be created via NewSetOrderPriorityCommand constructor",
)

// SetOrderPriorityCommand represents a request to change an order's priority
// on the board.
type SetOrderPriorityCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	priority int
	actor    actor.Actor

	guard guard.ConstructorGuard
}

// NewSetOrderPriorityCommand creates a command to set an order's priority.
func NewSetOrderPriorityCommand(
	orderID kernel.UUID,
	priority int,
	commandActor actor.Actor,
) (SetOrderPriorityCommand, error) {
	cmd := SetOrderPriorityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPriority(priority),
		cmd.setActor(commandActor),
	); err != nil {
		return SetOrderPriorityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetOrderPriorityCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderPriorityCommandIsNotConstructed)
}

// OrderID returns the order to change.
func (c SetOrderPriorityCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Priority returns the requested priority.
func (c SetOrderPriorityCommand) Priority() int {
	return c.priority
}

// Actor returns who requested the change.
func (c SetOrderPriorityCommand) Actor() actor.Actor {
	return c.actor
}

func (c *SetOrderPriorityCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SetOrderPriorityCommand) setPriority(priority int) error {
	if priority < order.PriorityMin || priority > order.PriorityMax {
		return errs.NewValueIsOutOfRangeError("priority", priority, order.PriorityMin, order.PriorityMax)
	}
	c.priority = priority
	return nil
}

func (c *SetOrderPriorityCommand) setActor(commandActor actor.Actor) error {
	if err := commandActor.Validate(); err != nil {
		return err
	}
	c.actor = commandActor
	return nil
}
