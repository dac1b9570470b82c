package commands

import (
	"context"
	"strconv"
	"time"

	"procurement/internal/core/domain/model/activity"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// SetOrderPriorityCommandHandler handles priority changes. Role-gated like
// assignment: staff cannot reprioritize the board.
type SetOrderPriorityCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetOrderPriorityCommandHandler creates a handler for priority changes.
func NewSetOrderPriorityCommandHandler(uowFactory OrderUoWFactory) SetOrderPriorityCommandHandler {
	return SetOrderPriorityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the priority change and records a priority_change audit
// entry carrying the old and new values.
func (h *SetOrderPriorityCommandHandler) Handle(ctx context.Context, cmd SetOrderPriorityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().CanManageOrders() {
		return errs.NewForbiddenError("set order priority")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	from := aggregate.Priority()
	now := time.Now().UTC()
	if err = aggregate.SetPriority(cmd.Priority(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	entry, err := activity.NewEntry(
		kernel.NewUUID(), aggregate.ID(), cmd.Actor().ID(),
		activity.ActionPriorityChange,
		map[string]string{"from": strconv.Itoa(from), "to": strconv.Itoa(cmd.Priority())},
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.ActivityRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
