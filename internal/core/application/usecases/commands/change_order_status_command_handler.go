package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/activity"
	"procurement/internal/core/domain/model/kernel"
)

// ChangeOrderStatusCommandHandler handles board moves. The aggregate enforces
// the state machine, including the completion gate over system checklists.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change and records a status_change audit entry
// carrying the from and to statuses.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
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

	from := aggregate.Status()
	now := time.Now().UTC()
	if err = aggregate.ChangeStatus(cmd.Target(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	entry, err := activity.NewEntry(
		kernel.NewUUID(), aggregate.ID(), cmd.Actor().ID(),
		activity.ActionStatusChange,
		map[string]string{"from": from.String(), "to": cmd.Target().String()},
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
