package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/activity"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// AssignOrderCommandHandler handles order assignment. Only managers and
// admins may assign; the check runs before any transaction is opened.
type AssignOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignOrderCommandHandler creates a handler for assignment operations.
func NewAssignOrderCommandHandler(uowFactory OrderUoWFactory) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment and records an assign audit entry.
func (h *AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().CanManageOrders() {
		return errs.NewForbiddenError("assign order")
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

	now := time.Now().UTC()
	details := map[string]string{}
	if assigneeID := cmd.AssigneeID(); assigneeID != nil {
		if err = aggregate.AssignTo(*assigneeID, now); err != nil {
			return err
		}
		details["assignee"] = assigneeID.String()
	} else {
		if err = aggregate.Unassign(now); err != nil {
			return err
		}
		details["assignee"] = ""
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	entry, err := activity.NewEntry(
		kernel.NewUUID(), aggregate.ID(), cmd.Actor().ID(),
		activity.ActionAssign, details, now,
	)
	if err != nil {
		return err
	}

	if err = uow.ActivityRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
