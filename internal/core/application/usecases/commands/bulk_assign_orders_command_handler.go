package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/activity"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// BulkAssignOrdersCommandHandler assigns a user to a batch of orders in one
// transaction. The first missing or unassignable order aborts the whole
// batch; nothing is committed.
type BulkAssignOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewBulkAssignOrdersCommandHandler creates a handler for batch assignment.
func NewBulkAssignOrdersCommandHandler(uowFactory OrderUoWFactory) BulkAssignOrdersCommandHandler {
	return BulkAssignOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch. One assign audit entry is written per order,
// all in the same transaction as the assignments themselves.
func (h *BulkAssignOrdersCommandHandler) Handle(ctx context.Context, cmd BulkAssignOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().CanManageOrders() {
		return errs.NewForbiddenError("bulk assign orders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	for _, orderID := range cmd.OrderIDs() {
		aggregate, err := uow.OrderRepository().Get(ctx, orderID)
		if err != nil {
			return err
		}

		if err = aggregate.AssignTo(cmd.AssigneeID(), now); err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return err
		}

		entry, err := activity.NewEntry(
			kernel.NewUUID(), aggregate.ID(), cmd.Actor().ID(),
			activity.ActionAssign,
			map[string]string{"assignee": cmd.AssigneeID().String(), "bulk": "true"},
			now,
		)
		if err != nil {
			return err
		}

		if err = uow.ActivityRepository().Append(ctx, entry); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
