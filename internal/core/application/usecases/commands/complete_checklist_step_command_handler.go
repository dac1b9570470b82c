package commands

import (
	"context"
	"strconv"
	"time"

	"procurement/internal/core/domain/model/activity"
	"procurement/internal/core/domain/model/kernel"
)

// CompleteChecklistStepCommandHandler records step work. Completion never
// sets QA fields, whatever the worker's role; verification is always the
// separate QA command.
type CompleteChecklistStepCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCompleteChecklistStepCommandHandler creates a handler for step completion.
func NewCompleteChecklistStepCommandHandler(uowFactory OrderUoWFactory) CompleteChecklistStepCommandHandler {
	return CompleteChecklistStepCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle resolves the owning order through the checklist, records the
// completion on the aggregate and appends a step_complete audit entry.
func (h *CompleteChecklistStepCommandHandler) Handle(ctx context.Context, cmd CompleteChecklistStepCommand) error {
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

	aggregate, err := uow.OrderRepository().GetByChecklist(ctx, cmd.ChecklistID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = aggregate.CompleteChecklistStep(
		cmd.ChecklistID(), cmd.StepID(), cmd.Actor().ID(),
		now, cmd.TimeSpentMinutes(), cmd.Notes(),
	); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	entry, err := activity.NewEntry(
		kernel.NewUUID(), aggregate.ID(), cmd.Actor().ID(),
		activity.ActionStepComplete,
		map[string]string{
			"checklist_id":       cmd.ChecklistID().String(),
			"step_id":            cmd.StepID().String(),
			"time_spent_minutes": strconv.Itoa(cmd.TimeSpentMinutes()),
		},
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
