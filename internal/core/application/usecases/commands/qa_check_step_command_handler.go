package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/activity"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

// QACheckStepCommandHandler records quality verification. Role-gated to
// managers and admins; the aggregate additionally rejects self-verification.
type QACheckStepCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewQACheckStepCommandHandler creates a handler for QA verification.
func NewQACheckStepCommandHandler(uowFactory OrderUoWFactory) QACheckStepCommandHandler {
	return QACheckStepCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle resolves the owning order through the checklist, records the QA
// check on the aggregate and appends a step_qa_check audit entry.
func (h *QACheckStepCommandHandler) Handle(ctx context.Context, cmd QACheckStepCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().CanQACheck() {
		return errs.NewForbiddenError("qa check step")
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
	if err = aggregate.QACheckChecklistStep(cmd.ChecklistID(), cmd.StepID(), cmd.Actor().ID(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	entry, err := activity.NewEntry(
		kernel.NewUUID(), aggregate.ID(), cmd.Actor().ID(),
		activity.ActionStepQACheck,
		map[string]string{
			"checklist_id": cmd.ChecklistID().String(),
			"step_id":      cmd.StepID().String(),
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
