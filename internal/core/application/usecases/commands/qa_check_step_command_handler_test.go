package commands_test

import (
	"testing"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/actor"
	"procurement/internal/core/domain/model/checklist"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestQACheckStepCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	stored, checklistID, stepID := mustStoredOrderWithChecklist(t)
	worker := mustActor(t, actor.Staff)
	cl, err := stored.ChecklistByID(checklistID)
	require.NoError(t, err)
	require.NoError(t, cl.CompleteStep(stepID, worker.ID(), testOrderDate, 30, ""))

	checker := mustActor(t, actor.Manager)
	cmd, err := commands.NewQACheckStepCommand(checklistID, stepID, checker)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	activityRepo := new(MockActivityRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByChecklist", mock.Anything, checklistID).Return(stored, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("ActivityRepository").Return(activityRepo).Once(),
		activityRepo.On("Append", mock.Anything, mock.AnythingOfType("*activity.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewQACheckStepCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	completion := cl.CompletionForStep(stepID)
	require.NotNil(t, completion)
	assert.True(t, completion.IsQAChecked())
	uow.AssertExpectations(t)
}

func TestQACheckStepCommandHandler_Handle_StaffForbidden(t *testing.T) {
	ctx := t.Context()
	_, checklistID, stepID := mustStoredOrderWithChecklist(t)
	cmd, err := commands.NewQACheckStepCommand(checklistID, stepID, mustActor(t, actor.Staff))
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)

	h := commands.NewQACheckStepCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestQACheckStepCommandHandler_Handle_SelfCheckRejected(t *testing.T) {
	ctx := t.Context()
	stored, checklistID, stepID := mustStoredOrderWithChecklist(t)
	// manager completed the step, then tries to verify their own work
	manager := mustActor(t, actor.Manager)
	cl, err := stored.ChecklistByID(checklistID)
	require.NoError(t, err)
	require.NoError(t, cl.CompleteStep(stepID, manager.ID(), testOrderDate, 30, ""))

	cmd, err := commands.NewQACheckStepCommand(checklistID, stepID, manager)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByChecklist", mock.Anything, checklistID).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewQACheckStepCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.Contains(t, err.Error(), checklist.ErrSelfQACheck.Error())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestQACheckStepCommandHandler_Handle_NoCompletionYet(t *testing.T) {
	ctx := t.Context()
	stored, checklistID, stepID := mustStoredOrderWithChecklist(t)
	cmd, err := commands.NewQACheckStepCommand(checklistID, stepID, mustActor(t, actor.Admin))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByChecklist", mock.Anything, checklistID).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewQACheckStepCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
}
