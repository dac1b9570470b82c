package commands_test

import (
	"testing"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/actor"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCompleteChecklistStepCommand_NegativeTimeSpent(t *testing.T) {
	_, checklistID, stepID := mustStoredOrderWithChecklist(t)

	_, err := commands.NewCompleteChecklistStepCommand(
		checklistID, stepID, -1, "", mustActor(t, actor.Staff))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCompleteChecklistStepCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	stored, checklistID, stepID := mustStoredOrderWithChecklist(t)
	worker := mustActor(t, actor.Staff)
	cmd, err := commands.NewCompleteChecklistStepCommand(checklistID, stepID, 40, "clean install", worker)
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

	h := commands.NewCompleteChecklistStepCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)

	cl, err := stored.ChecklistByID(checklistID)
	require.NoError(t, err)
	completion := cl.CompletionForStep(stepID)
	require.NotNil(t, completion)
	assert.True(t, completion.CompletedBy().IsEqual(worker.ID()))
	assert.Equal(t, 40, completion.TimeSpentMinutes())
	// worker completion never carries QA state, whatever the role
	assert.False(t, completion.IsQAChecked())
	uow.AssertExpectations(t)
}

func TestCompleteChecklistStepCommandHandler_Handle_UnknownStep(t *testing.T) {
	ctx := t.Context()
	stored, checklistID, _ := mustStoredOrderWithChecklist(t)
	_, _, foreignStepID := mustStoredOrderWithChecklist(t)
	cmd, err := commands.NewCompleteChecklistStepCommand(
		checklistID, foreignStepID, 10, "", mustActor(t, actor.Staff))
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

	h := commands.NewCompleteChecklistStepCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
