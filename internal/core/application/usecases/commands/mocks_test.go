package commands_test

import (
	"context"
	"testing"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/actor"
	"procurement/internal/core/domain/model/activity"
	"procurement/internal/core/domain/model/checklist"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByChecklist(ctx context.Context, checklistID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, checklistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockTemplateRepository struct{ mock.Mock }

func (m *MockTemplateRepository) GetActiveByType(
	ctx context.Context, systemTypeID kernel.UUID,
) (*checklist.Template, error) {
	args := m.Called(ctx, systemTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checklist.Template), args.Error(1)
}

type MockActivityRepository struct{ mock.Mock }

func (m *MockActivityRepository) Append(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) ActivityRepository() ports.ActivityRepository {
	args := m.Called()
	return args.Get(0).(ports.ActivityRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCreateOrderUoW struct{ MockOrderUoW }

func (m *MockCreateOrderUoW) TemplateRepository() ports.TemplateRepository {
	args := m.Called()
	return args.Get(0).(ports.TemplateRepository)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateOrderUoW)
}

var testOrderDate = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func mustActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func mustStoredOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "PO-2025-0042", "Dana Reyes", "dana@example.com",
		"Engineering", testOrderDate, order.Delivery, "Building 4", 1, "", testOrderDate,
	)
	require.NoError(t, err)
	return o
}

// mustStoredOrderWithChecklist returns an order whose single system carries a
// one-step checklist, for step-level command tests.
func mustStoredOrderWithChecklist(t *testing.T) (*order.Order, kernel.UUID, kernel.UUID) {
	t.Helper()
	o := mustStoredOrder(t)

	sys, err := order.NewSystem(kernel.NewUUID(), kernel.NewUUID(), "WS-0451", 0)
	require.NoError(t, err)

	step, err := checklist.NewStep(kernel.NewUUID(), "image disk", 0, true, 45, 1)
	require.NoError(t, err)
	cl, err := checklist.NewChecklist(kernel.NewUUID(), sys.ID(), kernel.NewUUID(), []checklist.Step{step})
	require.NoError(t, err)
	require.NoError(t, sys.AttachChecklist(cl))
	require.NoError(t, o.AddSystem(sys))

	return o, cl.ID(), step.ID()
}
