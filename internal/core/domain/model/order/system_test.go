package order_test

import (
	"testing"
	"time"

	"procurement/internal/core/domain/model/checklist"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSystem(t *testing.T) *order.System {
	t.Helper()
	sys, err := order.NewSystem(kernel.NewUUID(), kernel.NewUUID(), "WS-0451", 0)
	require.NoError(t, err)
	return sys
}

func mustChecklistFor(t *testing.T, systemID kernel.UUID, steps ...checklist.Step) *checklist.Checklist {
	t.Helper()
	cl, err := checklist.NewChecklist(kernel.NewUUID(), systemID, kernel.NewUUID(), steps)
	require.NoError(t, err)
	return cl
}

func TestNewSystem(t *testing.T) {
	t.Run("should start pending and unassigned", func(t *testing.T) {
		sys := mustSystem(t)

		assert.Equal(t, order.SystemPending, sys.Status())
		assert.Nil(t, sys.AssignedTo())
		assert.Nil(t, sys.Checklist())
	})

	t.Run("should reject empty asset name", func(t *testing.T) {
		_, err := order.NewSystem(kernel.NewUUID(), kernel.NewUUID(), "", 0)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject negative queue position", func(t *testing.T) {
		_, err := order.NewSystem(kernel.NewUUID(), kernel.NewUUID(), "WS-0451", -1)

		require.Error(t, err)
	})
}

func TestSystem_SetStatus(t *testing.T) {
	t.Run("should allow pending and in progress", func(t *testing.T) {
		sys := mustSystem(t)

		require.NoError(t, sys.SetStatus(order.SystemInProgress))
		assert.Equal(t, order.SystemInProgress, sys.Status())

		require.NoError(t, sys.SetStatus(order.SystemPending))
		assert.Equal(t, order.SystemPending, sys.Status())
	})

	t.Run("should reject setting complete directly", func(t *testing.T) {
		sys := mustSystem(t)

		err := sys.SetStatus(order.SystemComplete)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSystem_EffectiveStatus(t *testing.T) {
	workerID := kernel.NewUUID()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("system without checklist is complete", func(t *testing.T) {
		sys := mustSystem(t)

		assert.Equal(t, order.SystemComplete, sys.EffectiveStatus())
	})

	t.Run("incomplete checklist keeps the operator status", func(t *testing.T) {
		sys := mustSystem(t)
		step, err := checklist.NewStep(kernel.NewUUID(), "image disk", 0, false, 45, 1)
		require.NoError(t, err)
		require.NoError(t, sys.AttachChecklist(mustChecklistFor(t, sys.ID(), step)))
		require.NoError(t, sys.SetStatus(order.SystemInProgress))

		assert.Equal(t, order.SystemInProgress, sys.EffectiveStatus())
	})

	t.Run("completing every step flips the system to complete", func(t *testing.T) {
		sys := mustSystem(t)
		step, err := checklist.NewStep(kernel.NewUUID(), "image disk", 0, false, 45, 1)
		require.NoError(t, err)
		require.NoError(t, sys.AttachChecklist(mustChecklistFor(t, sys.ID(), step)))

		require.NoError(t, sys.Checklist().CompleteStep(step.ID(), workerID, now, 40, ""))

		assert.Equal(t, order.SystemComplete, sys.EffectiveStatus())
	})
}

func TestSystem_AttachChecklist(t *testing.T) {
	t.Run("should reject a checklist built for another system", func(t *testing.T) {
		sys := mustSystem(t)
		foreign := mustChecklistFor(t, kernel.NewUUID())

		err := sys.AttachChecklist(foreign)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrChecklistSystemMismatch)
	})

	t.Run("should reject attaching twice", func(t *testing.T) {
		sys := mustSystem(t)
		require.NoError(t, sys.AttachChecklist(mustChecklistFor(t, sys.ID())))

		err := sys.AttachChecklist(mustChecklistFor(t, sys.ID()))

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrChecklistAlreadyAttached)
	})
}
