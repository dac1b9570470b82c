package commands_test

import (
	"testing"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/actor"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	requester := mustActor(t, actor.Staff)
	specs := []services.SystemSpec{
		{SystemTypeID: kernel.NewUUID(), AssetName: "WS-0451", SerialNumber: "SN-1"},
	}

	cmd, err := commands.NewCreateOrderCommand(
		"  PO-2025-0042  ", "Dana Reyes", "dana@example.com", "Engineering",
		testOrderDate, order.Delivery, "Building 4", 2, "rush job", specs, requester,
	)

	require.NoError(t, err)
	assert.Equal(t, "PO-2025-0042", cmd.ExternalRef()) // trimmed
	assert.Equal(t, "Dana Reyes", cmd.CustomerName())
	assert.Equal(t, order.Delivery, cmd.DeliveryMethod())
	assert.Equal(t, 2, cmd.Priority())
	assert.Len(t, cmd.Systems(), 1)
}

func TestNewCreateOrderCommand_MissingExternalRef(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		"   ", "Dana Reyes", "dana@example.com", "",
		testOrderDate, order.Delivery, "", 0, "", nil, mustActor(t, actor.Staff),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_PriorityOutOfRange(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		"PO-1", "Dana Reyes", "dana@example.com", "",
		testOrderDate, order.Delivery, "", order.PriorityMax+1, "", nil, mustActor(t, actor.Staff),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewCreateOrderCommand_SystemSpecWithoutAssetName(t *testing.T) {
	specs := []services.SystemSpec{{SystemTypeID: kernel.NewUUID()}}

	_, err := commands.NewCreateOrderCommand(
		"PO-1", "Dana Reyes", "dana@example.com", "",
		testOrderDate, order.Delivery, "", 0, "", specs, mustActor(t, actor.Staff),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_ZeroOrderDate(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(
		"PO-1", "Dana Reyes", "dana@example.com", "",
		time.Time{}, order.Delivery, "", 0, "", nil, mustActor(t, actor.Staff),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
