package order_test

import (
	"testing"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	t.Run("should parse all known statuses", func(t *testing.T) {
		cases := map[string]order.Status{
			"ordered":          order.Ordered,
			"in_progress":      order.InProgress,
			"qa_review":        order.QAReview,
			"ready_to_deliver": order.ReadyToDeliver,
			"complete":         order.Complete,
		}

		for raw, want := range cases {
			got, err := order.StatusFromString(raw)

			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, raw, got.String())
		}
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.StatusFromString("shipped")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("board moves are unrestricted between non-terminal states", func(t *testing.T) {
		cases := []struct {
			from, to order.Status
		}{
			{order.Ordered, order.InProgress},
			{order.InProgress, order.QAReview},
			{order.QAReview, order.InProgress}, // backwards is fine
			{order.ReadyToDeliver, order.Ordered},
			{order.Ordered, order.ReadyToDeliver}, // skipping is fine
		}

		for _, tc := range cases {
			got, err := tc.from.TransitionTo(tc.to)

			require.NoError(t, err)
			assert.Equal(t, tc.to, got)
		}
	})

	t.Run("should reject no-op transition", func(t *testing.T) {
		_, err := order.InProgress.TransitionTo(order.InProgress)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("should reject leaving complete", func(t *testing.T) {
		_, err := order.Complete.TransitionTo(order.Ordered)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("should reject unknown target", func(t *testing.T) {
		_, err := order.Ordered.TransitionTo(order.UnknownStatus)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDeliveryMethodFromString(t *testing.T) {
	t.Run("should parse known methods", func(t *testing.T) {
		delivery, err := order.DeliveryMethodFromString("delivery")
		require.NoError(t, err)
		assert.Equal(t, order.Delivery, delivery)

		shipping, err := order.DeliveryMethodFromString("shipping")
		require.NoError(t, err)
		assert.Equal(t, order.Shipping, shipping)
	})

	t.Run("should reject unknown method", func(t *testing.T) {
		_, err := order.DeliveryMethodFromString("pigeon")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
