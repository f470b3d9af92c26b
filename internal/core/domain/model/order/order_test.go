package order_test

import (
	"testing"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	value, err := kernel.NewMoney(4000)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 5, value, "Rua das Flores 10", "01310-100")
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates_unrouted_order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.SemRota, o.Status())
		assert.Nil(t, o.DeliveryID())
		assert.Nil(t, o.SortPosition())
		assert.Nil(t, o.StartedAt())
		assert.Nil(t, o.CompletedAt())
		assert.Nil(t, o.FailureReason())
	})

	t.Run("rejects_invalid_inputs", func(t *testing.T) {
		value, _ := kernel.NewMoney(100)

		_, err := order.NewOrder(kernel.UUID{}, kernel.NewUUID(), 5, value, "addr", "01310-100")
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.UUID{}, 5, value, "addr", "01310-100")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 0, value, "addr", "01310-100")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 5, value, "", "01310-100")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 5, value, "addr", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_order_fails_validation", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AssignToDelivery(t *testing.T) {
	t.Run("assignment_to_released_delivery", func(t *testing.T) {
		o := newTestOrder(t)
		deliveryID := kernel.NewUUID()

		require.NoError(t, o.AssignToDelivery(deliveryID, 2, false))

		assert.Equal(t, order.EmRota, o.Status())
		require.NotNil(t, o.DeliveryID())
		assert.True(t, deliveryID.IsEqual(*o.DeliveryID()))
		require.NotNil(t, o.SortPosition())
		assert.Equal(t, 2, *o.SortPosition())
	})

	t.Run("assignment_to_delivery_awaiting_approval", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.AssignToDelivery(kernel.NewUUID(), 0, true))

		assert.Equal(t, order.EmRotaAguardandoLiberacao, o.Status())
	})

	t.Run("cannot_assign_twice", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignToDelivery(kernel.NewUUID(), 0, false))

		err := o.AssignToDelivery(kernel.NewUUID(), 1, false)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("delivered_path_records_timestamps", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignToDelivery(kernel.NewUUID(), 0, false))

		require.NoError(t, o.StartDelivery())
		assert.Equal(t, order.EmEntrega, o.Status())
		require.NotNil(t, o.StartedAt())

		require.NoError(t, o.Complete())
		assert.Equal(t, order.Entregue, o.Status())
		require.NotNil(t, o.CompletedAt())
	})

	t.Run("failed_path_records_reason", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignToDelivery(kernel.NewUUID(), 0, false))
		require.NoError(t, o.StartDelivery())

		require.NoError(t, o.Fail("recipient absent"))

		assert.Equal(t, order.NaoEntregue, o.Status())
		require.NotNil(t, o.FailureReason())
		assert.Equal(t, "recipient absent", *o.FailureReason())
		require.NotNil(t, o.CompletedAt())
	})

	t.Run("failure_reason_is_required", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignToDelivery(kernel.NewUUID(), 0, false))
		require.NoError(t, o.StartDelivery())

		require.ErrorIs(t, o.Fail(""), errs.ErrValueIsRequired)
	})

	t.Run("terminal_order_never_transitions_again", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignToDelivery(kernel.NewUUID(), 0, false))
		require.NoError(t, o.StartDelivery())
		require.NoError(t, o.Complete())

		require.Error(t, o.StartDelivery())
		require.Error(t, o.Complete())
		require.Error(t, o.Fail("too late"))
		require.Error(t, o.Detach())
		assert.Equal(t, order.Entregue, o.Status())
	})
}

func TestOrder_Detach(t *testing.T) {
	t.Run("detach_clears_delivery_references", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignToDelivery(kernel.NewUUID(), 3, true))

		require.NoError(t, o.Detach())

		assert.Equal(t, order.SemRota, o.Status())
		assert.Nil(t, o.DeliveryID())
		assert.Nil(t, o.SortPosition())
	})
}

func TestOrder_ReleaseAndReapproval(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AssignToDelivery(kernel.NewUUID(), 0, true))

	require.NoError(t, o.Release())
	assert.Equal(t, order.EmRota, o.Status())

	require.NoError(t, o.HoldForReapproval())
	assert.Equal(t, order.EmRotaAguardandoLiberacao, o.Status())
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_routed_order", func(t *testing.T) {
		value, _ := kernel.NewMoney(8000)
		deliveryID := kernel.NewUUID()
		pos := 1

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), 10, value, "Av Paulista 1000", "01310-100",
			order.EmRota, &deliveryID, &pos, nil, nil, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, order.EmRota, o.Status())
		require.NotNil(t, o.DeliveryID())
	})

	t.Run("rejects_unrouted_order_with_delivery_reference", func(t *testing.T) {
		value, _ := kernel.NewMoney(8000)
		deliveryID := kernel.NewUUID()

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), 10, value, "addr", "01310-100",
			order.SemRota, &deliveryID, nil, nil, nil, nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_routed_order_without_delivery_reference", func(t *testing.T) {
		value, _ := kernel.NewMoney(8000)

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), 10, value, "addr", "01310-100",
			order.EmRota, nil, nil, nil, nil, nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		value, _ := kernel.NewMoney(8000)

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), 10, value, "addr", "01310-100",
			order.Unknown, nil, nil, nil, nil, nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
