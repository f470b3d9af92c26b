package commands_test

import (
	"context"
	"testing"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/usecases/commands"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRejectHandler(t *testing.T, uow *uowMock) commands.RejectRouteCommandHandler {
	t.Helper()
	effects := newDispatcher()
	t.Cleanup(effects.Close)
	return commands.NewRejectRouteCommandHandler(
		uowFactoryMock{uow: uow}, effects, relaxedAudit(), relaxedNotifier())
}

func TestRejectRouteCommandHandler(t *testing.T) {
	t.Run("rejection_reverts_orders_and_records_decision", func(t *testing.T) {
		uow := newUoWMock()
		tenantID := kernel.NewUUID()
		first := newTestOrder(t, tenantID, 5, 4000)
		second := newTestOrder(t, tenantID, 10, 8000)
		d := awaitingDelivery(t, uow, tenantID, first, second)

		uow.deliveries.On("Update", mock.Anything, d).Return(nil)
		uow.orders.On("Update", mock.Anything, mock.Anything).Return(nil).Times(2)
		reason := "freight too expensive"
		uow.approvals.On("Add", mock.Anything, mock.MatchedBy(func(a delivery.Approval) bool {
			return a.Action() == delivery.Rejected && a.Reason() != nil && *a.Reason() == reason
		})).Return(nil).Once()

		cmd, err := commands.NewRejectRouteCommand(d.ID(), tenantID, kernel.NewUUID(), &reason)
		require.NoError(t, err)

		err = newRejectHandler(t, uow).Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, delivery.Rejeitado, d.Status())
		assert.Equal(t, order.SemRota, first.Status())
		assert.Equal(t, order.SemRota, second.Status())
		assert.Nil(t, first.DeliveryID())
		uow.orders.AssertExpectations(t)
		uow.approvals.AssertExpectations(t)
	})

	t.Run("released_route_cannot_be_rejected", func(t *testing.T) {
		uow := newUoWMock()
		tenantID := kernel.NewUUID()
		o := newTestOrder(t, tenantID, 5, 4000)
		d, err := delivery.NewDelivery(
			kernel.NewUUID(), tenantID, kernel.NewUUID(), kernel.NewUUID(),
			[]*order.Order{o}, money(t, 1500), false,
		)
		require.NoError(t, err)
		uow.deliveries.On("Get", mock.Anything, tenantID, d.ID()).Return(d, nil)

		cmd, err := commands.NewRejectRouteCommand(d.ID(), tenantID, kernel.NewUUID(), nil)
		require.NoError(t, err)

		err = newRejectHandler(t, uow).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
