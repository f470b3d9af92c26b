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

func newReleaseHandler(t *testing.T, uow *uowMock) commands.ReleaseRouteCommandHandler {
	t.Helper()
	effects := newDispatcher()
	t.Cleanup(effects.Close)
	return commands.NewReleaseRouteCommandHandler(
		uowFactoryMock{uow: uow}, effects, relaxedAudit(), relaxedNotifier())
}

func awaitingDelivery(t *testing.T, uow *uowMock, tenantID kernel.UUID, orders ...*order.Order) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), tenantID, kernel.NewUUID(), kernel.NewUUID(),
		orders, money(t, 1500), true,
	)
	require.NoError(t, err)
	uow.deliveries.On("Get", mock.Anything, tenantID, d.ID()).Return(d, nil)
	return d
}

func TestReleaseRouteCommandHandler(t *testing.T) {
	t.Run("liberation_releases_route_orders_and_records_approval", func(t *testing.T) {
		uow := newUoWMock()
		tenantID := kernel.NewUUID()
		o := newTestOrder(t, tenantID, 5, 4000)
		d := awaitingDelivery(t, uow, tenantID, o)

		uow.deliveries.On("Update", mock.Anything, d).Return(nil)
		uow.orders.On("Update", mock.Anything, o).Return(nil)
		uow.approvals.On("Add", mock.Anything, mock.MatchedBy(func(a delivery.Approval) bool {
			return a.Action() == delivery.Approved && a.DeliveryID().IsEqual(d.ID())
		})).Return(nil).Once()

		cmd, err := commands.NewReleaseRouteCommand(d.ID(), tenantID, kernel.NewUUID())
		require.NoError(t, err)

		err = newReleaseHandler(t, uow).Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, delivery.Iniciado, d.Status())
		assert.Equal(t, order.EmRota, o.Status())
		uow.approvals.AssertExpectations(t)
		uow.AssertCalled(t, "Commit", mock.Anything)
	})

	t.Run("released_route_cannot_be_released_again", func(t *testing.T) {
		uow := newUoWMock()
		tenantID := kernel.NewUUID()
		o := newTestOrder(t, tenantID, 5, 4000)
		d, err := delivery.NewDelivery(
			kernel.NewUUID(), tenantID, kernel.NewUUID(), kernel.NewUUID(),
			[]*order.Order{o}, money(t, 1500), false,
		)
		require.NoError(t, err)
		uow.deliveries.On("Get", mock.Anything, tenantID, d.ID()).Return(d, nil)

		cmd, err := commands.NewReleaseRouteCommand(d.ID(), tenantID, kernel.NewUUID())
		require.NoError(t, err)

		err = newReleaseHandler(t, uow).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("unknown_route_is_not_found", func(t *testing.T) {
		uow := newUoWMock()
		tenantID := kernel.NewUUID()
		deliveryID := kernel.NewUUID()
		uow.deliveries.On("Get", mock.Anything, tenantID, deliveryID).
			Return(nil, errs.NewObjectNotFoundError("deliveryId", deliveryID.String()))

		cmd, err := commands.NewReleaseRouteCommand(deliveryID, tenantID, kernel.NewUUID())
		require.NoError(t, err)

		err = newReleaseHandler(t, uow).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
