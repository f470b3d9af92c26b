package commands_test

import (
	"context"
	"testing"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/usecases/commands"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/tenant"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type updateRouteEnv struct {
	handler commands.UpdateRouteCommandHandler
	uow     *uowMock
	rules   *rulesProviderMock
	maps    *mapsProviderMock
}

func newUpdateRouteEnv(t *testing.T) *updateRouteEnv {
	t.Helper()
	env := &updateRouteEnv{
		uow:   newUoWMock(),
		rules: &rulesProviderMock{},
		maps:  &mapsProviderMock{},
	}
	effects := newDispatcher()
	t.Cleanup(effects.Close)

	env.handler = commands.NewUpdateRouteCommandHandler(
		uowFactoryMock{uow: env.uow},
		env.rules,
		newCalculator(t, env.maps),
		effects,
		relaxedAudit(),
		relaxedNotifier(),
	)
	return env
}

func (env *updateRouteEnv) expectFreight(t *testing.T, tenantID kernel.UUID, rules tenant.RouteRules, distanceKm float64) {
	t.Helper()
	env.rules.On("GetRouteRules", mock.Anything, tenantID).Return(rules, nil)
	env.rules.On("GetVehicleInfo", mock.Anything, tenantID, mock.Anything).
		Return(tenant.VehicleInfo{}, nil)
	env.maps.On("OptimizeRoute", mock.Anything, mock.Anything, mock.Anything).
		Return(ports.RoutePlan{TotalDistanceKm: distanceKm}, nil)
}

func TestUpdateRouteCommandHandler(t *testing.T) {
	t.Run("adding_an_order_recomputes_totals_and_freight", func(t *testing.T) {
		env := newUpdateRouteEnv(t)
		tenantID := kernel.NewUUID()
		member := newTestOrder(t, tenantID, 5, 4000)
		added := newTestOrder(t, tenantID, 10, 8000)
		d, err := delivery.NewDelivery(
			kernel.NewUUID(), tenantID, kernel.NewUUID(), kernel.NewUUID(),
			[]*order.Order{member}, money(t, 1000), false,
		)
		require.NoError(t, err)

		env.expectFreight(t, tenantID, distanceRules(t, nil), 25)
		env.uow.deliveries.On("Get", mock.Anything, tenantID, d.ID()).Return(d, nil)
		env.uow.orders.On("GetByIDs", mock.Anything, tenantID, []kernel.UUID{added.ID()}).
			Return([]*order.Order{added}, nil)
		env.uow.deliveries.On("Update", mock.Anything, d).Return(nil)
		env.uow.orders.On("Update", mock.Anything, mock.Anything).Return(nil)

		cmd, err := commands.NewUpdateRouteCommand(
			d.ID(), tenantID, kernel.NewUUID(),
			[]kernel.UUID{added.ID()}, nil, nil, nil)
		require.NoError(t, err)

		err = env.handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(12000), d.TotalValue().Cents())
		assert.Equal(t, int64(2500), d.FreightValue().Cents())
		assert.Equal(t, order.EmRota, added.Status())
		assert.Equal(t, delivery.Iniciado, d.Status())
	})

	t.Run("recomputed_aggregates_can_push_route_back_behind_approval", func(t *testing.T) {
		env := newUpdateRouteEnv(t)
		tenantID := kernel.NewUUID()
		member := newTestOrder(t, tenantID, 5, 4000)
		removed := newTestOrder(t, tenantID, 10, 8000)
		d, err := delivery.NewDelivery(
			kernel.NewUUID(), tenantID, kernel.NewUUID(), kernel.NewUUID(),
			[]*order.Order{member, removed}, money(t, 1000), false,
		)
		require.NoError(t, err)

		// Removing the 80.00 order drops the total to 40.00, under the
		// 100.00 minimum: the route must go back behind approval.
		env.expectFreight(t, tenantID, distanceRules(t, int64Ptr(10000)), 10)
		env.uow.deliveries.On("Get", mock.Anything, tenantID, d.ID()).Return(d, nil)
		env.uow.deliveries.On("Update", mock.Anything, d).Return(nil)
		env.uow.orders.On("Update", mock.Anything, mock.Anything).Return(nil)
		env.uow.approvals.On("Add", mock.Anything, mock.MatchedBy(func(a delivery.Approval) bool {
			return a.Action() == delivery.ReApprovalNeeded && a.Reason() != nil
		})).Return(nil).Once()

		cmd, err := commands.NewUpdateRouteCommand(
			d.ID(), tenantID, kernel.NewUUID(),
			nil, []kernel.UUID{removed.ID()}, nil, nil)
		require.NoError(t, err)

		err = env.handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, delivery.ALiberar, d.Status())
		assert.Equal(t, order.EmRotaAguardandoLiberacao, member.Status())
		assert.Equal(t, order.SemRota, removed.Status())
		assert.Nil(t, d.ReleasedAt())
		env.uow.approvals.AssertExpectations(t)
	})

	t.Run("driver_change_validates_ownership", func(t *testing.T) {
		env := newUpdateRouteEnv(t)
		tenantID := kernel.NewUUID()
		member := newTestOrder(t, tenantID, 5, 4000)
		d, err := delivery.NewDelivery(
			kernel.NewUUID(), tenantID, kernel.NewUUID(), kernel.NewUUID(),
			[]*order.Order{member}, money(t, 1000), false,
		)
		require.NoError(t, err)
		newDriver := kernel.NewUUID()

		env.rules.On("GetRouteRules", mock.Anything, tenantID).Return(distanceRules(t, nil), nil)
		env.rules.On("DriverExists", mock.Anything, tenantID, newDriver).Return(false, nil)
		env.uow.deliveries.On("Get", mock.Anything, tenantID, d.ID()).Return(d, nil)

		cmd, err := commands.NewUpdateRouteCommand(
			d.ID(), tenantID, kernel.NewUUID(), nil, nil, &newDriver, nil)
		require.NoError(t, err)

		err = env.handler.Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		env.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("removing_the_last_order_is_rejected", func(t *testing.T) {
		env := newUpdateRouteEnv(t)
		tenantID := kernel.NewUUID()
		member := newTestOrder(t, tenantID, 5, 4000)
		d, err := delivery.NewDelivery(
			kernel.NewUUID(), tenantID, kernel.NewUUID(), kernel.NewUUID(),
			[]*order.Order{member}, money(t, 1000), false,
		)
		require.NoError(t, err)

		env.rules.On("GetRouteRules", mock.Anything, tenantID).Return(distanceRules(t, nil), nil)
		env.uow.deliveries.On("Get", mock.Anything, tenantID, d.ID()).Return(d, nil)

		cmd, err := commands.NewUpdateRouteCommand(
			d.ID(), tenantID, kernel.NewUUID(),
			nil, []kernel.UUID{member.ID()}, nil, nil)
		require.NoError(t, err)

		err = env.handler.Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		env.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("empty_update_is_rejected_at_construction", func(t *testing.T) {
		_, err := commands.NewUpdateRouteCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, nil, nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
