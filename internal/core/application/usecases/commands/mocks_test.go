package commands_test

import (
	"context"
	"log/slog"
	"testing"

	appservices "github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/services"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/sideeffects"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/usecases/commands"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/delivery"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/tenant"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type deliveryRepoMock struct {
	mock.Mock
}

func (m *deliveryRepoMock) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *deliveryRepoMock) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *deliveryRepoMock) Get(ctx context.Context, tenantID, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *deliveryRepoMock) GetActiveByDriver(ctx context.Context, tenantID, driverID kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, tenantID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *deliveryRepoMock) Delete(ctx context.Context, tenantID, id kernel.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type orderRepoMock struct {
	mock.Mock
}

func (m *orderRepoMock) Add(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *orderRepoMock) Update(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *orderRepoMock) Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *orderRepoMock) GetByIDs(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type approvalRepoMock struct {
	mock.Mock
}

func (m *approvalRepoMock) Add(ctx context.Context, record delivery.Approval) error {
	return m.Called(ctx, record).Error(0)
}

type uowMock struct {
	mock.Mock
	deliveries *deliveryRepoMock
	orders     *orderRepoMock
	approvals  *approvalRepoMock
}

func newUoWMock() *uowMock {
	uow := &uowMock{
		deliveries: &deliveryRepoMock{},
		orders:     &orderRepoMock{},
		approvals:  &approvalRepoMock{},
	}
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	return uow
}

func (m *uowMock) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *uowMock) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *uowMock) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *uowMock) DeliveryRepository() ports.DeliveryRepository { return m.deliveries }
func (m *uowMock) OrderRepository() ports.OrderRepository       { return m.orders }
func (m *uowMock) ApprovalRepository() ports.ApprovalRepository { return m.approvals }

type uowFactoryMock struct {
	uow *uowMock
}

func (f uowFactoryMock) Create() commands.UoW { return f.uow }

type rulesProviderMock struct {
	mock.Mock
}

func (m *rulesProviderMock) GetRouteRules(ctx context.Context, tenantID kernel.UUID) (tenant.RouteRules, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(tenant.RouteRules), args.Error(1)
}

func (m *rulesProviderMock) GetVehicleInfo(ctx context.Context, tenantID, vehicleID kernel.UUID) (tenant.VehicleInfo, error) {
	args := m.Called(ctx, tenantID, vehicleID)
	return args.Get(0).(tenant.VehicleInfo), args.Error(1)
}

func (m *rulesProviderMock) DriverExists(ctx context.Context, tenantID, driverID kernel.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, driverID)
	return args.Bool(0), args.Error(1)
}

type mapsProviderMock struct {
	mock.Mock
}

func (m *mapsProviderMock) OptimizeRoute(ctx context.Context, origin string, stops []string) (ports.RoutePlan, error) {
	args := m.Called(ctx, origin, stops)
	return args.Get(0).(ports.RoutePlan), args.Error(1)
}

func (m *mapsProviderMock) Geocode(ctx context.Context, address string) (ports.Coordinates, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(ports.Coordinates), args.Error(1)
}

type paymentsGatewayMock struct {
	mock.Mock
}

func (m *paymentsGatewayMock) CreatePendingPayment(ctx context.Context, payment ports.PendingPayment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *paymentsGatewayMock) HasSettledPayment(ctx context.Context, tenantID, deliveryID kernel.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, deliveryID)
	return args.Bool(0), args.Error(1)
}

func (m *paymentsGatewayMock) PurgePaymentLinks(ctx context.Context, tenantID, deliveryID kernel.UUID) error {
	return m.Called(ctx, tenantID, deliveryID).Error(0)
}

type auditLoggerMock struct {
	mock.Mock
}

func (m *auditLoggerMock) LogAction(ctx context.Context, entry ports.AuditEntry) error {
	return m.Called(ctx, entry).Error(0)
}

type notifierMock struct {
	mock.Mock
}

func (m *notifierMock) Send(ctx context.Context, notification ports.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

// relaxedAudit returns an audit mock accepting any entry.
func relaxedAudit() *auditLoggerMock {
	audit := &auditLoggerMock{}
	audit.On("LogAction", mock.Anything, mock.Anything).Return(nil)
	return audit
}

// relaxedNotifier returns a notifier mock accepting any notification.
func relaxedNotifier() *notifierMock {
	notifier := &notifierMock{}
	notifier.On("Send", mock.Anything, mock.Anything).Return(nil)
	return notifier
}

func newDispatcher() *sideeffects.Dispatcher {
	return sideeffects.NewDispatcher(slog.New(slog.DiscardHandler), 64)
}

func newCalculator(t *testing.T, maps ports.MapsProvider) *appservices.FreightCalculator {
	t.Helper()
	calc, err := appservices.NewFreightCalculator(maps)
	require.NoError(t, err)
	return calc
}

func money(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents)
	require.NoError(t, err)
	return m
}

func moneyPtr(t *testing.T, cents int64) *kernel.Money {
	t.Helper()
	m := money(t, cents)
	return &m
}

func newTestOrder(t *testing.T, tenantID kernel.UUID, weightKg float64, valueCents int64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), tenantID, weightKg, money(t, valueCents),
		"Rua das Flores 10", "01310-100")
	require.NoError(t, err)
	return o
}

// distanceRules returns a tenant policy with distance pricing and the given
// optional minimum route value.
func distanceRules(t *testing.T, minValueCents *int64) tenant.RouteRules {
	t.Helper()
	rules := tenant.RouteRules{
		Freight: tenant.FreightConfig{
			Strategy:     tenant.DistanceBased,
			PricePerKm:   moneyPtr(t, 100),
			DepotAddress: "Av. Central 1000",
		},
	}
	if minValueCents != nil {
		rules.MinValue = moneyPtr(t, *minValueCents)
	}
	return rules
}

func int64Ptr(v int64) *int64 { return &v }
