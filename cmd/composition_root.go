package cmd

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/out/gateway"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/out/maps"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/out/postgres"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/out/postgres/tenantrepo"
	appservices "github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/services"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/sideeffects"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/usecases/commands"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/usecases/queries"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/jobs"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/metrics"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/breaker"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/cache"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/retry"

	"gorm.io/gorm"
)

const (
	outboundCallTimeout = 10 * time.Second
	sideEffectQueueSize = 256
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	rules    *tenantrepo.GormTenantRulesProvider
	freight  *appservices.FreightCalculator
	effects  *sideeffects.Dispatcher
	audit    *gateway.AuditClient
	notifier *gateway.NotificationClient
	payments *gateway.PaymentsClient

	cacheStore *cache.Cache
	jobManager *jobs.JobManager
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) (*CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	httpClient := &http.Client{Timeout: outboundCallTimeout}

	circuits := breaker.NewRegistry(
		breaker.WithTransitionHook(func(name string, from, to breaker.State) {
			metrics.CircuitTransitionsTotal.WithLabelValues(name, from.String(), to.String()).Inc()
		}),
		breaker.WithRejectionHook(func(name string) {
			metrics.CircuitRejectionsTotal.WithLabelValues(name).Inc()
		}),
	)
	cacheStore := cache.New()

	mapsClient, err := maps.NewClient(configs.MapsBaseURL, configs.MapsAPIKey, httpClient)
	if err != nil {
		return nil, err
	}
	mapsProvider := maps.NewResilientProvider(mapsClient, cacheStore, circuits, retry.DefaultConfig())

	freight, err := appservices.NewFreightCalculator(mapsProvider)
	if err != nil {
		return nil, err
	}

	audit, err := gateway.NewAuditClient(configs.AuditBaseURL, configs.GatewayAPIKey, httpClient)
	if err != nil {
		return nil, err
	}
	notifier, err := gateway.NewNotificationClient(configs.NotificationBaseURL, configs.GatewayAPIKey, httpClient)
	if err != nil {
		return nil, err
	}
	payments, err := gateway.NewPaymentsClient(configs.PaymentsBaseURL, configs.GatewayAPIKey, httpClient)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		rules:      tenantrepo.NewGormTenantRulesProvider(gormDB),
		freight:    freight,
		effects:    sideeffects.NewDispatcher(logger, sideEffectQueueSize),
		audit:      audit,
		notifier:   notifier,
		payments:   payments,
		cacheStore: cacheStore,
		jobManager: jobs.NewJobManager(cacheStore, logger),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// Close drains pending side effects and stops the background jobs.
func (c *CompositionRoot) Close() {
	c.jobManager.StopAll()
	c.effects.Close()
}

func (c *CompositionRoot) CreateCreateRouteCommandHandler() commands.CreateRouteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRouteCommandHandler(f, c.rules, c.freight, c.effects, c.audit, c.notifier)
}

func (c *CompositionRoot) CreateUpdateRouteCommandHandler() commands.UpdateRouteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateRouteCommandHandler(f, c.rules, c.freight, c.effects, c.audit, c.notifier)
}

func (c *CompositionRoot) CreateReleaseRouteCommandHandler() commands.ReleaseRouteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseRouteCommandHandler(f, c.effects, c.audit, c.notifier)
}

func (c *CompositionRoot) CreateRejectRouteCommandHandler() commands.RejectRouteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectRouteCommandHandler(f, c.effects, c.audit, c.notifier)
}

func (c *CompositionRoot) CreateRemoveRouteCommandHandler() commands.RemoveRouteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveRouteCommandHandler(f, c.payments, c.effects, c.audit)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.payments, c.effects, c.audit, c.notifier)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingApprovalsQueryHandler() queries.GetPendingApprovalsQueryHandler {
	return queries.NewGetPendingApprovalsQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
