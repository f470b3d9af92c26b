package maps

import (
	"context"
	"strings"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/metrics"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/breaker"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/cache"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/retry"
)

const (
	optimizeRouteOp = "optimize_route"
	geocodeOp       = "geocode"

	// Route plans go stale as traffic changes; coordinates of a fixed
	// address do not.
	routePlanTTL = 15 * time.Minute
	geocodeTTL   = 24 * time.Hour
)

// ResilientProvider wraps a MapsProvider with the cache, circuit breaker and
// retry layers, in that order. A cache hit never touches the circuit; a
// rejected or exhausted call surfaces as a retryable service error for the
// caller to map.
type ResilientProvider struct {
	inner    ports.MapsProvider
	cache    *cache.Cache
	circuit  *breaker.Circuit
	retryCfg retry.Config
}

// NewResilientProvider wraps the given provider. The circuit is shared by all
// operations against the provider since they fail together when it is down.
func NewResilientProvider(
	inner ports.MapsProvider,
	store *cache.Cache,
	circuits *breaker.Registry,
	retryCfg retry.Config,
) *ResilientProvider {
	return &ResilientProvider{
		inner:    inner,
		cache:    store,
		circuit:  circuits.Circuit(providerName, breaker.DefaultConfig()),
		retryCfg: retryCfg,
	}
}

// OptimizeRoute returns a cached route plan when one is fresh, otherwise
// calls the provider through the protection layers and caches the result.
func (p *ResilientProvider) OptimizeRoute(
	ctx context.Context,
	origin string,
	stops []string,
) (ports.RoutePlan, error) {
	key := cache.GenerateKey(optimizeRouteOp, map[string]string{
		"origin": origin,
		"stops":  strings.Join(stops, "|"),
	})

	if cached, ok := p.cache.Get(key); ok {
		if plan, valid := cached.(ports.RoutePlan); valid {
			metrics.CacheHitsTotal.WithLabelValues(optimizeRouteOp).Inc()
			return plan, nil
		}
	}
	metrics.CacheMissesTotal.WithLabelValues(optimizeRouteOp).Inc()

	plan, err := protect(ctx, p, optimizeRouteOp, func(ctx context.Context) (ports.RoutePlan, error) {
		return p.inner.OptimizeRoute(ctx, origin, stops)
	})
	if err != nil {
		return ports.RoutePlan{}, err
	}

	p.cache.Set(key, plan, routePlanTTL)
	return plan, nil
}

// Geocode returns cached coordinates when available, otherwise calls the
// provider through the protection layers and caches the result.
func (p *ResilientProvider) Geocode(ctx context.Context, address string) (ports.Coordinates, error) {
	key := cache.GenerateKey(geocodeOp, map[string]string{"address": address})

	if cached, ok := p.cache.Get(key); ok {
		if coords, valid := cached.(ports.Coordinates); valid {
			metrics.CacheHitsTotal.WithLabelValues(geocodeOp).Inc()
			return coords, nil
		}
	}
	metrics.CacheMissesTotal.WithLabelValues(geocodeOp).Inc()

	coords, err := protect(ctx, p, geocodeOp, func(ctx context.Context) (ports.Coordinates, error) {
		return p.inner.Geocode(ctx, address)
	})
	if err != nil {
		return ports.Coordinates{}, err
	}

	p.cache.Set(key, coords, geocodeTTL)
	return coords, nil
}

// protect runs op behind the circuit breaker with retries inside the circuit,
// so one user-visible call counts as one circuit outcome regardless of how
// many attempts the retry layer made. Permanent failures, such as a rejected
// address, are not counted against the circuit; only infrastructure failures
// may open it.
func protect[T any](
	ctx context.Context,
	p *ResilientProvider,
	operation string,
	op func(context.Context) (T, error),
) (T, error) {
	start := time.Now()

	var permanent error
	result, err := breaker.Do(ctx, p.circuit, func(ctx context.Context) (T, error) {
		res, callErr := retry.Do(ctx, p.retryCfg, op)
		if callErr != nil && !retry.IsRetryable(callErr) {
			permanent = callErr
			return res, nil
		}
		return res, callErr
	})
	if err == nil && permanent != nil {
		err = permanent
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.ProviderCallDuration.WithLabelValues(providerName, operation, outcome).
		Observe(time.Since(start).Seconds())

	return result, err
}
