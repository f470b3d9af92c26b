// Package services contains application services coordinating domain logic
// with external providers.
package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/tenant"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

// FreightCalculator computes the monetary cost of executing a route. The
// strategy is selected by the tenant's freight configuration: distance-based
// pricing calls the external routing provider, zone-based pricing is a local
// table lookup. Configuration gaps surface as validation errors, never as
// resilience failures.
type FreightCalculator struct {
	maps ports.MapsProvider
}

// NewFreightCalculator creates a calculator backed by the given provider.
// The provider is expected to already carry the resilience wrapping.
func NewFreightCalculator(maps ports.MapsProvider) (*FreightCalculator, error) {
	if maps == nil {
		return nil, errs.NewValueIsRequiredError("maps")
	}
	return &FreightCalculator{maps: maps}, nil
}

// Calculate returns the freight value for the given orders and vehicle under
// the tenant's freight configuration.
func (c *FreightCalculator) Calculate(
	ctx context.Context,
	rules tenant.RouteRules,
	orders []*order.Order,
	vehicle tenant.VehicleInfo,
) (kernel.Money, error) {
	if len(orders) == 0 {
		return kernel.Money{}, errs.NewValueIsRequiredError("orders")
	}
	if err := rules.Freight.Validate(); err != nil {
		return kernel.Money{}, err
	}

	switch rules.Freight.Strategy {
	case tenant.DistanceBased:
		return c.calculateByDistance(ctx, rules.Freight, orders)
	case tenant.ZoneBased:
		return c.calculateByZone(rules.Freight, orders, vehicle)
	default:
		return kernel.Money{}, errs.NewValueIsInvalidError("freightStrategy")
	}
}

func (c *FreightCalculator) calculateByDistance(
	ctx context.Context,
	cfg tenant.FreightConfig,
	orders []*order.Order,
) (kernel.Money, error) {
	stops := make([]string, 0, len(orders))
	for _, o := range orders {
		stops = append(stops, o.Address())
	}

	plan, err := c.maps.OptimizeRoute(ctx, cfg.DepotAddress, stops)
	if err != nil {
		return kernel.Money{}, err
	}

	cents := int64(math.Round(plan.TotalDistanceKm * float64(cfg.PricePerKm.Cents())))
	return kernel.NewMoney(cents)
}

func (c *FreightCalculator) calculateByZone(
	cfg tenant.FreightConfig,
	orders []*order.Order,
	vehicle tenant.VehicleInfo,
) (kernel.Money, error) {
	var maxRate kernel.Money
	for _, o := range orders {
		rate, found := lookupZoneRate(cfg.ZoneRates, o.PostalCode())
		if !found {
			return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("postalCode",
				fmt.Errorf("no zone rate covers postal code %s", o.PostalCode()))
		}
		if rate.Cents() > maxRate.Cents() {
			maxRate = rate
		}
	}

	return maxRate.Add(vehicle.CategoryBaseRate), nil
}

func lookupZoneRate(rates []tenant.ZoneRate, postalCode string) (kernel.Money, bool) {
	normalized := normalizePostalCode(postalCode)
	var best kernel.Money
	found := false
	for _, z := range rates {
		if z.Contains(normalized) {
			found = true
			if z.Rate.Cents() > best.Cents() {
				best = z.Rate
			}
		}
	}

	return best, found
}

// normalizePostalCode keeps digits only so that formatted and raw postal
// codes compare equal against the rate table.
func normalizePostalCode(postalCode string) string {
	var b strings.Builder
	for _, r := range postalCode {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
