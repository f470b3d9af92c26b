// Package tenant holds per-tenant route configuration: approval thresholds
// and freight pricing settings. The data is read-only from the engine's point
// of view; it is loaded by a TenantRulesProvider and consumed by the approval
// evaluator and the freight calculator.
package tenant

import (
	"fmt"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

// FreightStrategy selects how a tenant's freight value is computed.
type FreightStrategy int

const (
	// FreightStrategyUnknown represents an invalid or undefined strategy.
	FreightStrategyUnknown FreightStrategy = iota

	// DistanceBased prices the route by total distance times the tenant's
	// price per kilometer, using the external routing provider.
	DistanceBased

	// ZoneBased prices the route from a postal-code range rate table plus
	// the vehicle category's base rate. No external call is needed.
	ZoneBased
)

func getFreightStrategyStrings() map[FreightStrategy]string {
	return map[FreightStrategy]string{
		FreightStrategyUnknown: "UNKNOWN",
		DistanceBased:          "DISTANCE",
		ZoneBased:              "ZONE",
	}
}

// Validate checks if the FreightStrategy value is valid.
func (s FreightStrategy) Validate() error {
	if s != DistanceBased && s != ZoneBased {
		return errs.NewValueIsInvalidErrorWithCause("freightStrategy",
			fmt.Errorf("%d is not a valid freight strategy", s))
	}
	return nil
}

// String returns the wire name of the strategy, or "UNKNOWN" for invalid values.
func (s FreightStrategy) String() string {
	if str, ok := getFreightStrategyStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// FreightStrategyFromString parses a wire name into a FreightStrategy.
func FreightStrategyFromString(value string) (FreightStrategy, error) {
	for strategy, str := range getFreightStrategyStrings() {
		if str == value && strategy != FreightStrategyUnknown {
			return strategy, nil
		}
	}
	return FreightStrategyUnknown, errs.NewValueIsInvalidErrorWithCause("freightStrategy",
		fmt.Errorf("%q is not a valid freight strategy", value))
}

// ZoneRate maps an inclusive postal-code range to a freight rate. Postal
// codes compare lexicographically in normalized digits-only form.
type ZoneRate struct {
	FromPostalCode string
	ToPostalCode   string
	Rate           kernel.Money
}

// Contains reports whether the normalized postal code falls in the range.
func (z ZoneRate) Contains(postalCode string) bool {
	return postalCode >= z.FromPostalCode && postalCode <= z.ToPostalCode
}

// FreightConfig is a tenant's freight pricing configuration. Which fields
// are required depends on the selected strategy; Validate enforces that.
type FreightConfig struct {
	Strategy     FreightStrategy
	PricePerKm   *kernel.Money
	DepotAddress string
	ZoneRates    []ZoneRate
}

// Validate checks the configuration is complete for its strategy.
// Incomplete configuration is a tenant setup problem and surfaces as a
// validation error, not a resilience failure.
func (c FreightConfig) Validate() error {
	if err := c.Strategy.Validate(); err != nil {
		return err
	}

	switch c.Strategy {
	case DistanceBased:
		if c.DepotAddress == "" {
			return errs.NewValueIsRequiredError("depotAddress")
		}
		if c.PricePerKm == nil {
			return errs.NewValueIsRequiredError("pricePerKm")
		}
	case ZoneBased:
		if len(c.ZoneRates) == 0 {
			return errs.NewValueIsRequiredError("zoneRates")
		}
	}

	return nil
}

// RouteRules is a tenant's route policy. A nil threshold means the rule is
// not enforced for that tenant.
type RouteRules struct {
	MaxFreightPercent *float64
	MinValue          *kernel.Money
	MinWeightKg       *float64
	MinOrders         *int

	Freight FreightConfig
}

// HasApprovalThresholds reports whether any approval rule is configured.
func (r RouteRules) HasApprovalThresholds() bool {
	return r.MaxFreightPercent != nil || r.MinValue != nil ||
		r.MinWeightKg != nil || r.MinOrders != nil
}

// VehicleInfo carries the vehicle attributes the freight calculator needs.
type VehicleInfo struct {
	ID               kernel.UUID
	CategoryBaseRate kernel.Money
}
