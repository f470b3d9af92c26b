// Package services contains stateless domain services that operate across
// aggregates without owning state of their own.
package services

import (
	"fmt"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/tenant"
)

// ApprovalDecision is the outcome of evaluating a route against the tenant's
// thresholds. Reasons carry the numbers that triggered each violation so an
// approver can see why the route was held.
type ApprovalDecision struct {
	NeedsApproval bool
	Reasons       []string
}

// RouteMetrics are the aggregate figures of a route under evaluation.
type RouteMetrics struct {
	TotalValue    kernel.Money
	TotalWeightKg float64
	OrderCount    int
	FreightValue  kernel.Money
}

// EvaluateApproval decides whether a route needs manual approval. It is a
// pure function: every configured threshold is checked independently, in a
// fixed order, and all violations are reported, not just the first.
func EvaluateApproval(rules tenant.RouteRules, metrics RouteMetrics) ApprovalDecision {
	var reasons []string

	// Freight percentage is undefined for a zero-value route; skip the rule.
	if rules.MaxFreightPercent != nil && metrics.TotalValue.Cents() > 0 {
		percent := float64(metrics.FreightValue.Cents()) / float64(metrics.TotalValue.Cents()) * 100
		if percent > *rules.MaxFreightPercent {
			reasons = append(reasons, fmt.Sprintf(
				"freight is %.2f%% of the route value, above the %.2f%% ceiling",
				percent, *rules.MaxFreightPercent))
		}
	}

	if rules.MinValue != nil && metrics.TotalValue.Cents() < rules.MinValue.Cents() {
		reasons = append(reasons, fmt.Sprintf(
			"route value %s is below the minimum %s",
			metrics.TotalValue.String(), rules.MinValue.String()))
	}

	if rules.MinWeightKg != nil && metrics.TotalWeightKg < *rules.MinWeightKg {
		reasons = append(reasons, fmt.Sprintf(
			"route weight %.2f kg is below the minimum %.2f kg",
			metrics.TotalWeightKg, *rules.MinWeightKg))
	}

	if rules.MinOrders != nil && metrics.OrderCount < *rules.MinOrders {
		reasons = append(reasons, fmt.Sprintf(
			"route has %d orders, below the minimum %d",
			metrics.OrderCount, *rules.MinOrders))
	}

	return ApprovalDecision{
		NeedsApproval: len(reasons) > 0,
		Reasons:       reasons,
	}
}
