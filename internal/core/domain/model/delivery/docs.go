// Package delivery contains the Delivery aggregate: a route grouping a
// driver, a vehicle and a set of orders for execution. The aggregate owns the
// delivery status lifecycle, keeps its totals equal to the sum over the
// current order set, and appends immutable approval records for liberation,
// rejection and re-approval decisions.
package delivery
