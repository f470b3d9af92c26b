package ports

import (
	"context"
)

// Coordinates is a geographic point returned by geocoding.
type Coordinates struct {
	Lat float64
	Lng float64
}

// RoutePlan is the routing provider's answer for an origin plus a set of
// stops. Distances come back in kilometers, duration in seconds.
type RoutePlan struct {
	OrderedStops    []string
	TotalDistanceKm float64
	TotalDurationS  int64
	Polyline        string
}

// MapsProvider is the external routing/geocoding dependency consumed by the
// freight calculator. Implementations must distinguish temporary failures
// (surfaced as retryable service-unavailable errors) from permanent
// bad-input failures (surfaced as validation errors) so the retrier's
// predicate can decide what to re-attempt.
type MapsProvider interface {
	// OptimizeRoute plans a route from origin through every stop.
	OptimizeRoute(ctx context.Context, origin string, stops []string) (RoutePlan, error)

	// Geocode resolves an address to coordinates.
	Geocode(ctx context.Context, address string) (Coordinates, error)
}
