// Package maps provides the outbound adapter for the external routing and
// geocoding provider. The plain HTTP client classifies failures as retryable
// or permanent; the resilient wrapper layers caching, circuit breaking and
// retries on top of it.
package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/retry"
)

const providerName = "maps"

// Client is the plain HTTP client for the routing provider's JSON API.
// It performs no caching or retrying on its own.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a routing provider client. The supplied http.Client
// controls transport-level timeouts.
func NewClient(baseURL, apiKey string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}, nil
}

type optimizeRouteRequest struct {
	Origin string   `json:"origin"`
	Stops  []string `json:"stops"`
}

type optimizeRouteResponse struct {
	OrderedStops    []string `json:"ordered_stops"`
	TotalDistanceKm float64  `json:"total_distance_km"`
	TotalDurationS  int64    `json:"total_duration_seconds"`
	Polyline        string   `json:"polyline"`
}

type geocodeResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OptimizeRoute requests an optimized visit order for the given stops.
func (c *Client) OptimizeRoute(ctx context.Context, origin string, stops []string) (ports.RoutePlan, error) {
	if origin == "" {
		return ports.RoutePlan{}, errs.NewValueIsRequiredError("origin")
	}
	if len(stops) == 0 {
		return ports.RoutePlan{}, errs.NewValueIsRequiredError("stops")
	}

	body, err := json.Marshal(optimizeRouteRequest{Origin: origin, Stops: stops})
	if err != nil {
		return ports.RoutePlan{}, err
	}

	var resp optimizeRouteResponse
	err = c.doJSON(ctx, http.MethodPost, c.baseURL+"/v1/routes/optimize", bytes.NewReader(body), &resp)
	if err != nil {
		return ports.RoutePlan{}, err
	}

	return ports.RoutePlan{
		OrderedStops:    resp.OrderedStops,
		TotalDistanceKm: resp.TotalDistanceKm,
		TotalDurationS:  resp.TotalDurationS,
		Polyline:        resp.Polyline,
	}, nil
}

// Geocode resolves an address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (ports.Coordinates, error) {
	if address == "" {
		return ports.Coordinates{}, errs.NewValueIsRequiredError("address")
	}

	endpoint := c.baseURL + "/v1/geocode?address=" + url.QueryEscape(address)

	var resp geocodeResponse
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return ports.Coordinates{}, err
	}

	return ports.Coordinates{Lat: resp.Lat, Lng: resp.Lng}, nil
}

// doJSON executes one HTTP exchange and decodes the JSON response.
// Transport failures and 5xx/408/429 statuses surface as retryable service
// errors; other statuses mean the request itself is bad and retrying is
// pointless.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewServiceUnavailableErrorWithCause(providerName, true, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		cause := fmt.Errorf("status %d: %s", resp.StatusCode, snippet)

		if retry.IsRetryableStatus(resp.StatusCode) {
			return errs.NewServiceUnavailableErrorWithCause(providerName, true, cause)
		}
		return errs.NewValueIsInvalidErrorWithCause("request", cause)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.NewServiceUnavailableErrorWithCause(providerName, false, err)
	}

	return nil
}
