// Package gateway provides thin HTTP clients for the platform collaborators:
// audit, notification and payments. The engine treats these services as
// fire-and-forget except for the payment settlement check, which guards route
// removal.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/retry"
)

// client carries the shared plumbing of the collaborator adapters.
type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	service    string
}

func newClient(service, baseURL, apiKey string, httpClient *http.Client) (client, error) {
	if baseURL == "" {
		return client{}, errs.NewValueIsRequiredError("baseURL")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		service:    service,
	}, nil
}

// postJSON sends a JSON payload and discards the response body.
func (c client) postJSON(ctx context.Context, path string, payload any) error {
	return c.exchange(ctx, http.MethodPost, path, payload, nil)
}

func (c client) exchange(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewServiceUnavailableErrorWithCause(c.service, true, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		cause := fmt.Errorf("status %d: %s", resp.StatusCode, snippet)

		if retry.IsRetryableStatus(resp.StatusCode) {
			return errs.NewServiceUnavailableErrorWithCause(c.service, true, cause)
		}
		return errs.NewValueIsInvalidErrorWithCause("request", cause)
	}

	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errs.NewServiceUnavailableErrorWithCause(c.service, false, err)
		}
	}

	return nil
}
