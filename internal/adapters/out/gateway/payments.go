package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
)

// PaymentsClient talks to the platform's payment ledger.
type PaymentsClient struct {
	client client
}

// NewPaymentsClient creates a payment ledger client.
func NewPaymentsClient(baseURL, apiKey string, httpClient *http.Client) (*PaymentsClient, error) {
	c, err := newClient("payments", baseURL, apiKey, httpClient)
	if err != nil {
		return nil, err
	}
	return &PaymentsClient{client: c}, nil
}

type pendingPaymentPayload struct {
	AmountCents int64  `json:"amount_cents"`
	TenantID    string `json:"tenant_id"`
	DriverID    string `json:"driver_id"`
	DeliveryID  string `json:"delivery_id"`
}

type settlementResponse struct {
	Settled bool `json:"settled"`
}

// CreatePendingPayment opens a driver payment for a finalized route.
func (c *PaymentsClient) CreatePendingPayment(ctx context.Context, payment ports.PendingPayment) error {
	return c.client.postJSON(ctx, "/v1/payments/pending", pendingPaymentPayload{
		AmountCents: payment.Amount.Cents(),
		TenantID:    payment.TenantID.String(),
		DriverID:    payment.DriverID.String(),
		DeliveryID:  payment.DeliveryID.String(),
	})
}

// HasSettledPayment reports whether any payment linked to the route has
// already been settled.
func (c *PaymentsClient) HasSettledPayment(ctx context.Context, tenantID, deliveryID kernel.UUID) (bool, error) {
	path := fmt.Sprintf("/v1/payments/settlement?tenant_id=%s&delivery_id=%s",
		url.QueryEscape(tenantID.String()), url.QueryEscape(deliveryID.String()))

	var resp settlementResponse
	if err := c.client.exchange(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return false, err
	}

	return resp.Settled, nil
}

// PurgePaymentLinks removes unsettled payment-link records for a route being
// removed.
func (c *PaymentsClient) PurgePaymentLinks(ctx context.Context, tenantID, deliveryID kernel.UUID) error {
	path := fmt.Sprintf("/v1/payments/links?tenant_id=%s&delivery_id=%s",
		url.QueryEscape(tenantID.String()), url.QueryEscape(deliveryID.String()))

	return c.client.exchange(ctx, http.MethodDelete, path, nil, nil)
}
