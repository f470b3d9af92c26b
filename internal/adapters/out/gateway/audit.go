package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
)

// AuditClient sends route actions to the platform's audit service.
type AuditClient struct {
	client client
}

// NewAuditClient creates an audit service client.
func NewAuditClient(baseURL, apiKey string, httpClient *http.Client) (*AuditClient, error) {
	c, err := newClient("audit", baseURL, apiKey, httpClient)
	if err != nil {
		return nil, err
	}
	return &AuditClient{client: c}, nil
}

type auditEntryPayload struct {
	UserID       string    `json:"user_id"`
	TenantID     string    `json:"tenant_id"`
	Action       string    `json:"action"`
	TargetEntity string    `json:"target_entity"`
	TargetID     string    `json:"target_id"`
	Details      string    `json:"details,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// LogAction records one audit entry.
func (c *AuditClient) LogAction(ctx context.Context, entry ports.AuditEntry) error {
	return c.client.postJSON(ctx, "/v1/audit/entries", auditEntryPayload{
		UserID:       entry.UserID.String(),
		TenantID:     entry.TenantID.String(),
		Action:       entry.Action,
		TargetEntity: entry.TargetEntity,
		TargetID:     entry.TargetID.String(),
		Details:      entry.Details,
		Timestamp:    entry.Timestamp,
	})
}
