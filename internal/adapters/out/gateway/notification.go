package gateway

import (
	"context"
	"net/http"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
)

// NotificationClient sends user notifications through the platform's
// notification service.
type NotificationClient struct {
	client client
}

// NewNotificationClient creates a notification service client.
func NewNotificationClient(baseURL, apiKey string, httpClient *http.Client) (*NotificationClient, error) {
	c, err := newClient("notification", baseURL, apiKey, httpClient)
	if err != nil {
		return nil, err
	}
	return &NotificationClient{client: c}, nil
}

type notificationPayload struct {
	Recipient  string            `json:"recipient"`
	Channels   []string          `json:"channels"`
	TemplateID string            `json:"template_id"`
	Data       map[string]string `json:"data,omitempty"`
}

// Send delivers one notification.
func (c *NotificationClient) Send(ctx context.Context, notification ports.Notification) error {
	return c.client.postJSON(ctx, "/v1/notifications", notificationPayload{
		Recipient:  notification.Recipient.String(),
		Channels:   notification.Channels,
		TemplateID: notification.TemplateID,
		Data:       notification.Data,
	})
}
