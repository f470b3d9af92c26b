package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/adapters/out/gateway"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/ports"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditClient_LogAction(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audit/entries", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, err := gateway.NewAuditClient(server.URL, "key", server.Client())
	require.NoError(t, err)

	tenantID := kernel.NewUUID()
	err = client.LogAction(context.Background(), ports.AuditEntry{
		UserID:       kernel.NewUUID(),
		TenantID:     tenantID,
		Action:       "route_created",
		TargetEntity: "delivery",
		TargetID:     kernel.NewUUID(),
	})

	require.NoError(t, err)
	assert.Equal(t, "route_created", received["action"])
	assert.Equal(t, tenantID.String(), received["tenant_id"])
}

func TestNotificationClient_Send(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/notifications", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client, err := gateway.NewNotificationClient(server.URL, "", server.Client())
	require.NoError(t, err)

	err = client.Send(context.Background(), ports.Notification{
		Recipient:  kernel.NewUUID(),
		Channels:   []string{"push", "email"},
		TemplateID: "route_assigned",
		Data:       map[string]string{"deliveryId": "abc"},
	})

	require.NoError(t, err)
	assert.Equal(t, "route_assigned", received["template_id"])
}

func TestPaymentsClient(t *testing.T) {
	t.Run("settlement_check_decodes_the_flag", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/payments/settlement", r.URL.Path)
			assert.NotEmpty(t, r.URL.Query().Get("tenant_id"))
			json.NewEncoder(w).Encode(map[string]bool{"settled": true})
		}))
		defer server.Close()

		client, err := gateway.NewPaymentsClient(server.URL, "", server.Client())
		require.NoError(t, err)

		settled, err := client.HasSettledPayment(context.Background(), kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, err)
		assert.True(t, settled)
	})

	t.Run("purge_issues_a_delete", func(t *testing.T) {
		var method string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			assert.Equal(t, "/v1/payments/links", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client, err := gateway.NewPaymentsClient(server.URL, "", server.Client())
		require.NoError(t, err)

		err = client.PurgePaymentLinks(context.Background(), kernel.NewUUID(), kernel.NewUUID())

		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, method)
	})

	t.Run("ledger_outage_is_retryable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "ledger down", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client, err := gateway.NewPaymentsClient(server.URL, "", server.Client())
		require.NoError(t, err)

		money, err := kernel.NewMoney(1500)
		require.NoError(t, err)
		err = client.CreatePendingPayment(context.Background(), ports.PendingPayment{
			Amount:     money,
			TenantID:   kernel.NewUUID(),
			DriverID:   kernel.NewUUID(),
			DeliveryID: kernel.NewUUID(),
		})

		require.ErrorIs(t, err, errs.ErrServiceUnavailable)
		assert.True(t, errs.IsRetryable(err))
	})
}
