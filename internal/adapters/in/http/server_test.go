package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"missing_value", errs.NewValueIsRequiredError("driverId"), http.StatusBadRequest},
		{"invalid_value", errs.NewValueIsInvalidError("status"), http.StatusBadRequest},
		{"out_of_range", errs.NewValueIsOutOfRangeError("weight", 150, 0, 120), http.StatusBadRequest},
		{"not_found", errs.NewObjectNotFoundError("delivery", "123"), http.StatusNotFound},
		{"conflict", errs.NewConflictError("driver already has an active route"), http.StatusConflict},
		{"unavailable", errs.NewServiceUnavailableError("maps", true), http.StatusServiceUnavailable},
		{"unclassified", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			err := writeError(ctx, tc.err)

			require.NoError(t, err)
			assert.Equal(t, tc.status, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteError_UnclassifiedDetailIsNotLeaked(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := writeError(ctx, errors.New(`pq: duplicate key value violates unique constraint "idx_deliveries_active_driver"`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestScope(t *testing.T) {
	t.Run("extracts_tenant_and_actor", func(t *testing.T) {
		tenantID := kernel.NewUUID()
		actorID := kernel.NewUUID()

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(tenantHeader, tenantID.String())
		req.Header.Set(actorHeader, actorID.String())
		ctx := e.NewContext(req, httptest.NewRecorder())

		gotTenant, gotActor, err := scope(ctx)

		require.NoError(t, err)
		assert.True(t, gotTenant.IsEqual(tenantID))
		assert.True(t, gotActor.IsEqual(actorID))
	})

	t.Run("missing_tenant_header_is_invalid", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(actorHeader, kernel.NewUUID().String())
		ctx := e.NewContext(req, httptest.NewRecorder())

		_, _, err := scope(ctx)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("malformed_actor_header_is_invalid", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(tenantHeader, kernel.NewUUID().String())
		req.Header.Set(actorHeader, "not-a-uuid")
		ctx := e.NewContext(req, httptest.NewRecorder())

		_, _, err := scope(ctx)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
