// Package http implements the inbound HTTP adapter. It translates requests
// into commands and queries and maps domain errors to HTTP statuses.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/usecases/commands"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/application/usecases/queries"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/kernel"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/core/domain/model/order"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	tenantHeader = "X-Tenant-ID"
	actorHeader  = "X-Actor-ID"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createRouteHandler       commands.CreateRouteCommandHandler
	updateRouteHandler       commands.UpdateRouteCommandHandler
	releaseRouteHandler      commands.ReleaseRouteCommandHandler
	rejectRouteHandler       commands.RejectRouteCommandHandler
	removeRouteHandler       commands.RemoveRouteCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	activeDeliveriesHandler queries.GetActiveDeliveriesQueryHandler
	pendingApprovalsHandler queries.GetPendingApprovalsQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createRouteHandler commands.CreateRouteCommandHandler,
	updateRouteHandler commands.UpdateRouteCommandHandler,
	releaseRouteHandler commands.ReleaseRouteCommandHandler,
	rejectRouteHandler commands.RejectRouteCommandHandler,
	removeRouteHandler commands.RemoveRouteCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	activeDeliveriesHandler queries.GetActiveDeliveriesQueryHandler,
	pendingApprovalsHandler queries.GetPendingApprovalsQueryHandler,
) *Server {
	return &Server{
		createRouteHandler:       createRouteHandler,
		updateRouteHandler:       updateRouteHandler,
		releaseRouteHandler:      releaseRouteHandler,
		rejectRouteHandler:       rejectRouteHandler,
		removeRouteHandler:       removeRouteHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		activeDeliveriesHandler:  activeDeliveriesHandler,
		pendingApprovalsHandler:  pendingApprovalsHandler,
	}
}

// RegisterRoutes wires the server's endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/routes", s.CreateRoute)
	api.GET("/routes/active", s.GetActiveRoutes)
	api.GET("/routes/pending-approvals", s.GetPendingApprovals)
	api.PATCH("/routes/:id", s.UpdateRoute)
	api.DELETE("/routes/:id", s.RemoveRoute)
	api.POST("/routes/:id/release", s.ReleaseRoute)
	api.POST("/routes/:id/reject", s.RejectRoute)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// ErrorResponse is the JSON error body returned to callers.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain errors to HTTP statuses. Retryable resilience
// failures surface as 503 so callers know to retry. Unclassified errors may
// carry driver or SQL detail, so they are logged and answered with a generic
// 500 body.
func writeError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrServiceUnavailable):
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
		ctx.Logger().Error(err)
		return ctx.JSON(status, ErrorResponse{Code: status, Message: "internal server error"})
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: err.Error()})
}

// scope extracts the tenant and actor identity from the request headers.
func scope(ctx echo.Context) (tenantID, actorID kernel.UUID, err error) {
	tenantID, err = kernel.UUIDFromString(ctx.Request().Header.Get(tenantHeader))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(tenantHeader, err)
	}

	actorID, err = kernel.UUIDFromString(ctx.Request().Header.Get(actorHeader))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(actorHeader, err)
	}

	return tenantID, actorID, nil
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

func parseUUIDs(values []string, param string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(values))
	for _, value := range values {
		id, err := kernel.UUIDFromString(value)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(param, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseOptionalUUID(value *string, param string) (*kernel.UUID, error) {
	if value == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*value)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return &id, nil
}

// CreateRouteRequest is the body of POST /api/v1/routes.
type CreateRouteRequest struct {
	DriverID  string   `json:"driver_id"`
	VehicleID string   `json:"vehicle_id"`
	OrderIDs  []string `json:"order_ids"`
}

// CreateRouteResponse returns the identifier of the created route.
type CreateRouteResponse struct {
	ID string `json:"id"`
}

// CreateRoute handles POST /api/v1/routes.
func (s *Server) CreateRoute(ctx echo.Context) error {
	tenantID, actorID, err := scope(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req CreateRouteRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("driver_id", err))
	}
	vehicleID, err := kernel.UUIDFromString(req.VehicleID)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("vehicle_id", err))
	}
	orderIDs, err := parseUUIDs(req.OrderIDs, "order_ids")
	if err != nil {
		return writeError(ctx, err)
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateRouteCommand(deliveryID, tenantID, actorID, driverID, vehicleID, orderIDs)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateRouteResponse{ID: deliveryID.String()})
}

// UpdateRouteRequest is the body of PATCH /api/v1/routes/:id. All fields are
// optional but at least one change must be present.
type UpdateRouteRequest struct {
	AddOrderIDs    []string `json:"add_order_ids,omitempty"`
	RemoveOrderIDs []string `json:"remove_order_ids,omitempty"`
	DriverID       *string  `json:"driver_id,omitempty"`
	VehicleID      *string  `json:"vehicle_id,omitempty"`
}

// UpdateRoute handles PATCH /api/v1/routes/:id.
func (s *Server) UpdateRoute(ctx echo.Context) error {
	tenantID, actorID, err := scope(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateRouteRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	addIDs, err := parseUUIDs(req.AddOrderIDs, "add_order_ids")
	if err != nil {
		return writeError(ctx, err)
	}
	removeIDs, err := parseUUIDs(req.RemoveOrderIDs, "remove_order_ids")
	if err != nil {
		return writeError(ctx, err)
	}
	driverID, err := parseOptionalUUID(req.DriverID, "driver_id")
	if err != nil {
		return writeError(ctx, err)
	}
	vehicleID, err := parseOptionalUUID(req.VehicleID, "vehicle_id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateRouteCommand(deliveryID, tenantID, actorID, addIDs, removeIDs, driverID, vehicleID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseRoute handles POST /api/v1/routes/:id/release.
func (s *Server) ReleaseRoute(ctx echo.Context) error {
	tenantID, actorID, err := scope(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReleaseRouteCommand(deliveryID, tenantID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.releaseRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectRouteRequest is the body of POST /api/v1/routes/:id/reject.
type RejectRouteRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// RejectRoute handles POST /api/v1/routes/:id/reject.
func (s *Server) RejectRoute(ctx echo.Context) error {
	tenantID, actorID, err := scope(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req RejectRouteRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewRejectRouteCommand(deliveryID, tenantID, actorID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.rejectRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveRoute handles DELETE /api/v1/routes/:id.
func (s *Server) RemoveRoute(ctx echo.Context) error {
	tenantID, actorID, err := scope(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRemoveRouteCommand(deliveryID, tenantID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.removeRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatusRequest is the body of POST /api/v1/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status        string  `json:"status"`
	FailureReason *string `json:"failure_reason,omitempty"`
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	tenantID, actorID, err := scope(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	orderID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req UpdateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	newStatus, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, tenantID, actorID, newStatus, req.FailureReason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RouteSummary is one active route in the listing response.
type RouteSummary struct {
	ID            string    `json:"id"`
	DriverID      string    `json:"driver_id"`
	VehicleID     string    `json:"vehicle_id"`
	Status        string    `json:"status"`
	TotalWeightKg float64   `json:"total_weight_kg"`
	TotalValue    string    `json:"total_value"`
	FreightValue  string    `json:"freight_value"`
	OrderCount    int       `json:"order_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetActiveRoutes handles GET /api/v1/routes/active.
func (s *Server) GetActiveRoutes(ctx echo.Context) error {
	tenantID, _, err := scope(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetActiveDeliveriesQuery(tenantID)
	if err != nil {
		return writeError(ctx, err)
	}

	routes, err := s.activeDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]RouteSummary, len(routes))
	for i, route := range routes {
		response[i] = RouteSummary{
			ID:            route.ID.String(),
			DriverID:      route.DriverID.String(),
			VehicleID:     route.VehicleID.String(),
			Status:        route.Status,
			TotalWeightKg: route.TotalWeightKg,
			TotalValue:    route.TotalValue.String(),
			FreightValue:  route.FreightValue.String(),
			OrderCount:    route.OrderCount,
			CreatedAt:     route.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PendingApproval is one held route in the approval queue response.
type PendingApproval struct {
	DeliveryID   string    `json:"delivery_id"`
	DriverID     string    `json:"driver_id"`
	TotalValue   string    `json:"total_value"`
	FreightValue string    `json:"freight_value"`
	HoldReason   *string   `json:"hold_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// GetPendingApprovals handles GET /api/v1/routes/pending-approvals.
func (s *Server) GetPendingApprovals(ctx echo.Context) error {
	tenantID, _, err := scope(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPendingApprovalsQuery(tenantID)
	if err != nil {
		return writeError(ctx, err)
	}

	pending, err := s.pendingApprovalsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]PendingApproval, len(pending))
	for i, item := range pending {
		response[i] = PendingApproval{
			DeliveryID:   item.DeliveryID.String(),
			DriverID:     item.DriverID.String(),
			TotalValue:   item.TotalValue.String(),
			FreightValue: item.FreightValue.String(),
			HoldReason:   item.HoldReason,
			CreatedAt:    item.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
