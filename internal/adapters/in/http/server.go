// Package http provides the inbound HTTP surface of the workflow engine.
// Identity travels in headers: X-Tenant-ID scopes every request, and
// X-Actor-ID with X-Actor-Role says who is acting. The engine trusts the
// gateway in front of it to have authenticated those headers.
package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m4r-ant/200millas-Backend/internal/core/application/usecases/commands"
	"github.com/m4r-ant/200millas-Backend/internal/core/application/usecases/queries"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerTenantID  = "X-Tenant-ID"
	headerActorID   = "X-Actor-ID"
	headerActorRole = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	requestTransitionHandler  commands.RequestTransitionCommandHandler
	reportAvailabilityHandler commands.ReportAvailabilityCommandHandler

	getOrderHandler       queries.GetOrderQueryHandler
	getOrdersHandler      queries.GetOrdersQueryHandler
	getTimelineHandler    queries.GetTimelineQueryHandler
	getDashboardHandler   queries.GetDashboardMetricsQueryHandler
	getStaffHandler       queries.GetStaffAvailabilityQueryHandler
	getPerformanceHandler queries.GetStaffPerformanceQueryHandler
}

// NewServer creates an HTTP server wired to the given command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	requestTransitionHandler commands.RequestTransitionCommandHandler,
	reportAvailabilityHandler commands.ReportAvailabilityCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getTimelineHandler queries.GetTimelineQueryHandler,
	getDashboardHandler queries.GetDashboardMetricsQueryHandler,
	getStaffHandler queries.GetStaffAvailabilityQueryHandler,
	getPerformanceHandler queries.GetStaffPerformanceQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		requestTransitionHandler:  requestTransitionHandler,
		reportAvailabilityHandler: reportAvailabilityHandler,
		getOrderHandler:           getOrderHandler,
		getOrdersHandler:          getOrdersHandler,
		getTimelineHandler:        getTimelineHandler,
		getDashboardHandler:       getDashboardHandler,
		getStaffHandler:           getStaffHandler,
		getPerformanceHandler:     getPerformanceHandler,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetOrders)
	v1.GET("/orders/:order_id", s.GetOrder)
	v1.POST("/orders/:order_id/transition", s.RequestTransition)
	v1.GET("/orders/:order_id/timeline", s.GetTimeline)
	v1.POST("/staff/availability", s.ReportAvailability)
	v1.GET("/staff", s.GetStaff)
	v1.GET("/dashboard", s.GetDashboard)
	v1.GET("/dashboard/staff-performance", s.GetStaffPerformance)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// identity extracts the tenant and acting identity from request headers.
func identity(ctx echo.Context) (kernel.TenantID, kernel.Actor, error) {
	tenantID, err := kernel.NewTenantID(ctx.Request().Header.Get(headerTenantID))
	if err != nil {
		return kernel.TenantID{}, kernel.Actor{}, err
	}

	role, err := kernel.ParseActorRole(ctx.Request().Header.Get(headerActorRole))
	if err != nil {
		return kernel.TenantID{}, kernel.Actor{}, err
	}

	actor, err := kernel.NewActor(ctx.Request().Header.Get(headerActorID), role)
	if err != nil {
		return kernel.TenantID{}, kernel.Actor{}, err
	}

	return tenantID, actor, nil
}

// CreateOrder handles POST /api/v1/orders. The customer identity comes from
// the actor headers, not the body.
func (s *Server) CreateOrder(ctx echo.Context) error {
	tenantID, actor, err := identity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var body NewOrder
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items := make([]commands.OrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, commands.OrderItem{
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, tenantID, actor.ID(), items, body.DeliveryAddress, body.DeliveryInstructions)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{
		OrderID: orderID.String(),
		Status:  order.Confirmed.String(),
	})
}

// GetOrders handles GET /api/v1/orders. Accepts ?status= or a
// comma-separated ?statuses= filter.
func (s *Server) GetOrders(ctx echo.Context) error {
	tenantID, actor, err := identity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	statuses, err := statusFilter(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrdersQuery(tenantID, actor, statuses)
	if err != nil {
		return badRequest(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:order_id.
func (s *Server) GetOrder(ctx echo.Context) error {
	tenantID, actor, err := identity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(tenantID, orderID, actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// RequestTransition handles POST /api/v1/orders/:order_id/transition.
func (s *Server) RequestTransition(ctx echo.Context) error {
	tenantID, actor, err := identity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var body TransitionRequest
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	targetStatus, err := order.ParseStatus(body.TargetStatus)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRequestTransitionCommand(tenantID, orderID, actor, targetStatus, body.Notes)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.requestTransitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	// Answer with the committed order so the caller sees the assignment
	// changes the transition made, not just the status they asked for.
	query, err := queries.NewGetOrderQuery(tenantID, orderID, actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// GetTimeline handles GET /api/v1/orders/:order_id/timeline.
func (s *Server) GetTimeline(ctx echo.Context) error {
	tenantID, _, err := identity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetTimelineQuery(tenantID, orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	timeline, err := s.getTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	steps := make([]TimelineStep, 0, len(timeline.Steps))
	for _, step := range timeline.Steps {
		steps = append(steps, TimelineStep{
			StepNumber:      step.StepNumber,
			Status:          step.Status,
			AssignedTo:      step.AssignedTo,
			StartedAt:       step.StartedAt,
			CompletedAt:     step.CompletedAt,
			DurationSeconds: step.DurationSeconds,
			Notes:           step.Notes,
		})
	}

	return ctx.JSON(http.StatusOK, Timeline{
		OrderID:              timeline.OrderID.String(),
		Steps:                steps,
		TotalDurationSeconds: timeline.TotalDurationSeconds,
	})
}

// ReportAvailability handles POST /api/v1/staff/availability. Workers
// report for themselves; the staff ID is the acting identity.
func (s *Server) ReportAvailability(ctx echo.Context) error {
	tenantID, actor, err := identity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var body AvailabilityReport
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	role, err := staff.ParseRole(body.Role)
	if err != nil {
		return badRequest(ctx, err)
	}

	status, err := staff.ParseStatus(body.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewReportAvailabilityCommand(tenantID, actor.ID(), role, status)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.reportAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"staff_id": actor.ID(),
		"status":   status.String(),
	})
}

// GetStaff handles GET /api/v1/staff.
func (s *Server) GetStaff(ctx echo.Context) error {
	tenantID, _, err := identity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetStaffAvailabilityQuery(tenantID)
	if err != nil {
		return badRequest(ctx, err)
	}

	roster, err := s.getStaffHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StaffRoster{
		Available:      toStaffMembers(roster.Available),
		Busy:           toStaffMembers(roster.Busy),
		Offline:        toStaffMembers(roster.Offline),
		AvailableCount: roster.AvailableCount,
		BusyCount:      roster.BusyCount,
		OfflineCount:   roster.OfflineCount,
	})
}

// GetDashboard handles GET /api/v1/dashboard.
func (s *Server) GetDashboard(ctx echo.Context) error {
	tenantID, _, err := identity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetDashboardMetricsQuery(tenantID)
	if err != nil {
		return badRequest(ctx, err)
	}

	dashboard, err := s.getDashboardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	recent := make([]RecentOrder, 0, len(dashboard.RecentOrders))
	for _, o := range dashboard.RecentOrders {
		recent = append(recent, RecentOrder{
			ID:          o.ID.String(),
			CustomerID:  o.CustomerID,
			Status:      o.Status,
			TotalAmount: o.TotalAmount,
			CreatedAt:   o.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, Dashboard{
		StatusCounts:   dashboard.StatusCounts,
		ActiveOrders:   dashboard.ActiveOrders,
		DeliveredCount: dashboard.DeliveredCount,
		FailedCount:    dashboard.FailedCount,
		TotalRevenue:   dashboard.TotalRevenue,
		RecentOrders:   recent,
	})
}

// GetStaffPerformance handles GET /api/v1/dashboard/staff-performance.
func (s *Server) GetStaffPerformance(ctx echo.Context) error {
	tenantID, actor, err := identity(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetStaffPerformanceQuery(tenantID, actor)
	if err != nil {
		return badRequest(ctx, err)
	}

	report, err := s.getPerformanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]StaffPerformance, 0, len(report))
	for _, row := range report {
		response = append(response, StaffPerformance{
			StaffID:        row.StaffID,
			Role:           row.Role,
			CompletedTasks: row.CompletedTasks,
			AvgTimeSeconds: row.AvgTimeSeconds,
			CompletionRate: row.CompletionRate,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func statusFilter(ctx echo.Context) ([]order.Status, error) {
	raw := ctx.QueryParam("statuses")
	if raw == "" {
		raw = ctx.QueryParam("status")
	}
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	statuses := make([]order.Status, 0, len(parts))
	for _, part := range parts {
		status, err := order.ParseStatus(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

func toOrderResponse(o queries.GetOrderQueryResponse) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItem{
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return Order{
		ID:                   o.ID.String(),
		CustomerID:           o.CustomerID,
		Items:                items,
		DeliveryAddress:      o.DeliveryAddress,
		DeliveryInstructions: o.DeliveryInstructions,
		Status:               o.Status,
		AssignedChef:         o.AssignedChef,
		AssignedDriver:       o.AssignedDriver,
		TotalAmount:          o.TotalAmount,
		CreatedAt:            o.CreatedAt,
	}
}

func toStaffMembers(members []queries.StaffMemberResponse) []StaffMember {
	response := make([]StaffMember, 0, len(members))
	for _, member := range members {
		var currentOrderID *string
		if member.CurrentOrderID != nil {
			id := member.CurrentOrderID.String()
			currentOrderID = &id
		}
		response = append(response, StaffMember{
			StaffID:         member.StaffID,
			Role:            member.Role,
			Status:          member.Status,
			CurrentOrderID:  currentOrderID,
			OrdersCompleted: member.OrdersCompleted,
		})
	}
	return response
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// mapError translates application errors onto HTTP statuses. A rejected
// transition answers 409 with the authoritative current status, so clients
// reconcile from the response instead of polling.
func mapError(ctx echo.Context, err error) error {
	var transitionErr errs.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return ctx.JSON(http.StatusConflict, Error{
			Code:          http.StatusConflict,
			Message:       transitionErr.Error(),
			CurrentStatus: transitionErr.CurrentStatus,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrForbidden):
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConcurrencyConflict),
		errors.Is(err, errs.ErrAssignmentConflict),
		errors.Is(err, staff.ErrStaffIsBusy),
		errors.Is(err, staff.ErrStaffIsNotAvailable):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err)
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
