// Package http exposes the order lifecycle over a REST API built on echo.
// Handlers translate between the wire DTOs and the application's command
// and query handlers; all business rules stay behind those handlers.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler *commands.TransitionOrderCommandHandler
	deleteOrderHandler     commands.DeleteOrderCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getAllOrdersHandler      queries.GetAllOrdersQueryHandler
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler
	getStatusSummaryHandler  queries.GetStatusSummaryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler *commands.TransitionOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getStatusSummaryHandler queries.GetStatusSummaryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		transitionOrderHandler:   transitionOrderHandler,
		deleteOrderHandler:       deleteOrderHandler,
		getOrderHandler:          getOrderHandler,
		getAllOrdersHandler:      getAllOrdersHandler,
		getOrdersByStatusHandler: getOrdersByStatusHandler,
		getStatusSummaryHandler:  getStatusSummaryHandler,
	}
}

// RegisterRoutes mounts every handler on the echo instance.
// Static segments are registered alongside the :id parameter; echo gives
// them priority, so /orders/summary never shadows an order id.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/summary", s.GetStatusSummary)
	api.GET("/orders/:id", s.GetOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/pay", s.transitionTo(order.Paid))
	api.POST("/orders/:id/ship", s.transitionTo(order.Shipped))
	api.POST("/orders/:id/deliver", s.transitionTo(order.Delivered))
	api.POST("/orders/:id/cancel", s.transitionTo(order.Cancelled))
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - creates a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(request.Customer, request.Total)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponseFromAggregate(created))
}

// GetOrders handles GET /api/v1/orders - lists orders, optionally filtered
// by the status query parameter (canonical lower-case name).
func (s *Server) GetOrders(ctx echo.Context) error {
	requestCtx := ctx.Request().Context()

	statusName := ctx.QueryParam("status")
	if statusName == "" {
		orders, err := s.getAllOrdersHandler.Handle(requestCtx, queries.NewGetAllOrdersQuery())
		if err != nil {
			return writeError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, toOrderResponses(orders))
	}

	status, err := order.ParseStatus(statusName)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+statusName)
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return badRequest(ctx, "Invalid status filter: "+err.Error())
	}

	orders, err := s.getOrdersByStatusHandler.Handle(requestCtx, query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOrder handles GET /api/v1/orders/:id - retrieves a single order.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(found))
}

// GetStatusSummary handles GET /api/v1/orders/summary - per-status aggregates.
func (s *Server) GetStatusSummary(ctx echo.Context) error {
	summary, err := s.getStatusSummaryHandler.Handle(
		ctx.Request().Context(), queries.NewGetStatusSummaryQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	entries := make([]StatusSummaryEntryResponse, 0, len(summary.PerStatus))
	for _, entry := range summary.PerStatus {
		entries = append(entries, StatusSummaryEntryResponse{
			Status: entry.Status.String(),
			Count:  entry.Count,
			Total:  entry.Total,
		})
	}

	return ctx.JSON(http.StatusOK, StatusSummaryResponse{
		Statuses:  entries,
		Orders:    summary.Orders,
		Completed: summary.Completed,
	})
}

// TransitionOrder handles POST /api/v1/orders/:id/transition - moves an
// order to the target status named in the body.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request TransitionOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.ParseStatus(request.Target)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+request.Target)
	}

	return s.handleTransition(ctx, id, target)
}

// DeleteOrder handles DELETE /api/v1/orders/:id - removes an order.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	if err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// transitionTo builds the handler for one of the named transition routes
// (pay, ship, deliver, cancel).
func (s *Server) transitionTo(target order.Status) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := orderID(ctx)
		if err != nil {
			return badRequest(ctx, "Invalid order id")
		}

		return s.handleTransition(ctx, id, target)
	}
}

func (s *Server) handleTransition(ctx echo.Context, id int64, target order.Status) error {
	cmd, err := commands.NewTransitionOrderCommand(id, target)
	if err != nil {
		return badRequest(ctx, "Invalid transition request: "+err.Error())
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponseFromAggregate(updated))
}

func orderID(ctx echo.Context) (int64, error) {
	return strconv.ParseInt(ctx.Param("id"), 10, 64)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP status codes:
// missing orders to 404, state-machine rejections to 409, validation
// failures to 400, everything else to 500.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
