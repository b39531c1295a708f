// Package http exposes the order API over REST. It coordinates between HTTP
// handlers and application use cases: commands go through the write pipeline,
// queries read straight from the database.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"orders/internal/core/application/pipeline"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ActorHeader carries the identity of the operator performing a change.
// When absent, status history entries are attributed to the system actor.
const ActorHeader = "X-Actor"

const defaultListLimit = 100

// Server implements the HTTP handlers for the order API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	updateOrderHandler commands.UpdateOrderCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		updateOrderHandler: updateOrderHandler,
		getOrderHandler:    getOrderHandler,
		listOrdersHandler:  listOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders", s.ListOrders)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, paymentStatus, err := req.parseStatuses()
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.customer(),
		req.ShippingAddress.toDomain(),
		req.BillingAddress.toDomain(),
		req.items(),
		req.totals(),
		status,
		paymentStatus,
		req.PaidAt,
		req.CustomerNotes,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(s.requestContext(ctx), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:     created.ID().String(),
		Number: created.Number(),
		Status: created.Status().String(),
	})
}

// UpdateOrder handles PATCH /api/v1/orders/:id - applies a partial update.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	patch, err := req.toPatch(ctx.Request().Header.Get(ActorHeader))
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, patch, req.Note)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	updated, err := s.updateOrderHandler.Handle(s.requestContext(ctx), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CreateOrderResponse{
		ID:     updated.ID().String(),
		Number: updated.Number(),
		Status: updated.Status().String(),
	})
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order in full.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	record, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(record))
}

// ListOrders handles GET /api/v1/orders - retrieves order summaries,
// optionally filtered by status.
func (s *Server) ListOrders(ctx echo.Context) error {
	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return badRequest(ctx, "Invalid status filter: "+raw)
		}
		statusFilter = &status
	}

	query, err := queries.NewListOrdersQuery(statusFilter, defaultListLimit)
	if err != nil {
		return badRequest(ctx, "Invalid list parameters: "+err.Error())
	}

	summaries, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(summaries))
	for i, summary := range summaries {
		response[i] = OrderSummaryResponse{
			ID:            summary.ID.String(),
			Number:        summary.Number,
			Status:        summary.Status,
			PaymentStatus: summary.PaymentStatus,
			CustomerName:  summary.CustomerName,
			CustomerEmail: summary.CustomerEmail,
			TotalCents:    summary.TotalCents,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// requestContext decorates the request context with the acting operator, so
// status history entries carry who made the change.
func (s *Server) requestContext(ctx echo.Context) context.Context {
	requestCtx := ctx.Request().Context()
	if actor := ctx.Request().Header.Get(ActorHeader); actor != "" {
		requestCtx = pipeline.WithActor(requestCtx, actor)
	}
	return requestCtx
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func domainError(ctx echo.Context, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}
	if errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) {
		return badRequest(ctx, err.Error())
	}

	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: "Internal error",
	})
}

// buildRefund completes a refund sub-record from the request, defaulting the
// processing time to now and the processing actor to the request actor.
func buildRefund(req *RefundRequest, actor string) (*order.Refund, error) {
	if req == nil {
		return nil, nil
	}

	refundedAt := time.Now().UTC()
	if req.RefundedAt != nil {
		refundedAt = *req.RefundedAt
	}
	refundedBy := req.RefundedBy
	if refundedBy == "" {
		refundedBy = actor
	}
	if refundedBy == "" {
		refundedBy = order.SystemActor
	}

	refund, err := order.NewRefund(order.RefundKind(req.Kind), req.AmountCents, req.Reason, refundedAt, refundedBy)
	if err != nil {
		return nil, err
	}

	return &refund, nil
}
