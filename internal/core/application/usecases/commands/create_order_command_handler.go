package commands

import (
	"context"

	"orders/internal/core/application/pipeline"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
//
// Sequencing contract: pre-write stages (order number allocation and the
// initial status history entry) run against the candidate, then the record is
// committed, then post-write stages run — on creation only the invoice
// generator can fire, and only if the order was created already paid.
type CreateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	orchestrator *pipeline.Orchestrator
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, orchestrator *pipeline.Orchestrator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		orchestrator: orchestrator,
	}
}

// Handle processes the order creation command and returns the created order
// with its assigned identifier and order number. Once the primary write has
// committed, the creation succeeds from the caller's perspective even if a
// post-write side effect fails.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	candidate, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.Customer(),
		cmd.ShippingAddress(),
		cmd.BillingAddress(),
		cmd.Items(),
		cmd.Totals(),
		cmd.Status(),
		cmd.PaymentStatus(),
	)
	if err != nil {
		return nil, err
	}

	if paidAt := cmd.PaidAt(); paidAt != nil {
		if err = candidate.SetPaidAt(*paidAt); err != nil {
			return nil, err
		}
	}
	candidate.SetCustomerNotes(cmd.CustomerNotes())

	if err = h.orchestrator.RunPreWrite(ctx, nil, candidate); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, candidate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The write is durable; side effects run after it and cannot undo it.
	h.orchestrator.RunPostWrite(ctx, nil, candidate)

	return candidate, nil
}
