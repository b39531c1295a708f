package commands

import (
	"context"

	"orders/internal/core/application/pipeline"
	"orders/internal/core/domain/model/order"
)

// UpdateOrderCommandHandler handles whole-record order updates.
//
// Sequencing contract: load the previous persisted state, apply the patch to
// a cloned candidate, run the status tracker pre-write so the audit entry
// commits with the change, persist, then run the post-write stages (invoice,
// delivery note, notification — in that fixed order) fault-isolated against
// the committed previous/new pair.
type UpdateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	orchestrator *pipeline.Orchestrator
}

// NewUpdateOrderCommandHandler creates a handler for order update operations.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, orchestrator *pipeline.Orchestrator) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory:   uowFactory,
		orchestrator: orchestrator,
	}
}

// Handle processes the update. Only validation and not-found errors reach the
// caller; once the primary write commits, the update appears successful even
// if paperwork or notification silently failed (those are logged for retry).
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if cmd.Note() != "" {
		ctx = pipeline.WithChangeNote(ctx, cmd.Note())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	previous, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	candidate := previous.Clone()
	if err = applyPatch(candidate, cmd.Patch()); err != nil {
		return nil, err
	}

	if err = h.orchestrator.RunPreWrite(ctx, previous, candidate); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, candidate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.orchestrator.RunPostWrite(ctx, previous, candidate)

	return candidate, nil
}

func applyPatch(candidate *order.Order, patch OrderPatch) error {
	if patch.Status != nil {
		if err := candidate.SetStatus(*patch.Status); err != nil {
			return err
		}
	}
	if patch.PaymentStatus != nil {
		if err := candidate.SetPaymentStatus(*patch.PaymentStatus); err != nil {
			return err
		}
	}
	if patch.PaidAt != nil {
		if err := candidate.SetPaidAt(*patch.PaidAt); err != nil {
			return err
		}
	}
	if patch.TrackingNumber != nil {
		candidate.SetTrackingNumber(*patch.TrackingNumber)
	}
	if patch.CustomerNotes != nil {
		candidate.SetCustomerNotes(*patch.CustomerNotes)
	}
	if patch.Refund != nil {
		candidate.SetRefund(*patch.Refund)
	}
	return nil
}
