package commands

import (
	"context"
	"log/slog"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// DocumentGenerator is the slice of a document stage the backfill needs:
// unconditional, idempotent generation without the edge trigger.
type DocumentGenerator interface {
	Name() string
	Generate(ctx context.Context, persisted *order.Order) error
}

// BackfillDocumentsCommandHandler re-runs document generation for orders
// whose reference is missing even though the triggering condition holds.
// It closes the gap left by the non-transactional side-effect pipeline: a
// crash after the primary write but before the secondary patch write leaves
// the order correctly stated but undocumented.
type BackfillDocumentsCommandHandler struct {
	orders       ports.OrderRepository
	invoices     DocumentGenerator
	deliverNotes DocumentGenerator
	logger       *slog.Logger
}

// NewBackfillDocumentsCommandHandler creates a handler for document backfill sweeps.
func NewBackfillDocumentsCommandHandler(
	orders ports.OrderRepository,
	invoices DocumentGenerator,
	deliveryNotes DocumentGenerator,
	logger *slog.Logger,
) BackfillDocumentsCommandHandler {
	return BackfillDocumentsCommandHandler{
		orders:       orders,
		invoices:     invoices,
		deliverNotes: deliveryNotes,
		logger:       logger.With("component", "document_backfill"),
	}
}

// Handle runs one sweep. Individual generation failures are logged and do not
// stop the sweep; the next run retries them.
func (h *BackfillDocumentsCommandHandler) Handle(ctx context.Context, cmd BackfillDocumentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	missingInvoices, err := h.orders.FindPaidMissingInvoice(ctx, cmd.Limit())
	if err != nil {
		return err
	}
	h.generateAll(ctx, h.invoices, missingInvoices)

	missingNotes, err := h.orders.FindInProductionMissingDeliveryNote(ctx, cmd.Limit())
	if err != nil {
		return err
	}
	h.generateAll(ctx, h.deliverNotes, missingNotes)

	return nil
}

func (h *BackfillDocumentsCommandHandler) generateAll(ctx context.Context, generator DocumentGenerator, orders []*order.Order) {
	for _, o := range orders {
		if err := generator.Generate(ctx, o); err != nil {
			h.logger.ErrorContext(ctx, "document backfill failed",
				"generator", generator.Name(),
				"order_id", o.ID().String(),
				"order_number", o.Number(),
				"error", err,
			)
		}
	}
}
