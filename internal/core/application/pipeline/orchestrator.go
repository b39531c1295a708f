package pipeline

import (
	"context"
	"log/slog"

	"orders/internal/core/domain/model/order"
)

// Orchestrator sequences the pipeline stages around the order store's write
// boundary. Stage lists are fixed at construction; there is no dynamic
// registration, so the sequencing is inspectable and testable.
//
// Pre-write stages run in order and mutate the candidate; the first error
// aborts the write and reaches the caller. Post-write stages run in order
// against the committed record; each one is fault-isolated, so a failure in
// stage n is logged and swallowed and stage n+1 still runs.
type Orchestrator struct {
	pre    []Stage
	post   []Stage
	logger *slog.Logger
}

// NewOrchestrator creates an orchestrator with statically registered stage
// lists. The standard wiring is pre = [NumberAllocator, StatusTracker] and
// post = [InvoiceStage, DeliveryNoteStage, NotificationStage], in that order.
func NewOrchestrator(logger *slog.Logger, pre, post []Stage) *Orchestrator {
	return &Orchestrator{
		pre:    pre,
		post:   post,
		logger: logger.With("component", "order_pipeline"),
	}
}

// RunPreWrite applies the pre-write stages to the candidate. previous is nil
// on creation. Any stage error aborts the pipeline and must abort the write.
func (o *Orchestrator) RunPreWrite(ctx context.Context, previous, candidate *order.Order) error {
	for _, stage := range o.pre {
		if err := stage.Apply(ctx, previous, candidate); err != nil {
			return err
		}
	}
	return nil
}

// RunPostWrite applies the post-write stages to the committed record. The
// primary write has already succeeded; stage failures are wrapped in
// SideEffectError, logged with enough context for a manual retry, and never
// propagated. Every stage gets its attempt regardless of earlier failures.
func (o *Orchestrator) RunPostWrite(ctx context.Context, previous, persisted *order.Order) {
	for _, stage := range o.post {
		if err := stage.Apply(ctx, previous, persisted); err != nil {
			sideEffectErr := &SideEffectError{
				Stage:   stage.Name(),
				OrderID: persisted.ID(),
				Err:     err,
			}
			o.logger.ErrorContext(ctx, "side-effect stage failed",
				"stage", stage.Name(),
				"order_id", persisted.ID().String(),
				"order_number", persisted.Number(),
				"error", sideEffectErr,
			)
		}
	}
}
