// Package ports defines the interfaces between the application core and its
// adapters: persistence, document storage, and email transport.
package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for the Order aggregate.
// Writes are whole-record: Add and Update persist the full aggregate state.
type OrderRepository interface {
	// Add saves a new order. Fails if the id or order number already exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update replaces the persisted state of an existing order.
	// Returns an ObjectNotFoundError if the id is unknown.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its store-assigned identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindPaidMissingInvoice returns up to limit paid orders that carry no
	// invoice reference yet. Used by the document backfill job.
	FindPaidMissingInvoice(ctx context.Context, limit int) ([]*order.Order, error)

	// FindInProductionMissingDeliveryNote returns up to limit orders in
	// production that carry no delivery-note reference yet.
	FindInProductionMissingDeliveryNote(ctx context.Context, limit int) ([]*order.Order, error)
}

// DocumentPatcher is the patch-only write path used by post-write pipeline
// stages to attach a generated document reference to an already-committed
// order. It deliberately bypasses the pipeline: a secondary write must not
// re-trigger trackers, generators, or notifications.
//
// Implementations set each reference at most once; a patch against an order
// whose reference is already present is a no-op.
type DocumentPatcher interface {
	AttachInvoice(ctx context.Context, id kernel.UUID, ref order.DocumentRef) error
	AttachDeliveryNote(ctx context.Context, id kernel.UUID, ref order.DocumentRef) error
}
