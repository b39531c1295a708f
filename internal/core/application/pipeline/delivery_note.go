package pipeline

import (
	"context"
	"fmt"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

const (
	// DeliveryNoteCounterKind scopes the yearly sequence counter for delivery notes.
	DeliveryNoteCounterKind = "delivery_note"

	deliveryNotePrefix = "DN"
)

// DeliveryNoteStage produces the production paperwork the first time an order
// transitions into InProduction. Same shape as InvoiceStage: edge-triggered on
// the status transition, idempotent on the presence of the delivery-note
// reference, with an independent yearly counter and prefix.
//
// The stage only fires on updates. An order re-entering InProduction after
// leaving it gets no second delivery note, because the reference guard wins.
type DeliveryNoteStage struct {
	counters ports.DocumentCounters
	storage  ports.DocumentStorage
	patcher  ports.DocumentPatcher
	now      func() time.Time
}

// NewDeliveryNoteStage creates the delivery-note generation stage.
func NewDeliveryNoteStage(counters ports.DocumentCounters, storage ports.DocumentStorage, patcher ports.DocumentPatcher) *DeliveryNoteStage {
	return &DeliveryNoteStage{
		counters: counters,
		storage:  storage,
		patcher:  patcher,
		now:      time.Now,
	}
}

// Name identifies the stage in logs.
func (s *DeliveryNoteStage) Name() string {
	return "delivery_note_generator"
}

// Apply generates the delivery note when the update moved the order into
// InProduction. Creation runs no delivery-note generation; orders created
// directly in production are picked up by the backfill job.
func (s *DeliveryNoteStage) Apply(ctx context.Context, previous, persisted *order.Order) error {
	if previous == nil {
		return nil
	}
	if persisted.Status() != order.InProduction || previous.Status() == order.InProduction {
		return nil
	}

	return s.Generate(ctx, persisted)
}

// Generate allocates a sequence number, renders and stores the delivery note,
// and attaches its reference through the patch-only write path. A present
// delivery-note reference makes it a no-op.
func (s *DeliveryNoteStage) Generate(ctx context.Context, persisted *order.Order) error {
	if persisted.DeliveryNoteRef() != nil {
		return nil
	}

	issuedAt := s.now().UTC()
	year := issuedAt.Year()

	seq, err := s.counters.Next(ctx, DeliveryNoteCounterKind, year)
	if err != nil {
		return fmt.Errorf("allocate delivery note number: %w", err)
	}
	number := fmt.Sprintf("%s-%d-%04d", deliveryNotePrefix, year, seq)

	payload, err := renderDeliveryNote(persisted, number, issuedAt)
	if err != nil {
		return err
	}

	location, err := s.storage.Store(ctx, number+".txt", payload)
	if err != nil {
		return fmt.Errorf("store delivery note %s: %w", number, err)
	}

	ref, err := order.NewDocumentRef(number, location)
	if err != nil {
		return err
	}

	if err = s.patcher.AttachDeliveryNote(ctx, persisted.ID(), ref); err != nil {
		return fmt.Errorf("attach delivery note %s: %w", number, err)
	}

	return persisted.AttachDeliveryNote(ref)
}
