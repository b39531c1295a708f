package pipeline

import (
	"context"
	"fmt"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

const (
	// InvoiceCounterKind scopes the yearly sequence counter for invoices.
	InvoiceCounterKind = "invoice"

	invoicePrefix = "INV"
)

// InvoiceStage produces the proof-of-payment document the first time an order
// carries a paid payment status.
//
// The trigger is edge-based, not level-based: the stage fires when the paid
// state is entered (creation with paymentStatus already paid, or an update
// whose previous record was not paid). Paying twice regenerates nothing.
// Generation is also skipped whenever an invoice reference is already
// attached.
type InvoiceStage struct {
	counters ports.DocumentCounters
	storage  ports.DocumentStorage
	patcher  ports.DocumentPatcher
	now      func() time.Time
}

// NewInvoiceStage creates the invoice generation stage.
func NewInvoiceStage(counters ports.DocumentCounters, storage ports.DocumentStorage, patcher ports.DocumentPatcher) *InvoiceStage {
	return &InvoiceStage{
		counters: counters,
		storage:  storage,
		patcher:  patcher,
		now:      time.Now,
	}
}

// Name identifies the stage in logs.
func (s *InvoiceStage) Name() string {
	return "invoice_generator"
}

// Apply generates the invoice when the write moved the order into the paid
// state. previous is nil on creation.
func (s *InvoiceStage) Apply(ctx context.Context, previous, persisted *order.Order) error {
	if persisted.PaymentStatus() != order.PaymentPaid {
		return nil
	}
	if previous != nil && previous.PaymentStatus() == order.PaymentPaid {
		return nil
	}

	return s.Generate(ctx, persisted)
}

// Generate allocates a sequence number, renders and stores the invoice, and
// attaches its reference through the patch-only write path. It is safe to
// call for any paid order: a present invoice reference makes it a no-op.
// The backfill job calls Generate directly, without the edge trigger.
func (s *InvoiceStage) Generate(ctx context.Context, persisted *order.Order) error {
	if persisted.InvoiceRef() != nil {
		return nil
	}

	issuedAt := s.now().UTC()
	year := issuedAt.Year()

	seq, err := s.counters.Next(ctx, InvoiceCounterKind, year)
	if err != nil {
		return fmt.Errorf("allocate invoice number: %w", err)
	}
	number := fmt.Sprintf("%s-%d-%04d", invoicePrefix, year, seq)

	payload, err := renderInvoice(persisted, number, issuedAt)
	if err != nil {
		return err
	}

	location, err := s.storage.Store(ctx, number+".txt", payload)
	if err != nil {
		return fmt.Errorf("store invoice %s: %w", number, err)
	}

	ref, err := order.NewDocumentRef(number, location)
	if err != nil {
		return err
	}

	if err = s.patcher.AttachInvoice(ctx, persisted.ID(), ref); err != nil {
		return fmt.Errorf("attach invoice %s: %w", number, err)
	}

	// Keep the in-memory record aligned with the store so later stages and
	// the caller see the attached reference.
	return persisted.AttachInvoice(ref)
}
