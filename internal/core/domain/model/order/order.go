package order

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNumberAlreadyAssigned is returned when assigning an order number to an
	// order that already has one. Order numbers are immutable once set.
	ErrNumberAlreadyAssigned = errors.New("order number is already assigned and cannot be reassigned")

	// ErrInvoiceAlreadyAttached is returned when attaching an invoice reference
	// to an order that already has one. Document references are write-once.
	ErrInvoiceAlreadyAttached = errors.New("invoice reference is already attached")

	// ErrDeliveryNoteAlreadyAttached is returned when attaching a delivery-note
	// reference to an order that already has one. Document references are write-once.
	ErrDeliveryNoteAlreadyAttached = errors.New("delivery note reference is already attached")

	// ErrHistoryStatusMismatch is returned when an audit entry's status does not
	// match the order's current status at append time.
	ErrHistoryStatusMismatch = errors.New("history entry status must match the order status")
)

// Order is the canonical mutable record of a customer purchase and the
// aggregate root of this domain.
//
// Order maintains these invariants:
//   - The identifier and order number, once set, never change
//   - The status history is append-only; after any status change the last
//     entry's status equals the order's current status
//   - Invoice and delivery-note references are each set at most once and
//     never cleared or overwritten
//   - Customer identity and addresses are creation-time snapshots
//
// Status transitions themselves are unrestricted; see Status.
type Order struct {
	id     kernel.UUID
	number string

	status        Status
	paymentStatus PaymentStatus
	paidAt        *time.Time

	customer        Customer
	shippingAddress Address
	billingAddress  Address

	items  []Item
	totals Totals

	customerNotes  string
	trackingNumber string

	history []HistoryEntry

	invoiceRef      *DocumentRef
	deliveryNoteRef *DocumentRef

	refund *Refund

	isConstructed bool
}

// NewOrder creates a new Order with validation. The candidate carries no order
// number and no history yet; both are filled in by the pre-write pipeline
// stages before the first persist.
//
// Items and pricing totals come from the pricing collaborator; their amounts
// are accepted as-is, only structural validity is checked.
func NewOrder(
	id kernel.UUID,
	customer Customer,
	shippingAddress Address,
	billingAddress Address,
	items []Item,
	totals Totals,
	status Status,
	paymentStatus PaymentStatus,
) (*Order, error) {
	o := &Order{
		totals:        totals,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setAddresses(shippingAddress, billingAddress),
		o.setItems(items),
		o.SetStatus(status),
		o.SetPaymentStatus(paymentStatus),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running the
// creation-time defaults. All invariants are assumed to have been enforced
// when the record was originally written; only structural validity is checked.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customer Customer,
	shippingAddress Address,
	billingAddress Address,
	items []Item,
	totals Totals,
	status Status,
	paymentStatus PaymentStatus,
	paidAt *time.Time,
	customerNotes string,
	trackingNumber string,
	history []HistoryEntry,
	invoiceRef *DocumentRef,
	deliveryNoteRef *DocumentRef,
	refund *Refund,
) (*Order, error) {
	o, err := NewOrder(id, customer, shippingAddress, billingAddress, items, totals, status, paymentStatus)
	if err != nil {
		return nil, err
	}

	o.number = number
	o.paidAt = paidAt
	o.customerNotes = customerNotes
	o.trackingNumber = trackingNumber
	o.history = append([]HistoryEntry(nil), history...)
	o.invoiceRef = invoiceRef
	o.deliveryNoteRef = deliveryNoteRef
	o.refund = refund

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value or hand-built instances.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Clone returns a deep copy of the order. Update handlers clone the persisted
// record to build the candidate state, so the previous and candidate versions
// can be compared by the pipeline without aliasing.
func (o *Order) Clone() *Order {
	clone := *o
	clone.items = append([]Item(nil), o.items...)
	clone.history = append([]HistoryEntry(nil), o.history...)
	if o.paidAt != nil {
		paidAt := *o.paidAt
		clone.paidAt = &paidAt
	}
	if o.invoiceRef != nil {
		ref := *o.invoiceRef
		clone.invoiceRef = &ref
	}
	if o.deliveryNoteRef != nil {
		ref := *o.deliveryNoteRef
		clone.deliveryNoteRef = &ref
	}
	if o.refund != nil {
		refund := *o.refund
		clone.refund = &refund
	}
	return &clone
}

// ID returns the order's store-assigned immutable identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-facing order number, or "" before allocation.
func (o *Order) Number() string {
	return o.number
}

// AssignNumber sets the human-facing order number exactly once.
// Returns ErrNumberAlreadyAssigned if a number is already present, so a
// retried create leaves the original number untouched.
func (o *Order) AssignNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	if o.number != "" {
		return ErrNumberAlreadyAssigned
	}
	o.number = number
	return nil
}

// Status returns the order's current lifecycle stage.
func (o *Order) Status() Status {
	return o.status
}

// SetStatus moves the order to the given status. Any valid status is accepted
// regardless of the current one; the audit entry for the change is appended
// separately by the status tracker via RecordStatusChange.
func (o *Order) SetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// PaymentStatus returns the payment-side status stored on the order.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// SetPaymentStatus records the payment collaborator's status on the order.
func (o *Order) SetPaymentStatus(paymentStatus PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}
	o.paymentStatus = paymentStatus
	return nil
}

// PaidAt returns when payment was captured, or nil if not yet paid.
func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

// SetPaidAt records the payment capture time.
func (o *Order) SetPaidAt(paidAt time.Time) error {
	if paidAt.IsZero() {
		return errs.NewValueIsRequiredError("paidAt")
	}
	o.paidAt = &paidAt
	return nil
}

// Customer returns the creation-time snapshot of the buyer's identity.
func (o *Order) Customer() Customer {
	return o.customer
}

// ShippingAddress returns the creation-time shipping address snapshot.
func (o *Order) ShippingAddress() Address {
	return o.shippingAddress
}

// BillingAddress returns the creation-time billing address snapshot.
func (o *Order) BillingAddress() Address {
	return o.billingAddress
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Totals returns the pricing totals supplied at creation.
func (o *Order) Totals() Totals {
	return o.totals
}

// CustomerNotes returns free-text notes attached to the order.
func (o *Order) CustomerNotes() string {
	return o.customerNotes
}

// SetCustomerNotes replaces the free-text notes on the order.
func (o *Order) SetCustomerNotes(notes string) {
	o.customerNotes = notes
}

// TrackingNumber returns the carrier tracking number, or "" if not shipped.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// SetTrackingNumber records the carrier tracking number.
func (o *Order) SetTrackingNumber(trackingNumber string) {
	o.trackingNumber = trackingNumber
}

// History returns a copy of the append-only status audit trail, oldest first.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// RecordStatusChange appends an audit entry for the order's current status.
// The entry's status must equal the order's status, which keeps the audit
// trail's last entry in lockstep with the record after every status change.
func (o *Order) RecordStatusChange(entry HistoryEntry) error {
	if entry.Status() != o.status {
		return fmt.Errorf("%w: entry is %s, order is %s", ErrHistoryStatusMismatch, entry.Status(), o.status)
	}
	o.history = append(o.history, entry)
	return nil
}

// InvoiceRef returns the generated invoice reference, or nil if none exists.
// A non-nil value means invoice generation already ran for this order.
func (o *Order) InvoiceRef() *DocumentRef {
	return o.invoiceRef
}

// AttachInvoice sets the invoice reference exactly once.
// Returns ErrInvoiceAlreadyAttached on any later attempt.
func (o *Order) AttachInvoice(ref DocumentRef) error {
	if o.invoiceRef != nil {
		return ErrInvoiceAlreadyAttached
	}
	o.invoiceRef = &ref
	return nil
}

// DeliveryNoteRef returns the generated delivery-note reference, or nil.
func (o *Order) DeliveryNoteRef() *DocumentRef {
	return o.deliveryNoteRef
}

// AttachDeliveryNote sets the delivery-note reference exactly once.
// Returns ErrDeliveryNoteAlreadyAttached on any later attempt.
func (o *Order) AttachDeliveryNote(ref DocumentRef) error {
	if o.deliveryNoteRef != nil {
		return ErrDeliveryNoteAlreadyAttached
	}
	o.deliveryNoteRef = &ref
	return nil
}

// Refund returns the refund sub-record, or nil if no refund was filed.
// A refund-flavored status does not imply a non-nil refund; see Refund.
func (o *Order) Refund() *Refund {
	return o.refund
}

// SetRefund files the refund sub-record on the order.
func (o *Order) SetRefund(refund Refund) {
	o.refund = &refund
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setAddresses(shipping, billing Address) error {
	if err := shipping.Validate(); err != nil {
		return fmt.Errorf("shipping address: %w", err)
	}
	if err := billing.Validate(); err != nil {
		return fmt.Errorf("billing address: %w", err)
	}
	o.shippingAddress = shipping
	o.billingAddress = billing
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	o.items = append([]Item(nil), items...)
	return nil
}
