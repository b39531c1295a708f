package commands

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
	ErrEmptyPatch = errors.New("update patch carries no changes")
)

// OrderPatch carries the optional field changes of an update. Nil fields are
// left untouched on the order; the whole record is still rewritten as one
// document so the audit entry commits atomically with the change.
type OrderPatch struct {
	Status         *order.Status
	PaymentStatus  *order.PaymentStatus
	PaidAt         *time.Time
	TrackingNumber *string
	CustomerNotes  *string
	Refund         *order.Refund
}

func (p OrderPatch) isEmpty() bool {
	return p.Status == nil &&
		p.PaymentStatus == nil &&
		p.PaidAt == nil &&
		p.TrackingNumber == nil &&
		p.CustomerNotes == nil &&
		p.Refund == nil
}

// UpdateOrderCommand represents an administrative or payment-driven change to
// an existing order. Any status may be set from any other status; invariants
// are enforced on history, numbering, and document references, not on the
// transition graph.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	patch   OrderPatch
	note    string

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to update an order. The optional
// note is recorded on the audit entry if this update changes the status.
func NewUpdateOrderCommand(orderID kernel.UUID, patch OrderPatch, note string) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPatch(patch),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Patch returns the field changes to apply.
func (c UpdateOrderCommand) Patch() OrderPatch {
	return c.patch
}

// Note returns the optional caller-supplied note for the audit entry.
func (c UpdateOrderCommand) Note() string {
	return c.note
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setPatch(patch OrderPatch) error {
	if patch.isEmpty() {
		return ErrEmptyPatch
	}
	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			return err
		}
	}
	if patch.PaymentStatus != nil {
		if err := patch.PaymentStatus.Validate(); err != nil {
			return err
		}
	}
	c.patch = patch
	return nil
}
