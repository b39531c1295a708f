package commands

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// CreateOrderCommand represents a request to register a new customer order.
// The caller — checkout completion or an equivalent administrative action —
// supplies a fully-priced candidate: items, totals, and addresses come from
// the pricing collaborator and are accepted as already-validated input.
//
// Example:
//
//	cmd, err := commands.NewCreateOrderCommand(
//	    customer, shipping, billing, items, totals,
//	    order.PendingPayment, order.PaymentPending, nil, "gift wrap please",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customer        order.Customer
	shippingAddress order.Address
	billingAddress  order.Address
	items           []order.Item
	totals          order.Totals
	status          order.Status
	paymentStatus   order.PaymentStatus
	paidAt          *time.Time
	customerNotes   string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Status and payment status must be valid enumeration values; an order may be
// created directly in a paid condition, in which case the pipeline generates
// its invoice right after the first write.
func NewCreateOrderCommand(
	customer order.Customer,
	shippingAddress order.Address,
	billingAddress order.Address,
	items []order.Item,
	totals order.Totals,
	status order.Status,
	paymentStatus order.PaymentStatus,
	paidAt *time.Time,
	customerNotes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		totals:        totals,
		paidAt:        paidAt,
		customerNotes: customerNotes,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setAddresses(shippingAddress, billingAddress),
		cmd.setItems(items),
		cmd.setStatus(status),
		cmd.setPaymentStatus(paymentStatus),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Customer returns the buyer identity snapshot for the new order.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// ShippingAddress returns the shipping address snapshot.
func (c CreateOrderCommand) ShippingAddress() order.Address {
	return c.shippingAddress
}

// BillingAddress returns the billing address snapshot.
func (c CreateOrderCommand) BillingAddress() order.Address {
	return c.billingAddress
}

// Items returns the priced order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

// Totals returns the pricing totals supplied by the pricing collaborator.
func (c CreateOrderCommand) Totals() order.Totals {
	return c.totals
}

// Status returns the initial lifecycle status for the order.
func (c CreateOrderCommand) Status() order.Status {
	return c.status
}

// PaymentStatus returns the initial payment status for the order.
func (c CreateOrderCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}

// PaidAt returns the payment capture time, or nil if not yet paid.
func (c CreateOrderCommand) PaidAt() *time.Time {
	return c.paidAt
}

// CustomerNotes returns the optional free-text notes.
func (c CreateOrderCommand) CustomerNotes() string {
	return c.customerNotes
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setAddresses(shipping, billing order.Address) error {
	if err := errors.Join(shipping.Validate(), billing.Validate()); err != nil {
		return err
	}
	c.shippingAddress = shipping
	c.billingAddress = billing
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = append([]order.Item(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *CreateOrderCommand) setPaymentStatus(paymentStatus order.PaymentStatus) error {
	if err := paymentStatus.Validate(); err != nil {
		return err
	}
	c.paymentStatus = paymentStatus
	return nil
}
