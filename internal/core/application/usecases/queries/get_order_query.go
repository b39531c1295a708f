// Package queries contains read-only operations over the order store.
// Query handlers read directly from the database into response projections,
// bypassing the domain aggregate and the write pipeline entirely.
package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its full status history and
// document references.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order by identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// AddressResponse mirrors a stored address snapshot.
type AddressResponse struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ItemResponse mirrors a stored order line.
type ItemResponse struct {
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// TotalsResponse mirrors the stored pricing totals.
type TotalsResponse struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TaxCents      int64 `json:"tax_cents"`
	DiscountCents int64 `json:"discount_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// HistoryEntryResponse mirrors one audit trail entry.
type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
	Note      string    `json:"note,omitempty"`
}

// DocumentRefResponse mirrors a generated document reference.
type DocumentRefResponse struct {
	Number   string `json:"number"`
	Location string `json:"location"`
}

// RefundResponse mirrors the optional refund sub-record.
type RefundResponse struct {
	Kind        string    `json:"kind"`
	AmountCents int64     `json:"amount_cents"`
	Reason      string    `json:"reason,omitempty"`
	RefundedAt  time.Time `json:"refunded_at"`
	RefundedBy  string    `json:"refunded_by"`
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	Number          string
	Status          string
	PaymentStatus   string
	PaidAt          *time.Time
	CustomerName    string
	CustomerEmail   string
	ShippingAddress AddressResponse
	BillingAddress  AddressResponse
	Items           []ItemResponse
	Totals          TotalsResponse
	CustomerNotes   string
	TrackingNumber  string
	History         []HistoryEntryResponse
	Invoice         *DocumentRefResponse
	DeliveryNote    *DocumentRefResponse
	Refund          *RefundResponse
}
