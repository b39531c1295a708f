package http

import (
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
)

// ErrorResponse is the uniform error payload for all API failures.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CustomerRequest carries the buyer identity of a new order.
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AddressRequest carries one address snapshot of a new order.
type AddressRequest struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func (a AddressRequest) toDomain() order.Address {
	return order.Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// ItemRequest carries one priced order line.
type ItemRequest struct {
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// TotalsRequest carries the order-level pricing totals.
type TotalsRequest struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TaxCents      int64 `json:"tax_cents"`
	DiscountCents int64 `json:"discount_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// CreateOrderRequest is the POST /orders body. Items, totals, and addresses
// come pre-priced from checkout; status defaults to pending_payment and
// payment status to pending when omitted.
type CreateOrderRequest struct {
	Customer        CustomerRequest `json:"customer"`
	ShippingAddress AddressRequest  `json:"shipping_address"`
	BillingAddress  AddressRequest  `json:"billing_address"`
	Items           []ItemRequest   `json:"items"`
	Totals          TotalsRequest   `json:"totals"`
	Status          string          `json:"status,omitempty"`
	PaymentStatus   string          `json:"payment_status,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	CustomerNotes   string          `json:"customer_notes,omitempty"`
}

func (r CreateOrderRequest) customer() order.Customer {
	return order.Customer{Name: r.Customer.Name, Email: r.Customer.Email}
}

func (r CreateOrderRequest) items() []order.Item {
	items := make([]order.Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, order.Item{
			SKU:            item.SKU,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	return items
}

func (r CreateOrderRequest) totals() order.Totals {
	return order.Totals{
		SubtotalCents: r.Totals.SubtotalCents,
		ShippingCents: r.Totals.ShippingCents,
		TaxCents:      r.Totals.TaxCents,
		DiscountCents: r.Totals.DiscountCents,
		TotalCents:    r.Totals.TotalCents,
	}
}

func (r CreateOrderRequest) parseStatuses() (order.Status, order.PaymentStatus, error) {
	status := order.PendingPayment
	if r.Status != "" {
		parsed, err := order.ParseStatus(r.Status)
		if err != nil {
			return order.Unknown, order.PaymentUnknown, err
		}
		status = parsed
	}

	paymentStatus := order.PaymentPending
	if r.PaymentStatus != "" {
		parsed, err := order.ParsePaymentStatus(r.PaymentStatus)
		if err != nil {
			return order.Unknown, order.PaymentUnknown, err
		}
		paymentStatus = parsed
	}

	return status, paymentStatus, nil
}

// RefundRequest carries the refund sub-record of a PATCH body.
type RefundRequest struct {
	Kind        string     `json:"kind"`
	AmountCents int64      `json:"amount_cents"`
	Reason      string     `json:"reason,omitempty"`
	RefundedAt  *time.Time `json:"refunded_at,omitempty"`
	RefundedBy  string     `json:"refunded_by,omitempty"`
}

// UpdateOrderRequest is the PATCH /orders/:id body. Absent fields are left
// untouched; note is recorded on the audit entry when the status changes.
type UpdateOrderRequest struct {
	Status         *string        `json:"status,omitempty"`
	PaymentStatus  *string        `json:"payment_status,omitempty"`
	PaidAt         *time.Time     `json:"paid_at,omitempty"`
	TrackingNumber *string        `json:"tracking_number,omitempty"`
	CustomerNotes  *string        `json:"customer_notes,omitempty"`
	Refund         *RefundRequest `json:"refund,omitempty"`
	Note           string         `json:"note,omitempty"`
}

func (r UpdateOrderRequest) toPatch(actor string) (commands.OrderPatch, error) {
	patch := commands.OrderPatch{
		PaidAt:         r.PaidAt,
		TrackingNumber: r.TrackingNumber,
		CustomerNotes:  r.CustomerNotes,
	}

	if r.Status != nil {
		status, err := order.ParseStatus(*r.Status)
		if err != nil {
			return commands.OrderPatch{}, err
		}
		patch.Status = &status
	}

	if r.PaymentStatus != nil {
		paymentStatus, err := order.ParsePaymentStatus(*r.PaymentStatus)
		if err != nil {
			return commands.OrderPatch{}, err
		}
		patch.PaymentStatus = &paymentStatus
	}

	refund, err := buildRefund(r.Refund, actor)
	if err != nil {
		return commands.OrderPatch{}, err
	}
	patch.Refund = refund

	return patch, nil
}

// CreateOrderResponse acknowledges a successful write with the identifiers
// the caller needs for follow-up requests.
type CreateOrderResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Status string `json:"status"`
}

// OrderSummaryResponse is one row of the list endpoint.
type OrderSummaryResponse struct {
	ID            string `json:"id"`
	Number        string `json:"number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	TotalCents    int64  `json:"total_cents"`
}

// OrderResponse is the full order read model returned by the get endpoint.
type OrderResponse struct {
	ID              string                         `json:"id"`
	Number          string                         `json:"number"`
	Status          string                         `json:"status"`
	PaymentStatus   string                         `json:"payment_status"`
	PaidAt          *time.Time                     `json:"paid_at,omitempty"`
	CustomerName    string                         `json:"customer_name"`
	CustomerEmail   string                         `json:"customer_email"`
	ShippingAddress queries.AddressResponse        `json:"shipping_address"`
	BillingAddress  queries.AddressResponse        `json:"billing_address"`
	Items           []queries.ItemResponse         `json:"items"`
	Totals          queries.TotalsResponse         `json:"totals"`
	CustomerNotes   string                         `json:"customer_notes,omitempty"`
	TrackingNumber  string                         `json:"tracking_number,omitempty"`
	History         []queries.HistoryEntryResponse `json:"history"`
	Invoice         *queries.DocumentRefResponse   `json:"invoice,omitempty"`
	DeliveryNote    *queries.DocumentRefResponse   `json:"delivery_note,omitempty"`
	Refund          *queries.RefundResponse        `json:"refund,omitempty"`
}

func toOrderResponse(record queries.GetOrderQueryResponse) OrderResponse {
	return OrderResponse{
		ID:              record.ID.String(),
		Number:          record.Number,
		Status:          record.Status,
		PaymentStatus:   record.PaymentStatus,
		PaidAt:          record.PaidAt,
		CustomerName:    record.CustomerName,
		CustomerEmail:   record.CustomerEmail,
		ShippingAddress: record.ShippingAddress,
		BillingAddress:  record.BillingAddress,
		Items:           record.Items,
		Totals:          record.Totals,
		CustomerNotes:   record.CustomerNotes,
		TrackingNumber:  record.TrackingNumber,
		History:         record.History,
		Invoice:         record.Invoice,
		DeliveryNote:    record.DeliveryNote,
		Refund:          record.Refund,
	}
}
