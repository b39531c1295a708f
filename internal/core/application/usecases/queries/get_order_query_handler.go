package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order read model from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when the order
// does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id, number, status, payment_status, paid_at,
			customer_name, customer_email,
			shipping_line1, shipping_line2, shipping_city, shipping_postal_code, shipping_country,
			billing_line1, billing_line2, billing_city, billing_postal_code, billing_country,
			items,
			subtotal_cents, shipping_cents, tax_cents, discount_cents, total_cents,
			customer_notes, tracking_number,
			history,
			invoice_number, invoice_location,
			delivery_note_number, delivery_note_location,
			refund
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id                   uuid.UUID
		resp                 GetOrderQueryResponse
		paidAt               sql.NullTime
		itemsJSON            []byte
		historyJSON          []byte
		refundJSON           []byte
		invoiceNumber        sql.NullString
		invoiceLocation      sql.NullString
		deliveryNoteNumber   sql.NullString
		deliveryNoteLocation sql.NullString
	)

	err := row.Scan(
		&id, &resp.Number, &resp.Status, &resp.PaymentStatus, &paidAt,
		&resp.CustomerName, &resp.CustomerEmail,
		&resp.ShippingAddress.Line1, &resp.ShippingAddress.Line2, &resp.ShippingAddress.City,
		&resp.ShippingAddress.PostalCode, &resp.ShippingAddress.Country,
		&resp.BillingAddress.Line1, &resp.BillingAddress.Line2, &resp.BillingAddress.City,
		&resp.BillingAddress.PostalCode, &resp.BillingAddress.Country,
		&itemsJSON,
		&resp.Totals.SubtotalCents, &resp.Totals.ShippingCents, &resp.Totals.TaxCents,
		&resp.Totals.DiscountCents, &resp.Totals.TotalCents,
		&resp.CustomerNotes, &resp.TrackingNumber,
		&historyJSON,
		&invoiceNumber, &invoiceLocation,
		&deliveryNoteNumber, &deliveryNoteLocation,
		&refundJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.ID = orderID

	if paidAt.Valid {
		t := paidAt.Time
		resp.PaidAt = &t
	}
	if err = json.Unmarshal(itemsJSON, &resp.Items); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if err = json.Unmarshal(historyJSON, &resp.History); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if len(refundJSON) > 0 {
		resp.Refund = &RefundResponse{}
		if err = json.Unmarshal(refundJSON, resp.Refund); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}
	if invoiceNumber.Valid {
		resp.Invoice = &DocumentRefResponse{Number: invoiceNumber.String, Location: invoiceLocation.String}
	}
	if deliveryNoteNumber.Valid {
		resp.DeliveryNote = &DocumentRefResponse{Number: deliveryNoteNumber.String, Location: deliveryNoteLocation.String}
	}

	return resp, nil
}
