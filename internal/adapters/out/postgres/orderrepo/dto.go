// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database representations.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items, status history, and the refund sub-record are stored as jsonb
// inside the order row, so a status change and its audit entry always land in
// one atomic row write. Document references live in nullable column pairs:
// a NULL number column means the document has not been generated yet.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number string    `gorm:"size:32;uniqueIndex"`

	Status        string     `gorm:"size:32;index"`
	PaymentStatus string     `gorm:"size:16;index"`
	PaidAt        *time.Time `gorm:""`

	CustomerName  string `gorm:"size:255"`
	CustomerEmail string `gorm:"size:255"`

	ShippingAddress AddressDTO `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress  AddressDTO `gorm:"embedded;embeddedPrefix:billing_"`

	Items []ItemDTO `gorm:"type:jsonb;serializer:json"`

	SubtotalCents int64
	ShippingCents int64
	TaxCents      int64
	DiscountCents int64
	TotalCents    int64

	CustomerNotes  string
	TrackingNumber string `gorm:"size:64"`

	History []HistoryEntryDTO `gorm:"type:jsonb;serializer:json"`

	InvoiceNumber        *string `gorm:"size:32"`
	InvoiceLocation      *string
	DeliveryNoteNumber   *string `gorm:"size:32"`
	DeliveryNoteLocation *string

	Refund *RefundDTO `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents an embedded address snapshot within the order table.
type AddressDTO struct {
	Line1      string `gorm:"size:255"`
	Line2      string `gorm:"size:255"`
	City       string `gorm:"size:128"`
	PostalCode string `gorm:"size:32"`
	Country    string `gorm:"size:64"`
}

// ItemDTO represents one priced order line inside the items jsonb column.
type ItemDTO struct {
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// HistoryEntryDTO represents one audit entry inside the history jsonb column.
type HistoryEntryDTO struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
	Note      string    `json:"note,omitempty"`
}

// RefundDTO represents the refund sub-record inside the refund jsonb column.
type RefundDTO struct {
	Kind        string    `json:"kind"`
	AmountCents int64     `json:"amount_cents"`
	Reason      string    `json:"reason,omitempty"`
	RefundedAt  time.Time `json:"refunded_at"`
	RefundedBy  string    `json:"refunded_by"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			SKU:            item.SKU,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	history := aggregate.History()
	historyDTOs := make([]HistoryEntryDTO, 0, len(history))
	for _, entry := range history {
		historyDTOs = append(historyDTOs, HistoryEntryDTO{
			Status:    entry.Status().String(),
			ChangedBy: entry.ChangedBy(),
			ChangedAt: entry.ChangedAt(),
			Note:      entry.Note(),
		})
	}

	totals := aggregate.Totals()
	dto := OrderDTO{
		ID:              aggregate.ID().Bytes(),
		Number:          aggregate.Number(),
		Status:          aggregate.Status().String(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		PaidAt:          aggregate.PaidAt(),
		CustomerName:    aggregate.Customer().Name,
		CustomerEmail:   aggregate.Customer().Email,
		ShippingAddress: addressToDTO(aggregate.ShippingAddress()),
		BillingAddress:  addressToDTO(aggregate.BillingAddress()),
		Items:           itemDTOs,
		SubtotalCents:   totals.SubtotalCents,
		ShippingCents:   totals.ShippingCents,
		TaxCents:        totals.TaxCents,
		DiscountCents:   totals.DiscountCents,
		TotalCents:      totals.TotalCents,
		CustomerNotes:   aggregate.CustomerNotes(),
		TrackingNumber:  aggregate.TrackingNumber(),
		History:         historyDTOs,
	}

	if ref := aggregate.InvoiceRef(); ref != nil {
		number, location := ref.Number(), ref.Location()
		dto.InvoiceNumber, dto.InvoiceLocation = &number, &location
	}
	if ref := aggregate.DeliveryNoteRef(); ref != nil {
		number, location := ref.Number(), ref.Location()
		dto.DeliveryNoteNumber, dto.DeliveryNoteLocation = &number, &location
	}
	if refund := aggregate.Refund(); refund != nil {
		dto.Refund = &RefundDTO{
			Kind:        string(refund.Kind()),
			AmountCents: refund.AmountCents(),
			Reason:      refund.Reason(),
			RefundedAt:  refund.RefundedAt(),
			RefundedBy:  refund.RefundedBy(),
		}
	}

	return dto
}

// toDomain converts a database DTO back into an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.Item{
			SKU:            item.SKU,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entryDTO := range dto.History {
		entryStatus, entryErr := order.ParseStatus(entryDTO.Status)
		if entryErr != nil {
			return nil, entryErr
		}
		entry, entryErr := order.NewHistoryEntry(entryStatus, entryDTO.ChangedBy, entryDTO.ChangedAt, entryDTO.Note)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	var invoiceRef *order.DocumentRef
	if dto.InvoiceNumber != nil && dto.InvoiceLocation != nil {
		ref, refErr := order.NewDocumentRef(*dto.InvoiceNumber, *dto.InvoiceLocation)
		if refErr != nil {
			return nil, refErr
		}
		invoiceRef = &ref
	}

	var deliveryNoteRef *order.DocumentRef
	if dto.DeliveryNoteNumber != nil && dto.DeliveryNoteLocation != nil {
		ref, refErr := order.NewDocumentRef(*dto.DeliveryNoteNumber, *dto.DeliveryNoteLocation)
		if refErr != nil {
			return nil, refErr
		}
		deliveryNoteRef = &ref
	}

	var refund *order.Refund
	if dto.Refund != nil {
		restored, refundErr := order.NewRefund(
			order.RefundKind(dto.Refund.Kind),
			dto.Refund.AmountCents,
			dto.Refund.Reason,
			dto.Refund.RefundedAt,
			dto.Refund.RefundedBy,
		)
		if refundErr != nil {
			return nil, refundErr
		}
		refund = &restored
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		order.Customer{Name: dto.CustomerName, Email: dto.CustomerEmail},
		addressFromDTO(dto.ShippingAddress),
		addressFromDTO(dto.BillingAddress),
		items,
		order.Totals{
			SubtotalCents: dto.SubtotalCents,
			ShippingCents: dto.ShippingCents,
			TaxCents:      dto.TaxCents,
			DiscountCents: dto.DiscountCents,
			TotalCents:    dto.TotalCents,
		},
		status,
		paymentStatus,
		dto.PaidAt,
		dto.CustomerNotes,
		dto.TrackingNumber,
		history,
		invoiceRef,
		deliveryNoteRef,
		refund,
	)
}

func addressToDTO(address order.Address) AddressDTO {
	return AddressDTO{
		Line1:      address.Line1,
		Line2:      address.Line2,
		City:       address.City,
		PostalCode: address.PostalCode,
		Country:    address.Country,
	}
}

func addressFromDTO(dto AddressDTO) order.Address {
	return order.Address{
		Line1:      dto.Line1,
		Line2:      dto.Line2,
		City:       dto.City,
		PostalCode: dto.PostalCode,
		Country:    dto.Country,
	}
}
