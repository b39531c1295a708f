package queries

import (
	"context"

	"orders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves order summaries from the database,
// newest first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order list queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query and returns up to query.Limit() summaries.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT id, number, status, payment_status, customer_name, customer_email, total_cents
		FROM orders
	`
	args := make([]any, 0, 2)
	if status := query.Status(); status != nil {
		sqlQuery += ` WHERE status = ?`
		args = append(args, status.String())
	}
	sqlQuery += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id      uuid.UUID
			summary ListOrdersQueryResponse
		)

		if err = rows.Scan(
			&id, &summary.Number, &summary.Status, &summary.PaymentStatus,
			&summary.CustomerName, &summary.CustomerEmail, &summary.TotalCents,
		); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = orderID

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
