package queries

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const maxListOrdersLimit = 500

// ListOrdersQuery retrieves a page of order summaries, optionally filtered
// by lifecycle status. Used by the administrative list view.
type ListOrdersQuery struct {
	status *order.Status
	limit  int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a list query. status may be nil to list all
// statuses; limit caps the page size.
func NewListOrdersQuery(status *order.Status, limit int) (ListOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if limit <= 0 || limit > maxListOrdersLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxListOrdersLimit)
	}

	return ListOrdersQuery{
		status: status,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// Limit returns the maximum number of summaries to return.
func (q ListOrdersQuery) Limit() int {
	return q.limit
}

// ListOrdersQueryResponse is one order summary row.
type ListOrdersQueryResponse struct {
	ID            kernel.UUID
	Number        string
	Status        string
	PaymentStatus string
	CustomerName  string
	CustomerEmail string
	TotalCents    int64
}
