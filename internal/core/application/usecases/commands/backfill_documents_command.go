package commands

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrBackfillDocumentsCommandIsNotConstructed = errors.New(
	"BackfillDocumentsCommand must be created via NewBackfillDocumentsCommand constructor",
)

// BackfillDocumentsCommand requests a sweep for orders whose document
// generation was lost between the primary write and the secondary patch
// write (a crash, a storage outage, a failed render). The sweep re-runs the
// generators, which are idempotent on document reference presence, so
// repeating it is always safe.
type BackfillDocumentsCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewBackfillDocumentsCommand creates a backfill command processing at most
// limit orders per document kind in one sweep.
func NewBackfillDocumentsCommand(limit int) (BackfillDocumentsCommand, error) {
	if limit <= 0 {
		return BackfillDocumentsCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, 1000)
	}
	if limit > 1000 {
		return BackfillDocumentsCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, 1000)
	}

	return BackfillDocumentsCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BackfillDocumentsCommand) Validate() error {
	return c.guard.Validate(ErrBackfillDocumentsCommandIsNotConstructed)
}

// Limit returns the maximum number of orders to process per document kind.
func (c BackfillDocumentsCommand) Limit() int {
	return c.limit
}
