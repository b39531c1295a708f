package pipeline

import (
	"context"
	"time"

	"orders/internal/core/domain/model/order"
)

// StatusTracker appends an audit entry to the candidate's status history when
// the incoming write changes the order's status, and on creation. It runs
// pre-write, so the entry lands in the same document write as the status
// change itself and the two commit atomically.
//
// A write that leaves the status untouched appends nothing; the history
// length only ever grows.
type StatusTracker struct {
	now func() time.Time
}

// NewStatusTracker creates the audit trail stage.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{now: time.Now}
}

// Name identifies the stage in logs.
func (t *StatusTracker) Name() string {
	return "status_tracker"
}

// Apply appends a history entry if this is a creation or the status differs
// from the previously persisted one. Actor and optional note are taken from
// the request context.
func (t *StatusTracker) Apply(ctx context.Context, previous, candidate *order.Order) error {
	if previous != nil && previous.Status() == candidate.Status() {
		return nil
	}

	entry, err := order.NewHistoryEntry(
		candidate.Status(),
		ActorFromContext(ctx),
		t.now().UTC(),
		ChangeNoteFromContext(ctx),
	)
	if err != nil {
		return err
	}

	return candidate.RecordStatusChange(entry)
}
