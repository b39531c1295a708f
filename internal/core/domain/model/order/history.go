package order

import (
	"time"

	"orders/internal/pkg/errs"
)

// SystemActor identifies status changes made by the system itself rather
// than by a named administrator or customer.
const SystemActor = "system"

// HistoryEntry is one element of an order's append-only status audit trail.
// Entries are created by the status tracker when a write changes the order's
// status, and are never mutated or removed once appended.
type HistoryEntry struct {
	status    Status
	changedBy string
	changedAt time.Time
	note      string
}

// NewHistoryEntry creates a validated audit entry.
// An empty changedBy is recorded as SystemActor; note is optional.
func NewHistoryEntry(status Status, changedBy string, changedAt time.Time, note string) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if changedAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("changedAt")
	}
	if changedBy == "" {
		changedBy = SystemActor
	}

	return HistoryEntry{
		status:    status,
		changedBy: changedBy,
		changedAt: changedAt,
		note:      note,
	}, nil
}

// Status returns the status the order entered when this entry was recorded.
func (e HistoryEntry) Status() Status {
	return e.status
}

// ChangedBy returns the actor identifier, or SystemActor for automated changes.
func (e HistoryEntry) ChangedBy() string {
	return e.changedBy
}

// ChangedAt returns when the status change was recorded.
func (e HistoryEntry) ChangedAt() time.Time {
	return e.changedAt
}

// Note returns the optional caller-supplied annotation.
func (e HistoryEntry) Note() string {
	return e.note
}
