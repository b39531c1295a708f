package pipeline

import (
	"context"
	"fmt"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// Stage is one step of the order write pipeline. Stages are registered
// statically, in a fixed order, on the Orchestrator.
//
// previous is the persisted state before the write, or nil on creation.
// Pre-write stages mutate candidate before it is persisted and their errors
// abort the write. Post-write stages receive the already-committed record;
// their errors are wrapped in SideEffectError, logged, and swallowed.
type Stage interface {
	Name() string
	Apply(ctx context.Context, previous, candidate *order.Order) error
}

// SideEffectError reports a failure inside a post-write stage: document
// rendering, storage, email transport, or the secondary patch write. It is
// logged with enough context to retry manually and never reaches the caller.
type SideEffectError struct {
	Stage   string
	OrderID kernel.UUID
	Err     error
}

// Error implements the error interface.
func (e *SideEffectError) Error() string {
	return fmt.Sprintf("side-effect stage %s failed for order %s: %v", e.Stage, e.OrderID, e.Err)
}

// Unwrap returns the underlying stage failure.
func (e *SideEffectError) Unwrap() error {
	return e.Err
}

type contextKey int

const (
	actorContextKey contextKey = iota
	changeNoteContextKey
)

// WithActor stores the identifier of the actor performing the current request.
// The status tracker stamps it onto audit entries.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext returns the request actor, or order.SystemActor when the
// request carries none.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorContextKey).(string); ok && actor != "" {
		return actor
	}
	return order.SystemActor
}

// WithChangeNote stores the optional caller-supplied note for the audit entry
// produced by the current request.
func WithChangeNote(ctx context.Context, note string) context.Context {
	return context.WithValue(ctx, changeNoteContextKey, note)
}

// ChangeNoteFromContext returns the caller-supplied note, or "".
func ChangeNoteFromContext(ctx context.Context) string {
	if note, ok := ctx.Value(changeNoteContextKey).(string); ok {
		return note
	}
	return ""
}
