package ports

import "context"

// UnitOfWork coordinates a database transaction around the primary order
// write. The status tracker's audit append happens on the candidate before
// the write, so history entry and status change always commit atomically.
// Post-write side effects run outside the unit of work on purpose.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
}

// UnitOfWorkFactory creates a fresh UnitOfWork per business operation,
// giving each request an isolated transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
