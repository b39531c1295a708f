package ports

import "context"

// EmailTransport delivers a customer-facing message. From the pipeline's
// perspective delivery is fire-and-forget: a returned error is logged by the
// orchestrator and never rolls back the order write that triggered it.
type EmailTransport interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
