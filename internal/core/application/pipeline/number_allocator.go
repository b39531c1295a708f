package pipeline

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"orders/internal/core/domain/model/order"
)

const orderNumberPrefix = "ORD"

// numberAlphabet is Crockford base32: no I, L, O or U, so numbers stay
// unambiguous when read back over the phone.
const numberAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NumberAllocator assigns the human-facing order number at creation time.
// The number combines a date component with a high-entropy random suffix,
// e.g. "ORD-20260829-7F3K9Q", avoiding the bottleneck of a shared counter.
// Uniqueness is probabilistic; the unique index on the orders table is the
// backstop that turns the rare collision into a failed create.
//
// A candidate that already carries a number (a retried create) is left
// untouched, and the stage is a no-op on updates.
type NumberAllocator struct {
	now func() time.Time
}

// NewNumberAllocator creates the order number allocation stage.
func NewNumberAllocator() *NumberAllocator {
	return &NumberAllocator{now: time.Now}
}

// Name identifies the stage in logs.
func (a *NumberAllocator) Name() string {
	return "number_allocator"
}

// Apply sets the candidate's order number if it has none yet.
func (a *NumberAllocator) Apply(_ context.Context, _, candidate *order.Order) error {
	if candidate.Number() != "" {
		return nil
	}

	suffix, err := randomSuffix(6)
	if err != nil {
		return fmt.Errorf("generate order number suffix: %w", err)
	}

	number := fmt.Sprintf("%s-%s-%s", orderNumberPrefix, a.now().UTC().Format("20060102"), suffix)
	return candidate.AssignNumber(number)
}

func randomSuffix(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}
	return string(out), nil
}
