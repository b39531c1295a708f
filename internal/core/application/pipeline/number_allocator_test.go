package pipeline_test

import (
	"regexp"
	"testing"

	"orders/internal/core/application/pipeline"
	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-HJKMNP-TV-Z]{6}$`)

func TestNumberAllocator_Apply(t *testing.T) {
	ctx := t.Context()
	allocator := pipeline.NewNumberAllocator()

	t.Run("should assign a well-formed number on creation", func(t *testing.T) {
		candidate := freshCandidate(t, order.PendingPayment, order.PaymentPending)

		require.NoError(t, allocator.Apply(ctx, nil, candidate))

		assert.Regexp(t, orderNumberPattern, candidate.Number())
	})

	t.Run("should leave an existing number untouched", func(t *testing.T) {
		candidate := orderInState(t, order.PendingPayment, order.PaymentPending)
		existing := candidate.Number()

		require.NoError(t, allocator.Apply(ctx, nil, candidate))

		assert.Equal(t, existing, candidate.Number())
	})

	t.Run("should produce distinct suffixes across allocations", func(t *testing.T) {
		first := freshCandidate(t, order.PendingPayment, order.PaymentPending)
		second := freshCandidate(t, order.PendingPayment, order.PaymentPending)

		require.NoError(t, allocator.Apply(ctx, nil, first))
		require.NoError(t, allocator.Apply(ctx, nil, second))

		assert.NotEqual(t, first.Number(), second.Number())
	})
}
