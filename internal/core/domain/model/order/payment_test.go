package order_test

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentStatus(t *testing.T) {
	t.Run("should round-trip every valid payment status", func(t *testing.T) {
		statuses := []order.PaymentStatus{
			order.PaymentPending, order.PaymentPaid, order.PaymentFailed, order.PaymentRefunded,
		}

		for _, status := range statuses {
			parsed, err := order.ParsePaymentStatus(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown wire strings", func(t *testing.T) {
		for _, input := range []string{"", "unknown", "captured"} {
			_, err := order.ParsePaymentStatus(input)
			require.Error(t, err, input)
		}
	})
}

func TestNewRefund(t *testing.T) {
	refundedAt := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)

	t.Run("should create full refund", func(t *testing.T) {
		refund, err := order.NewRefund(order.RefundKindFull, 4066, "order cancelled after payment", refundedAt, "admin:marie")

		require.NoError(t, err)
		assert.Equal(t, order.RefundKindFull, refund.Kind())
		assert.Equal(t, int64(4066), refund.AmountCents())
		assert.Equal(t, "order cancelled after payment", refund.Reason())
		assert.Equal(t, refundedAt, refund.RefundedAt())
		assert.Equal(t, "admin:marie", refund.RefundedBy())
	})

	t.Run("should reject invalid kind", func(t *testing.T) {
		_, err := order.NewRefund(order.RefundKind("half"), 100, "", refundedAt, "admin:marie")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "refund kind")
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := order.NewRefund(order.RefundKindPartial, -1, "", refundedAt, "admin:marie")

		require.Error(t, err)
	})

	t.Run("should reject missing actor", func(t *testing.T) {
		_, err := order.NewRefund(order.RefundKindPartial, 100, "", refundedAt, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "refundedBy")
	})
}
