package pipeline_test

import (
	"strings"
	"testing"

	"orders/internal/core/application/pipeline"
	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func applyTransition(t *testing.T, transport *MockEmailTransport, from, to order.Status) {
	t.Helper()
	previous := orderInState(t, from, order.PaymentPaid)
	persisted := previous.Clone()
	require.NoError(t, persisted.SetStatus(to))
	persisted.SetTrackingNumber("JD014600003828372612")

	stage := pipeline.NewNotificationStage(transport)
	require.NoError(t, stage.Apply(t.Context(), previous, persisted))
}

func TestNotificationStage_Apply(t *testing.T) {
	t.Run("payment confirmation on pending to paid awaiting proof", func(t *testing.T) {
		transport := new(MockEmailTransport)
		transport.On("Send", mock.Anything, "ada@example.com",
			"Your order ORD-20260829-7F3K2Q is confirmed", mock.Anything).Return(nil).Once()

		applyTransition(t, transport, order.PendingPayment, order.PaidAwaitingBAT)

		transport.AssertExpectations(t)
	})

	t.Run("production notice on entering production from anywhere", func(t *testing.T) {
		for _, from := range []order.Status{order.PaidAwaitingBAT, order.PendingPayment, order.Cancelled} {
			transport := new(MockEmailTransport)
			transport.On("Send", mock.Anything, "ada@example.com",
				"Your order ORD-20260829-7F3K2Q is in production", mock.Anything).Return(nil).Once()

			applyTransition(t, transport, from, order.InProduction)

			transport.AssertExpectations(t)
		}
	})

	t.Run("shipped notice carries the tracking number", func(t *testing.T) {
		transport := new(MockEmailTransport)
		transport.On("Send", mock.Anything, "ada@example.com",
			"Your order ORD-20260829-7F3K2Q has shipped",
			mock.MatchedBy(func(body string) bool {
				return strings.Contains(body, "JD014600003828372612") &&
					strings.Contains(body, "ORD-20260829-7F3K2Q")
			})).Return(nil).Once()

		applyTransition(t, transport, order.PreparingShipment, order.InDelivery)

		transport.AssertExpectations(t)
	})

	t.Run("delivered notice on entering delivered", func(t *testing.T) {
		transport := new(MockEmailTransport)
		transport.On("Send", mock.Anything, "ada@example.com",
			"Your order ORD-20260829-7F3K2Q was delivered", mock.Anything).Return(nil).Once()

		applyTransition(t, transport, order.InDelivery, order.Delivered)

		transport.AssertExpectations(t)
	})

	t.Run("unmapped transitions send nothing", func(t *testing.T) {
		silent := []struct{ from, to order.Status }{
			{order.InProduction, order.ProductionComplete},
			{order.ProductionComplete, order.PreparingShipment},
			{order.Delivered, order.RefundFull},
			{order.PendingPayment, order.Cancelled},
			{order.Cancelled, order.PaidAwaitingBAT}, // confirmation route is exact, not wildcard
		}

		for _, tc := range silent {
			transport := new(MockEmailTransport)
			applyTransition(t, transport, tc.from, tc.to)
			transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("no message on creation", func(t *testing.T) {
		persisted := orderInState(t, order.InProduction, order.PaymentPaid)
		transport := new(MockEmailTransport)

		stage := pipeline.NewNotificationStage(transport)
		require.NoError(t, stage.Apply(t.Context(), nil, persisted))

		transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no message when status is unchanged", func(t *testing.T) {
		previous := orderInState(t, order.InDelivery, order.PaymentPaid)
		persisted := previous.Clone()
		persisted.SetTrackingNumber("JD014600003828372612")

		transport := new(MockEmailTransport)
		stage := pipeline.NewNotificationStage(transport)
		require.NoError(t, stage.Apply(t.Context(), previous, persisted))

		transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
