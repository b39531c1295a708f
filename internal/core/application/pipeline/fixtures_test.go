package pipeline_test

import (
	"context"
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDocumentCounters struct{ mock.Mock }

func (m *MockDocumentCounters) Next(ctx context.Context, kind string, year int) (int64, error) {
	args := m.Called(ctx, kind, year)
	return args.Get(0).(int64), args.Error(1)
}

type MockDocumentStorage struct{ mock.Mock }

func (m *MockDocumentStorage) Store(ctx context.Context, filename string, payload []byte) (string, error) {
	args := m.Called(ctx, filename, payload)
	return args.String(0), args.Error(1)
}

type MockDocumentPatcher struct{ mock.Mock }

func (m *MockDocumentPatcher) AttachInvoice(ctx context.Context, id kernel.UUID, ref order.DocumentRef) error {
	args := m.Called(ctx, id, ref)
	return args.Error(0)
}

func (m *MockDocumentPatcher) AttachDeliveryNote(ctx context.Context, id kernel.UUID, ref order.DocumentRef) error {
	args := m.Called(ctx, id, ref)
	return args.Error(0)
}

type MockEmailTransport struct{ mock.Mock }

func (m *MockEmailTransport) Send(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}

func testCustomer() order.Customer {
	return order.Customer{Name: "Ada Lovelace", Email: "ada@example.com"}
}

func testAddress() order.Address {
	return order.Address{
		Line1:      "12 Rue de la Paix",
		City:       "Paris",
		PostalCode: "75002",
		Country:    "FR",
	}
}

func testItems() []order.Item {
	return []order.Item{
		{SKU: "MUG-PHOTO-01", Name: "Personalized photo mug", Quantity: 2, UnitPriceCents: 1490},
	}
}

func testTotals() order.Totals {
	return order.Totals{
		SubtotalCents: 2980,
		ShippingCents: 490,
		TaxCents:      596,
		TotalCents:    4066,
	}
}

// orderInState builds a numbered order in the given lifecycle and payment
// state, as the store would hand it back.
func orderInState(t *testing.T, status order.Status, paymentStatus order.PaymentStatus) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), testCustomer(), testAddress(), testAddress(),
		testItems(), testTotals(), status, paymentStatus,
	)
	require.NoError(t, err)
	require.NoError(t, o.AssignNumber("ORD-20260829-7F3K2Q"))
	return o
}

// freshCandidate builds an unnumbered creation candidate.
func freshCandidate(t *testing.T, status order.Status, paymentStatus order.PaymentStatus) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), testCustomer(), testAddress(), testAddress(),
		testItems(), testTotals(), status, paymentStatus,
	)
	require.NoError(t, err)
	return o
}
