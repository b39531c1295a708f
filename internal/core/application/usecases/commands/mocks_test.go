package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"orders/internal/core/application/pipeline"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindPaidMissingInvoice(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindInProductionMissingDeliveryNote(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDocumentGenerator struct {
	mock.Mock
	name string
}

func (m *MockDocumentGenerator) Name() string { return m.name }

func (m *MockDocumentGenerator) Generate(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeOrchestrator wires the standard pre-write stages and no post-write
// stages, so handler tests exercise number allocation and history tracking
// without document or email adapters.
func writeOrchestrator() *pipeline.Orchestrator {
	return pipeline.NewOrchestrator(
		testLogger(),
		[]pipeline.Stage{pipeline.NewNumberAllocator(), pipeline.NewStatusTracker()},
		nil,
	)
}

func validCustomer() order.Customer {
	return order.Customer{Name: "Ada Lovelace", Email: "ada@example.com"}
}

func validAddress() order.Address {
	return order.Address{
		Line1:      "12 Rue de la Paix",
		City:       "Paris",
		PostalCode: "75002",
		Country:    "FR",
	}
}

func validItems() []order.Item {
	return []order.Item{
		{SKU: "MUG-PHOTO-01", Name: "Personalized photo mug", Quantity: 2, UnitPriceCents: 1490},
	}
}

func validTotals() order.Totals {
	return order.Totals{
		SubtotalCents: 2980,
		ShippingCents: 490,
		TaxCents:      596,
		TotalCents:    4066,
	}
}

func validCreateCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		validCustomer(), validAddress(), validAddress(), validItems(), validTotals(),
		order.PendingPayment, order.PaymentPending, nil, "",
	)
	require.NoError(t, err)
	return cmd
}

func persistedOrder(t *testing.T, status order.Status, paymentStatus order.PaymentStatus) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), validCustomer(), validAddress(), validAddress(),
		validItems(), validTotals(), status, paymentStatus,
	)
	require.NoError(t, err)
	require.NoError(t, o.AssignNumber("ORD-20260829-7F3K2Q"))
	return o
}
