package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(order.PendingPayment, order.PaymentPending)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnconstructedOrder_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Add(ctx, &order.Order{})
	suite.Require().Error(err)
	suite.ErrorIs(err, order.ErrOrderIsNotConstructed)

	suite.assertOrderCount(0)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsFullState() {
	ctx := context.Background()

	paidAt := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	original := suite.createTestOrder(order.PaidAwaitingBAT, order.PaymentPaid)
	suite.Require().NoError(original.SetPaidAt(paidAt))

	entry, err := order.NewHistoryEntry(order.PaidAwaitingBAT, "admin:marie", paidAt, "payment received")
	suite.Require().NoError(err)
	suite.Require().NoError(original.RecordStatusChange(entry))

	invoiceRef, err := order.NewDocumentRef("INV-2026-0042", "/var/documents/INV-2026-0042.txt")
	suite.Require().NoError(err)
	suite.Require().NoError(original.AttachInvoice(invoiceRef))

	refund, err := order.NewRefund(order.RefundKindPartial, 1490, "one mug broken", paidAt, "admin:marie")
	suite.Require().NoError(err)
	original.SetRefund(refund)

	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.Number(), retrieved.Number())
	suite.Equal(order.PaidAwaitingBAT, retrieved.Status())
	suite.Equal(order.PaymentPaid, retrieved.PaymentStatus())
	suite.Require().NotNil(retrieved.PaidAt())
	suite.True(paidAt.Equal(*retrieved.PaidAt()))
	suite.Equal(original.Customer(), retrieved.Customer())
	suite.Equal(original.ShippingAddress(), retrieved.ShippingAddress())
	suite.Equal(original.BillingAddress(), retrieved.BillingAddress())
	suite.Equal(original.Items(), retrieved.Items())
	suite.Equal(original.Totals(), retrieved.Totals())

	suite.Require().Len(retrieved.History(), 1)
	suite.Equal(order.PaidAwaitingBAT, retrieved.History()[0].Status())
	suite.Equal("admin:marie", retrieved.History()[0].ChangedBy())
	suite.Equal("payment received", retrieved.History()[0].Note())

	suite.Require().NotNil(retrieved.InvoiceRef())
	suite.Equal("INV-2026-0042", retrieved.InvoiceRef().Number())
	suite.Nil(retrieved.DeliveryNoteRef())

	suite.Require().NotNil(retrieved.Refund())
	suite.Equal(order.RefundKindPartial, retrieved.Refund().Kind())
	suite.Equal(int64(1490), retrieved.Refund().AmountCents())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndHistory() {
	ctx := context.Background()

	original := suite.createTestOrder(order.PaidAwaitingBAT, order.PaymentPaid)
	suite.tracker.On("TrackAggregate", original.ID(), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	updated := original.Clone()
	suite.Require().NoError(updated.SetStatus(order.InProduction))
	entry, err := order.NewHistoryEntry(order.InProduction, "admin:marie", time.Now().UTC(), "proof approved")
	suite.Require().NoError(err)
	suite.Require().NoError(updated.RecordStatusChange(entry))
	updated.SetTrackingNumber("JD014600003828372612")

	suite.Require().NoError(suite.repository.Update(ctx, updated))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProduction, retrieved.Status())
	suite.Equal("JD014600003828372612", retrieved.TrackingNumber())
	suite.Require().Len(retrieved.History(), 1)
	suite.Equal("proof approved", retrieved.History()[0].Note())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	phantom := suite.createTestOrder(order.PendingPayment, order.PaymentPending)

	err := suite.repository.Update(ctx, phantom)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindPaidMissingInvoice_FiltersCorrectly() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	paidWithout := suite.createTestOrder(order.PaidAwaitingBAT, order.PaymentPaid)
	suite.Require().NoError(suite.repository.Add(ctx, paidWithout))

	paidWith := suite.createTestOrder(order.PaidAwaitingBAT, order.PaymentPaid)
	ref, err := order.NewDocumentRef("INV-2026-0001", "/var/documents/INV-2026-0001.txt")
	suite.Require().NoError(err)
	suite.Require().NoError(paidWith.AttachInvoice(ref))
	suite.Require().NoError(suite.repository.Add(ctx, paidWith))

	unpaid := suite.createTestOrder(order.PendingPayment, order.PaymentPending)
	suite.Require().NoError(suite.repository.Add(ctx, unpaid))

	found, err := suite.repository.FindPaidMissingInvoice(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal(paidWithout.ID(), found[0].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindInProductionMissingDeliveryNote_FiltersCorrectly() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	productionWithout := suite.createTestOrder(order.InProduction, order.PaymentPaid)
	suite.Require().NoError(suite.repository.Add(ctx, productionWithout))

	productionWith := suite.createTestOrder(order.InProduction, order.PaymentPaid)
	ref, err := order.NewDocumentRef("DN-2026-0001", "/var/documents/DN-2026-0001.txt")
	suite.Require().NoError(err)
	suite.Require().NoError(productionWith.AttachDeliveryNote(ref))
	suite.Require().NoError(suite.repository.Add(ctx, productionWith))

	notInProduction := suite.createTestOrder(order.PaidAwaitingBAT, order.PaymentPaid)
	suite.Require().NoError(suite.repository.Add(ctx, notInProduction))

	found, err := suite.repository.FindInProductionMissingDeliveryNote(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal(productionWithout.ID(), found[0].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAttachInvoice_WriteOnce() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(order.PaidAwaitingBAT, order.PaymentPaid)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	first, err := order.NewDocumentRef("INV-2026-0001", "/var/documents/INV-2026-0001.txt")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AttachInvoice(ctx, testOrder.ID(), first))

	// a replay with a different number must not overwrite the committed reference
	second, err := order.NewDocumentRef("INV-2026-0002", "/var/documents/INV-2026-0002.txt")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AttachInvoice(ctx, testOrder.ID(), second))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.InvoiceRef())
	suite.Equal("INV-2026-0001", retrieved.InvoiceRef().Number())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAttachDeliveryNote_IndependentOfInvoice() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(order.InProduction, order.PaymentPaid)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	invoiceRef, err := order.NewDocumentRef("INV-2026-0007", "/var/documents/INV-2026-0007.txt")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AttachInvoice(ctx, testOrder.ID(), invoiceRef))

	noteRef, err := order.NewDocumentRef("DN-2026-0003", "/var/documents/DN-2026-0003.txt")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AttachDeliveryNote(ctx, testOrder.ID(), noteRef))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.InvoiceRef())
	suite.Require().NotNil(retrieved.DeliveryNoteRef())
	suite.Equal("INV-2026-0007", retrieved.InvoiceRef().Number())
	suite.Equal("DN-2026-0003", retrieved.DeliveryNoteRef().Number())

	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates a numbered test order in the given state.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(
	status order.Status, paymentStatus order.PaymentStatus,
) *order.Order {
	id := kernel.NewUUID()
	customer := order.Customer{Name: "Ada Lovelace", Email: "ada@example.com"}
	address := order.Address{
		Line1:      "12 Rue de la Paix",
		City:       "Paris",
		PostalCode: "75002",
		Country:    "FR",
	}
	items := []order.Item{
		{SKU: "MUG-CLASSIC", Name: "Classic Mug", Quantity: 2, UnitPriceCents: 1490},
	}
	totals := order.Totals{
		SubtotalCents: 2980,
		ShippingCents: 590,
		TaxCents:      714,
		TotalCents:    4284,
	}

	testOrder, err := order.NewOrder(id, customer, address, address, items, totals, status, paymentStatus)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AssignNumber("ORD-20260214-" + id.String()[:6]))
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
