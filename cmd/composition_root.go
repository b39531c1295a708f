package cmd

import (
	"log/slog"

	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/counterrepo"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/application/pipeline"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB       *gorm.DB
	logger       *slog.Logger
	uowFactory   postgres.GormUnitOfWorkFactory
	storage      ports.DocumentStorage
	mailer       ports.EmailTransport
	orchestrator *pipeline.Orchestrator

	invoiceStage      *pipeline.InvoiceStage
	deliveryNoteStage *pipeline.DeliveryNoteStage
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	logger *slog.Logger,
	storage ports.DocumentStorage,
	mailer ports.EmailTransport,
) CompositionRoot {
	counters := counterrepo.NewGormDocumentCounters(gormDB)
	patcher := directPatcher(gormDB)

	invoiceStage := pipeline.NewInvoiceStage(counters, storage, patcher)
	deliveryNoteStage := pipeline.NewDeliveryNoteStage(counters, storage, patcher)

	orchestrator := pipeline.NewOrchestrator(
		logger,
		[]pipeline.Stage{
			pipeline.NewNumberAllocator(),
			pipeline.NewStatusTracker(),
		},
		[]pipeline.Stage{
			invoiceStage,
			deliveryNoteStage,
			pipeline.NewNotificationStage(mailer),
		},
	)

	return CompositionRoot{
		gormDB:            gormDB,
		logger:            logger,
		uowFactory:        *postgres.NewGormUnitOfWorkFactory(gormDB),
		storage:           storage,
		mailer:            mailer,
		orchestrator:      orchestrator,
		invoiceStage:      invoiceStage,
		deliveryNoteStage: deliveryNoteStage,
	}
}

// directPatcher builds the patch-only write path used by post-write stages.
// It runs on the root connection, outside any unit of work: document
// references are attached after the primary write committed.
func directPatcher(gormDB *gorm.DB) ports.DocumentPatcher {
	return orderrepo.NewGormOrderRepository(gormDB, noopTracker{})
}

// directRepository builds a repository on the root connection for read-mostly
// callers like the backfill sweep.
func (c *CompositionRoot) directRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, noopTracker{})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.orchestrator)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f, c.orchestrator)
}

func (c *CompositionRoot) CreateBackfillDocumentsCommandHandler() commands.BackfillDocumentsCommandHandler {
	return commands.NewBackfillDocumentsCommandHandler(
		c.directRepository(),
		c.invoiceStage,
		c.deliveryNoteStage,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// noopTracker satisfies the repository's aggregate tracker outside a unit of
// work, where nothing consumes tracked aggregates.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}
