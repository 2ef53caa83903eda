package cmd

import (
	"log/slog"

	inbus "orderflow/internal/adapters/in/bus"
	inhttp "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/redisbus"
	"orderflow/internal/adapters/out/ws"
	"orderflow/internal/core/application/lifecycle"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// trackerAdapter satisfies the repository tracker dependency outside a
// unit of work, where there is no transaction to collect aggregates for.
type trackerAdapter struct{}

func (trackerAdapter) TrackAggregate(_ kernel.UUID, _ any) {}

// CompositionRoot wires adapters, the lifecycle core, and use case
// handlers together. It is the only place that knows concrete types.
type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   *postgres.GormUnitOfWorkFactory
	orderRepo    ports.OrderRepository
	eventBus     ports.EventBus
	hub          *ws.Hub
	registry     *lifecycle.Registry
	scheduler    *lifecycle.DeliveryScheduler
	orchestrator *lifecycle.Orchestrator
	logger       *slog.Logger
}

// NewCompositionRoot assembles the full object graph from the open
// database and Redis connections.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) *CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	orderRepo := orderrepo.NewGormOrderRepository(gormDB, trackerAdapter{})
	eventBus := redisbus.NewBus(redisClient, logger)
	hub := ws.NewHub(logger)
	registry := lifecycle.NewRegistry()
	scheduler := lifecycle.NewDeliveryScheduler(logger)

	orchestrator := lifecycle.NewOrchestrator(
		registry,
		scheduler,
		uowFactory,
		orderRepo,
		eventBus,
		hub,
		logger,
		config.OrderCreatedTopic,
		config.DeliveryDelay(),
	)

	return &CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   uowFactory,
		orderRepo:    orderRepo,
		eventBus:     eventBus,
		hub:          hub,
		registry:     registry,
		scheduler:    scheduler,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Orchestrator returns the lifecycle core.
func (c *CompositionRoot) Orchestrator() *lifecycle.Orchestrator {
	return c.orchestrator
}

// Scheduler returns the delivery timer scheduler, for shutdown.
func (c *CompositionRoot) Scheduler() *lifecycle.DeliveryScheduler {
	return c.scheduler
}

// Hub returns the websocket notifier hub.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

// CreatePaymentConsumer wires the payment verdict subscription.
func (c *CompositionRoot) CreatePaymentConsumer(topic string) *inbus.PaymentConsumer {
	return inbus.NewPaymentConsumer(c.eventBus, c.orchestrator, topic, c.logger)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.orderRepo, c.registry, c.logger)
}

// CreateHTTPServer wires the REST adapter with its handlers.
func (c *CompositionRoot) CreateHTTPServer() *inhttp.Server {
	return inhttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orchestrator)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orchestrator)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}
