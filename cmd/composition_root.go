package cmd

import (
	"fmt"
	"log/slog"
	"os"

	httpin "orderflow/internal/adapters/in/http"
	filerepo "orderflow/internal/adapters/out/jsonfile/orderrepo"
	memoryrepo "orderflow/internal/adapters/out/memory/orderrepo"
	postgresrepo "orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot wires every adapter and use case together.
//
// There is exactly one repository and one lock registry per process; every
// handler that mutates orders shares them, which is what makes the per-order
// locking protocol airtight.
type CompositionRoot struct {
	orderRepository ports.OrderRepository
	lockRegistry    *services.OrderLockRegistry
	logger          *slog.Logger
	config          Config
}

// NewCompositionRoot builds the object graph for the configured storage driver.
func NewCompositionRoot(config Config) (*CompositionRoot, error) {
	repository, err := newOrderRepository(config)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		orderRepository: repository,
		lockRegistry:    services.NewOrderLockRegistry(),
		logger:          slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		config:          config,
	}, nil
}

func newOrderRepository(config Config) (ports.OrderRepository, error) {
	switch config.StorageDriver {
	case StorageDriverMemory:
		return memoryrepo.NewInMemoryOrderRepository(), nil
	case StorageDriverFile:
		return filerepo.NewFileOrderRepository(config.StorageFilePath), nil
	case StorageDriverPostgres:
		db, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := db.AutoMigrate(&postgresrepo.OrderDTO{}); err != nil {
			return nil, fmt.Errorf("failed to migrate orders table: %w", err)
		}
		return postgresrepo.NewGormOrderRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.StorageDriver)
	}
}

// Logger returns the process-wide structured logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderRepository)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderRepository, c.lockRegistry)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderRepository, c.lockRegistry)
}

func (c *CompositionRoot) CreateAdvanceStaleOrdersCommandHandler() *commands.AdvanceStaleOrdersCommandHandler {
	transitionHandler := c.CreateTransitionOrderCommandHandler()
	return commands.NewAdvanceStaleOrdersCommandHandler(
		c.orderRepository,
		&transitionHandler,
		order.Paid,
		order.Shipped,
		c.config.AdvanceDelay,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderRepository)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.orderRepository)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.orderRepository)
}

func (c *CompositionRoot) CreateGetStatusSummaryQueryHandler() queries.GetStatusSummaryQueryHandler {
	return queries.NewGetStatusSummaryQueryHandler(c.orderRepository)
}

// CreateHTTPServer assembles the REST surface over the use case handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	transitionHandler := c.CreateTransitionOrderCommandHandler()
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		&transitionHandler,
		c.CreateDeleteOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetAllOrdersQueryHandler(),
		c.CreateGetOrdersByStatusQueryHandler(),
		c.CreateGetStatusSummaryQueryHandler(),
	)
}

// CreateJobManager assembles the background job runner.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAdvanceStaleOrdersCommandHandler(),
		c.config.AdvanceSchedule,
		c.logger,
	)
}
