package app

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/purchasing/internal/boundary"
	"github.com/vladislavdragonenkov/purchasing/internal/customer"
	healthcheck "github.com/vladislavdragonenkov/purchasing/internal/health"
	"github.com/vladislavdragonenkov/purchasing/internal/httpapi"
	"github.com/vladislavdragonenkov/purchasing/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/purchasing/internal/metrics"
	"github.com/vladislavdragonenkov/purchasing/internal/product"
	"github.com/vladislavdragonenkov/purchasing/internal/purchaseorder"
	"github.com/vladislavdragonenkov/purchasing/internal/storage/memory"
	"github.com/vladislavdragonenkov/purchasing/internal/storage/postgres"
)

type repositories struct {
	customers      customer.Repository
	products       product.Repository
	purchaseOrders purchaseorder.Repository
}

// Dependencies содержит собранный граф сервиса.
type Dependencies struct {
	Services httpapi.Services
	Health   *healthcheck.Handler

	store    *postgres.Store
	producer *kafka.Producer
	logger   *log.Entry
}

// NewDependencies выбирает хранилище, подключает Kafka и собирает доменные сервисы.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	deps := &Dependencies{
		Health: healthcheck.NewHandler(versionString()),
		logger: logger,
	}

	storageMetrics := metrics.NewStorageMetrics()
	repos, err := deps.initStorage(ctx, cfg, storageMetrics)
	if err != nil {
		return nil, err
	}

	var opts []purchaseorder.Option
	opts = append(opts, purchaseorder.WithMetrics(metrics.NewOrderMetrics()))
	if events := deps.initKafka(cfg); events != nil {
		opts = append(opts, purchaseorder.WithEvents(events))
	}

	customers := customer.NewService(repos.customers, logger.WithFields(log.Fields{"layer": "service", "entity": "customer"}))
	products := product.NewService(repos.products, logger.WithFields(log.Fields{"layer": "service", "entity": "product"}))
	orders := purchaseorder.NewService(
		repos.purchaseOrders,
		boundary.NewCustomers(customers),
		boundary.NewProducts(products),
		logger.WithFields(log.Fields{"layer": "service", "entity": "purchase_order"}),
		opts...,
	)

	deps.Services = httpapi.Services{
		Customers:      customers,
		Products:       products,
		PurchaseOrders: orders,
	}
	return deps, nil
}

func (d *Dependencies) initStorage(ctx context.Context, cfg Config, m *metrics.StorageMetrics) (repositories, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		opts := memory.Options{Metrics: m, Logger: d.logger.WithField("storage", StorageDriverMemory)}
		d.logger.Info("using in-memory storage")
		return repositories{
			customers:      memory.NewCustomerRepository(opts),
			products:       memory.NewProductRepository(opts),
			purchaseOrders: memory.NewPurchaseOrderRepository(opts),
		}, nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return repositories{}, errors.New("postgres dsn is required for postgres storage driver")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN, postgres.Options{
			OpTimeout: cfg.RepositoryTimeout,
			Metrics:   m,
			Logger:    d.logger.WithField("storage", StorageDriverPostgres),
		})
		if err != nil {
			return repositories{}, err
		}
		d.store = store

		if cfg.PostgresAutoMigrate {
			migrator, err := postgres.NewMigrator(store, d.logger.WithField("component", "migrator"))
			if err != nil {
				_ = store.Close()
				return repositories{}, err
			}
			if err := migrator.Up(ctx, 0); err != nil {
				_ = store.Close()
				return repositories{}, fmt.Errorf("apply migrations: %w", err)
			}
		}

		d.Health.RegisterChecker("postgres", healthcheck.NewPingChecker("postgres", store))
		d.logger.Info("using postgres storage")
		return repositories{
			customers:      postgres.NewCustomerRepository(store),
			products:       postgres.NewProductRepository(store),
			purchaseOrders: postgres.NewPurchaseOrderRepository(store),
		}, nil

	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// initKafka подключает producer, если заданы брокеры. Недоступная Kafka не мешает старту.
func (d *Dependencies) initKafka(cfg Config) *kafka.OrderEvents {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, d.logger.WithField("component", "kafka-producer"))
	if err != nil {
		d.logger.WithError(err).Warn("failed to create kafka producer, continuing without order events")
		d.Health.RegisterChecker("kafka", healthcheck.NewOptionalChecker("kafka", func(context.Context) error {
			return err
		}))
		return nil
	}

	d.producer = producer
	d.logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
	return kafka.NewOrderEvents(producer, cfg.KafkaTopic)
}

// Close освобождает подключения к Postgres и Kafka.
func (d *Dependencies) Close() {
	if d.producer != nil {
		if err := d.producer.Close(); err != nil {
			d.logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			d.logger.Info("kafka producer closed")
		}
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
