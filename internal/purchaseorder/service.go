package purchaseorder

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vladislavdragonenkov/purchasing/internal/dbresult"
	"github.com/vladislavdragonenkov/purchasing/internal/metrics"
)

// Service — оркестратор заказов: CustomerLookup + ProductLookup → Validate → Persist.
type Service struct {
	repo      Repository
	customers CustomerLookup
	products  ProductLookup
	events    EventPublisher
	metrics   *metrics.OrderMetrics
	logger    *log.Entry
}

// Option настраивает необязательные зависимости сервиса.
type Option func(*Service)

// WithEvents подключает публикацию событий заказа.
func WithEvents(publisher EventPublisher) Option {
	return func(s *Service) { s.events = publisher }
}

// WithMetrics подключает метрики исходов создания заказа.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService конструирует оркестратор заказов.
func NewService(
	repo Repository,
	customers CustomerLookup,
	products ProductLookup,
	logger *log.Entry,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "purchase-order-service")
	}
	s := &Service{
		repo:      repo,
		customers: customers,
		products:  products,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type insertOutcome struct {
	response InsertResponse
	err      error
}

// Insert собирает заказ из снимков клиента и товаров и сохраняет его.
//
// Бизнес-отказы (клиент или товары не найдены) возвращаются ответом.
// Сбой записи возвращается ошибкой ErrOrderNotInserted и ответа не имеет.
func (s *Service) Insert(ctx context.Context, req NewOrder) (InsertResponse, error) {
	start := time.Now()
	logger := s.logger.WithField("customer_id", req.CustomerID)
	productIDs := req.ProductIDs()

	var (
		customerResp CustomerLookupResponse
		productsResp ProductLookupResponse
	)
	// Поиски независимы: запускаем параллельно и ждём оба.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		customerResp = s.customers.ByID(gctx, req.CustomerID)
		return nil
	})
	g.Go(func() error {
		productsResp = s.products.ByIDs(gctx, productIDs)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		s.record(metrics.OrderOutcomeCanceled, start)
		return nil, fmt.Errorf("insert purchase order: %w", err)
	}

	var customer CustomerSnapshot
	switch c := customerResp.(type) {
	case CustomerFound:
		customer = c.Customer
	case CustomerNotFound, CustomerLookupFailure:
		logger.WithField("lookup", fmt.Sprintf("%T", c)).Info("order rejected: customer not found")
		s.record(metrics.OrderOutcomeCustomerNotFound, start)
		return NotInsertedCustomerNotFound{}, nil
	default:
		s.record(metrics.OrderOutcomeFatal, start)
		return nil, fmt.Errorf("customer lookup returned %T: %w", customerResp, ErrUnexpectedResponse)
	}

	var found []ProductSnapshot
	switch p := productsResp.(type) {
	case ProductsFound:
		found = p.Products
	case ProductLookupFailure:
		logger.WithField("product_ids", productIDs).Warn("order rejected: product lookup failed")
		s.record(metrics.OrderOutcomeProductsNotFound, start)
		return NotInsertedProductsNotFound{ProductIDs: productIDs}, nil
	default:
		s.record(metrics.OrderOutcomeFatal, start)
		return nil, fmt.Errorf("product lookup returned %T: %w", productsResp, ErrUnexpectedResponse)
	}

	if missing := missingProducts(productIDs, found); len(missing) > 0 {
		logger.WithField("missing_product_ids", missing).Info("order rejected: products not found")
		s.record(metrics.OrderOutcomeProductsNotFound, start)
		return NotInsertedProductsNotFound{ProductIDs: missing}, nil
	}

	order := assemble(customer, req.Items, found)

	out := dbresult.Match(s.repo.Insert(ctx, order),
		func() insertOutcome {
			return insertOutcome{err: ErrOrderNotInserted}
		},
		func(id int64) insertOutcome {
			return insertOutcome{response: Inserted{ID: id}}
		},
		func([]int64) insertOutcome {
			return insertOutcome{err: fmt.Errorf("%w: repository returned many rows", ErrOrderNotInserted)}
		},
		func() insertOutcome {
			return insertOutcome{err: fmt.Errorf("%w: repository returned no id", ErrOrderNotInserted)}
		},
	)
	if out.err != nil {
		logger.WithError(out.err).Error("failed to persist purchase order")
		s.record(metrics.OrderOutcomeFatal, start)
		return nil, out.err
	}

	inserted := out.response.(Inserted)
	order.ID = inserted.ID
	s.record(metrics.OrderOutcomeInserted, start)
	logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"items":       len(order.Items),
		"total_price": order.TotalPrice(),
	}).Info("purchase order inserted")

	if s.events != nil {
		if err := s.events.OrderCreated(ctx, order); err != nil {
			logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order created event")
		}
	}

	return inserted, nil
}

// Get возвращает сохранённый заказ.
func (s *Service) Get(ctx context.Context, id int64) GetResponse {
	return dbresult.Match(s.repo.GetByID(ctx, id),
		func() GetResponse { return OperationFailure{} },
		func(o Order) GetResponse { return Found{Order: o} },
		func([]Order) GetResponse {
			s.unexpected("get", dbresult.KindMany)
			return OperationFailure{}
		},
		func() GetResponse { return NotFound{} },
	)
}

// Delete удаляет заказ, если он существует.
func (s *Service) Delete(ctx context.Context, id int64) DeleteResponse {
	resp := dbresult.Match(s.repo.Delete(ctx, id),
		func() DeleteResponse { return OperationFailure{} },
		func(affected int64) DeleteResponse { return Deleted{Affected: affected} },
		func([]int64) DeleteResponse {
			s.unexpected("delete", dbresult.KindMany)
			return OperationFailure{}
		},
		func() DeleteResponse {
			s.unexpected("delete", dbresult.KindEmpty)
			return OperationFailure{}
		},
	)

	if deleted, ok := resp.(Deleted); ok && deleted.Affected > 0 && s.events != nil {
		if err := s.events.OrderDeleted(ctx, id); err != nil {
			s.logger.WithError(err).WithField("order_id", id).Warn("failed to publish order deleted event")
		}
	}
	return resp
}

func (s *Service) record(outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordInsert(outcome, time.Since(start))
	}
}

func (s *Service) unexpected(operation string, kind dbresult.Kind) {
	s.logger.WithFields(log.Fields{
		"operation": operation,
		"result":    kind.String(),
	}).Error("repository returned result of unsupported shape")
}
