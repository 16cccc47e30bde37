package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

// Service реализует операции над заказами столиков поверх репозитория.
// Все транспортные слои (JSON API и веб-формы) работают через него.
type Service struct {
	repo      domain.OrderRepository
	publisher domain.EventPublisher
	metrics   MetricsRecorder
	logger    *log.Entry
	clock     func() time.Time
	newID     func() string
}

// New конструирует сервис заказов.
func New(repo domain.OrderRepository, opts ...Option) *Service {
	cfg := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New().WithField("component", "orders")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = noopMetrics{}
	}

	return &Service{
		repo:      repo,
		publisher: cfg.Publisher,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		clock:     cfg.Clock,
		newID:     cfg.NewID,
	}
}

// Create создаёт заказ: сумма считается на сервере, статус всегда pending.
func (s *Service) Create(ctx context.Context, tableNumber int, rawItems []byte) (domain.Order, error) {
	if tableNumber < 1 {
		return domain.Order{}, domain.NewValidationError(FilterKeyTableNumber, "table_number must be greater than or equal to 1")
	}
	items, err := domain.DecodeItems(rawItems)
	if err != nil {
		return domain.Order{}, err
	}

	now := s.clock()
	order := domain.Order{
		ID:          s.newID(),
		TableNumber: tableNumber,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	order.SetItems(items)
	if err := order.Validate(); err != nil {
		return domain.Order{}, err
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"table_number": order.TableNumber,
		"total_price":  order.TotalPrice,
	}).Info("order created")
	s.metrics.OrderCreated(order.TableNumber)
	s.publish(ctx, domain.OrderEvent{Type: domain.OrderEventCreated, Order: order, OccurredAt: now})

	return order, nil
}

// Get возвращает заказ по идентификатору.
func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Order{}, domain.NewValidationError("order_id", "order_id is required")
	}
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return order, nil
}

// List возвращает заказы по фильтру. Пустой фильтр — все заказы (в том числе ноль).
// Непустой фильтр без совпадений считается ошибкой ErrOrderNotFound.
func (s *Service) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if !filter.IsEmpty() && len(orders) == 0 {
		return nil, fmt.Errorf("no orders match %s: %w", describeFilter(filter), domain.ErrOrderNotFound)
	}
	return orders, nil
}

// OrderIDs возвращает идентификаторы всех заказов — набор допустимых значений для форм.
func (s *Service) OrderIDs(ctx context.Context) ([]string, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list order ids: %w", err)
	}
	return ids, nil
}

// UpdateStatus меняет статус заказа. Если статус не изменился, запись не выполняется.
func (s *Service) UpdateStatus(ctx context.Context, id, rawStatus string) (domain.Order, error) {
	status, err := domain.ParseOrderStatus(strings.TrimSpace(rawStatus))
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if order.Status == status {
		return order, nil
	}

	previous := order.Status
	order.Status = status
	order.UpdatedAt = s.clock()
	if err := s.repo.Save(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("save order status: %w", err)
	}
	order.Version++

	s.logger.WithFields(log.Fields{
		"order_id":   order.ID,
		"old_status": previous,
		"new_status": status,
	}).Info("order status changed")
	s.metrics.OrderStatusChanged(previous, status)
	s.publish(ctx, domain.OrderEvent{
		Type:           domain.OrderEventStatusChanged,
		Order:          order,
		PreviousStatus: previous,
		OccurredAt:     order.UpdatedAt,
	})

	return order, nil
}

// UpdateItems заменяет позиции заказа и пересчитывает итоговую сумму.
func (s *Service) UpdateItems(ctx context.Context, id string, rawItems []byte) (domain.Order, error) {
	items, err := domain.DecodeItems(rawItems)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	order.SetItems(items)
	if err := order.Validate(); err != nil {
		return domain.Order{}, err
	}
	order.UpdatedAt = s.clock()
	if err := s.repo.Save(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("save order items: %w", err)
	}
	order.Version++

	s.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"items":       len(order.Items),
		"total_price": order.TotalPrice,
	}).Info("order items updated")
	s.metrics.OrderItemsUpdated()
	s.publish(ctx, domain.OrderEvent{Type: domain.OrderEventItemsUpdated, Order: order, OccurredAt: order.UpdatedAt})

	return order, nil
}

// Delete удаляет заказ; повторное удаление возвращает ErrOrderNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.NewValidationError("order_id", "order_id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}

	s.logger.WithField("order_id", id).Info("order deleted")
	s.metrics.OrderDeleted()
	s.publish(ctx, domain.OrderEvent{
		Type:       domain.OrderEventDeleted,
		Order:      domain.Order{ID: id},
		OccurredAt: s.clock(),
	})

	return nil
}

// TotalRevenue суммирует итоговые суммы оплаченных заказов.
func (s *Service) TotalRevenue(ctx context.Context) (float64, error) {
	sum, err := s.repo.SumTotalByStatus(ctx, domain.OrderStatusPaid)
	if err != nil {
		return 0, fmt.Errorf("sum paid orders: %w", err)
	}
	return domain.RoundMoney(sum), nil
}

// publish отправляет событие; ошибка брокера не отменяет уже записанное изменение.
func (s *Service) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id":   event.Order.ID,
			"event_type": event.Type,
		}).Warn("failed to publish order event")
	}
}
