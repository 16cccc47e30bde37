package orders

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

// MetricsRecorder собирает бизнес-метрики по заказам.
type MetricsRecorder interface {
	OrderCreated(tableNumber int)
	OrderItemsUpdated()
	OrderStatusChanged(from, to domain.OrderStatus)
	OrderDeleted()
}

// Options задаёт необязательные зависимости сервиса.
type Options struct {
	Logger    *log.Entry
	Publisher domain.EventPublisher
	Metrics   MetricsRecorder
	Clock     func() time.Time
	NewID     func() string
}

// Option настраивает Service.
type Option func(*Options)

// WithLogger задаёт logger сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithEventPublisher подключает публикацию событий жизненного цикла заказа.
func WithEventPublisher(publisher domain.EventPublisher) Option {
	return func(opts *Options) {
		opts.Publisher = publisher
	}
}

// WithMetrics подключает запись бизнес-метрик.
func WithMetrics(recorder MetricsRecorder) Option {
	return func(opts *Options) {
		opts.Metrics = recorder
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(clock func() time.Time) Option {
	return func(opts *Options) {
		opts.Clock = clock
	}
}

// WithIDGenerator подменяет генератор идентификаторов заказов.
func WithIDGenerator(newID func() string) Option {
	return func(opts *Options) {
		opts.NewID = newID
	}
}

func defaultOptions() Options {
	return Options{
		Logger:  log.New().WithField("component", "orders"),
		Metrics: noopMetrics{},
		Clock:   func() time.Time { return time.Now().UTC() },
		NewID:   func() string { return uuid.NewString() },
	}
}

type noopMetrics struct{}

func (noopMetrics) OrderCreated(int) {}
func (noopMetrics) OrderItemsUpdated() {}
func (noopMetrics) OrderStatusChanged(_, _ domain.OrderStatus) {}
func (noopMetrics) OrderDeleted() {}
