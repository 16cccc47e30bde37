package domain

import (
	"context"
	"time"
)

// OrderEventType — тип события жизненного цикла заказа.
type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventItemsUpdated  OrderEventType = "order.items_updated"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
	OrderEventDeleted       OrderEventType = "order.deleted"
)

// OrderEvent фиксирует изменение заказа после успешной записи в хранилище.
type OrderEvent struct {
	Type OrderEventType
	// Order — состояние заказа после изменения (для удаления заполнен только ID).
	Order Order
	// PreviousStatus заполняется только для OrderEventStatusChanged.
	PreviousStatus OrderStatus
	OccurredAt     time.Time
}

// EventPublisher публикует события заказов во внешний брокер.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
