package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

// TopicOrderEvents — topic по умолчанию для событий жизненного цикла заказов.
const TopicOrderEvents = "oms.order.events"

// ItemPayload — позиция заказа в теле события.
type ItemPayload struct {
	Position string  `json:"position"`
	Price    float64 `json:"price"`
}

// OrderEventMessage — JSON-представление события заказа в Kafka.
type OrderEventMessage struct {
	EventID        string        `json:"event_id"`
	EventType      string        `json:"event_type"`
	OrderID        string        `json:"order_id"`
	TableNumber    int           `json:"table_number,omitempty"`
	Status         string        `json:"status,omitempty"`
	PreviousStatus string        `json:"previous_status,omitempty"`
	TotalPrice     float64       `json:"total_price"`
	Items          []ItemPayload `json:"items,omitempty"`
	Version        int64         `json:"version"`
	OccurredAt     time.Time     `json:"occurred_at"`
}

// NewOrderEventMessage переводит доменное событие в сообщение для брокера.
func NewOrderEventMessage(event domain.OrderEvent) OrderEventMessage {
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	msg := OrderEventMessage{
		EventID:        uuid.NewString(),
		EventType:      string(event.Type),
		OrderID:        event.Order.ID,
		TableNumber:    event.Order.TableNumber,
		Status:         string(event.Order.Status),
		PreviousStatus: string(event.PreviousStatus),
		TotalPrice:     event.Order.TotalPrice,
		Version:        event.Order.Version,
		OccurredAt:     occurredAt,
	}
	if len(event.Order.Items) > 0 {
		msg.Items = make([]ItemPayload, 0, len(event.Order.Items))
		for _, item := range event.Order.Items {
			msg.Items = append(msg.Items, ItemPayload{Position: item.Position, Price: item.Price})
		}
	}
	return msg
}
