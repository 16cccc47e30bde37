package kafka

import (
	"context"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

type eventSender interface {
	PublishEvent(ctx context.Context, topic, key, eventType string, event any) error
}

// PublishRecorder учитывает результат публикации (реализуется metrics.OrderMetrics).
type PublishRecorder interface {
	EventPublished(eventType domain.OrderEventType, err error)
}

// OrderEventPublisher реализует domain.EventPublisher поверх Kafka.
// Ключ сообщения — id заказа, так что события одного заказа попадают в одну партицию.
type OrderEventPublisher struct {
	sender   eventSender
	topic    string
	recorder PublishRecorder
}

// NewOrderEventPublisher создаёт publisher; пустой topic заменяется TopicOrderEvents.
func NewOrderEventPublisher(producer *Producer, topic string, recorder PublishRecorder) *OrderEventPublisher {
	return newOrderEventPublisher(producer, topic, recorder)
}

func newOrderEventPublisher(sender eventSender, topic string, recorder PublishRecorder) *OrderEventPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OrderEventPublisher{sender: sender, topic: topic, recorder: recorder}
}

// Publish отправляет событие заказа в topic.
func (p *OrderEventPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	msg := NewOrderEventMessage(event)
	err := p.sender.PublishEvent(ctx, p.topic, event.Order.ID, msg.EventType, msg)
	if p.recorder != nil {
		p.recorder.EventPublished(event.Type, err)
	}
	return err
}

var _ domain.EventPublisher = (*OrderEventPublisher)(nil)
