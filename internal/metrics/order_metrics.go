package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

// OrderMetrics содержит бизнес-метрики по заказам столиков.
type OrderMetrics struct {
	ordersCreated     *prometheus.CounterVec
	itemsUpdated      prometheus.Counter
	statusTransitions *prometheus.CounterVec
	ordersDeleted     prometheus.Counter
	eventsPublished   *prometheus.CounterVec
}

// NewOrderMetrics создаёт метрики заказов в указанном registerer (nil — DefaultRegisterer).
func NewOrderMetrics(registerer prometheus.Registerer) *OrderMetrics {
	return &OrderMetrics{
		ordersCreated: register(registerer, "oms_orders_created_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oms_orders_created_total",
			Help: "Total number of orders created, by table number.",
		}, []string{"table_number"})),
		itemsUpdated: register(registerer, "oms_order_items_updated_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oms_order_items_updated_total",
			Help: "Total number of order item list replacements.",
		})),
		statusTransitions: register(registerer, "oms_order_status_transitions_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oms_order_status_transitions_total",
			Help: "Total number of order status changes grouped by source and target status.",
		}, []string{"from", "to"})),
		ordersDeleted: register(registerer, "oms_orders_deleted_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oms_orders_deleted_total",
			Help: "Total number of deleted orders.",
		})),
		eventsPublished: register(registerer, "oms_order_events_published_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oms_order_events_published_total",
			Help: "Total number of order lifecycle events sent to the broker, by type and result.",
		}, []string{"event_type", "result"})),
	}
}

// OrderCreated учитывает новый заказ.
func (m *OrderMetrics) OrderCreated(tableNumber int) {
	m.ordersCreated.WithLabelValues(strconv.Itoa(tableNumber)).Inc()
}

// OrderItemsUpdated учитывает замену позиций.
func (m *OrderMetrics) OrderItemsUpdated() {
	m.itemsUpdated.Inc()
}

// OrderStatusChanged учитывает переход статуса.
func (m *OrderMetrics) OrderStatusChanged(from, to domain.OrderStatus) {
	m.statusTransitions.WithLabelValues(string(from), string(to)).Inc()
}

// OrderDeleted учитывает удаление заказа.
func (m *OrderMetrics) OrderDeleted() {
	m.ordersDeleted.Inc()
}

// EventPublished учитывает попытку публикации события в брокер.
func (m *OrderMetrics) EventPublished(eventType domain.OrderEventType, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.eventsPublished.WithLabelValues(string(eventType), result).Inc()
}
