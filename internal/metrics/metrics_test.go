package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

func TestOrderMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)

	m.OrderCreated(3)
	m.OrderCreated(3)
	m.OrderCreated(7)
	m.OrderItemsUpdated()
	m.OrderStatusChanged(domain.OrderStatusPending, domain.OrderStatusPaid)
	m.OrderDeleted()
	m.EventPublished(domain.OrderEventCreated, nil)
	m.EventPublished(domain.OrderEventCreated, errors.New("boom"))

	require.Equal(t, 2.0, testutil.ToFloat64(m.ordersCreated.WithLabelValues("3")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ordersCreated.WithLabelValues("7")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.itemsUpdated))
	require.Equal(t, 1.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("pending", "paid")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ordersDeleted))
	require.Equal(t, 1.0, testutil.ToFloat64(m.eventsPublished.WithLabelValues("order.created", "success")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.eventsPublished.WithLabelValues("order.created", "error")))
}

func TestOrderMetrics_ReRegistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewOrderMetrics(reg)
	second := NewOrderMetrics(reg)

	first.OrderDeleted()
	second.OrderDeleted()

	require.Equal(t, 2.0, testutil.ToFloat64(first.ordersDeleted))
}

func TestRegister_PanicsOnTypeMismatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	register(reg, "oms_conflicting", prometheus.NewCounter(prometheus.CounterOpts{
		Name: "oms_conflicting",
		Help: "counter",
	}))

	require.Panics(t, func() {
		register(reg, "oms_conflicting", prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "oms_conflicting",
			Help: "counter",
		}))
	})
}

func TestHTTPMetrics_MiddlewareUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/order_get/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/order_get/a", "/order_get/b", "/ok"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/order_get/{id}", "404")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/ok", "200")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
	require.Equal(t, 2, testutil.CollectAndCount(m.duration))
}
