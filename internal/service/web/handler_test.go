package websvc

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
	"github.com/0101Programmer/orderManagementSystem/internal/service/orders"
	"github.com/0101Programmer/orderManagementSystem/internal/storage/memory"
)

type webFixture struct {
	router http.Handler
	svc    *orders.Service
}

func newWebFixture(t *testing.T) webFixture {
	t.Helper()

	logger := log.New()
	logger.SetOutput(io.Discard)

	svc := orders.New(memory.NewOrderRepository(), orders.WithLogger(logger.WithField("component", "orders-test")))
	h, err := NewHandler(svc, logger.WithField("component", "web-test"))
	require.NoError(t, err)

	r := chi.NewRouter()
	h.Routes(r)
	return webFixture{router: r, svc: svc}
}

func (f webFixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func (f webFixture) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f webFixture) createOrder(t *testing.T, table int, items string) domain.Order {
	t.Helper()
	order, err := f.svc.Create(context.Background(), table, []byte(items))
	require.NoError(t, err)
	return order
}

func TestPagesRender(t *testing.T) {
	f := newWebFixture(t)

	for target, header := range map[string]string{
		"/":                         "Главная страница",
		"/crud/add_order":           "Добавление заказа",
		"/crud/delete_order":        "Удаление заказа",
		"/crud/get_order":           "Поиск заказа",
		"/crud/get_all_orders":      "Отображение всех заказов",
		"/crud/update_order_status": "Изменение статуса заказа",
		"/crud/get_total_revenue":   "Расчет выручки за смену",
	} {
		rec := f.get(t, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		require.Contains(t, rec.Body.String(), header, target)
	}
}

func TestAddOrder(t *testing.T) {
	f := newWebFixture(t)

	rec := f.get(t, "/crud/add_order")
	require.Contains(t, rec.Body.String(), "Блюдо")

	rec = f.post(t, "/crud/add_order", url.Values{
		"table_number": {"7"},
		"items":        {`[{"position": "Салат", "price": 250}, {"position": "Кофе", "price": 120.5}]`},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/crud/get_all_orders", rec.Header().Get("Location"))

	all, err := f.svc.List(context.Background(), domain.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, 7, all[0].TableNumber)
	require.Equal(t, 370.5, all[0].TotalPrice)
	require.Equal(t, domain.OrderStatusPending, all[0].Status)

	rec = f.get(t, "/crud/get_all_orders")
	require.Contains(t, rec.Body.String(), "Салат")
	require.Contains(t, rec.Body.String(), "370.50")
	require.Contains(t, rec.Body.String(), "В ожидании")
}

func TestAddOrder_InvalidInputRerendersForm(t *testing.T) {
	f := newWebFixture(t)

	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{name: "missing table", form: url.Values{"items": {`[{"position":"a","price":1}]`}}, message: "table_number field is required"},
		{name: "table not int", form: url.Values{"table_number": {"abc"}, "items": {`[{"position":"a","price":1}]`}}, message: "must be an integer"},
		{name: "table zero", form: url.Values{"table_number": {"0"}, "items": {`[{"position":"a","price":1}]`}}, message: "greater than or equal to 1"},
		{name: "missing items", form: url.Values{"table_number": {"1"}}, message: "items field is required"},
		{name: "broken json", form: url.Values{"table_number": {"1"}, "items": {`[{"position":`}}, message: "valid JSON"},
		{name: "string price", form: url.Values{"table_number": {"1"}, "items": {`[{"position":"a","price":"1"}]`}}, message: "numeric value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.post(t, "/crud/add_order", tt.form)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), tt.message)
			require.Contains(t, rec.Body.String(), "Добавление заказа")
		})
	}

	ids, err := f.svc.OrderIDs(context.Background())
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestDeleteOrder(t *testing.T) {
	f := newWebFixture(t)
	order := f.createOrder(t, 2, `[{"position":"a","price":1}]`)

	rec := f.get(t, "/crud/delete_order")
	require.Contains(t, rec.Body.String(), order.ID)

	rec = f.post(t, "/crud/delete_order", url.Values{"order_id": {"not-in-list"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Выберите корректный вариант")

	rec = f.post(t, "/crud/delete_order", url.Values{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.post(t, "/crud/delete_order", url.Values{"order_id": {order.ID}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/crud/delete_order", rec.Header().Get("Location"))

	_, err := f.svc.Get(context.Background(), order.ID)
	require.True(t, domain.IsNotFound(err))

	rec = f.get(t, "/crud/delete_order")
	require.Contains(t, rec.Body.String(), "Заказов пока нет")
}

func TestGetOrder(t *testing.T) {
	f := newWebFixture(t)
	first := f.createOrder(t, 3, `[{"position":"Суп","price":1}]`)
	second := f.createOrder(t, 4, `[{"position":"Пирог","price":2}]`)
	_, err := f.svc.UpdateStatus(context.Background(), second.ID, "ready")
	require.NoError(t, err)

	rec := f.get(t, "/crud/get_order?table_number=3&status=")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), first.ID)
	require.NotContains(t, rec.Body.String(), second.ID)

	rec = f.get(t, "/crud/get_order?table_number=&status=ready")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), second.ID)
	require.Contains(t, rec.Body.String(), "Готово")

	rec = f.get(t, "/crud/get_order?table_number=3&status=ready")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Заполните только одно поле")

	rec = f.get(t, "/crud/get_order?table_number=&status=")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Заполните хотя бы одно поле")

	rec = f.get(t, "/crud/get_order?status=paid")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Заказы не найдены")

	rec = f.get(t, "/crud/get_order?status=served")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.get(t, "/crud/get_order?table_number=3&foo=1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "unknown query parameters: foo")

	rec = f.get(t, "/crud/get_order?table_number=3&table_number=4")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "table_number must be specified once")
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newWebFixture(t)
	order := f.createOrder(t, 1, `[{"position":"a","price":10}]`)

	rec := f.get(t, "/crud/update_order_status")
	require.Contains(t, rec.Body.String(), order.ID)
	require.Contains(t, rec.Body.String(), "Оплачено")

	rec = f.post(t, "/crud/update_order_status", url.Values{"order_id": {order.ID}, "status": {"paid"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/crud/update_order_status", rec.Header().Get("Location"))

	stored, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPaid, stored.Status)

	// тот же статус — без записи, версия не меняется
	rec = f.post(t, "/crud/update_order_status", url.Values{"order_id": {order.ID}, "status": {"paid"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	again, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, stored.Version, again.Version)

	rec = f.post(t, "/crud/update_order_status", url.Values{"order_id": {order.ID}, "status": {"оплачено"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "status must be one of")

	rec = f.post(t, "/crud/update_order_status", url.Values{"order_id": {"ghost"}, "status": {"ready"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTotalRevenue(t *testing.T) {
	f := newWebFixture(t)

	rec := f.get(t, "/crud/get_total_revenue")
	require.Contains(t, rec.Body.String(), "0.00")

	for _, price := range []string{"300", "700"} {
		order := f.createOrder(t, 1, `[{"position":"a","price":`+price+`}]`)
		_, err := f.svc.UpdateStatus(context.Background(), order.ID, "paid")
		require.NoError(t, err)
	}
	f.createOrder(t, 2, `[{"position":"b","price":50}]`)

	rec = f.get(t, "/crud/get_total_revenue")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "1000.00")
}

func TestUpdateOrderItems(t *testing.T) {
	f := newWebFixture(t)
	order := f.createOrder(t, 5, `[{"position":"Чай","price":40}]`)
	target := "/crud/update_order_items/" + order.ID

	rec := f.get(t, target)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Чай")
	require.Contains(t, rec.Body.String(), "40.00")

	rec = f.post(t, target, url.Values{"items": {`[{"position":"Кофе","price":150},{"position":"Торт","price":99.99}]`}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, target, rec.Header().Get("Location"))

	stored, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, 249.99, stored.TotalPrice)

	rec = f.post(t, target, url.Values{"items": {`[]`}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "items must not be empty")

	rec = f.get(t, "/crud/update_order_items/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Заказ не найден")

	rec = f.post(t, "/crud/update_order_items/missing", url.Values{"items": {`[{"position":"a","price":1}]`}})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

type brokenService struct {
	OrderService
}

func (brokenService) List(context.Context, domain.OrderFilter) ([]domain.Order, error) {
	return nil, errors.New("storage unavailable")
}

func TestInternalErrorIsNotLeaked(t *testing.T) {
	logger := log.New()
	logger.SetOutput(io.Discard)

	h, err := NewHandler(brokenService{}, logger.WithField("component", "web-test"))
	require.NoError(t, err)
	r := chi.NewRouter()
	h.Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crud/get_all_orders", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "storage unavailable")
}

func TestReadOnlyPagesRejectPost(t *testing.T) {
	f := newWebFixture(t)

	rec := f.post(t, "/crud/get_all_orders", url.Values{})
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
