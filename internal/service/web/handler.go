package websvc

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
	"github.com/0101Programmer/orderManagementSystem/internal/service/orders"
	"github.com/0101Programmer/orderManagementSystem/internal/validation"
)

// OrderService — операции, которые нужны веб-формам.
type OrderService interface {
	Create(ctx context.Context, tableNumber int, rawItems []byte) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	OrderIDs(ctx context.Context) ([]string, error)
	UpdateStatus(ctx context.Context, id, status string) (domain.Order, error)
	UpdateItems(ctx context.Context, id string, rawItems []byte) (domain.Order, error)
	Delete(ctx context.Context, id string) error
	TotalRevenue(ctx context.Context) (float64, error)
}

type addOrderForm struct {
	TableNumber string `form:"table_number" validate:"required"`
	Items       string `form:"items" validate:"required"`
}

type deleteOrderForm struct {
	OrderID string `form:"order_id" validate:"required"`
}

type updateStatusForm struct {
	OrderID string `form:"order_id" validate:"required"`
	Status  string `form:"status" validate:"required,oneof=pending ready paid"`
}

type updateItemsForm struct {
	Items string `form:"items" validate:"required"`
}

// Handler отдаёт HTML-формы для работы с заказами.
// Успешный POST отвечает 303 See Other, ошибочный — перерисовывает форму с сообщениями.
type Handler struct {
	svc      OrderService
	pages    map[string]*template.Template
	validate *validatorv10.Validate
	logger   *log.Entry
}

// NewHandler разбирает встроенные шаблоны и создаёт обработчик.
func NewHandler(svc OrderService, logger *log.Entry) (*Handler, error) {
	if logger == nil {
		logger = log.New().WithField("component", "web")
	}
	parsed, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Handler{
		svc:      svc,
		pages:    parsed,
		validate: validation.New(),
		logger:   logger,
	}, nil
}

// Routes регистрирует страницы в роутере.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Home)
	r.Route("/crud", func(r chi.Router) {
		r.Get("/add_order", h.AddOrderForm)
		r.Post("/add_order", h.AddOrder)
		r.Get("/delete_order", h.DeleteOrderForm)
		r.Post("/delete_order", h.DeleteOrder)
		r.Get("/get_order", h.GetOrder)
		r.Get("/get_all_orders", h.GetAllOrders)
		r.Get("/update_order_status", h.UpdateOrderStatusForm)
		r.Post("/update_order_status", h.UpdateOrderStatus)
		r.Get("/get_total_revenue", h.GetTotalRevenue)
		r.Get("/update_order_items/{id}", h.UpdateOrderItemsForm)
		r.Post("/update_order_items/{id}", h.UpdateOrderItems)
	})
}

func (h *Handler) Home(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusOK, pageHome, newPageData("Главная страница"))
}

func (h *Handler) AddOrderForm(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusOK, pageAddOrder, h.addOrderPage(formValues{}))
}

func (h *Handler) AddOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badForm(w, pageAddOrder, h.addOrderPage(formValues{}), err)
		return
	}
	form := addOrderForm{
		TableNumber: postValue(r, "table_number"),
		Items:       postValue(r, "items"),
	}
	data := h.addOrderPage(formValues{TableNumber: form.TableNumber, Items: form.Items})

	if err := validation.Struct(h.validate, form); err != nil {
		h.formError(w, r, pageAddOrder, data, err)
		return
	}
	table, err := orders.ParseTableNumber(form.TableNumber)
	if err != nil {
		h.formError(w, r, pageAddOrder, data, err)
		return
	}
	if _, err := h.svc.Create(r.Context(), table, []byte(form.Items)); err != nil {
		h.formError(w, r, pageAddOrder, data, err)
		return
	}

	http.Redirect(w, r, "/crud/get_all_orders", http.StatusSeeOther)
}

func (h *Handler) addOrderPage(values formValues) pageData {
	data := newPageData("Добавление заказа")
	data.Form = values
	if example, err := domain.EncodeItems(domain.DefaultItems()); err == nil {
		data.ItemsExample = string(example)
	}
	return data
}

func (h *Handler) DeleteOrderForm(w http.ResponseWriter, r *http.Request) {
	data, err := h.choicePage(r.Context(), "Удаление заказа", formValues{})
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, pageDeleteOrder, data)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badForm(w, pageDeleteOrder, newPageData("Удаление заказа"), err)
		return
	}
	form := deleteOrderForm{OrderID: postValue(r, "order_id")}

	data, err := h.choicePage(r.Context(), "Удаление заказа", formValues{OrderID: form.OrderID})
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if err := validation.Struct(h.validate, form); err != nil {
		h.formError(w, r, pageDeleteOrder, data, err)
		return
	}
	if err := checkChoice(form.OrderID, data.OrderIDs); err != nil {
		h.formError(w, r, pageDeleteOrder, data, err)
		return
	}
	if err := h.svc.Delete(r.Context(), form.OrderID); err != nil {
		h.formError(w, r, pageDeleteOrder, data, err)
		return
	}

	http.Redirect(w, r, "/crud/delete_order", http.StatusSeeOther)
}

// GetOrder ищет заказы по номеру стола или статусу (ровно одно поле).
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	values := formValues{
		TableNumber: strings.TrimSpace(query.Get("table_number")),
		Status:      strings.TrimSpace(query.Get("status")),
	}
	data := newPageData("Поиск заказа")
	data.Form = values
	data.Statuses = statusOptions()

	if len(query) == 0 {
		h.render(w, http.StatusOK, pageGetOrder, data)
		return
	}

	filter, err := searchFilter(query)
	if err != nil {
		h.formError(w, r, pageGetOrder, data, err)
		return
	}
	found, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.formError(w, r, pageGetOrder, data, err)
		return
	}

	data.Searched = true
	data.Orders = found
	h.render(w, http.StatusOK, pageGetOrder, data)
}

// searchFilter отбрасывает пустые поля формы и дальше разбирает query
// так же, как JSON API: лишние ключи и повторы отклоняются.
func searchFilter(query url.Values) (domain.OrderFilter, error) {
	filled := url.Values{}
	for key, vals := range query {
		for _, v := range vals {
			if strings.TrimSpace(v) != "" {
				filled.Add(key, v)
			}
		}
	}

	_, hasTable := filled[orders.FilterKeyTableNumber]
	_, hasStatus := filled[orders.FilterKeyStatus]
	switch {
	case hasTable && hasStatus:
		return domain.OrderFilter{}, domain.NewValidationError("", "Заполните только одно поле: либо номер стола, либо статус заказа.")
	case len(filled) == 0:
		return domain.OrderFilter{}, domain.NewValidationError("", "Заполните хотя бы одно поле: номер стола или статус заказа.")
	}
	return orders.ParseListFilter(filled)
}

func (h *Handler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.List(r.Context(), domain.OrderFilter{})
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	data := newPageData("Отображение всех заказов")
	data.Orders = all
	h.render(w, http.StatusOK, pageGetAllOrders, data)
}

func (h *Handler) UpdateOrderStatusForm(w http.ResponseWriter, r *http.Request) {
	data, err := h.choicePage(r.Context(), "Изменение статуса заказа", formValues{})
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	data.Statuses = statusOptions()
	h.render(w, http.StatusOK, pageUpdateOrderStatus, data)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badForm(w, pageUpdateOrderStatus, newPageData("Изменение статуса заказа"), err)
		return
	}
	form := updateStatusForm{
		OrderID: postValue(r, "order_id"),
		Status:  postValue(r, "status"),
	}

	data, err := h.choicePage(r.Context(), "Изменение статуса заказа", formValues{OrderID: form.OrderID, Status: form.Status})
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	data.Statuses = statusOptions()

	if err := validation.Struct(h.validate, form); err != nil {
		h.formError(w, r, pageUpdateOrderStatus, data, err)
		return
	}
	if err := checkChoice(form.OrderID, data.OrderIDs); err != nil {
		h.formError(w, r, pageUpdateOrderStatus, data, err)
		return
	}
	if _, err := h.svc.UpdateStatus(r.Context(), form.OrderID, form.Status); err != nil {
		h.formError(w, r, pageUpdateOrderStatus, data, err)
		return
	}

	http.Redirect(w, r, "/crud/update_order_status", http.StatusSeeOther)
}

func (h *Handler) GetTotalRevenue(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.TotalRevenue(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	data := newPageData("Расчет выручки за смену")
	data.TotalRevenue = total
	h.render(w, http.StatusOK, pageGetTotalRevenue, data)
}

func (h *Handler) UpdateOrderItemsForm(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.orderLookupError(w, r, err)
		return
	}

	items, err := domain.EncodeItems(order.Items)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	data := newPageData("Изменение содержимого заказа")
	data.Order = &order
	data.Form = formValues{Items: string(items)}
	h.render(w, http.StatusOK, pageUpdateOrderItems, data)
}

func (h *Handler) UpdateOrderItems(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.orderLookupError(w, r, err)
		return
	}

	data := newPageData("Изменение содержимого заказа")
	data.Order = &order
	if err := r.ParseForm(); err != nil {
		h.badForm(w, pageUpdateOrderItems, data, err)
		return
	}
	form := updateItemsForm{Items: postValue(r, "items")}
	data.Form = formValues{Items: form.Items}

	if err := validation.Struct(h.validate, form); err != nil {
		h.formError(w, r, pageUpdateOrderItems, data, err)
		return
	}
	if _, err := h.svc.UpdateItems(r.Context(), order.ID, []byte(form.Items)); err != nil {
		h.formError(w, r, pageUpdateOrderItems, data, err)
		return
	}

	http.Redirect(w, r, "/crud/update_order_items/"+url.PathEscape(order.ID), http.StatusSeeOther)
}

// choicePage готовит страницу с выпадающим списком id заказов.
func (h *Handler) choicePage(ctx context.Context, header string, values formValues) (pageData, error) {
	ids, err := h.svc.OrderIDs(ctx)
	if err != nil {
		return pageData{}, err
	}
	data := newPageData(header)
	data.Form = values
	data.OrderIDs = ids
	return data, nil
}

// checkChoice проверяет, что выбранный id входит в список, показанный пользователю.
func checkChoice(id string, candidates []string) error {
	if !slices.Contains(candidates, id) {
		return domain.NewValidationError("order_id", "Выберите корректный вариант. %s нет среди допустимых значений.", id)
	}
	return nil
}

func postValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostForm.Get(key))
}

// formError перерисовывает форму: 400 для ошибок ввода, 404 если заказ исчез, 500 иначе.
func (h *Handler) formError(w http.ResponseWriter, r *http.Request, page string, data pageData, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		data.Errors = append(data.Errors, vErr.Message)
		h.render(w, http.StatusBadRequest, page, data)
	case domain.IsNotFound(err):
		data.Errors = append(data.Errors, "Заказы не найдены.")
		h.render(w, http.StatusNotFound, page, data)
	case domain.IsVersionConflict(err):
		data.Errors = append(data.Errors, "Заказ был изменён параллельно, повторите попытку.")
		h.render(w, http.StatusConflict, page, data)
	default:
		h.internalError(w, r, err)
	}
}

func (h *Handler) badForm(w http.ResponseWriter, page string, data pageData, err error) {
	data.Errors = append(data.Errors, "Не удалось разобрать данные формы: "+err.Error())
	h.render(w, http.StatusBadRequest, page, data)
}

func (h *Handler) orderLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsNotFound(err) || domain.IsValidation(err) {
		data := newPageData("Заказ не найден")
		h.render(w, http.StatusNotFound, pageNotFound, data)
		return
	}
	h.internalError(w, r, err)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WithError(err).WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("web request failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
