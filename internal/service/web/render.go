package websvc

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	siteTitle = "Order Management System"

	pageHome              = "home.html"
	pageAddOrder          = "add_order.html"
	pageDeleteOrder       = "delete_order.html"
	pageGetOrder          = "get_order.html"
	pageGetAllOrders      = "get_all_orders.html"
	pageUpdateOrderStatus = "update_order_status.html"
	pageGetTotalRevenue   = "get_total_revenue.html"
	pageUpdateOrderItems  = "update_order_items.html"
	pageNotFound          = "not_found.html"
)

var pages = []string{
	pageHome,
	pageAddOrder,
	pageDeleteOrder,
	pageGetOrder,
	pageGetAllOrders,
	pageUpdateOrderStatus,
	pageGetTotalRevenue,
	pageUpdateOrderItems,
	pageNotFound,
}

var statusLabels = map[domain.OrderStatus]string{
	domain.OrderStatusPending: "В ожидании",
	domain.OrderStatusReady:   "Готово",
	domain.OrderStatusPaid:    "Оплачено",
}

type statusOption struct {
	Value string
	Label string
}

// formValues — введённые пользователем значения, которые возвращаются в форму при ошибке.
type formValues struct {
	TableNumber string
	Items       string
	OrderID     string
	Status      string
}

type pageData struct {
	Title        string
	Header       string
	Errors       []string
	Form         formValues
	Orders       []domain.Order
	Order        *domain.Order
	OrderIDs     []string
	Statuses     []statusOption
	Searched     bool
	TotalRevenue float64
	ItemsExample string
}

func newPageData(header string) pageData {
	return pageData{Title: siteTitle, Header: header}
}

func statusLabel(status domain.OrderStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

func statusOptions() []statusOption {
	statuses := domain.OrderStatuses()
	out := make([]statusOption, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, statusOption{Value: string(s), Label: statusLabel(s)})
	}
	return out
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// parsePages собирает для каждой страницы отдельный набор: layout + таблица + сама страница.
func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"statusLabel": statusLabel,
		"money":       money,
	}

	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html",
			"templates/orders_table.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		out[page] = tmpl
	}
	return out, nil
}

// render исполняет шаблон в буфер, чтобы ошибка шаблона не оставила полуотправленную страницу.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data pageData) {
	tmpl, ok := h.pages[page]
	if !ok {
		h.logger.WithField("page", page).Error("unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.WithError(err).WithField("page", page).Error("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
