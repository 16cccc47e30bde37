package apisvc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	validatorv10 "github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
	"github.com/0101Programmer/orderManagementSystem/internal/service/orders"
	"github.com/0101Programmer/orderManagementSystem/internal/validation"
)

const maxRequestBodyBytes = 1 << 20

// OrderService — операции над заказами, которые нужны JSON API.
type OrderService interface {
	Create(ctx context.Context, tableNumber int, rawItems []byte) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (domain.Order, error)
	UpdateItems(ctx context.Context, id string, rawItems []byte) (domain.Order, error)
	Delete(ctx context.Context, id string) error
	TotalRevenue(ctx context.Context) (float64, error)
}

// Handler обслуживает JSON API заказов.
type Handler struct {
	svc      OrderService
	validate *validatorv10.Validate
	logger   *log.Entry
}

// NewHandler создаёт JSON-обработчики поверх сервиса заказов.
func NewHandler(svc OrderService, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.New().WithField("component", "api")
	}
	return &Handler{
		svc:      svc,
		validate: validation.New(),
		logger:   logger,
	}
}

// Routes регистрирует маршруты API в роутере.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/order_create", h.CreateOrder)
	r.Get("/order_list", h.ListOrders)
	r.Get("/order_get/{id}", h.GetOrder)
	r.Patch("/order_update_status/{id}", h.UpdateOrderStatus)
	r.Patch("/order_update_items/{id}", h.UpdateOrderItems)
	r.Delete("/order_delete/{id}", h.DeleteOrder)
	r.Get("/get_total_revenue", h.TotalRevenue)
}

// CreateOrder — POST /order_create.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	order, err := h.svc.Create(r.Context(), *req.TableNumber, req.Items)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapOrderToResponse(order))
}

// ListOrders — GET /order_list[?status=...|?table_number=...].
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter, err := orders.ParseListFilter(r.URL.Query())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	list, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrdersToResponse(list))
}

// GetOrder — GET /order_get/{id}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

// UpdateOrderStatus — PATCH /order_update_status/{id}.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	order, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

// UpdateOrderItems — PATCH /order_update_items/{id}.
func (h *Handler) UpdateOrderItems(w http.ResponseWriter, r *http.Request) {
	var req updateItemsRequest
	if err := h.decodeAndValidate(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	order, err := h.svc.UpdateItems(r.Context(), chi.URLParam(r, "id"), req.Items)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

// DeleteOrder — DELETE /order_delete/{id}.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TotalRevenue — GET /get_total_revenue.
func (h *Handler) TotalRevenue(w http.ResponseWriter, r *http.Request) {
	total, err := h.svc.TotalRevenue(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, revenueResponse{TotalRevenue: total})
}

// decodeAndValidate читает JSON-тело в dto и проверяет теги validate.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dto any) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(dto); err != nil {
		return decodeError(err)
	}
	return validation.Struct(h.validate, dto)
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field == "":
		return domain.NewValidationError("", "request body must be a JSON object")
	case errors.As(err, &typeErr):
		return domain.NewValidationError(typeErr.Field, "%s has invalid type %s", typeErr.Field, typeErr.Value)
	case errors.As(err, &maxErr):
		return domain.NewValidationError("", "request body exceeds %d bytes", maxErr.Limit)
	case errors.Is(err, io.EOF):
		return domain.NewValidationError("", "request body is required")
	default:
		return domain.NewValidationError("", "request body must be valid JSON: %v", err)
	}
}

// writeServiceError — единая точка отображения ошибок на HTTP-статусы.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_failed", Field: vErr.Field, Message: vErr.Message})
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()})
	case domain.IsVersionConflict(err):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "conflict", Message: "order was modified concurrently, retry the request"})
	default:
		h.logger.WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal", Message: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warnf("failed to encode %T response", v)
	}
}
