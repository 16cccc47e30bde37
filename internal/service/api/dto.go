package apisvc

import (
	"encoding/json"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

// createOrderRequest — тело POST /order_create. id, total_price и status
// клиент не задаёт: лишние поля молча игнорируются.
type createOrderRequest struct {
	TableNumber *int            `json:"table_number" validate:"required,gte=1"`
	Items       json.RawMessage `json:"items"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type updateItemsRequest struct {
	Items json.RawMessage `json:"items"`
}

type itemResponse struct {
	Position string  `json:"position"`
	Price    float64 `json:"price"`
}

type orderResponse struct {
	ID          string         `json:"id"`
	TableNumber int            `json:"table_number"`
	Items       []itemResponse `json:"items"`
	TotalPrice  float64        `json:"total_price"`
	Status      string         `json:"status"`
}

type revenueResponse struct {
	TotalRevenue float64 `json:"total_revenue"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

func mapOrderToResponse(order domain.Order) orderResponse {
	items := make([]itemResponse, len(order.Items))
	for i, it := range order.Items {
		items[i] = itemResponse{Position: it.Position, Price: it.Price}
	}
	return orderResponse{
		ID:          order.ID,
		TableNumber: order.TableNumber,
		Items:       items,
		TotalPrice:  order.TotalPrice,
		Status:      string(order.Status),
	}
}

func mapOrdersToResponse(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, order := range orders {
		out[i] = mapOrderToResponse(order)
	}
	return out
}
