package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа столика.
type OrderStatus string

const (
	// OrderStatusPending — заказ принят, блюда ещё готовятся.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusReady — блюда готовы и поданы.
	OrderStatusReady OrderStatus = "ready"
	// OrderStatusPaid — заказ оплачен и учитывается в выручке.
	OrderStatusPaid OrderStatus = "paid"
)

// totalPricePlaces — точность итоговой суммы заказа (копейки).
const totalPricePlaces = 2

// MaxAmount — наибольшая цена позиции и итоговая сумма заказа; столько вмещает NUMERIC(12,2).
const MaxAmount = 9999999999.99

// OrderStatuses возвращает допустимые статусы в порядке жизненного цикла.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPending, OrderStatusReady, OrderStatusPaid}
}

// Valid сообщает, входит ли статус в словарь допустимых значений.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusReady, OrderStatusPaid:
		return true
	default:
		return false
	}
}

// ParseOrderStatus проверяет строковое значение статуса.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	if raw == "" {
		return "", NewValidationError("status", "status is required")
	}
	status := OrderStatus(raw)
	if !status.Valid() {
		return "", NewValidationError("status", "status must be one of: pending, ready, paid (got %q)", raw)
	}
	return status, nil
}

// Item — одна позиция заказа.
type Item struct {
	// Position — название блюда.
	Position string
	// Price — цена позиции, неотрицательная.
	Price float64
}

// Order агрегирует позиции столика, статус и вычисленную сумму.
type Order struct {
	ID          string
	TableNumber int
	Items       []Item
	// TotalPrice всегда пересчитывается из Items, клиент его не задаёт.
	TotalPrice float64
	Status     OrderStatus
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DefaultItems возвращает новый пример списка позиций при каждом вызове.
func DefaultItems() []Item {
	return []Item{{Position: "Блюдо", Price: 199.99}}
}

// ValidAmount сообщает, что значение конечно и лежит в [0, MaxAmount].
func ValidAmount(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0) && value >= 0 && value <= MaxAmount
}

// ComputeTotal суммирует цены позиций и округляет результат до двух знаков
// (половина копейки округляется от нуля). Цены должны быть конечными.
func ComputeTotal(items []Item) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Price))
	}
	total, _ := sum.Round(totalPricePlaces).Float64()
	return total
}

// RoundMoney округляет денежное значение до двух знаков.
func RoundMoney(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(totalPricePlaces).Float64()
	return rounded
}

// SetItems заменяет позиции и пересчитывает итоговую сумму.
func (o *Order) SetItems(items []Item) {
	o.Items = append([]Item(nil), items...)
	o.TotalPrice = ComputeTotal(o.Items)
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.TableNumber < 1 {
		errs = append(errs, ErrTableNumberInvalid)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	pricesValid := true
	for _, item := range o.Items {
		if !ValidAmount(item.Price) {
			pricesValid = false
			errs = append(errs, ErrItemPriceInvalid)
			break
		}
	}
	if !o.Status.Valid() {
		errs = append(errs, ErrStatusInvalid)
	}
	// сумму считаем только по конечным ценам, иначе decimal паникует
	if pricesValid {
		total := ComputeTotal(o.Items)
		switch {
		case total > MaxAmount:
			errs = append(errs, ErrTotalTooLarge)
		case total != o.TotalPrice:
			errs = append(errs, ErrTotalMismatch)
		}
	}

	return errs
}

// Validate сворачивает нарушенные инварианты в одну ValidationError.
// Поле берётся по первому нарушению.
func (o *Order) Validate() error {
	errs := o.ValidateInvariants()
	if len(errs) == 0 {
		return nil
	}

	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return NewValidationError(invariantField(errs[0]), "%s", strings.Join(messages, "; "))
}

func invariantField(err error) string {
	switch {
	case errors.Is(err, ErrTableNumberInvalid):
		return "table_number"
	case errors.Is(err, ErrStatusInvalid):
		return "status"
	case errors.Is(err, ErrTotalMismatch):
		return "total_price"
	default:
		return "items"
	}
}
