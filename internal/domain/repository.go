package domain

import "context"

// OrderFilter ограничивает выборку заказов. Нулевое значение означает «без фильтра».
type OrderFilter struct {
	Status      OrderStatus
	TableNumber int
}

// IsEmpty сообщает, что фильтр не задан.
func (f OrderFilter) IsEmpty() bool {
	return f.Status == "" && f.TableNumber == 0
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ. Возвращает ErrOrderVersionConflict, если ID уже занят.
	Create(ctx context.Context, order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id string) (Order, error)
	// List возвращает заказы в порядке создания с учётом фильтра.
	List(ctx context.Context, filter OrderFilter) ([]Order, error)
	// ListIDs возвращает идентификаторы всех заказов в порядке создания.
	ListIDs(ctx context.Context) ([]string, error)
	// Save применяет обновления к заказу с учётом optimistic locking и увеличивает версию.
	Save(ctx context.Context, order Order) error
	// Delete удаляет заказ или возвращает ErrOrderNotFound.
	Delete(ctx context.Context, id string) error
	// SumTotalByStatus суммирует total_price заказов с указанным статусом.
	SumTotalByStatus(ctx context.Context, status OrderStatus) (float64, error)
}
