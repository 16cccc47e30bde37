package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/0101Programmer/orderManagementSystem/internal/domain"
)

type orderRecord struct {
	order domain.Order
	seq   uint64
}

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu      sync.RWMutex
	nextSeq uint64
	items   map[string]orderRecord
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]orderRecord),
	}
}

// Create сохраняет новый заказ, если ID ещё не занят.
func (r *orderRepositoryInMemory) Create(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return domain.ErrOrderVersionConflict
	}
	r.nextSeq++
	r.items[order.ID] = orderRecord{order: cloneOrder(order), seq: r.nextSeq}
	return nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(rec.order), nil
}

// List возвращает заказы в порядке добавления, отбирая их по фильтру.
func (r *orderRepositoryInMemory) List(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.sortedLocked()
	result := make([]domain.Order, 0, len(records))
	for _, rec := range records {
		if filter.Status != "" && rec.order.Status != filter.Status {
			continue
		}
		if filter.TableNumber != 0 && rec.order.TableNumber != filter.TableNumber {
			continue
		}
		result = append(result, cloneOrder(rec.order))
	}
	return result, nil
}

// ListIDs возвращает идентификаторы заказов в порядке добавления.
func (r *orderRepositoryInMemory) ListIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.sortedLocked()
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.order.ID)
	}
	return ids, nil
}

// Save перезаписывает заказ, проверяя версию (optimistic locking).
func (r *orderRepositoryInMemory) Save(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if current.order.Version != order.Version {
		return domain.ErrOrderVersionConflict
	}
	order.Version++
	order.CreatedAt = current.order.CreatedAt
	r.items[order.ID] = orderRecord{order: cloneOrder(order), seq: current.seq}
	return nil
}

// Delete удаляет заказ по идентификатору.
func (r *orderRepositoryInMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return nil
}

// SumTotalByStatus суммирует итоговые суммы заказов в указанном статусе.
func (r *orderRepositoryInMemory) SumTotalByStatus(_ context.Context, status domain.OrderStatus) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := decimal.Zero
	for _, rec := range r.items {
		if rec.order.Status == status {
			sum = sum.Add(decimal.NewFromFloat(rec.order.TotalPrice))
		}
	}
	total, _ := sum.Float64()
	return total, nil
}

func (r *orderRepositoryInMemory) sortedLocked() []orderRecord {
	records := make([]orderRecord, 0, len(r.items))
	for _, rec := range r.items {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })
	return records
}

// cloneOrder копирует позиции, чтобы вызывающий код не менял состояние хранилища.
func cloneOrder(order domain.Order) domain.Order {
	order.Items = append([]domain.Item(nil), order.Items...)
	return order
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
