package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"guidee-orders/internal/data/entity"

	"github.com/google/uuid"
)

// memoryOrderRepository keeps orders in a mutex-guarded map. Callers always
// get copies; writing back a copy is last-write-wins, matching the Postgres
// implementation's behavior without row locking.
type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*entity.Order
}

func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{
		orders: make(map[uuid.UUID]*entity.Order),
	}
}

func (r *memoryOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *memoryOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(order), nil
}

func (r *memoryOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return errOrderMissing(order.ID)
	}
	r.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *memoryOrderRepository) Search(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error) {
	r.mu.RLock()

	var matched []*entity.Order
	for _, order := range r.orders {
		if matchesFilter(order, filter) {
			matched = append(matched, copyOrder(order))
		}
	}
	r.mu.RUnlock()

	sortOrders(matched, filter.SortBy, filter.SortOrder)

	total := int64(len(matched))

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, total, nil
}

func matchesFilter(order *entity.Order, filter OrderFilter) bool {
	if filter.Status != nil && order.Status != *filter.Status {
		return false
	}
	if filter.CustomerID != nil && order.Customer.UserID != *filter.CustomerID {
		return false
	}
	if filter.GuideID != nil && order.Booking.GuideID != *filter.GuideID {
		return false
	}
	if filter.StartDate != nil && order.Booking.Date.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && order.Booking.Date.After(*filter.EndDate) {
		return false
	}
	return true
}

func sortOrders(orders []*entity.Order, sortBy, sortOrder string) {
	asc := sortOrder == "asc"

	less := func(a, b *entity.Order) bool {
		switch sortBy {
		case "bookingDate":
			return a.Booking.Date.Before(b.Booking.Date)
		case "total":
			return a.Pricing.Total < b.Pricing.Total
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if asc {
			return less(orders[i], orders[j])
		}
		return less(orders[j], orders[i])
	})
}

func copyOrder(order *entity.Order) *entity.Order {
	clone := *order
	if order.Payment.TransactionID != nil {
		txID := *order.Payment.TransactionID
		clone.Payment.TransactionID = &txID
	}
	clone.Payment.PaidAt = copyTime(order.Payment.PaidAt)
	clone.ConfirmedAt = copyTime(order.ConfirmedAt)
	clone.CompletedAt = copyTime(order.CompletedAt)
	if order.Cancellation != nil {
		cancellation := *order.Cancellation
		clone.Cancellation = &cancellation
	}
	return &clone
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

type notFoundError struct {
	id uuid.UUID
}

func (e notFoundError) Error() string {
	return "order " + e.id.String() + " not found"
}

func errOrderMissing(id uuid.UUID) error {
	return notFoundError{id: id}
}
