package repository

import (
	"context"
	"testing"
	"time"

	"guidee-orders/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeOrder(createdAt time.Time, total float64) *entity.Order {
	return &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		OrderNumber: "GD25060001",
		Status:      entity.OrderStatusDraft,
		Booking: entity.BookingDetails{
			ServiceID:    uuid.New(),
			GuideID:      uuid.New(),
			Date:         createdAt.AddDate(0, 0, 3),
			StartTime:    "09:00",
			Participants: 2,
		},
		Customer: entity.CustomerInfo{UserID: uuid.New(), Name: "Chen Wei"},
		Pricing:  entity.Pricing{Total: total},
		Payment:  entity.PaymentInfo{Status: entity.PaymentStatusPending},
	}
}

func TestMemoryOrderRepository_CreateAndFind(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	order := makeOrder(time.Now(), 1848)
	require.NoError(t, repo.Create(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, order.OrderNumber, found.OrderNumber)

	// callers get copies, not the stored instance
	found.Status = entity.OrderStatusPaid
	again, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDraft, again.Status)
}

func TestMemoryOrderRepository_FindMissingReturnsNil(t *testing.T) {
	repo := NewMemoryOrderRepository()

	found, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryOrderRepository_UpdateLastWriteWins(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	order := makeOrder(time.Now(), 1848)
	require.NoError(t, repo.Create(ctx, order))

	// two readers load the same snapshot and write back different changes
	first, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	first.Notes = "from the first writer"
	require.NoError(t, repo.Update(ctx, first))

	second.Status = entity.OrderStatusPending
	require.NoError(t, repo.Update(ctx, second))

	// the second write replaced the first wholesale
	final, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, final.Status)
	assert.Empty(t, final.Notes)
}

func TestMemoryOrderRepository_UpdateMissing(t *testing.T) {
	repo := NewMemoryOrderRepository()

	err := repo.Update(context.Background(), makeOrder(time.Now(), 100))
	assert.Error(t, err)
}

func TestMemoryOrderRepository_SearchFilterAndSort(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	cheap := makeOrder(base, 500)
	mid := makeOrder(base.Add(time.Hour), 1000)
	dear := makeOrder(base.Add(2*time.Hour), 2000)
	dear.Status = entity.OrderStatusPaid

	for _, order := range []*entity.Order{cheap, mid, dear} {
		require.NoError(t, repo.Create(ctx, order))
	}

	// default sort: newest first
	orders, total, err := repo.Search(ctx, OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 3)
	assert.Equal(t, dear.ID, orders[0].ID)

	// sort by total ascending
	orders, _, err = repo.Search(ctx, OrderFilter{SortBy: "total", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, cheap.ID, orders[0].ID)
	assert.Equal(t, dear.ID, orders[2].ID)

	// status filter
	paid := entity.OrderStatusPaid
	orders, total, err = repo.Search(ctx, OrderFilter{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, dear.ID, orders[0].ID)

	// customer filter
	customerID := mid.Customer.UserID
	orders, total, err = repo.Search(ctx, OrderFilter{CustomerID: &customerID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// pagination: total reflects all matches, slice is limited
	orders, total, err = repo.Search(ctx, OrderFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 2)

	orders, _, err = repo.Search(ctx, OrderFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
