package usecase

import (
	"context"
	"testing"
	"time"

	"guidee-orders/internal/data/entity"
	"guidee-orders/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testOrder() *entity.Order {
	return &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrderNumber: "GD25060042",
		Status:      entity.OrderStatusDraft,
		Booking: entity.BookingDetails{
			ServiceID:    uuid.New(),
			GuideID:      uuid.New(),
			GuideName:    "Mei-Ling",
			Date:         time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
			StartTime:    "09:00",
			Participants: 2,
		},
		Customer: entity.CustomerInfo{
			UserID: uuid.New(),
			Name:   "Chen Wei",
			Email:  "chen.wei@example.com",
		},
		Pricing: entity.Pricing{Total: 1848},
	}
}

func TestNotificationService_OrderCreated_RendersTemplates(t *testing.T) {
	outbox := repository.NewMemoryOutboxRepository()
	notifier := NewNotificationService(outbox, "no-reply@test", zap.NewNop())
	order := testOrder()

	require.NoError(t, notifier.OrderCreated(context.Background(), order))

	pending, err := outbox.FetchPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	var email, push *entity.OutboxMessage
	for _, msg := range pending {
		switch msg.Channel {
		case entity.ChannelEmail:
			email = msg
		case entity.ChannelPush:
			push = msg
		}
	}

	require.NotNil(t, email)
	assert.Equal(t, order.Customer.Email, email.Recipient)
	assert.Contains(t, email.Subject, "GD25060042")
	assert.Contains(t, email.Body, "Chen Wei")
	assert.Contains(t, email.Body, "Mei-Ling")
	assert.NotContains(t, email.Body, "{orderNumber}")

	require.NotNil(t, push)
	assert.Equal(t, order.Booking.GuideID.String(), push.Recipient)
	assert.Contains(t, push.Body, "GD25060042")
}

func TestNotificationService_OrderCancelled_IncludesRefund(t *testing.T) {
	outbox := repository.NewMemoryOutboxRepository()
	notifier := NewNotificationService(outbox, "no-reply@test", zap.NewNop())

	order := testOrder()
	order.Status = entity.OrderStatusCancelled
	order.Cancellation = &entity.Cancellation{
		Reason:      entity.ReasonWeather,
		CancelledBy: entity.CancelledByGuide,
		CancelledAt: time.Now(),
		Refund: entity.RefundPolicy{
			IsRefundable:     true,
			RefundPercentage: 100,
			RefundAmount:     1848,
		},
	}

	require.NoError(t, notifier.OrderCancelled(context.Background(), order))

	pending, err := outbox.FetchPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	for _, msg := range pending {
		assert.Contains(t, msg.Body, "WEATHER")
	}
}

func TestNotificationService_Dispatch_FailureReturnsFalse(t *testing.T) {
	outbox := repository.NewMemoryOutboxRepository()
	notifier := NewNotificationService(outbox, "no-reply@test", zap.NewNop())

	// sms without a recipient fails inside the channel sender
	msg := &entity.OutboxMessage{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		OrderID:    uuid.New(),
		Channel:    entity.ChannelSMS,
		Status:     entity.OutboxStatusPending,
	}

	assert.False(t, notifier.Dispatch(context.Background(), msg))
}

func TestNotificationService_Dispatch_UnknownChannel(t *testing.T) {
	outbox := repository.NewMemoryOutboxRepository()
	notifier := NewNotificationService(outbox, "no-reply@test", zap.NewNop())

	msg := &entity.OutboxMessage{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Channel:    entity.NotificationChannel("carrier-pigeon"),
	}

	assert.False(t, notifier.Dispatch(context.Background(), msg))
}

func TestOutboxWorker_DrainDeliversPending(t *testing.T) {
	outbox := repository.NewMemoryOutboxRepository()
	notifier := NewNotificationService(outbox, "no-reply@test", zap.NewNop())
	worker := NewOutboxWorker(outbox, notifier, time.Second, 10, 3, zap.NewNop())

	require.NoError(t, notifier.OrderCreated(context.Background(), testOrder()))

	worker.Drain(context.Background())

	pending, err := outbox.FetchPending(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending, "delivered messages should leave the pending set")
}

func TestOutboxWorker_FailingMessageGivesUpAfterMaxAttempts(t *testing.T) {
	outbox := repository.NewMemoryOutboxRepository()
	notifier := NewNotificationService(outbox, "no-reply@test", zap.NewNop())
	worker := NewOutboxWorker(outbox, notifier, time.Second, 10, 3, zap.NewNop())

	// undeliverable: sms with no recipient
	msg := &entity.OutboxMessage{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		OrderID:    uuid.New(),
		Event:      entity.EventOrderCreated,
		Channel:    entity.ChannelSMS,
		Status:     entity.OutboxStatusPending,
	}
	require.NoError(t, outbox.Enqueue(context.Background(), []*entity.OutboxMessage{msg}))

	ctx := context.Background()
	worker.Drain(ctx)
	worker.Drain(ctx)

	// still pending after two attempts
	pending, err := outbox.FetchPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Attempts)

	// third attempt marks it failed for good
	worker.Drain(ctx)
	pending, err = outbox.FetchPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
