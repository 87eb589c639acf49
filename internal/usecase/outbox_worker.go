package usecase

import (
	"context"
	"time"

	"guidee-orders/internal/data/entity"
	"guidee-orders/internal/data/repository"

	"go.uber.org/zap"
)

// OutboxWorker drains pending notification intents on a ticker. Delivery is
// at-most-once best-effort: a message that keeps failing is marked failed
// after maxAttempts and never retried again.
type OutboxWorker struct {
	outbox      repository.OutboxRepository
	notifier    NotificationService
	interval    time.Duration
	batchSize   int
	maxAttempts int
	log         *zap.Logger
	done        chan struct{}
}

func NewOutboxWorker(
	outbox repository.OutboxRepository,
	notifier NotificationService,
	interval time.Duration,
	batchSize int,
	maxAttempts int,
	log *zap.Logger,
) *OutboxWorker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 20
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	return &OutboxWorker{
		outbox:      outbox,
		notifier:    notifier,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		log:         log.With(zap.String("worker", "outbox")),
		done:        make(chan struct{}),
	}
}

// Start runs the drain loop until ctx is cancelled.
func (w *OutboxWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.log.Info("Outbox worker started",
			zap.Duration("interval", w.interval),
			zap.Int("batch_size", w.batchSize),
		)

		for {
			select {
			case <-ctx.Done():
				w.log.Info("Outbox worker stopped")
				return
			case <-ticker.C:
				w.Drain(ctx)
			}
		}
	}()
}

// Wait blocks until the worker loop has exited.
func (w *OutboxWorker) Wait() {
	<-w.done
}

// Drain processes one batch of pending messages.
func (w *OutboxWorker) Drain(ctx context.Context) {
	messages, err := w.outbox.FetchPending(ctx, w.batchSize)
	if err != nil {
		w.log.Error("Failed to fetch pending notifications", zap.Error(err))
		return
	}

	for _, msg := range messages {
		w.deliver(ctx, msg)
	}
}

func (w *OutboxWorker) deliver(ctx context.Context, msg *entity.OutboxMessage) {
	if w.notifier.Dispatch(ctx, msg) {
		if err := w.outbox.MarkSent(ctx, msg.ID, time.Now()); err != nil {
			w.log.Error("Failed to mark notification sent",
				zap.Error(err),
				zap.String("message_id", msg.ID.String()),
			)
		}
		return
	}

	attempts := msg.Attempts + 1
	final := attempts >= w.maxAttempts
	if err := w.outbox.MarkAttempt(ctx, msg.ID, attempts, "channel send failed", final); err != nil {
		w.log.Error("Failed to record notification attempt",
			zap.Error(err),
			zap.String("message_id", msg.ID.String()),
		)
		return
	}

	if final {
		w.log.Warn("Notification gave up after max attempts",
			zap.String("message_id", msg.ID.String()),
			zap.String("order_id", msg.OrderID.String()),
			zap.Int("attempts", attempts),
		)
	}
}
