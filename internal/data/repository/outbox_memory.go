package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"guidee-orders/internal/data/entity"

	"github.com/google/uuid"
)

type memoryOutboxRepository struct {
	mu       sync.Mutex
	messages map[uuid.UUID]*entity.OutboxMessage
}

func NewMemoryOutboxRepository() OutboxRepository {
	return &memoryOutboxRepository{
		messages: make(map[uuid.UUID]*entity.OutboxMessage),
	}
}

func (r *memoryOutboxRepository) Enqueue(ctx context.Context, messages []*entity.OutboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, msg := range messages {
		clone := *msg
		r.messages[msg.ID] = &clone
	}
	return nil
}

func (r *memoryOutboxRepository) FetchPending(ctx context.Context, limit int) ([]*entity.OutboxMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []*entity.OutboxMessage
	for _, msg := range r.messages {
		if msg.Status == entity.OutboxStatusPending {
			clone := *msg
			pending = append(pending, &clone)
		}
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})

	if limit > 0 && limit < len(pending) {
		pending = pending[:limit]
	}

	return pending, nil
}

func (r *memoryOutboxRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg, ok := r.messages[id]; ok {
		msg.Status = entity.OutboxStatusSent
		msg.SentAt = &sentAt
	}
	return nil
}

func (r *memoryOutboxRepository) MarkAttempt(ctx context.Context, id uuid.UUID, attempts int, lastError string, final bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg, ok := r.messages[id]; ok {
		msg.Attempts = attempts
		msg.LastError = lastError
		if final {
			msg.Status = entity.OutboxStatusFailed
		}
	}
	return nil
}
