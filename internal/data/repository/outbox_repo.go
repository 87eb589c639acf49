package repository

import (
	"context"
	"fmt"
	"time"

	"guidee-orders/internal/data/entity"
	"guidee-orders/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OutboxRepository interface {
	Enqueue(ctx context.Context, messages []*entity.OutboxMessage) error
	FetchPending(ctx context.Context, limit int) ([]*entity.OutboxMessage, error)
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
	MarkAttempt(ctx context.Context, id uuid.UUID, attempts int, lastError string, final bool) error
}

type outboxRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOutboxRepository(db database.PgxIface, log *zap.Logger) OutboxRepository {
	return &outboxRepository{
		db:  db,
		log: log.With(zap.String("repository", "outbox")),
	}
}

func (r *outboxRepository) Enqueue(ctx context.Context, messages []*entity.OutboxMessage) error {
	query := `
		INSERT INTO notification_outbox
			(id, order_id, event, channel, recipient, subject, body, status, attempts, last_error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, msg := range messages {
		_, err := r.db.Exec(ctx, query,
			msg.ID,
			msg.OrderID,
			msg.Event,
			msg.Channel,
			msg.Recipient,
			msg.Subject,
			msg.Body,
			msg.Status,
			msg.Attempts,
			msg.LastError,
			msg.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to enqueue notification",
				zap.Error(err),
				zap.String("order_id", msg.OrderID.String()),
				zap.String("event", string(msg.Event)),
			)
			return fmt.Errorf("enqueue notification for order %s: %w", msg.OrderID.String(), err)
		}
	}

	return nil
}

func (r *outboxRepository) FetchPending(ctx context.Context, limit int) ([]*entity.OutboxMessage, error) {
	query := `
		SELECT id, order_id, event, channel, recipient, subject, body, status, attempts, last_error, created_at, sent_at
		FROM notification_outbox
		WHERE status = 'pending'
		ORDER BY created_at
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to fetch pending notifications", zap.Error(err))
		return nil, fmt.Errorf("fetch pending notifications: %w", err)
	}
	defer rows.Close()

	var messages []*entity.OutboxMessage
	for rows.Next() {
		var msg entity.OutboxMessage
		err := rows.Scan(
			&msg.ID,
			&msg.OrderID,
			&msg.Event,
			&msg.Channel,
			&msg.Recipient,
			&msg.Subject,
			&msg.Body,
			&msg.Status,
			&msg.Attempts,
			&msg.LastError,
			&msg.CreatedAt,
			&msg.SentAt,
		)
		if err != nil {
			r.log.Error("Failed to scan outbox row", zap.Error(err))
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		messages = append(messages, &msg)
	}

	return messages, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	query := `UPDATE notification_outbox SET status = 'sent', sent_at = $2 WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, sentAt)
	if err != nil {
		r.log.Error("Failed to mark notification sent",
			zap.Error(err),
			zap.String("message_id", id.String()),
		)
		return fmt.Errorf("mark notification %s sent: %w", id.String(), err)
	}

	return nil
}

func (r *outboxRepository) MarkAttempt(ctx context.Context, id uuid.UUID, attempts int, lastError string, final bool) error {
	status := entity.OutboxStatusPending
	if final {
		status = entity.OutboxStatusFailed
	}

	query := `UPDATE notification_outbox SET status = $2, attempts = $3, last_error = $4 WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status, attempts, lastError)
	if err != nil {
		r.log.Error("Failed to record notification attempt",
			zap.Error(err),
			zap.String("message_id", id.String()),
		)
		return fmt.Errorf("record notification attempt %s: %w", id.String(), err)
	}

	return nil
}
