package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
	ChannelPush  NotificationChannel = "push"
)

type NotificationEvent string

const (
	EventOrderCreated     NotificationEvent = "order_created"
	EventOrderConfirmed   NotificationEvent = "order_confirmed"
	EventPaymentCompleted NotificationEvent = "payment_completed"
	EventOrderCancelled   NotificationEvent = "order_cancelled"
)

type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "pending"
	OutboxStatusSent    OutboxStatus = "sent"
	OutboxStatusFailed  OutboxStatus = "failed"
)

// OutboxMessage is a notification intent written alongside the order
// mutation and delivered later by the outbox worker.
type OutboxMessage struct {
	BaseSimple
	OrderID   uuid.UUID           `db:"order_id"`
	Event     NotificationEvent   `db:"event"`
	Channel   NotificationChannel `db:"channel"`
	Recipient string              `db:"recipient"`
	Subject   string              `db:"subject"`
	Body      string              `db:"body"`
	Status    OutboxStatus        `db:"status"`
	Attempts  int                 `db:"attempts"`
	LastError string              `db:"last_error"`
	SentAt    *time.Time          `db:"sent_at"`
}
