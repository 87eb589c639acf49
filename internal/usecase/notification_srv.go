package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"guidee-orders/internal/data/entity"
	"guidee-orders/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService renders event templates and records them as outbox
// intents. Delivery happens later in the outbox worker; enqueue failures are
// the caller's to log, never to propagate into the order mutation result.
type NotificationService interface {
	OrderCreated(ctx context.Context, order *entity.Order) error
	OrderConfirmed(ctx context.Context, order *entity.Order) error
	PaymentCompleted(ctx context.Context, order *entity.Order) error
	OrderCancelled(ctx context.Context, order *entity.Order) error

	// Dispatch sends a single message through its channel sender. Failures
	// are logged and reported as false, never raised.
	Dispatch(ctx context.Context, msg *entity.OutboxMessage) bool
}

// ChannelSender delivers one rendered message over a single channel.
type ChannelSender interface {
	Send(ctx context.Context, msg *entity.OutboxMessage) error
}

type notificationService struct {
	outbox  repository.OutboxRepository
	senders map[entity.NotificationChannel]ChannelSender
	log     *zap.Logger
}

func NewNotificationService(outbox repository.OutboxRepository, emailFrom string, log *zap.Logger) NotificationService {
	serviceLog := log.With(zap.String("service", "notification"))
	return &notificationService{
		outbox: outbox,
		senders: map[entity.NotificationChannel]ChannelSender{
			entity.ChannelEmail: &emailSender{from: emailFrom, log: serviceLog},
			entity.ChannelSMS:   &smsSender{log: serviceLog},
			entity.ChannelPush:  &pushSender{log: serviceLog},
		},
		log: serviceLog,
	}
}

func (s *notificationService) OrderCreated(ctx context.Context, order *entity.Order) error {
	return s.enqueue(ctx, entity.EventOrderCreated, order,
		customerEmail(order,
			"Your Guidee booking {orderNumber}",
			"Hi {customerName}, we received your booking {orderNumber} for {serviceDate} {startTime}. Total: {total}. Your guide {guideName} will confirm it shortly."),
		guidePush(order,
			"New booking {orderNumber}",
			"{customerName} requested {participants} spots on {serviceDate} {startTime}. Please confirm booking {orderNumber}."),
	)
}

func (s *notificationService) OrderConfirmed(ctx context.Context, order *entity.Order) error {
	return s.enqueue(ctx, entity.EventOrderConfirmed, order,
		customerEmail(order,
			"Booking {orderNumber} confirmed",
			"Hi {customerName}, {guideName} confirmed your booking {orderNumber} for {serviceDate} {startTime}. Please complete payment of {total}."),
	)
}

func (s *notificationService) PaymentCompleted(ctx context.Context, order *entity.Order) error {
	return s.enqueue(ctx, entity.EventPaymentCompleted, order,
		customerEmail(order,
			"Payment received for {orderNumber}",
			"Hi {customerName}, we received your payment of {total} for booking {orderNumber}. See you on {serviceDate}!"),
		guidePush(order,
			"Booking {orderNumber} paid",
			"Payment of {total} completed for booking {orderNumber} on {serviceDate} {startTime}."),
	)
}

func (s *notificationService) OrderCancelled(ctx context.Context, order *entity.Order) error {
	return s.enqueue(ctx, entity.EventOrderCancelled, order,
		customerEmail(order,
			"Booking {orderNumber} cancelled",
			"Hi {customerName}, your booking {orderNumber} was cancelled ({reason}). Refund: {refundAmount} ({refundPercentage}%)."),
		guidePush(order,
			"Booking {orderNumber} cancelled",
			"Booking {orderNumber} on {serviceDate} {startTime} was cancelled ({reason})."),
	)
}

func (s *notificationService) enqueue(ctx context.Context, event entity.NotificationEvent, order *entity.Order, messages ...*entity.OutboxMessage) error {
	now := time.Now()
	replacer := placeholderReplacer(order)

	for _, msg := range messages {
		msg.ID = uuid.New()
		msg.CreatedAt = now
		msg.OrderID = order.ID
		msg.Event = event
		msg.Status = entity.OutboxStatusPending
		msg.Subject = replacer.Replace(msg.Subject)
		msg.Body = replacer.Replace(msg.Body)
	}

	if err := s.outbox.Enqueue(ctx, messages); err != nil {
		return fmt.Errorf("enqueue %s notifications: %w", event, err)
	}

	s.log.Info("Notifications enqueued",
		zap.String("event", string(event)),
		zap.String("order_id", order.ID.String()),
		zap.Int("count", len(messages)),
	)

	return nil
}

func (s *notificationService) Dispatch(ctx context.Context, msg *entity.OutboxMessage) bool {
	sender, ok := s.senders[msg.Channel]
	if !ok {
		s.log.Warn("Unknown notification channel",
			zap.String("channel", string(msg.Channel)),
			zap.String("message_id", msg.ID.String()),
		)
		return false
	}

	if err := sender.Send(ctx, msg); err != nil {
		s.log.Warn("Notification send failed",
			zap.Error(err),
			zap.String("channel", string(msg.Channel)),
			zap.String("message_id", msg.ID.String()),
			zap.String("order_id", msg.OrderID.String()),
		)
		return false
	}

	return true
}

func customerEmail(order *entity.Order, subject, body string) *entity.OutboxMessage {
	return &entity.OutboxMessage{
		Channel:   entity.ChannelEmail,
		Recipient: order.Customer.Email,
		Subject:   subject,
		Body:      body,
	}
}

func guidePush(order *entity.Order, subject, body string) *entity.OutboxMessage {
	return &entity.OutboxMessage{
		Channel:   entity.ChannelPush,
		Recipient: order.Booking.GuideID.String(),
		Subject:   subject,
		Body:      body,
	}
}

func placeholderReplacer(order *entity.Order) *strings.Replacer {
	var reason string
	refundAmount := "0"
	refundPercentage := "0"
	if c := order.Cancellation; c != nil {
		reason = string(c.Reason)
		refundAmount = fmt.Sprintf("%.0f", c.Refund.RefundAmount)
		refundPercentage = fmt.Sprintf("%d", c.Refund.RefundPercentage)
	}

	return strings.NewReplacer(
		"{orderNumber}", order.OrderNumber,
		"{customerName}", order.Customer.Name,
		"{guideName}", order.Booking.GuideName,
		"{serviceDate}", order.Booking.Date.Format("2006-01-02"),
		"{startTime}", order.Booking.StartTime,
		"{participants}", fmt.Sprintf("%d", order.Booking.Participants),
		"{total}", fmt.Sprintf("%.0f", order.Pricing.Total),
		"{reason}", reason,
		"{refundAmount}", refundAmount,
		"{refundPercentage}", refundPercentage,
	)
}

// ==================== CHANNEL SENDERS ====================

// emailSender simulates SMTP delivery by logging the rendered message.
type emailSender struct {
	from string
	log  *zap.Logger
}

func (s *emailSender) Send(ctx context.Context, msg *entity.OutboxMessage) error {
	s.log.Info("Email sent",
		zap.String("from", s.from),
		zap.String("to", msg.Recipient),
		zap.String("subject", msg.Subject),
		zap.String("order_id", msg.OrderID.String()),
	)
	return nil
}

type smsSender struct {
	log *zap.Logger
}

func (s *smsSender) Send(ctx context.Context, msg *entity.OutboxMessage) error {
	if msg.Recipient == "" {
		return fmt.Errorf("sms recipient missing for message %s", msg.ID.String())
	}
	s.log.Info("SMS sent",
		zap.String("to", msg.Recipient),
		zap.String("order_id", msg.OrderID.String()),
	)
	return nil
}

type pushSender struct {
	log *zap.Logger
}

func (s *pushSender) Send(ctx context.Context, msg *entity.OutboxMessage) error {
	s.log.Info("Push notification sent",
		zap.String("to", msg.Recipient),
		zap.String("subject", msg.Subject),
		zap.String("order_id", msg.OrderID.String()),
	)
	return nil
}
