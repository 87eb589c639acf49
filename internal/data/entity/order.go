package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "DRAFT"
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

// statusTransitions lists every legal status edge. Anything else is rejected.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:      {OrderStatusPending, OrderStatusCancelled},
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {OrderStatusRefunded},
	OrderStatusRefunded:   {},
}

// cancellableStatuses are the only statuses the cancellation endpoint accepts.
var cancellableStatuses = map[OrderStatus]bool{
	OrderStatusDraft:     true,
	OrderStatusPending:   true,
	OrderStatusConfirmed: true,
	OrderStatusPaid:      true,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in status s may be cancelled.
func Cancellable(s OrderStatus) bool {
	return cancellableStatuses[s]
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type CancellationReason string

const (
	ReasonUserRequest      CancellationReason = "USER_REQUEST"
	ReasonGuideUnavailable CancellationReason = "GUIDE_UNAVAILABLE"
	ReasonWeather          CancellationReason = "WEATHER"
	ReasonForceMajeure     CancellationReason = "FORCE_MAJEURE"
	ReasonScheduleConflict CancellationReason = "SCHEDULE_CONFLICT"
	ReasonHealthSafety     CancellationReason = "HEALTH_SAFETY"
	ReasonQualityIssue     CancellationReason = "QUALITY_ISSUE"
	ReasonOther            CancellationReason = "OTHER"
)

type CancelledBy string

const (
	CancelledByUser  CancelledBy = "USER"
	CancelledByGuide CancelledBy = "GUIDE"
	CancelledByAdmin CancelledBy = "ADMIN"
)

// BookingDetails is the service/date/participant portion of an Order.
type BookingDetails struct {
	ServiceID    uuid.UUID `db:"service_id"`
	GuideID      uuid.UUID `db:"guide_id"`
	GuideName    string    `db:"guide_name"`
	Date         time.Time `db:"booking_date"`
	StartTime    string    `db:"start_time"` // HH:MM
	EndTime      string    `db:"end_time"`   // HH:MM
	Participants int       `db:"participants"`
	Location     string    `db:"location"`
}

// StartAt combines the booking date and start time into one instant.
func (b BookingDetails) StartAt() time.Time {
	t, err := time.Parse("15:04", b.StartTime)
	if err != nil {
		return b.Date
	}
	return time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, b.Date.Location())
}

type CustomerInfo struct {
	UserID uuid.UUID `db:"customer_id"`
	Name   string    `db:"customer_name"`
	Email  string    `db:"customer_email"`
	Phone  string    `db:"customer_phone"`
}

// Pricing is derived once at creation and immutable afterwards.
type Pricing struct {
	BasePrice      float64 `db:"base_price"`
	Subtotal       float64 `db:"subtotal"`
	ServiceFee     float64 `db:"service_fee"`
	Tax            float64 `db:"tax"`
	DiscountCode   string  `db:"discount_code"`
	DiscountAmount float64 `db:"discount_amount"`
	Total          float64 `db:"total"`
}

type PaymentInfo struct {
	Method        string        `db:"payment_method"`
	Status        PaymentStatus `db:"payment_status"`
	TransactionID *string       `db:"transaction_id"`
	PaidAt        *time.Time    `db:"paid_at"`
}

// RefundPolicy is the refund snapshot computed at cancellation time.
type RefundPolicy struct {
	IsRefundable     bool    `db:"refundable"`
	RefundPercentage int     `db:"refund_percentage"`
	RefundAmount     float64 `db:"refund_amount"`
	ProcessingFee    float64 `db:"processing_fee"`
}

// Cancellation is immutable history once written.
type Cancellation struct {
	Reason      CancellationReason `db:"cancel_reason"`
	Description string             `db:"cancel_description"`
	CancelledBy CancelledBy        `db:"cancelled_by"`
	CancelledAt time.Time          `db:"cancelled_at"`
	Refund      RefundPolicy
}

// Order is one booking-to-payment lifecycle record. Cancellation is non-nil
// if and only if Status is CANCELLED or REFUNDED.
type Order struct {
	Base
	OrderNumber     string `db:"order_number"`
	Status          OrderStatus
	Booking         BookingDetails
	Customer        CustomerInfo
	Pricing         Pricing
	Payment         PaymentInfo
	SpecialRequests string     `db:"special_requests"`
	Notes           string     `db:"notes"`
	ConfirmedAt     *time.Time `db:"confirmed_at"`
	CompletedAt     *time.Time `db:"completed_at"`
	Cancellation    *Cancellation
}
