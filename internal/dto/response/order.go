package response

import (
	"time"

	"guidee-orders/internal/data/entity"
)

type BookingResponse struct {
	ServiceID    string `json:"serviceId"`
	GuideID      string `json:"guideId"`
	GuideName    string `json:"guideName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime,omitempty"`
	Participants int    `json:"participants"`
	Location     string `json:"location,omitempty"`
}

type CustomerResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
}

type PricingResponse struct {
	BasePrice      float64 `json:"basePrice"`
	Subtotal       float64 `json:"subtotal"`
	ServiceFee     float64 `json:"serviceFee"`
	Tax            float64 `json:"tax"`
	DiscountCode   string  `json:"discountCode,omitempty"`
	DiscountAmount float64 `json:"discountAmount,omitempty"`
	Total          float64 `json:"total"`
}

type PaymentResponse struct {
	Method        string     `json:"method,omitempty"`
	Status        string     `json:"status"`
	TransactionID *string    `json:"transactionId,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

type RefundResponse struct {
	IsRefundable     bool    `json:"isRefundable"`
	RefundPercentage int     `json:"refundPercentage"`
	RefundAmount     float64 `json:"refundAmount"`
	ProcessingFee    float64 `json:"processingFee"`
}

type CancellationResponse struct {
	Reason      string         `json:"reason"`
	Description string         `json:"description,omitempty"`
	CancelledBy string         `json:"cancelledBy"`
	CancelledAt time.Time      `json:"cancelledAt"`
	Refund      RefundResponse `json:"refundPolicy"`
}

type OrderResponse struct {
	ID              string                `json:"id"`
	OrderNumber     string                `json:"orderNumber"`
	Status          string                `json:"status"`
	Booking         BookingResponse       `json:"booking"`
	Customer        CustomerResponse      `json:"customer"`
	Pricing         PricingResponse       `json:"pricing"`
	Payment         PaymentResponse       `json:"payment"`
	SpecialRequests string                `json:"specialRequests,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	ConfirmedAt     *time.Time            `json:"confirmedAt,omitempty"`
	CompletedAt     *time.Time            `json:"completedAt,omitempty"`
	Cancellation    *CancellationResponse `json:"cancellation,omitempty"`
}

type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:          order.ID.String(),
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		Booking: BookingResponse{
			ServiceID:    order.Booking.ServiceID.String(),
			GuideID:      order.Booking.GuideID.String(),
			GuideName:    order.Booking.GuideName,
			Date:         order.Booking.Date.Format("2006-01-02"),
			StartTime:    order.Booking.StartTime,
			EndTime:      order.Booking.EndTime,
			Participants: order.Booking.Participants,
			Location:     order.Booking.Location,
		},
		Customer: CustomerResponse{
			UserID: order.Customer.UserID.String(),
			Name:   order.Customer.Name,
			Email:  order.Customer.Email,
			Phone:  order.Customer.Phone,
		},
		Pricing: PricingResponse{
			BasePrice:      order.Pricing.BasePrice,
			Subtotal:       order.Pricing.Subtotal,
			ServiceFee:     order.Pricing.ServiceFee,
			Tax:            order.Pricing.Tax,
			DiscountCode:   order.Pricing.DiscountCode,
			DiscountAmount: order.Pricing.DiscountAmount,
			Total:          order.Pricing.Total,
		},
		Payment: PaymentResponse{
			Method:        order.Payment.Method,
			Status:        string(order.Payment.Status),
			TransactionID: order.Payment.TransactionID,
			PaidAt:        order.Payment.PaidAt,
		},
		SpecialRequests: order.SpecialRequests,
		Notes:           order.Notes,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		ConfirmedAt:     order.ConfirmedAt,
		CompletedAt:     order.CompletedAt,
	}

	if c := order.Cancellation; c != nil {
		resp.Cancellation = &CancellationResponse{
			Reason:      string(c.Reason),
			Description: c.Description,
			CancelledBy: string(c.CancelledBy),
			CancelledAt: c.CancelledAt,
			Refund: RefundResponse{
				IsRefundable:     c.Refund.IsRefundable,
				RefundPercentage: c.Refund.RefundPercentage,
				RefundAmount:     c.Refund.RefundAmount,
				ProcessingFee:    c.Refund.ProcessingFee,
			},
		}
	}

	return resp
}
