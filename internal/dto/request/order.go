package request

import "guidee-orders/pkg/utils"

type CustomerInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty"`
}

type CreateOrderRequest struct {
	ServiceID       string        `json:"serviceId" validate:"required,uuid4"`
	Date            string        `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string        `json:"startTime" validate:"required,datetime=15:04"`
	EndTime         string        `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
	Participants    int           `json:"participants"`
	Customer        CustomerInput `json:"customer" validate:"required"`
	PaymentMethod   string        `json:"paymentMethod,omitempty"`
	DiscountCode    string        `json:"discountCode,omitempty"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
}

type UpdateOrderRequest struct {
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=DRAFT PENDING CONFIRMED PAID IN_PROGRESS COMPLETED CANCELLED REFUNDED"`
	PaymentStatus *string `json:"paymentStatus,omitempty" validate:"omitempty,oneof=pending completed failed refunded"`
	Notes         *string `json:"notes,omitempty"`
}

type CancelOrderRequest struct {
	Reason      string `json:"reason" validate:"required,oneof=USER_REQUEST GUIDE_UNAVAILABLE WEATHER FORCE_MAJEURE SCHEDULE_CONFLICT HEALTH_SAFETY QUALITY_ISSUE OTHER"`
	Description string `json:"description,omitempty"`
}

type ListOrdersRequest struct {
	Status    string `json:"status,omitempty"`
	UserID    string `json:"userId,omitempty"`
	GuideID   string `json:"guideId,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
	Page      int    `json:"page" validate:"min=1"`
	Limit     int    `json:"limit" validate:"min=1,max=100"`
}

func (r ListOrdersRequest) Offset() int {
	return utils.CalculateOffset(r.Page, r.Limit)
}
