package usecase

import (
	"context"
	"fmt"
	"time"

	"guidee-orders/internal/data/entity"
	"guidee-orders/internal/data/repository"
	"guidee-orders/internal/dto/request"
	"guidee-orders/internal/dto/response"
	"guidee-orders/pkg/apperr"
	"guidee-orders/pkg/auth"
	"guidee-orders/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minParticipants = 1
	maxParticipants = 20
)

type OrderService interface {
	List(ctx context.Context, actor auth.Identity, req *request.ListOrdersRequest) (*response.OrderListResponse, error)
	Create(ctx context.Context, actor auth.Identity, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	Get(ctx context.Context, actor auth.Identity, orderID string) (*response.OrderResponse, error)
	Update(ctx context.Context, actor auth.Identity, orderID string, req *request.UpdateOrderRequest) (*response.OrderResponse, error)
	Cancel(ctx context.Context, actor auth.Identity, orderID string, req *request.CancelOrderRequest) (*response.OrderResponse, error)
}

type orderService struct {
	repo     *repository.Repository
	notifier NotificationService
	log      *zap.Logger
	now      func() time.Time
}

func NewOrderService(repo *repository.Repository, notifier NotificationService, log *zap.Logger) OrderService {
	return &orderService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "order")),
		now:      time.Now,
	}
}

func (s *orderService) Create(ctx context.Context, actor auth.Identity, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Any("errors", errs))
		return nil, apperr.ErrInvalidRequestData.WithInternal("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Participants < minParticipants || req.Participants > maxParticipants {
		return nil, apperr.ErrParticipantLimitExceeded.WithInternal(
			"participants %d outside [%d, %d]", req.Participants, minParticipants, maxParticipants)
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperr.ErrInvalidRequestData.WithInternal("invalid service ID format %s", req.ServiceID)
	}

	bookingDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperr.ErrInvalidRequestData.WithInternal("invalid date format %s", req.Date)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to look up guide service", zap.Error(err), zap.String("service_id", req.ServiceID))
		return nil, fmt.Errorf("look up guide service %s: %w", req.ServiceID, err)
	}
	if service == nil || !service.IsActive {
		return nil, apperr.ErrServiceNotAvailable.WithInternal("service %s missing or inactive", req.ServiceID)
	}

	if service.MaxParticipants > 0 && req.Participants > service.MaxParticipants {
		return nil, apperr.ErrParticipantLimitExceeded.WithInternal(
			"participants %d exceed service capacity %d", req.Participants, service.MaxParticipants)
	}

	now := s.now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderNumber: utils.GenerateOrderNumber(now),
		Status:      entity.OrderStatusDraft,
		Booking: entity.BookingDetails{
			ServiceID:    service.ID,
			GuideID:      service.GuideID,
			GuideName:    service.GuideName,
			Date:         bookingDate,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Participants: req.Participants,
			Location:     service.Location,
		},
		Customer: entity.CustomerInfo{
			UserID: actor.UserID,
			Name:   req.Customer.Name,
			Email:  req.Customer.Email,
			Phone:  req.Customer.Phone,
		},
		Pricing: ComputePricing(service.BasePrice, req.Participants, req.DiscountCode),
		Payment: entity.PaymentInfo{
			Method: req.PaymentMethod,
			Status: entity.PaymentStatusPending,
		},
		SpecialRequests: req.SpecialRequests,
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		s.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("customer_id", actor.UserID.String()),
			zap.String("service_id", req.ServiceID),
		)
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("customer_id", actor.UserID.String()),
		zap.Float64("total", order.Pricing.Total),
	)

	// Best-effort: an enqueue failure never undoes the order write
	if err := s.notifier.OrderCreated(ctx, order); err != nil {
		s.log.Warn("Failed to enqueue created notifications",
			zap.Error(err), zap.String("order_id", order.ID.String()))
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) Get(ctx context.Context, actor auth.Identity, orderID string) (*response.OrderResponse, error) {
	order, err := s.loadOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, actor auth.Identity, req *request.ListOrdersRequest) (*response.OrderListResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.ErrInvalidRequestData.WithInternal("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter := repository.OrderFilter{
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Limit:     req.Limit,
		Offset:    req.Offset(),
	}

	if req.Status != "" {
		status := entity.OrderStatus(req.Status)
		if !entity.ValidStatus(status) {
			return nil, apperr.ErrInvalidRequestData.WithInternal("unknown status filter %s", req.Status)
		}
		filter.Status = &status
	}

	if startDate, err := parseDateFilter(req.StartDate); err != nil {
		return nil, err
	} else if startDate != nil {
		filter.StartDate = startDate
	}
	if endDate, err := parseDateFilter(req.EndDate); err != nil {
		return nil, err
	} else if endDate != nil {
		filter.EndDate = endDate
	}

	if actor.IsAdmin() {
		if req.UserID != "" {
			userID, err := uuid.Parse(req.UserID)
			if err != nil {
				return nil, apperr.ErrInvalidRequestData.WithInternal("invalid userId filter %s", req.UserID)
			}
			filter.CustomerID = &userID
		}
		if req.GuideID != "" {
			guideID, err := uuid.Parse(req.GuideID)
			if err != nil {
				return nil, apperr.ErrInvalidRequestData.WithInternal("invalid guideId filter %s", req.GuideID)
			}
			filter.GuideID = &guideID
		}
	} else if actor.Role == auth.RoleGuide {
		guideID := actor.UserID
		filter.GuideID = &guideID
	} else {
		customerID := actor.UserID
		filter.CustomerID = &customerID
	}

	orders, total, err := s.repo.Order.Search(ctx, filter)
	if err != nil {
		s.log.Error("Failed to search orders", zap.Error(err))
		return nil, fmt.Errorf("search orders: %w", err)
	}

	orderResponses := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		orderResponses[i] = response.OrderToResponse(order)
	}

	return &response.OrderListResponse{
		Orders:     orderResponses,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: utils.CalculateTotalPages(total, req.Limit),
	}, nil
}

func (s *orderService) Update(ctx context.Context, actor auth.Identity, orderID string, req *request.UpdateOrderRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.ErrInvalidRequestData.WithInternal("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	order, err := s.loadOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var confirmed, paid bool

	if req.PaymentStatus != nil {
		newPaymentStatus := entity.PaymentStatus(*req.PaymentStatus)
		if newPaymentStatus == entity.PaymentStatusCompleted && order.Payment.Status != entity.PaymentStatusCompleted {
			order.Payment.PaidAt = &now
			paid = true
		}
		order.Payment.Status = newPaymentStatus
	}

	if req.Status != nil {
		newStatus := entity.OrderStatus(*req.Status)
		if newStatus == entity.OrderStatusCancelled {
			// cancellation carries a reason and a refund snapshot
			return nil, apperr.ErrInvalidRequestData.WithInternal(
				"status CANCELLED must go through the cancellation endpoint")
		}
		if err := ValidateStatusTransition(order.Status, newStatus); err != nil {
			return nil, err
		}
		if newStatus == entity.OrderStatusInProgress && order.Payment.Status != entity.PaymentStatusCompleted {
			return nil, apperr.ErrPaymentRequired.WithInternal(
				"order %s payment status is %s", order.ID.String(), order.Payment.Status)
		}

		order.Status = newStatus

		if newStatus == entity.OrderStatusConfirmed && order.ConfirmedAt == nil {
			order.ConfirmedAt = &now
			confirmed = true
		}
		if newStatus == entity.OrderStatusCompleted && order.CompletedAt == nil {
			order.CompletedAt = &now
		}
	}

	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	order.UpdatedAt = now
	if err := s.repo.Order.Update(ctx, order); err != nil {
		s.log.Error("Failed to update order",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
		return nil, fmt.Errorf("update order %s: %w", orderID, err)
	}

	s.log.Info("Order updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)),
		zap.String("payment_status", string(order.Payment.Status)),
	)

	if confirmed {
		if err := s.notifier.OrderConfirmed(ctx, order); err != nil {
			s.log.Warn("Failed to enqueue confirmed notifications",
				zap.Error(err), zap.String("order_id", order.ID.String()))
		}
	}
	if paid {
		if err := s.notifier.PaymentCompleted(ctx, order); err != nil {
			s.log.Warn("Failed to enqueue payment notifications",
				zap.Error(err), zap.String("order_id", order.ID.String()))
		}
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) Cancel(ctx context.Context, actor auth.Identity, orderID string, req *request.CancelOrderRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.ErrInvalidRequestData.WithInternal("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	order, err := s.loadOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	if err := ValidateCancellable(order.Status); err != nil {
		return nil, err
	}

	now := s.now()
	order.Cancellation = &entity.Cancellation{
		Reason:      entity.CancellationReason(req.Reason),
		Description: req.Description,
		CancelledBy: cancelledBy(actor),
		CancelledAt: now,
		Refund:      RefundPolicyFor(order.Pricing.Total, order.Booking.StartAt(), now),
	}
	order.Status = entity.OrderStatusCancelled
	order.UpdatedAt = now

	if err := s.repo.Order.Update(ctx, order); err != nil {
		s.log.Error("Failed to cancel order",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
		return nil, fmt.Errorf("cancel order %s: %w", orderID, err)
	}

	s.log.Info("Order cancelled",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("reason", req.Reason),
		zap.Int("refund_percentage", order.Cancellation.Refund.RefundPercentage),
		zap.Float64("refund_amount", order.Cancellation.Refund.RefundAmount),
	)

	if err := s.notifier.OrderCancelled(ctx, order); err != nil {
		s.log.Warn("Failed to enqueue cancellation notifications",
			zap.Error(err), zap.String("order_id", order.ID.String()))
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// ==================== HELPERS ====================

// loadOrder fetches the order and enforces the shared access rule: admins see
// everything, everyone else only orders where they are customer or guide.
func (s *orderService) loadOrder(ctx context.Context, actor auth.Identity, orderID string) (*entity.Order, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, apperr.ErrOrderNotFound.WithInternal("invalid order ID format %s", orderID)
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find order", zap.Error(err), zap.String("order_id", orderID))
		return nil, fmt.Errorf("find order %s: %w", orderID, err)
	}
	if order == nil {
		return nil, apperr.ErrOrderNotFound.WithInternal("order %s not found", orderID)
	}

	if !actor.IsAdmin() &&
		actor.UserID != order.Customer.UserID &&
		actor.UserID != order.Booking.GuideID {
		return nil, apperr.ErrInsufficientPermissions.WithInternal(
			"caller %s is not customer, guide or admin for order %s", actor.UserID.String(), orderID)
	}

	return order, nil
}

func cancelledBy(actor auth.Identity) entity.CancelledBy {
	switch actor.Role {
	case auth.RoleAdmin:
		return entity.CancelledByAdmin
	case auth.RoleGuide:
		return entity.CancelledByGuide
	default:
		return entity.CancelledByUser
	}
}

func parseDateFilter(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apperr.ErrInvalidRequestData.WithInternal("invalid date filter %s", value)
	}
	return &date, nil
}
