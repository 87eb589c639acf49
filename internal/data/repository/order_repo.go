package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"guidee-orders/internal/data/entity"
	"guidee-orders/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// OrderFilter narrows and orders a Search. Nil fields are ignored.
type OrderFilter struct {
	Status     *entity.OrderStatus
	CustomerID *uuid.UUID
	GuideID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string // createdAt | bookingDate | total
	SortOrder  string // asc | desc
	Limit      int
	Offset     int
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Search(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, order_number, status,
	service_id, guide_id, guide_name, booking_date, start_time, end_time, participants, location,
	customer_id, customer_name, customer_email, customer_phone,
	base_price, subtotal, service_fee, tax, discount_code, discount_amount, total,
	payment_method, payment_status, transaction_id, paid_at,
	special_requests, notes, confirmed_at, completed_at,
	cancel_reason, cancel_description, cancelled_by, cancelled_at,
	refundable, refund_percentage, refund_amount, processing_fee,
	created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		        $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
		        $31, $32, $33, $34, $35, $36, $37, $38, $39, $40)
	`

	_, err := r.db.Exec(ctx, query, orderArgs(order)...)
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_number", order.OrderNumber),
			zap.String("customer_id", order.Customer.UserID.String()),
		)
		return fmt.Errorf("create order %s: %w", order.OrderNumber, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return order, nil
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders SET
			order_number = $2, status = $3,
			service_id = $4, guide_id = $5, guide_name = $6, booking_date = $7,
			start_time = $8, end_time = $9, participants = $10, location = $11,
			customer_id = $12, customer_name = $13, customer_email = $14, customer_phone = $15,
			base_price = $16, subtotal = $17, service_fee = $18, tax = $19,
			discount_code = $20, discount_amount = $21, total = $22,
			payment_method = $23, payment_status = $24, transaction_id = $25, paid_at = $26,
			special_requests = $27, notes = $28, confirmed_at = $29, completed_at = $30,
			cancel_reason = $31, cancel_description = $32, cancelled_by = $33, cancelled_at = $34,
			refundable = $35, refund_percentage = $36, refund_amount = $37, processing_fee = $38,
			created_at = $39, updated_at = $40
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, orderArgs(order)...)
	if err != nil {
		r.log.Error("Failed to update order",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
		return fmt.Errorf("update order %s: %w", order.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", order.ID.String())
	}

	return nil
}

func (r *orderRepository) Search(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error) {
	where, args := buildOrderWhere(filter)

	countQuery := `SELECT COUNT(*) FROM orders` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		` ORDER BY ` + sortColumn(filter.SortBy) + ` ` + sortDirection(filter.SortOrder)

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to search orders", zap.Error(err))
		return nil, 0, fmt.Errorf("search orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, total, nil
}

func buildOrderWhere(filter OrderFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.CustomerID != nil {
		add("customer_id = $%d", *filter.CustomerID)
	}
	if filter.GuideID != nil {
		add("guide_id = $%d", *filter.GuideID)
	}
	if filter.StartDate != nil {
		add("booking_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("booking_date <= $%d", *filter.EndDate)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func sortColumn(sortBy string) string {
	switch sortBy {
	case "bookingDate":
		return "booking_date"
	case "total":
		return "total"
	default:
		return "created_at"
	}
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}

func orderArgs(order *entity.Order) []any {
	var cancelReason, cancelDescription, cancelledBy *string
	var cancelledAt *time.Time
	var refundable *bool
	var refundPercentage *int
	var refundAmount, processingFee *float64

	if c := order.Cancellation; c != nil {
		reason := string(c.Reason)
		by := string(c.CancelledBy)
		cancelReason = &reason
		cancelDescription = &c.Description
		cancelledBy = &by
		cancelledAt = &c.CancelledAt
		refundable = &c.Refund.IsRefundable
		refundPercentage = &c.Refund.RefundPercentage
		refundAmount = &c.Refund.RefundAmount
		processingFee = &c.Refund.ProcessingFee
	}

	return []any{
		order.ID, order.OrderNumber, order.Status,
		order.Booking.ServiceID, order.Booking.GuideID, order.Booking.GuideName,
		order.Booking.Date, order.Booking.StartTime, order.Booking.EndTime,
		order.Booking.Participants, order.Booking.Location,
		order.Customer.UserID, order.Customer.Name, order.Customer.Email, order.Customer.Phone,
		order.Pricing.BasePrice, order.Pricing.Subtotal, order.Pricing.ServiceFee, order.Pricing.Tax,
		order.Pricing.DiscountCode, order.Pricing.DiscountAmount, order.Pricing.Total,
		order.Payment.Method, order.Payment.Status, order.Payment.TransactionID, order.Payment.PaidAt,
		order.SpecialRequests, order.Notes, order.ConfirmedAt, order.CompletedAt,
		cancelReason, cancelDescription, cancelledBy, cancelledAt,
		refundable, refundPercentage, refundAmount, processingFee,
		order.CreatedAt, order.UpdatedAt,
	}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var order entity.Order
	var cancelReason, cancelDescription, cancelledBy *string
	var cancelledAt *time.Time
	var refundable *bool
	var refundPercentage *int
	var refundAmount, processingFee *float64

	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.Status,
		&order.Booking.ServiceID, &order.Booking.GuideID, &order.Booking.GuideName,
		&order.Booking.Date, &order.Booking.StartTime, &order.Booking.EndTime,
		&order.Booking.Participants, &order.Booking.Location,
		&order.Customer.UserID, &order.Customer.Name, &order.Customer.Email, &order.Customer.Phone,
		&order.Pricing.BasePrice, &order.Pricing.Subtotal, &order.Pricing.ServiceFee, &order.Pricing.Tax,
		&order.Pricing.DiscountCode, &order.Pricing.DiscountAmount, &order.Pricing.Total,
		&order.Payment.Method, &order.Payment.Status, &order.Payment.TransactionID, &order.Payment.PaidAt,
		&order.SpecialRequests, &order.Notes, &order.ConfirmedAt, &order.CompletedAt,
		&cancelReason, &cancelDescription, &cancelledBy, &cancelledAt,
		&refundable, &refundPercentage, &refundAmount, &processingFee,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelReason != nil {
		cancellation := &entity.Cancellation{
			Reason:      entity.CancellationReason(*cancelReason),
			CancelledBy: entity.CancelledBy(derefString(cancelledBy)),
		}
		if cancelDescription != nil {
			cancellation.Description = *cancelDescription
		}
		if cancelledAt != nil {
			cancellation.CancelledAt = *cancelledAt
		}
		if refundable != nil {
			cancellation.Refund.IsRefundable = *refundable
		}
		if refundPercentage != nil {
			cancellation.Refund.RefundPercentage = *refundPercentage
		}
		if refundAmount != nil {
			cancellation.Refund.RefundAmount = *refundAmount
		}
		if processingFee != nil {
			cancellation.Refund.ProcessingFee = *processingFee
		}
		order.Cancellation = cancellation
	}

	return &order, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
