package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"guidee-orders/internal/dto/request"
	"guidee-orders/internal/usecase"
	"guidee-orders/pkg/apperr"
	"guidee-orders/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// ListOrders handles GET /api/orders (protected)
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.ListOrdersRequest{
		Status:    query.Get("status"),
		UserID:    query.Get("userId"),
		GuideID:   query.Get("guideId"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
		Page:      utils.ParseInt(query.Get("page"), 1),
		Limit:     utils.ParseInt(query.Get("limit"), 10),
	}

	orders, err := h.service.List(r.Context(), actor, req)
	if err != nil {
		h.handleServiceError(w, err, "list orders")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}

// CreateOrder handles POST /api/orders (protected)
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	order, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(w, err, "create order")
		return
	}

	utils.ResponseCreated(w, "success", order)
}

// GetOrder handles GET /api/orders/{id} (protected)
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		utils.ResponseBadRequest(w, "Order ID is required", nil)
		return
	}

	order, err := h.service.Get(r.Context(), actor, orderID)
	if err != nil {
		h.handleServiceError(w, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "success", order)
}

// UpdateOrder handles PUT /api/orders/{id} (protected)
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		utils.ResponseBadRequest(w, "Order ID is required", nil)
		return
	}

	var req request.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	order, err := h.service.Update(r.Context(), actor, orderID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update order")
		return
	}

	utils.ResponseSuccess(w, "success", order)
}

// CancelOrder handles DELETE /api/orders/{id} (protected)
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		utils.ResponseBadRequest(w, "Order ID is required", nil)
		return
	}

	var req request.CancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	order, err := h.service.Cancel(r.Context(), actor, orderID, &req)
	if err != nil {
		h.handleServiceError(w, err, "cancel order")
		return
	}

	utils.ResponseSuccess(w, "success", order)
}

// handleServiceError maps typed application errors to the envelope. Unknown
// errors become a generic 500; internal detail stays in the logs.
func (h *OrderHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			h.log.Error("Failed to "+operation,
				zap.Error(err),
				zap.String("code", appErr.Code))
		} else {
			h.log.Warn(operation+" rejected",
				zap.Error(err),
				zap.String("code", appErr.Code))
		}
		utils.ResponseError(w, appErr.HTTPStatus, appErr.Code, appErr.UserMessage)
		return
	}

	h.log.Error("Failed to "+operation,
		zap.Error(err),
		zap.String("operation", operation))
	utils.ResponseError(w, apperr.ErrInternal.HTTPStatus, apperr.ErrInternal.Code, apperr.ErrInternal.UserMessage)
}
