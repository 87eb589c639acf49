package adaptor

import (
	"guidee-orders/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Order *OrderHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Order: NewOrderHandler(service.Order, log),
	}
}
