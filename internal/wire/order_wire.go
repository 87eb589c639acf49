package wire

import (
	"guidee-orders/internal/adaptor"
	"guidee-orders/pkg/middleware"
	"guidee-orders/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// All order routes require a caller identity; role checks (admin vs
	// owner vs guide) happen in the service layer.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.Get("/api/orders", orderHandler.ListOrders)
		r.Post("/api/orders", orderHandler.CreateOrder)
		r.Get("/api/orders/{id}", orderHandler.GetOrder)
		r.Put("/api/orders/{id}", orderHandler.UpdateOrder)
		r.Delete("/api/orders/{id}", orderHandler.CancelOrder)
	})
}
