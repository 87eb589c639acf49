package usecase

import (
	"guidee-orders/internal/data/repository"
	"guidee-orders/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Order        OrderService
	Notification NotificationService
	Worker       *OutboxWorker
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	notification := NewNotificationService(repo.Outbox, config.Notification.EmailFrom, log)

	return &Service{
		Order:        NewOrderService(repo, notification, log),
		Notification: notification,
		Worker: NewOutboxWorker(
			repo.Outbox,
			notification,
			config.Notification.WorkerInterval,
			config.Notification.BatchSize,
			config.Notification.MaxAttempts,
			log,
		),
	}
}
