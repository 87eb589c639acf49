package repository

import (
	"time"

	"guidee-orders/internal/data/entity"
	"guidee-orders/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository struct {
	Order   OrderRepository
	Service ServiceRepository
	Outbox  OutboxRepository
}

// NewRepository builds the Postgres-backed repository set.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Order:   NewOrderRepository(db, log),
		Service: NewServiceRepository(db, log),
		Outbox:  NewOutboxRepository(db, log),
	}
}

// NewMemoryRepository builds the in-memory repository set used by tests and
// datastore-less runs. The guide-service catalog is seeded with demo records
// so orders can be created without a database.
func NewMemoryRepository(log *zap.Logger) *Repository {
	services := NewMemoryServiceRepository()
	demos := demoServices()
	for _, service := range demos {
		services.Seed(service)
	}
	log.Info("Seeded demo guide services", zap.Int("count", len(demos)))

	return &Repository{
		Order:   NewMemoryOrderRepository(),
		Service: services,
		Outbox:  NewMemoryOutboxRepository(),
	}
}

// demoServices is the bookable catalog for datastore-less runs. IDs are fixed
// so clients of a local instance can script against them.
func demoServices() []*entity.GuideService {
	now := time.Now()
	return []*entity.GuideService{
		{
			Base:            entity.Base{ID: uuid.MustParse("0b2f3a44-9c1d-4f6e-8a2b-1c9d7e5f3a10"), CreatedAt: now, UpdatedAt: now},
			GuideID:         uuid.MustParse("b3c4d5e6-f7a8-49b0-81c2-d3e4f5a6b7c8"),
			GuideName:       "Mei-Ling",
			Title:           "Old Town Walking Tour",
			BasePrice:       800,
			Location:        "Taipei",
			MaxParticipants: 10,
			IsActive:        true,
		},
		{
			Base:            entity.Base{ID: uuid.MustParse("6e9d8c7b-5a4f-4321-9e8d-7c6b5a493827"), CreatedAt: now, UpdatedAt: now},
			GuideID:         uuid.MustParse("c4d5e6f7-a8b9-40c1-92d3-e4f5a6b7c8d9"),
			GuideName:       "Arief",
			Title:           "Street Food Night Market Tour",
			BasePrice:       450,
			Location:        "Jakarta",
			MaxParticipants: 8,
			IsActive:        true,
		},
	}
}
