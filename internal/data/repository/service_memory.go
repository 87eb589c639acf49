package repository

import (
	"context"
	"sync"

	"guidee-orders/internal/data/entity"

	"github.com/google/uuid"
)

func NewMemoryServiceRepository() *MemoryServiceRepository {
	return &MemoryServiceRepository{
		services: make(map[uuid.UUID]*entity.GuideService),
	}
}

// MemoryServiceRepository is exported so tests and the memory driver can seed
// bookable services.
type MemoryServiceRepository struct {
	mu       sync.RWMutex
	services map[uuid.UUID]*entity.GuideService
}

func (r *MemoryServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.GuideService, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	clone := *service
	return &clone, nil
}

// Seed registers a bookable service.
func (r *MemoryServiceRepository) Seed(service *entity.GuideService) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *service
	r.services[service.ID] = &clone
}
