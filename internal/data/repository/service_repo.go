package repository

import (
	"context"
	"fmt"

	"guidee-orders/internal/data/entity"
	"guidee-orders/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.GuideService, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.GuideService, error) {
	query := `
		SELECT id, guide_id, guide_name, title, base_price, location, max_participants, is_active,
		       created_at, updated_at
		FROM guide_services
		WHERE id = $1
	`

	var service entity.GuideService
	err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.GuideID,
		&service.GuideName,
		&service.Title,
		&service.BasePrice,
		&service.Location,
		&service.MaxParticipants,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find guide service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find guide service by ID %s: %w", id.String(), err)
	}

	return &service, nil
}
