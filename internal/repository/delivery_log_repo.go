package repository

import (
	"context"

	"github.com/kyungmin-dev/taskbell/internal/domain"
	"gorm.io/gorm"
)

type DeliveryLogRepository interface {
	Create(ctx context.Context, log *domain.DeliveryLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.DeliveryLog, error)
}

type GormDeliveryLogRepo struct {
	db *gorm.DB
}

func NewGormDeliveryLogRepo(db *gorm.DB) *GormDeliveryLogRepo {
	return &GormDeliveryLogRepo{db: db}
}

func (r *GormDeliveryLogRepo) Create(ctx context.Context, log *domain.DeliveryLog) error {
	model := deliveryLogModelFromDomain(log)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if log != nil {
		*log = *deliveryLogModelToDomain(model)
	}
	return nil
}

func (r *GormDeliveryLogRepo) ListRecent(ctx context.Context, limit int) ([]domain.DeliveryLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var models []DeliveryLogModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	logs := make([]domain.DeliveryLog, 0, len(models))
	for i := range models {
		logs = append(logs, *deliveryLogModelToDomain(&models[i]))
	}

	return logs, nil
}
