package repository

import (
	"context"
	"fmt"
	"time"

	"crime-report/internal/data/entity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SOSRepository interface {
	Create(ctx context.Context, alert *entity.SOSAlert) error
	CountAll(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type sosRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSOSRepository(db *gorm.DB, log *zap.Logger) SOSRepository {
	return &sosRepository{
		db:  db,
		log: log.With(zap.String("repository", "sos")),
	}
}

func (r *sosRepository) Create(ctx context.Context, alert *entity.SOSAlert) error {
	if err := r.db.WithContext(ctx).Create(alert).Error; err != nil {
		r.log.Error("Failed to create SOS alert", zap.Error(err))
		return fmt.Errorf("create SOS alert: %w", err)
	}

	return nil
}

func (r *sosRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.SOSAlert{}).Count(&count).Error; err != nil {
		r.log.Error("Database error counting SOS alerts", zap.Error(err))
		return 0, fmt.Errorf("count all SOS alerts: %w", err)
	}

	return count, nil
}

func (r *sosRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.SOSAlert{}).
		Where("created_at >= ?", since.UTC()).
		Count(&count).Error

	if err != nil {
		r.log.Error("Database error counting SOS alerts since", zap.Error(err), zap.Time("since", since))
		return 0, fmt.Errorf("count SOS alerts since %s: %w", since.Format(time.RFC3339), err)
	}

	return count, nil
}
